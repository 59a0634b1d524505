package jobtext_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"matchpoint-api/internal/models"
	"matchpoint-api/pkg/jobtext"
)

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"design systems", "Design Systems"},
		{"react", "React"},
		{"iOS", "IOS"},
		{"e-commerce", "E-Commerce"},
		{"node.js", "Node.Js"},
		{"", ""},
		{"ALREADY UPPER", "ALREADY UPPER"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, jobtext.TitleCase(c.in), "TitleCase(%q)", c.in)
	}
}

func TestStripBracketed(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Engineer [Remote]", "Engineer"},
		{"Engineer [Remote] [Senior]", "Engineer"},
		{"[Urgent] Engineer", " Engineer"}, // callers trim afterwards
		{"Engineer", "Engineer"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, jobtext.StripBracketed(c.in), "StripBracketed(%q)", c.in)
	}
}

func TestParseSalaryMin(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		// No K/M multiplier is applied: the first digit run is taken verbatim.
		{"$140K-$180K", 140},
		{"$120,000 - $150,000", 120000},
		{"50000", 50000},
		{"Competitive", 0},
		{"", 0},
		{"€50.000 per year", 50},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, jobtext.ParseSalaryMin(c.in), "ParseSalaryMin(%q)", c.in)
	}
}

func TestDaysAgo(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		in   string
		want int
	}{
		{"2024-05-08", 2},
		{"2024-05-10", 0},
		{"2024-05-01T12:00:00Z", 9},
		{"2024-05-01T12:00:00", 9},
		{"2024-05-01 12:00:00", 9},
		{"2024-06-01", 0}, // future dates floor at 0
		{"", models.PostedDaysUnknown},
		{"not a date", models.PostedDaysUnknown},
		{"1693526400", models.PostedDaysUnknown}, // epoch seconds are not ISO-8601
	}
	for _, c := range cases {
		assert.Equal(t, c.want, jobtext.DaysAgo(c.in, now), "DaysAgo(%q)", c.in)
	}
}

func TestFormatJobType(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"full_time", models.JobTypeFullTime},
		{"part_time", models.JobTypePartTime},
		{"contract", models.JobTypeContract},
		{"freelance", models.JobTypeFreelance},
		{"internship", models.JobTypeInternship},
		{"", models.JobTypeFullTime},
		{"volunteer", models.JobTypeFullTime},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, jobtext.FormatJobType(c.in), "FormatJobType(%q)", c.in)
	}
}

func TestLogoURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/logo.png",
		jobtext.LogoURL("Acme", "https://cdn.example.com/logo.png"))

	generated := jobtext.LogoURL("Acme Inc", "")
	assert.Contains(t, generated, "ui-avatars.com")
	assert.Contains(t, generated, "name=Acme%20Inc")

	// Relative paths are not absolute URLs.
	assert.Contains(t, jobtext.LogoURL("Acme", "/logo.png"), "ui-avatars.com")
}

func TestLinkedInSearchURL(t *testing.T) {
	assert.Equal(t,
		"https://www.linkedin.com/jobs/search/?keywords=Senior%20Designer%20Stripe",
		jobtext.LinkedInSearchURL("Senior Designer", "Stripe"))

	// Empty parts are trimmed, not double-spaced.
	assert.Equal(t,
		"https://www.linkedin.com/jobs/search/?keywords=Stripe",
		jobtext.LinkedInSearchURL("", "Stripe"))
}
