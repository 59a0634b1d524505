// Package jobtext holds the pure text and number normalization helpers shared
// by the source normalizers.
package jobtext

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"matchpoint-api/internal/models"
)

var (
	bracketedRe = regexp.MustCompile(`\s*\[[^\]]*\]`)
	numberRunRe = regexp.MustCompile(`[\d,]+`)
)

// TitleCase upper-cases the first letter of every word, leaving the rest of
// each word untouched ("design systems" -> "Design Systems", "iOS" -> "IOS").
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevWord := false
	for _, r := range s {
		isWord := r == '_' || r >= '0' && r <= '9' ||
			r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		if isWord && !prevWord && r >= 'a' && r <= 'z' {
			r = r - 'a' + 'A'
		}
		prevWord = isWord
		b.WriteRune(r)
	}
	return b.String()
}

// StripBracketed removes every "[...]" group along with preceding whitespace,
// e.g. "Engineer [Remote]" -> "Engineer".
func StripBracketed(s string) string {
	return bracketedRe.ReplaceAllString(s, "")
}

// ParseSalaryMin extracts the first numeric run from a free-text salary
// string, ignoring thousands separators. No K/M suffix multiplier is applied:
// "$140K-$180K" parses to 140. Missing or unparseable input yields 0.
func ParseSalaryMin(s string) int {
	for _, run := range numberRunRe.FindAllString(s, -1) {
		digits := strings.ReplaceAll(run, ",", "")
		if digits == "" {
			continue
		}
		if n, err := strconv.Atoi(digits); err == nil {
			return n
		}
	}
	return 0
}

// dateFormats are the timestamp layouts providers have been observed to send.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DaysAgo returns the whole days elapsed between an ISO-8601 timestamp and
// now (UTC), floored at 0. Missing or unparseable input yields the
// models.PostedDaysUnknown sentinel, which sorts last.
func DaysAgo(s string, now time.Time) int {
	if s == "" {
		return models.PostedDaysUnknown
	}
	for _, format := range dateFormats {
		t, err := time.Parse(format, s)
		if err != nil {
			continue
		}
		days := int(now.UTC().Sub(t).Hours() / 24)
		if days < 0 {
			return 0
		}
		return days
	}
	return models.PostedDaysUnknown
}

var jobTypeLabels = map[string]string{
	"full_time":  models.JobTypeFullTime,
	"part_time":  models.JobTypePartTime,
	"contract":   models.JobTypeContract,
	"freelance":  models.JobTypeFreelance,
	"internship": models.JobTypeInternship,
}

// FormatJobType maps a provider job-type token to its display value.
// Unknown or missing tokens default to Full-time.
func FormatJobType(token string) string {
	if label, ok := jobTypeLabels[token]; ok {
		return label
	}
	return models.JobTypeFullTime
}

// LogoURL returns the provider logo when it is an absolute URL, otherwise an
// avatar-generator URL keyed by company name.
func LogoURL(company, raw string) string {
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	return "https://ui-avatars.com/api/?name=" + escapeQuery(company) +
		"&background=0a66c2&color=fff&size=100&bold=true"
}

// LinkedInSearchURL builds a LinkedIn job-search deep link for a posting.
func LinkedInSearchURL(title, company string) string {
	query := strings.TrimSpace(title + " " + company)
	return "https://www.linkedin.com/jobs/search/?keywords=" + escapeQuery(query)
}

// escapeQuery percent-encodes a query value with %20 for spaces, matching the
// encoding the frontend expects in generated links.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
