package aggregator

import (
	"strings"

	"matchpoint-api/internal/models"
	"matchpoint-api/internal/scoring"
	"matchpoint-api/pkg/jobtext"
)

// fallbackJob is one hand-authored posting shown when live aggregation yields
// nothing, so the UI never renders a blank state.
type fallbackJob struct {
	id          string
	title       string
	company     string
	location    string
	salary      string
	salaryMin   int
	skills      []string
	postedDays  int
	description string
}

var fallbackSet = []fallbackJob{
	{
		id: "fb-1", title: "Senior Product Designer", company: "Stripe",
		location: "San Francisco, CA", salary: "$140K-$180K", salaryMin: 140000,
		skills: []string{"Figma", "Design Systems", "Product Strategy"}, postedDays: 2,
		description: "<p>Lead end-to-end UI/UX design for flagship fintech products.</p>",
	},
	{
		id: "fb-2", title: "Frontend Engineer", company: "TikTok",
		location: "Los Angeles, CA", salary: "$120K-$160K", salaryMin: 120000,
		skills: []string{"React", "TypeScript", "CSS", "Performance"}, postedDays: 1,
		description: "<p>Build the future of digital entertainment at massive scale.</p>",
	},
	{
		id: "fb-3", title: "Staff Product Designer", company: "Figma",
		location: "San Francisco, CA", salary: "$180K-$220K", salaryMin: 180000,
		skills: []string{"Systems Thinking", "Design Tools", "UX Research"}, postedDays: 5,
		description: "<p>Design the future of design tools used by millions worldwide.</p>",
	},
	{
		id: "fb-4", title: "Lead Product Designer", company: "Netflix",
		location: "Los Gatos, CA", salary: "$200K-$280K", salaryMin: 200000,
		skills: []string{"Team Leadership", "Entertainment", "Data-Driven Design"}, postedDays: 3,
		description: "<p>Reimagine how millions discover and enjoy content.</p>",
	},
	{
		id: "fb-5", title: "Product Designer", company: "Airbnb",
		location: "Seattle, WA", salary: "$150K-$190K", salaryMin: 150000,
		skills: []string{"Mobile Design", "Figma", "User Research"}, postedDays: 1,
		description: "<p>Design experiences that connect people around the world.</p>",
	},
	{
		id: "fb-6", title: "Senior UX Engineer", company: "Google",
		location: "Mountain View, CA", salary: "$160K-$200K", salaryMin: 160000,
		skills: []string{"JavaScript", "Accessibility", "Design Engineering"}, postedDays: 4,
		description: "<p>Bridge design and engineering on core products.</p>",
	},
}

// FallbackJobs materializes the fixed fallback set, scoring each entry in
// [80,94] and matching its skills against the caller's skill set.
func FallbackJobs(scorer *scoring.Scorer, userSkills []string) []models.Job {
	jobs := make([]models.Job, 0, len(fallbackSet))
	for _, f := range fallbackSet {
		slug := strings.ReplaceAll(strings.ToLower(f.company), " ", "")
		jobs = append(jobs, models.Job{
			ID:                f.id,
			Title:             f.title,
			Company:           f.company,
			Logo:              "https://logo.clearbit.com/" + slug + ".com?size=100",
			Location:          f.location,
			LocationType:      "remote",
			Salary:            f.salary,
			SalaryMin:         f.salaryMin,
			Match:             scorer.FallbackScore(),
			PostedDays:        f.postedDays,
			Description:       f.description,
			IsHTML:            true,
			Skills:            f.skills,
			UserSkillMatch:    capped(scoring.Matched(f.skills, userSkills), 2),
			URL:               jobtext.LinkedInSearchURL(f.title, f.company),
			JobType:           models.JobTypeFullTime,
			Category:          "Design",
			Source:            models.SourceFallback,
			LinkedInSearchURL: jobtext.LinkedInSearchURL(f.title, f.company),
		})
	}
	return jobs
}

func capped(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
