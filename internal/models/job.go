package models

// Job is the common record shape every source normalizes into.
type Job struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Company           string   `json:"company"`
	Logo              string   `json:"logo"`
	Location          string   `json:"location"`
	LocationType      string   `json:"locationType"` // remote | onsite
	Salary            string   `json:"salary"`
	SalaryMin         int      `json:"salaryMin"`
	Match             int      `json:"match"`
	PostedDays        int      `json:"postedDays"` // 999 = unknown/very old
	Description       string   `json:"description"`
	IsHTML            bool     `json:"isHtml"`
	Skills            []string `json:"skills"`
	UserSkillMatch    []string `json:"userSkillMatch"`
	URL               string   `json:"url"`
	JobType           string   `json:"jobType"`
	Category          string   `json:"category"`
	Source            string   `json:"source"` // remotive | arbeitnow | fallback
	LinkedInSearchURL string   `json:"linkedinSearchUrl"`
}

// Job type display values.
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
	JobTypeFreelance  = "Freelance"
	JobTypeInternship = "Internship"
)

// Source tags used in Job.Source.
const (
	SourceRemotive  = "remotive"
	SourceArbeitnow = "arbeitnow"
	SourceFallback  = "fallback"
)

// PostedDaysUnknown is the sentinel for missing or unparseable publication dates.
const PostedDaysUnknown = 999

// MaxDisplaySkills caps the skills and userSkillMatch lists on a Job.
const MaxDisplaySkills = 6

// Filters is the post-cache filter spec. Zero values impose no constraint;
// active predicates combine with AND.
type Filters struct {
	MinSalary int      `json:"minSalary,omitempty"`
	JobTypes  []string `json:"jobTypes,omitempty"`
	// Legacy quick-filter booleans from the stack-view pills.
	FullTime bool `json:"fulltime,omitempty"`
	Salary   bool `json:"salary,omitempty"`
	Recent   bool `json:"recent,omitempty"`
}

// JobsRequest is the POST /api/jobs body.
type JobsRequest struct {
	Query      string   `json:"query"`
	Categories []string `json:"categories"`
	Skills     []string `json:"skills"`
	Filters    Filters  `json:"filters"`
}

// JobsResponse is the POST /api/jobs reply.
type JobsResponse struct {
	Jobs   []Job `json:"jobs"`
	Total  int   `json:"total"`
	Cached bool  `json:"cached"`
}

// ListItem is a static category or job-type entry served to the frontend.
type ListItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}
