package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"matchpoint-api/internal/models"
	"matchpoint-api/internal/scoring"
	"matchpoint-api/pkg/httpclient"
	"matchpoint-api/pkg/jobtext"
)

// ArbeitnowSource fetches jobs from the Arbeitnow job-board API. The API has
// no server-side search, so the query is applied client-side to the mapped
// records and the result is truncated to the configured limit.
type ArbeitnowSource struct {
	client  *httpclient.HttpClient
	scorer  *scoring.Scorer
	baseURL string
	limit   int
}

// NewArbeitnowSource creates an Arbeitnow source.
func NewArbeitnowSource(client *httpclient.HttpClient, scorer *scoring.Scorer, baseURL string, limit int) *ArbeitnowSource {
	return &ArbeitnowSource{
		client:  client,
		scorer:  scorer,
		baseURL: baseURL,
		limit:   limit,
	}
}

func (a *ArbeitnowSource) Name() string {
	return models.SourceArbeitnow
}

// arbeitnowResponse mirrors the Arbeitnow API envelope.
type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

// arbeitnowJob mirrors a single Arbeitnow listing. CreatedAt is a json.Number
// because the API has served both epoch integers and strings here.
type arbeitnowJob struct {
	Slug        string      `json:"slug"`
	CompanyName string      `json:"company_name"`
	CompanyLogo string      `json:"company_logo"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Remote      bool        `json:"remote"`
	URL         string      `json:"url"`
	Tags        []string    `json:"tags"`
	JobTypes    []string    `json:"job_types"`
	Location    string      `json:"location"`
	CreatedAt   json.Number `json:"created_at"`
}

// Fetch retrieves the full feed, filters it against the query, and truncates
// to the configured limit.
func (a *ArbeitnowSource) Fetch(ctx context.Context, query, _ string, skills []string) ([]models.Job, error) {
	resp, err := a.client.Get(ctx, a.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Arbeitnow: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Arbeitnow API returned status %d", resp.StatusCode)
	}

	var response arbeitnowResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to parse Arbeitnow response: %w", err)
	}

	jobs := make([]models.Job, 0, len(response.Data))
	for _, raw := range response.Data {
		jobs = append(jobs, a.mapJob(raw, skills))
	}
	if query != "" {
		jobs = filterByQuery(jobs, query)
	}
	if len(jobs) > a.limit {
		jobs = jobs[:a.limit]
	}
	return jobs, nil
}

// mapJob normalizes one raw Arbeitnow record into the common Job shape.
// Arbeitnow never supplies salary data, so salary stays empty.
func (a *ArbeitnowSource) mapJob(raw arbeitnowJob, skills []string) models.Job {
	tags := cleanTags(raw.Tags)

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = "Untitled"
	}
	company := raw.CompanyName
	if company == "" {
		company = "Unknown"
	}

	slug := raw.Slug
	if slug == "" {
		// No stable identifier; synthesize one. Not stable across fetches.
		slug = fmt.Sprintf("%d", 10000+rand.Intn(90000))
	}

	location := raw.Location
	locationType := "onsite"
	if raw.Remote {
		locationType = "remote"
	}
	if location == "" {
		if raw.Remote {
			location = "Remote"
		} else {
			location = "Unknown"
		}
	}

	jobURL := raw.URL
	if jobURL == "" {
		jobURL = "https://www.arbeitnow.com/view/" + slug
	}

	rawType := ""
	if len(raw.JobTypes) > 0 {
		rawType = raw.JobTypes[0]
	}

	match, _ := a.scorer.Score(tags, skills)
	display := capped(tags, models.MaxDisplaySkills)
	matched := scoring.Matched(display, skills)

	return models.Job{
		ID:                "an-" + slug,
		Title:             title,
		Company:           company,
		Logo:              jobtext.LogoURL(company, raw.CompanyLogo),
		Location:          location,
		LocationType:      locationType,
		Salary:            "",
		SalaryMin:         0,
		Match:             match,
		PostedDays:        jobtext.DaysAgo(raw.CreatedAt.String(), time.Now()),
		Description:       raw.Description,
		IsHTML:            true,
		Skills:            display,
		UserSkillMatch:    matched,
		URL:               jobURL,
		JobType:           jobtext.FormatJobType(rawType),
		Category:          "",
		Source:            models.SourceArbeitnow,
		LinkedInSearchURL: jobtext.LinkedInSearchURL(title, company),
	}
}

// filterByQuery keeps jobs whose title, company, or any skill contains the
// query as a case-insensitive substring.
func filterByQuery(jobs []models.Job, query string) []models.Job {
	q := strings.ToLower(query)
	var out []models.Job
	for _, job := range jobs {
		if strings.Contains(strings.ToLower(job.Title), q) ||
			strings.Contains(strings.ToLower(job.Company), q) ||
			anyContains(job.Skills, q) {
			out = append(out, job)
		}
	}
	return out
}

func anyContains(list []string, q string) bool {
	for _, s := range list {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}
