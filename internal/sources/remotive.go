package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"matchpoint-api/internal/models"
	"matchpoint-api/internal/scoring"
	"matchpoint-api/pkg/httpclient"
	"matchpoint-api/pkg/jobtext"
)

// RemotiveSource fetches jobs from the Remotive API, which supports
// server-side search and category filtering.
type RemotiveSource struct {
	client  *httpclient.HttpClient
	scorer  *scoring.Scorer
	baseURL string
	limit   int
}

// NewRemotiveSource creates a Remotive source.
func NewRemotiveSource(client *httpclient.HttpClient, scorer *scoring.Scorer, baseURL string, limit int) *RemotiveSource {
	return &RemotiveSource{
		client:  client,
		scorer:  scorer,
		baseURL: baseURL,
		limit:   limit,
	}
}

func (r *RemotiveSource) Name() string {
	return models.SourceRemotive
}

// remotiveResponse mirrors the Remotive API envelope.
type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

// remotiveJob mirrors a single Remotive listing.
type remotiveJob struct {
	ID                        int64    `json:"id"`
	URL                       string   `json:"url"`
	Title                     string   `json:"title"`
	CompanyName               string   `json:"company_name"`
	CompanyLogo               string   `json:"company_logo"`
	Category                  string   `json:"category"`
	Tags                      []string `json:"tags"`
	JobType                   string   `json:"job_type"`
	PublicationDate           string   `json:"publication_date"`
	CandidateRequiredLocation string   `json:"candidate_required_location"`
	Salary                    string   `json:"salary"`
	Description               string   `json:"description"`
}

// Fetch retrieves up to the configured limit of jobs, scoped by the optional
// search term and category.
func (r *RemotiveSource) Fetch(ctx context.Context, query, category string, skills []string) ([]models.Job, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(r.limit))
	if query != "" {
		params.Set("search", query)
	}
	if category != "" {
		params.Set("category", category)
	}

	resp, err := r.client.Get(ctx, r.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Remotive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Remotive API returned status %d", resp.StatusCode)
	}

	var response remotiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to parse Remotive response: %w", err)
	}

	jobs := make([]models.Job, 0, len(response.Jobs))
	for _, raw := range response.Jobs {
		jobs = append(jobs, r.mapJob(raw, skills))
	}
	return jobs, nil
}

// mapJob normalizes one raw Remotive record into the common Job shape.
func (r *RemotiveSource) mapJob(raw remotiveJob, skills []string) models.Job {
	tags := cleanTags(raw.Tags)

	title := strings.TrimSpace(jobtext.StripBracketed(strings.TrimSpace(raw.Title)))
	if title == "" {
		title = "Untitled"
	}
	company := raw.CompanyName
	if company == "" {
		company = "Unknown"
	}
	location := raw.CandidateRequiredLocation
	if location == "" {
		location = "Worldwide"
	}

	// The full tag list drives the score; the display lists are capped, and
	// the matched subset comes from the capped list so it stays a subset.
	match, _ := r.scorer.Score(tags, skills)
	display := capped(tags, models.MaxDisplaySkills)
	matched := scoring.Matched(display, skills)

	return models.Job{
		ID:                fmt.Sprintf("rm-%d", raw.ID),
		Title:             title,
		Company:           company,
		Logo:              jobtext.LogoURL(company, raw.CompanyLogo),
		Location:          location,
		LocationType:      "remote",
		Salary:            raw.Salary,
		SalaryMin:         jobtext.ParseSalaryMin(raw.Salary),
		Match:             match,
		PostedDays:        jobtext.DaysAgo(raw.PublicationDate, time.Now()),
		Description:       raw.Description,
		IsHTML:            true,
		Skills:            display,
		UserSkillMatch:    matched,
		URL:               raw.URL,
		JobType:           jobtext.FormatJobType(raw.JobType),
		Category:          raw.Category,
		Source:            models.SourceRemotive,
		LinkedInSearchURL: jobtext.LinkedInSearchURL(title, company),
	}
}

// cleanTags trims, title-cases, and drops empty provider tags.
func cleanTags(raw []string) []string {
	var tags []string
	for _, t := range raw {
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			continue
		}
		tags = append(tags, jobtext.TitleCase(trimmed))
	}
	return tags
}
