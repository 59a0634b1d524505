// Package aggregator orchestrates the job aggregation pipeline: concurrent
// multi-source fetch, US-location filtering, deduplication, score-ordered
// merge, fallback substitution, result caching, and post-cache filtering.
package aggregator

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"matchpoint-api/internal/config"
	"matchpoint-api/internal/models"
	"matchpoint-api/internal/scoring"
	"matchpoint-api/internal/sources"
)

// maxCategories caps the number of category-scoped fetch tasks per request.
const maxCategories = 5

// Aggregator fans a request out to every source, merges the successful
// results, and caches the merged list. It never fails outward: every call
// returns a job list (possibly the fallback set) and a cached flag.
type Aggregator struct {
	remotive  sources.Source
	arbeitnow sources.Source
	scorer    *scoring.Scorer
	cache     *Cache
	logger    *logrus.Logger
}

// New creates an Aggregator.
func New(remotive, arbeitnow sources.Source, scorer *scoring.Scorer, cache *Cache, logger *logrus.Logger) *Aggregator {
	return &Aggregator{
		remotive:  remotive,
		arbeitnow: arbeitnow,
		scorer:    scorer,
		cache:     cache,
		logger:    logger,
	}
}

// fetchResult carries one fetch task's outcome across the collection channel.
type fetchResult struct {
	source string
	jobs   []models.Job
	err    error
}

// FetchAllJobs runs the full pipeline for a request and reports whether the
// result came from cache. Only a live cache hit returns cached=true; the call
// that writes an entry reports cached=false.
func (a *Aggregator) FetchAllJobs(ctx context.Context, query string, categories, userSkills []string, filters models.Filters) ([]models.Job, bool) {
	skills := normalizeSkills(userSkills)

	key := CacheKey(query, categories)
	if cached, ok := a.cache.Get(key); ok {
		return ApplyFilters(cached, filters), true
	}

	cats := categories
	if len(cats) > maxCategories {
		cats = cats[:maxCategories]
	}
	if len(cats) == 0 {
		cats = []string{""}
	}

	// One Remotive task per category plus one Arbeitnow task, all concurrent.
	// A failed task contributes nothing; the others are unaffected.
	results := make(chan fetchResult, len(cats)+1)
	var wg sync.WaitGroup
	for _, cat := range cats {
		wg.Add(1)
		go func(category string) {
			defer wg.Done()
			jobs, err := a.remotive.Fetch(ctx, query, category, skills)
			results <- fetchResult{source: a.remotive.Name(), jobs: jobs, err: err}
		}(cat)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		jobs, err := a.arbeitnow.Fetch(ctx, query, "", skills)
		results <- fetchResult{source: a.arbeitnow.Name(), jobs: jobs, err: err}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var merged []models.Job
	for result := range results {
		if result.err != nil {
			a.logger.WithFields(logrus.Fields{
				"source": result.source,
				"query":  query,
			}).WithError(result.err).Warn("source fetch failed, dropping its contribution")
			continue
		}
		merged = append(merged, result.jobs...)
	}

	jobs := keep(merged, func(j models.Job) bool { return IsUSLocation(j.Location) })
	jobs = Dedupe(jobs)
	sort.SliceStable(jobs, func(i, k int) bool { return jobs[i].Match > jobs[k].Match })

	if len(jobs) == 0 {
		a.logger.WithField("query", query).Info("no live jobs after filtering, serving fallback set")
		jobs = FallbackJobs(a.scorer, skills)
	}

	a.cache.Put(key, jobs)
	a.logger.WithFields(logrus.Fields{
		"query": query,
		"jobs":  len(jobs),
	}).Info("aggregation complete")

	return ApplyFilters(jobs, filters), false
}

// Dedupe drops later duplicates of the same posting. The dedup key is the
// lower-cased, space-stripped concatenation of title and company; the first
// occurrence wins.
func Dedupe(jobs []models.Job) []models.Job {
	seen := make(map[string]bool, len(jobs))
	unique := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		key := strings.ReplaceAll(strings.ToLower(j.Title+j.Company), " ", "")
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, j)
	}
	return unique
}

// normalizeSkills lower-cases the caller's skills, falling back to the
// built-in default list when none are supplied.
func normalizeSkills(userSkills []string) []string {
	src := userSkills
	if len(src) == 0 {
		src = config.DefaultSkills
	}
	skills := make([]string, len(src))
	for i, s := range src {
		skills[i] = strings.ToLower(s)
	}
	return skills
}
