package aggregator_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchpoint-api/internal/aggregator"
	"matchpoint-api/internal/models"
	"matchpoint-api/internal/scoring"
)

// stubSource is a canned sources.Source for pipeline tests.
type stubSource struct {
	name string
	jobs []models.Job
	err  error

	mu         sync.Mutex
	calls      int
	categories []string
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Fetch(_ context.Context, _, category string, _ []string) ([]models.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.categories = append(s.categories, category)
	if s.err != nil {
		return nil, s.err
	}
	return s.jobs, nil
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestAggregator(remotive, arbeitnow *stubSource, ttl time.Duration) *aggregator.Aggregator {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	scorer := scoring.New(1)
	return aggregator.New(remotive, arbeitnow, scorer, aggregator.NewCache(16, ttl), logger)
}

func usJob(id, title, company string, match int) models.Job {
	return models.Job{
		ID: id, Title: title, Company: company, Match: match,
		Location: "Austin, TX", Skills: []string{"React"},
		UserSkillMatch: []string{"React"}, JobType: models.JobTypeFullTime,
	}
}

func TestFetchAllJobs_MergesSortsAndFilters(t *testing.T) {
	remotive := &stubSource{name: "remotive", jobs: []models.Job{
		usJob("rm-1", "Backend Engineer", "Acme", 75),
		{ID: "rm-2", Title: "Designer", Company: "Euro GmbH", Match: 95, Location: "Berlin, Germany"},
	}}
	arbeitnow := &stubSource{name: "arbeitnow", jobs: []models.Job{
		usJob("an-1", "Frontend Engineer", "Beta", 90),
	}}
	agg := newTestAggregator(remotive, arbeitnow, time.Minute)

	jobs, cached := agg.FetchAllJobs(context.Background(), "", nil, nil, models.Filters{})
	assert.False(t, cached)

	// Non-US job dropped, rest sorted by match descending.
	require.Len(t, jobs, 2)
	assert.Equal(t, "an-1", jobs[0].ID)
	assert.Equal(t, "rm-1", jobs[1].ID)

	// Every id unique, userSkillMatch a subset of skills.
	seen := map[string]bool{}
	for _, j := range jobs {
		assert.False(t, seen[j.ID], "duplicate id %s", j.ID)
		seen[j.ID] = true
		for _, m := range j.UserSkillMatch {
			assert.Contains(t, j.Skills, m)
		}
	}
}

func TestFetchAllJobs_SourceFailureIsSoft(t *testing.T) {
	remotive := &stubSource{name: "remotive", err: errors.New("boom")}
	arbeitnow := &stubSource{name: "arbeitnow", jobs: []models.Job{
		usJob("an-1", "Engineer", "Beta", 80),
	}}
	agg := newTestAggregator(remotive, arbeitnow, time.Minute)

	jobs, cached := agg.FetchAllJobs(context.Background(), "", nil, nil, models.Filters{})
	assert.False(t, cached)
	require.Len(t, jobs, 1)
	assert.Equal(t, "an-1", jobs[0].ID)
}

func TestFetchAllJobs_EmptyResultServesFallback(t *testing.T) {
	remotive := &stubSource{name: "remotive"}
	arbeitnow := &stubSource{name: "arbeitnow"}
	agg := newTestAggregator(remotive, arbeitnow, time.Minute)

	jobs, cached := agg.FetchAllJobs(context.Background(), "", nil, nil, models.Filters{})
	assert.False(t, cached)
	require.Len(t, jobs, 6)
	for _, j := range jobs {
		assert.Equal(t, models.SourceFallback, j.Source)
		assert.GreaterOrEqual(t, j.Match, 80)
		assert.LessOrEqual(t, j.Match, 94)
		assert.LessOrEqual(t, len(j.UserSkillMatch), 2)
		for _, m := range j.UserSkillMatch {
			assert.Contains(t, j.Skills, m)
		}
	}
}

func TestFetchAllJobs_SecondCallWithinTTLIsCached(t *testing.T) {
	remotive := &stubSource{name: "remotive", jobs: []models.Job{
		usJob("rm-1", "Engineer", "Acme", 75),
	}}
	arbeitnow := &stubSource{name: "arbeitnow"}
	agg := newTestAggregator(remotive, arbeitnow, time.Minute)

	first, cached := agg.FetchAllJobs(context.Background(), "go", []string{"design"}, nil, models.Filters{})
	assert.False(t, cached)
	fetches := remotive.callCount()

	second, cached := agg.FetchAllJobs(context.Background(), "go", []string{"design"}, nil, models.Filters{})
	assert.True(t, cached)
	assert.Equal(t, first, second)
	assert.Equal(t, fetches, remotive.callCount(), "cache hit must not re-fetch")

	// Different key misses.
	_, cached = agg.FetchAllJobs(context.Background(), "rust", []string{"design"}, nil, models.Filters{})
	assert.False(t, cached)
}

func TestFetchAllJobs_CacheExpiryTriggersRefetch(t *testing.T) {
	remotive := &stubSource{name: "remotive", jobs: []models.Job{
		usJob("rm-1", "Engineer", "Acme", 75),
	}}
	arbeitnow := &stubSource{name: "arbeitnow"}
	agg := newTestAggregator(remotive, arbeitnow, 30*time.Millisecond)

	_, cached := agg.FetchAllJobs(context.Background(), "go", nil, nil, models.Filters{})
	assert.False(t, cached)

	time.Sleep(80 * time.Millisecond)
	_, cached = agg.FetchAllJobs(context.Background(), "go", nil, nil, models.Filters{})
	assert.False(t, cached, "expired entry must be refetched")
}

func TestFetchAllJobs_FiltersApplyToCachedResults(t *testing.T) {
	remotive := &stubSource{name: "remotive", jobs: []models.Job{
		usJob("rm-1", "Engineer", "Acme", 75),
		{ID: "rm-2", Title: "Architect", Company: "Acme", Match: 80,
			Location: "Austin, TX", SalaryMin: 150000, JobType: models.JobTypeFullTime},
	}}
	arbeitnow := &stubSource{name: "arbeitnow"}
	agg := newTestAggregator(remotive, arbeitnow, time.Minute)

	all, _ := agg.FetchAllJobs(context.Background(), "", nil, nil, models.Filters{})
	require.Len(t, all, 2)

	filtered, cached := agg.FetchAllJobs(context.Background(), "", nil, nil, models.Filters{MinSalary: 100000})
	assert.True(t, cached, "filter variations share the query cache entry")
	require.Len(t, filtered, 1)
	assert.Equal(t, "rm-2", filtered[0].ID)
}

func TestFetchAllJobs_CategoryFanOutCappedAtFive(t *testing.T) {
	remotive := &stubSource{name: "remotive", jobs: []models.Job{
		usJob("rm-1", "Engineer", "Acme", 75),
	}}
	arbeitnow := &stubSource{name: "arbeitnow"}
	agg := newTestAggregator(remotive, arbeitnow, time.Minute)

	categories := []string{"a", "b", "c", "d", "e", "f", "g"}
	agg.FetchAllJobs(context.Background(), "", categories, nil, models.Filters{})

	assert.Equal(t, 5, remotive.callCount(), "one task per category, capped at 5")
	assert.Equal(t, 1, arbeitnow.callCount())
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, remotive.categories)
}

func TestFetchAllJobs_NoCategoriesRunsOneUntypedTask(t *testing.T) {
	remotive := &stubSource{name: "remotive"}
	arbeitnow := &stubSource{name: "arbeitnow"}
	agg := newTestAggregator(remotive, arbeitnow, time.Minute)

	agg.FetchAllJobs(context.Background(), "", nil, nil, models.Filters{})
	assert.Equal(t, []string{""}, remotive.categories)
}

func TestDedupe_FirstOccurrenceWins(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", Title: "Backend Engineer", Company: "Acme"},
		{ID: "2", Title: "backend engineer", Company: "ACME"},
		{ID: "3", Title: "Backend  Engineer", Company: "Acme"}, // spaces stripped
		{ID: "4", Title: "Frontend Engineer", Company: "Acme"},
	}
	got := aggregator.Dedupe(jobs)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "4", got[1].ID)
}

func TestDedupe_Idempotent(t *testing.T) {
	jobs := []models.Job{
		{ID: "1", Title: "A", Company: "X"},
		{ID: "2", Title: "A", Company: "X"},
		{ID: "3", Title: "B", Company: "Y"},
	}
	once := aggregator.Dedupe(jobs)
	twice := aggregator.Dedupe(once)
	assert.Equal(t, once, twice)
}
