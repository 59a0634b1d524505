package aggregator

import (
	"matchpoint-api/internal/models"
	"matchpoint-api/pkg/jobtext"
)

// ApplyFilters applies the post-cache filter spec to a job list. Active
// predicates combine with AND; with no active predicates the input is
// returned unchanged. The same function runs on cached and fresh results.
func ApplyFilters(jobs []models.Job, filters models.Filters) []models.Job {
	result := jobs

	if filters.MinSalary > 0 {
		result = keep(result, func(j models.Job) bool {
			return j.SalaryMin >= filters.MinSalary
		})
	}

	if len(filters.JobTypes) > 0 {
		allowed := make(map[string]bool, len(filters.JobTypes))
		for _, id := range filters.JobTypes {
			allowed[jobtext.FormatJobType(id)] = true
		}
		result = keep(result, func(j models.Job) bool {
			return allowed[j.JobType]
		})
	}

	if filters.FullTime {
		result = keep(result, func(j models.Job) bool {
			return j.JobType == models.JobTypeFullTime
		})
	}
	if filters.Salary {
		result = keep(result, func(j models.Job) bool {
			return j.Salary != ""
		})
	}
	if filters.Recent {
		result = keep(result, func(j models.Job) bool {
			return j.PostedDays <= 7
		})
	}

	return result
}

func keep(jobs []models.Job, pred func(models.Job) bool) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for _, j := range jobs {
		if pred(j) {
			out = append(out, j)
		}
	}
	return out
}
