package sources

import (
	"context"

	"matchpoint-api/internal/models"
)

// Source is one external job-board API. Fetch performs a single GET against
// the provider, normalizes every record in its envelope into the common Job
// shape, and scores it against the caller's lowercase skill set. Providers
// without server-side search ignore query/category and filter client-side.
type Source interface {
	Name() string
	Fetch(ctx context.Context, query, category string, skills []string) ([]models.Job, error)
}

// capped truncates a string list to at most n entries.
func capped(list []string, n int) []string {
	if len(list) > n {
		return list[:n]
	}
	return list
}
