package aggregator

import (
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"matchpoint-api/internal/models"
)

// Cache stores pre-filter aggregation results keyed by query+categories.
// Entries expire after the configured TTL, checked lazily on lookup; a Put
// overwrites any prior entry for the key. In-process only — losing it on
// restart is acceptable.
type Cache struct {
	lru *expirable.LRU[string, []models.Job]
}

// NewCache creates a result cache holding at most maxKeys entries with the
// given TTL.
func NewCache(maxKeys int, ttl time.Duration) *Cache {
	return &Cache{
		lru: expirable.NewLRU[string, []models.Job](maxKeys, nil, ttl),
	}
}

// Get returns the live (non-expired) job list for a key.
func (c *Cache) Get(key string) ([]models.Job, bool) {
	return c.lru.Get(key)
}

// Put stores a pre-filter job list under a key, replacing any prior entry.
func (c *Cache) Put(key string, jobs []models.Job) {
	c.lru.Add(key, jobs)
}

// CacheKey derives the cache key for a request: the query joined with the
// sorted, comma-joined category list.
func CacheKey(query string, categories []string) string {
	sorted := make([]string, len(categories))
	copy(sorted, categories)
	sort.Strings(sorted)
	return query + "|" + strings.Join(sorted, ",")
}
