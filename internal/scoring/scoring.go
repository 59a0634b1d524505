// Package scoring computes the relevance score a job gets against a user's
// skill set. Scores deliberately carry random jitter so repeated fetches don't
// produce identical-looking rankings; the randomness source is injected so
// tests can fix the seed.
package scoring

import (
	"math"
	"math/rand"
	"strings"
	"sync"
)

// Score bands.
const (
	minScore = 60
	maxScore = 99
)

// Scorer blends tag overlap with jitter into a [60,99] match score.
// Safe for concurrent use by the source fetchers.
type Scorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Scorer seeded with the given value.
func New(seed int64) *Scorer {
	return &Scorer{rng: rand.New(rand.NewSource(seed))}
}

// Score returns the match score and the matched-tag subset for a job's tags
// against a lowercase skill set. Jobs without tags score in [70,89]; jobs with
// tags score in [60,99].
func (s *Scorer) Score(tags, skills []string) (int, []string) {
	matched := Matched(tags, skills)

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(tags) == 0 {
		return 70 + s.rng.Intn(20), matched
	}

	ratio := float64(len(matched)) / float64(len(tags))
	raw := int(math.Round(ratio*40 + s.rng.Float64()*25 + 35))
	if raw < minScore {
		return minScore, matched
	}
	if raw > maxScore {
		return maxScore, matched
	}
	return raw, matched
}

// FallbackScore returns a score in [80,94] for hand-authored fallback jobs.
func (s *Scorer) FallbackScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return 80 + s.rng.Intn(15)
}

// Matched returns the tags whose lowercased form contains any skill-set token
// as a substring. Order follows the input tags.
func Matched(tags, skills []string) []string {
	var matched []string
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for _, skill := range skills {
			if strings.Contains(lower, skill) {
				matched = append(matched, tag)
				break
			}
		}
	}
	return matched
}
