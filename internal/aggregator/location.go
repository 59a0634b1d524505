package aggregator

import (
	"strings"

	"matchpoint-api/internal/config"
)

// IsUSLocation reports whether a free-text location qualifies as US-eligible.
// The heuristic is substring-based and case-insensitive with no exclusion
// list: worldwide/remote-friendly terms are assumed eligible, then explicit
// country mentions, then a two-letter state abbreviation after the last comma,
// then major US city names.
func IsUSLocation(location string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))

	for _, term := range config.WorldwideTerms {
		if strings.Contains(loc, term) {
			return true
		}
	}
	if strings.Contains(loc, "united states") || strings.Contains(loc, "usa") {
		return true
	}

	// "San Francisco, CA" or "Austin, TX 78701" — first token after the last
	// comma, upper-cased, checked against the state abbreviation set.
	if idx := strings.LastIndex(location, ","); idx >= 0 {
		afterComma := strings.TrimSpace(location[idx+1:])
		if fields := strings.Fields(afterComma); len(fields) > 0 {
			if config.USStates[strings.ToUpper(fields[0])] {
				return true
			}
		}
	}

	for _, city := range config.USCities {
		if strings.Contains(loc, city) {
			return true
		}
	}
	return false
}
