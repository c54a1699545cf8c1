// Package filter implements the catalog query: a pure, stateless match of a
// free-text query against movie titles and genres.
package filter

import (
	"slices"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/flicks/internal/domain"
)

// Normalize trims surrounding whitespace and lowercases s
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Matches reports whether a movie satisfies an already-normalized query.
// The query must be a substring of the title or equal one of the genres.
func Matches(m domain.Movie, normalizedQuery string) bool {
	if strings.Contains(Normalize(m.Title), normalizedQuery) {
		return true
	}
	for _, g := range m.Genres {
		if Normalize(g) == normalizedQuery {
			return true
		}
	}
	return false
}

// Movies returns the catalog entries matching query, preserving catalog order.
// An empty query matches everything. No matches yields an empty, non-nil slice.
func Movies(catalog []domain.Movie, query string) []domain.Movie {
	q := Normalize(query)

	results := make([]domain.Movie, 0, len(catalog))
	for _, m := range catalog {
		if Matches(m, q) {
			results = append(results, m)
		}
	}
	return results
}

// Suggest returns up to limit catalog titles close to query, best first.
// It is meant for the empty-result view and never changes what Movies returns.
func Suggest(catalog []domain.Movie, query string, limit int) []string {
	q := Normalize(query)
	if q == "" || limit <= 0 {
		return nil
	}

	type candidate struct {
		title    string
		distance int
	}

	maxDistance := len(q) / 3
	if maxDistance < 2 {
		maxDistance = 2
	}

	var candidates []candidate
	for _, m := range catalog {
		title := Normalize(m.Title)

		distance := fuzzy.LevenshteinDistance(q, title)
		for _, g := range m.Genres {
			if d := fuzzy.LevenshteinDistance(q, Normalize(g)); d < distance {
				distance = d
			}
		}

		// Query characters appearing in order inside the title count as close
		// even when the edit distance is large ("dne" -> "dune part two")
		if distance > maxDistance && !fuzzy.MatchNormalizedFold(q, title) {
			continue
		}
		candidates = append(candidates, candidate{title: m.Title, distance: distance})
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return a.distance - b.distance
	})

	seen := make(map[string]bool)
	var titles []string
	for _, c := range candidates {
		if seen[c.title] {
			continue
		}
		seen[c.title] = true
		titles = append(titles, c.title)
		if len(titles) == limit {
			break
		}
	}
	return titles
}
