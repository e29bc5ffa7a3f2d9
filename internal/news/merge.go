// Package news merges article lists from multiple providers into one
// deduplicated, recency-ordered sequence.
package news

import (
	"sort"
	"strings"

	"github.com/fintellect/fintellect/internal/provider"
	"github.com/fintellect/fintellect/pkg/models"
)

// DefaultMaxArticles caps merged output so downstream consumers stay
// predictable regardless of how chatty the providers were.
const DefaultMaxArticles = 25

// minKeyLength drops ultra-short titles as noise before dedup.
const minKeyLength = 10

// IdentityKey returns the dedup key for an article title: lowercased,
// trimmed, with internal whitespace collapsed. Two articles with the same
// key are the same story regardless of source or URL. Returns "" for
// titles too short to be a meaningful identity.
func IdentityKey(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	key = strings.Join(strings.Fields(key), " ")
	if len(key) < minKeyLength {
		return ""
	}
	return key
}

// Merge concatenates the articles of tier-ordered results, drops
// duplicates by identity key (first occurrence wins, so the
// higher-priority provider's version of a story is retained), and sorts
// by publication date, newest first, with undated articles last.
// max <= 0 applies DefaultMaxArticles.
func Merge(results []*provider.Result, max int) []models.Article {
	if max <= 0 {
		max = DefaultMaxArticles
	}

	seen := make(map[string]bool)
	var merged []models.Article
	for _, r := range results {
		if r == nil {
			continue
		}
		for _, a := range r.Articles {
			key := IdentityKey(a.Title)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			merged = append(merged, a)
		}
	}

	// Stable sort keeps tier order among equal (notably zero) timestamps.
	sort.SliceStable(merged, func(i, j int) bool {
		ti, tj := merged[i].PublishedAt, merged[j].PublishedAt
		if ti.IsZero() {
			return false
		}
		if tj.IsZero() {
			return true
		}
		return ti.After(tj)
	})

	if len(merged) > max {
		merged = merged[:max]
	}
	return merged
}
