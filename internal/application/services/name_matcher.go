package services

import (
	"github.com/agnivade/levenshtein"
	"github.com/urgences-proches/backend/pkg/utils"
)

// MatchStrategy selects a candidate when several names qualify
type MatchStrategy string

const (
	// StrategyFirst keeps the first qualifying candidate in input order
	StrategyFirst MatchStrategy = "first"
	// StrategyLongest keeps the candidate with the longest overlap, then the
	// smallest edit distance, then input order
	StrategyLongest MatchStrategy = "longest"
)

// ParseMatchStrategy returns the strategy named by value, StrategyFirst when unknown
func ParseMatchStrategy(value string) MatchStrategy {
	if MatchStrategy(value) == StrategyLongest {
		return StrategyLongest
	}
	return StrategyFirst
}

// NameMatcher pairs institution names that differ in case, accents, punctuation
// or by one name containing the other.
type NameMatcher struct {
	strategy MatchStrategy
}

// NewNameMatcher creates a matcher using strategy
func NewNameMatcher(strategy MatchStrategy) *NameMatcher {
	if strategy != StrategyLongest {
		strategy = StrategyFirst
	}
	return &NameMatcher{strategy: strategy}
}

// Strategy returns the selection strategy in use
func (m *NameMatcher) Strategy() MatchStrategy {
	return m.strategy
}

// Matches reports whether two names match after normalization
func (m *NameMatcher) Matches(a, b string) bool {
	return utils.ContainsEither(utils.NormalizeName(a), utils.NormalizeName(b))
}

// MatchIndex returns the index of the candidate matching query, or -1
func (m *NameMatcher) MatchIndex(query string, names []string) int {
	q := utils.NormalizeName(query)
	if q == "" {
		return -1
	}

	best := -1
	bestOverlap, bestDistance := 0, 0
	for i, name := range names {
		c := utils.NormalizeName(name)
		if !utils.ContainsEither(q, c) {
			continue
		}
		if m.strategy == StrategyFirst {
			return i
		}

		overlap := len(c)
		if len(q) < overlap {
			overlap = len(q)
		}
		dist := levenshtein.ComputeDistance(q, c)
		if best == -1 || overlap > bestOverlap || (overlap == bestOverlap && dist < bestDistance) {
			best, bestOverlap, bestDistance = i, overlap, dist
		}
	}
	return best
}

// FindMatch returns the item whose name matches query under m's strategy.
// ok is false when nothing matches.
func FindMatch[T any](m *NameMatcher, query string, items []T, nameOf func(T) string) (match T, index int, ok bool) {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = nameOf(item)
	}
	index = m.MatchIndex(query, names)
	if index < 0 {
		var zero T
		return zero, -1, false
	}
	return items[index], index, true
}
