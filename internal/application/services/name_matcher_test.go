package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urgences-proches/backend/internal/domain/entities"
)

func TestNameMatcher_Matches(t *testing.T) {
	m := NewNameMatcher(StrategyFirst)

	assert.True(t, m.Matches("Hôpital Necker", "HOPITAL NECKER ENFANTS MALADES"))
	assert.True(t, m.Matches("HOPITAL NECKER ENFANTS MALADES", "Hôpital Necker"))
	assert.True(t, m.Matches("Pitié-Salpêtrière", "pitiesalpetriere"))
	assert.False(t, m.Matches("Bichat", "Necker"))
	assert.False(t, m.Matches("", "Necker"))
	assert.False(t, m.Matches("!!!", "Necker"))
}

func TestNameMatcher_MatchIndexFirst(t *testing.T) {
	m := NewNameMatcher(StrategyFirst)
	names := []string{"Hôpital Bichat", "Hôpital Necker", "Necker"}

	assert.Equal(t, 1, m.MatchIndex("HOPITAL NECKER ENFANTS MALADES", names))
	assert.Equal(t, -1, m.MatchIndex("Lariboisière", names))
	assert.Equal(t, -1, m.MatchIndex("", names))
	assert.Equal(t, -1, m.MatchIndex("Necker", nil))
}

func TestNameMatcher_EmptyCandidateNeverMatches(t *testing.T) {
	m := NewNameMatcher(StrategyFirst)

	assert.Equal(t, 1, m.MatchIndex("Necker", []string{"", "Necker"}))
	assert.Equal(t, 1, m.MatchIndex("Necker", []string{"---", "Necker"}))
}

func TestNameMatcher_MatchIndexLongest(t *testing.T) {
	m := NewNameMatcher(StrategyLongest)
	names := []string{"Hôpital", "Hôpital Necker", "Necker Enfants Malades"}

	// "hopital" and "necker enfants malades" both qualify, the latter overlaps more
	assert.Equal(t, 2, m.MatchIndex("Hôpital Necker Enfants Malades", names))

	// equal overlap: smaller edit distance wins, then input order
	assert.Equal(t, 1, m.MatchIndex("necker", []string{"neckers", "necker"}))
	assert.Equal(t, 0, m.MatchIndex("ab", []string{"abc", "xab"}))
}

func TestNameMatcher_LongestIsOrderIndependent(t *testing.T) {
	m := NewNameMatcher(StrategyLongest)
	query := "Hôpital Necker Enfants Malades"

	a := []string{"Hôpital", "Necker Enfants Malades"}
	b := []string{"Necker Enfants Malades", "Hôpital"}
	assert.Equal(t, a[m.MatchIndex(query, a)], b[m.MatchIndex(query, b)])
}

func TestParseMatchStrategy(t *testing.T) {
	assert.Equal(t, StrategyLongest, ParseMatchStrategy("longest"))
	assert.Equal(t, StrategyFirst, ParseMatchStrategy("first"))
	assert.Equal(t, StrategyFirst, ParseMatchStrategy("other"))
	assert.Equal(t, StrategyFirst, NewNameMatcher("other").Strategy())
}

func TestFindMatch(t *testing.T) {
	m := NewNameMatcher(StrategyFirst)
	records := []entities.SupplementalRecord{
		{Name: "Hôpital Bichat", PlaceID: "bichat-id"},
		{Name: "Hôpital Necker", PlaceID: "necker-id"},
	}
	nameOf := func(r entities.SupplementalRecord) string { return r.Name }

	rec, idx, ok := FindMatch(m, "NECKER", records, nameOf)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "necker-id", rec.PlaceID)

	_, idx, ok = FindMatch(m, "Cochin", records, nameOf)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
}
