package stats

import (
	"slices"

	"github.com/ryan-gillies/commish/model"
)

// FilterOptouts returns the entries whose roster, as reported by rosterOf, is
// not opted out. The input is never modified and the surviving entries keep
// their order.
func FilterOptouts[T any](entries []T, optouts []int, rosterOf func(T) int) []T {
	results := make([]T, 0, len(entries))
	for _, e := range entries {
		if slices.Contains(optouts, rosterOf(e)) {
			continue
		}
		results = append(results, e)
	}
	return results
}

func teamScoreRoster(t model.TeamScore) int     { return t.RosterID }
func playerScoreRoster(p model.PlayerScore) int { return p.RosterID }
func teamStatsRoster(t model.TeamStats) int     { return t.RosterID }
func h2hWinner(h model.HeadToHead) int          { return h.Winner }
func h2hLoser(h model.HeadToHead) int           { return h.Loser }

// inWeek keeps the entries for a single week, or everything when week is 0.
func inWeek[T any](entries []T, week int, weekOf func(T) int) []T {
	if week == 0 {
		return slices.Clone(entries)
	}
	results := make([]T, 0, len(entries))
	for _, e := range entries {
		if weekOf(e) == week {
			results = append(results, e)
		}
	}
	return results
}

func top[T any](entries []T, n int) []T {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}
