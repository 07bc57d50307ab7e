// Package stats derives season statistics from raw league data and ranks
// rosters and players for the pools.
package stats

import (
	"maps"
	"math"
	"slices"

	"github.com/ryan-gillies/commish/model"
)

// Input is the raw league data a Snapshot is built from.
type Input struct {
	// Last week to include. 0 includes every week in Matchups.
	Week     int
	Matchups map[int][]model.MatchupEntry
	Rosters  []model.Roster
	Players  model.PlayerDirectory
	Bracket  []model.BracketMatch
}

// Snapshot holds the derived views for one season at one point in time. It
// is never modified after NewSnapshot returns.
type Snapshot struct {
	Week         int
	TeamScores   []model.TeamScore
	HeadToHead   []model.HeadToHead
	PlayerScores []model.PlayerScore
	TeamStats    []model.TeamStats
	Bracket      []model.BracketMatch
}

func NewSnapshot(in Input) *Snapshot {
	matchups := make(map[int][]model.MatchupEntry, len(in.Matchups))
	week := 0
	for w, entries := range in.Matchups {
		if in.Week > 0 && w > in.Week {
			continue
		}
		matchups[w] = entries
		week = max(week, w)
	}
	if in.Week > 0 {
		week = in.Week
	}

	return &Snapshot{
		Week:         week,
		TeamScores:   TeamScores(matchups),
		HeadToHead:   HeadToHeads(matchups),
		PlayerScores: PlayerScores(matchups, in.Players),
		TeamStats:    TeamStatsFromRosters(in.Rosters),
		Bracket:      slices.Clone(in.Bracket),
	}
}

// HasWeek reports whether any matchup data exists for the week.
func (s *Snapshot) HasWeek(week int) bool {
	return slices.ContainsFunc(s.TeamScores, func(t model.TeamScore) bool {
		return t.Week == week
	})
}

func sortedWeeks(matchups map[int][]model.MatchupEntry) []int {
	return slices.Sorted(maps.Keys(matchups))
}

// TeamScores flattens the matchups into one score per roster per week,
// ordered by week and then by the order the platform returned them.
func TeamScores(matchups map[int][]model.MatchupEntry) []model.TeamScore {
	results := make([]model.TeamScore, 0, len(matchups)*12)
	for _, w := range sortedWeeks(matchups) {
		for _, m := range matchups[w] {
			results = append(results, model.TeamScore{
				Week:      w,
				MatchupID: m.MatchupID,
				RosterID:  m.RosterID,
				Points:    m.Points,
			})
		}
	}
	return results
}

// HeadToHeads pairs up the entries of each week that share a matchup id.
// The entry with the most points wins and the entry with the fewest loses.
// When points are equal the lower roster id is the winner. Entries without a
// matchup id (byes) and matchups missing an opponent are skipped.
func HeadToHeads(matchups map[int][]model.MatchupEntry) []model.HeadToHead {
	results := make([]model.HeadToHead, 0, len(matchups)*6)
	for _, w := range sortedWeeks(matchups) {
		groups := make(map[int][]model.MatchupEntry)
		for _, m := range matchups[w] {
			if m.MatchupID == 0 {
				continue
			}
			groups[m.MatchupID] = append(groups[m.MatchupID], m)
		}

		for _, id := range slices.Sorted(maps.Keys(groups)) {
			g := slices.Clone(groups[id])
			if len(g) < 2 {
				continue
			}
			slices.SortStableFunc(g, func(a, b model.MatchupEntry) int {
				if a.Points != b.Points {
					if a.Points > b.Points {
						return -1
					}
					return 1
				}
				return a.RosterID - b.RosterID
			})
			winner, loser := g[0], g[len(g)-1]
			results = append(results, model.HeadToHead{
				Week:         w,
				MatchupID:    id,
				Winner:       winner.RosterID,
				Loser:        loser.RosterID,
				WinnerPoints: winner.Points,
				LoserPoints:  loser.Points,
				Margin:       round2(winner.Points - loser.Points),
			})
		}
	}
	return results
}

// PlayerScores returns a score for every starter of every matchup entry.
// Empty starting slots are reported by sleeper as "0" and have no points, so
// they are dropped.
func PlayerScores(matchups map[int][]model.MatchupEntry, players model.PlayerDirectory) []model.PlayerScore {
	results := make([]model.PlayerScore, 0, len(matchups)*12*9)
	for _, w := range sortedWeeks(matchups) {
		for _, m := range matchups[w] {
			for _, id := range m.Starters {
				score, found := m.PlayersPoints[id]
				if !found {
					continue
				}
				name, pos := players.Lookup(id)
				results = append(results, model.PlayerScore{
					PlayerID: id,
					Week:     w,
					Score:    score,
					RosterID: m.RosterID,
					Position: pos,
					Name:     name,
				})
			}
		}
	}
	return results
}

// TeamStatsFromRosters converts the roster settings into season aggregates,
// ordered by roster id.
func TeamStatsFromRosters(rosters []model.Roster) []model.TeamStats {
	results := make([]model.TeamStats, 0, len(rosters))
	for _, r := range rosters {
		results = append(results, model.TeamStats{
			RosterID:      r.RosterID,
			Wins:          r.Wins,
			Losses:        r.Losses,
			Ties:          r.Ties,
			PointsFor:     round2(float64(r.PointsFor) + float64(r.PointsForDecimal)/100),
			PointsAgainst: round2(float64(r.PointsAgainst) + float64(r.PointsAgainstDecimal)/100),
		})
	}
	slices.SortFunc(results, func(a, b model.TeamStats) int {
		return a.RosterID - b.RosterID
	})
	return results
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
