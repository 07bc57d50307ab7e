package stats

import (
	"cmp"
	"slices"

	"github.com/ryan-gillies/commish/model"
)

// The ranking functions below sort only on their named key with a stable
// sort, so entries with equal keys keep the order of the snapshot. A week of
// 0 means every week to date and a topN <= 0 returns every entry.

func HighTeamScore(s *Snapshot, week int, optouts []int, topN int) []model.TeamScore {
	scores := inWeek(s.TeamScores, week, func(t model.TeamScore) int { return t.Week })
	scores = FilterOptouts(scores, optouts, teamScoreRoster)
	slices.SortStableFunc(scores, func(a, b model.TeamScore) int {
		return cmp.Compare(b.Points, a.Points)
	})
	return top(scores, topN)
}

// HighScoringMargin ranks matchup winners by how much they won by.
func HighScoringMargin(s *Snapshot, week int, optouts []int, topN int) []model.HeadToHead {
	h2h := FilterOptouts(weekHeadToHead(s, week), optouts, h2hWinner)
	slices.SortStableFunc(h2h, func(a, b model.HeadToHead) int {
		return cmp.Compare(b.Margin, a.Margin)
	})
	return top(h2h, topN)
}

// SmallestMarginOfLoss ranks matchup losers by how little they lost by.
func SmallestMarginOfLoss(s *Snapshot, week int, optouts []int, topN int) []model.HeadToHead {
	h2h := FilterOptouts(weekHeadToHead(s, week), optouts, h2hLoser)
	slices.SortStableFunc(h2h, func(a, b model.HeadToHead) int {
		return cmp.Compare(a.Margin, b.Margin)
	})
	return top(h2h, topN)
}

// HighScoreAgainst ranks matchup losers by the points their opponent scored.
func HighScoreAgainst(s *Snapshot, week int, optouts []int, topN int) []model.HeadToHead {
	h2h := FilterOptouts(weekHeadToHead(s, week), optouts, h2hLoser)
	slices.SortStableFunc(h2h, func(a, b model.HeadToHead) int {
		return cmp.Compare(b.WinnerPoints, a.WinnerPoints)
	})
	return top(h2h, topN)
}

// HeadToHeadWinners returns every matchup with an eligible winner, in week
// and matchup order.
func HeadToHeadWinners(s *Snapshot, week int, optouts []int) []model.HeadToHead {
	return FilterOptouts(weekHeadToHead(s, week), optouts, h2hWinner)
}

func HighPlayerScore(s *Snapshot, week int, optouts []int, topN int) []model.PlayerScore {
	scores := inWeek(s.PlayerScores, week, func(p model.PlayerScore) int { return p.Week })
	scores = FilterOptouts(scores, optouts, playerScoreRoster)
	slices.SortStableFunc(scores, func(a, b model.PlayerScore) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return top(scores, topN)
}

// RegularSeasonTopScoringPlayer sums every starting score of each player.
// The roster, position and name come from the player's first eligible score.
func RegularSeasonTopScoringPlayer(s *Snapshot, optouts []int, topN int) []model.PlayerTotal {
	scores := FilterOptouts(s.PlayerScores, optouts, playerScoreRoster)

	totals := make([]model.PlayerTotal, 0, 256)
	index := make(map[string]int)
	for _, p := range scores {
		i, found := index[p.PlayerID]
		if !found {
			i = len(totals)
			index[p.PlayerID] = i
			totals = append(totals, model.PlayerTotal{
				PlayerID: p.PlayerID,
				RosterID: p.RosterID,
				Position: p.Position,
				Name:     p.Name,
			})
		}
		totals[i].TotalScore += p.Score
	}
	for i := range totals {
		totals[i].TotalScore = round2(totals[i].TotalScore)
	}

	slices.SortStableFunc(totals, func(a, b model.PlayerTotal) int {
		return cmp.Compare(b.TotalScore, a.TotalScore)
	})
	return top(totals, topN)
}

// RegularSeasonFirstPlace orders rosters by wins, then points for.
func RegularSeasonFirstPlace(s *Snapshot, optouts []int, topN int) []model.TeamStats {
	teams := FilterOptouts(s.TeamStats, optouts, teamStatsRoster)
	slices.SortStableFunc(teams, func(a, b model.TeamStats) int {
		return cmp.Or(
			cmp.Compare(b.Wins, a.Wins),
			cmp.Compare(b.PointsFor, a.PointsFor),
		)
	})
	return top(teams, topN)
}

func RegularSeasonMostPoints(s *Snapshot, optouts []int, topN int) []model.TeamStats {
	teams := FilterOptouts(s.TeamStats, optouts, teamStatsRoster)
	slices.SortStableFunc(teams, func(a, b model.TeamStats) int {
		return cmp.Compare(b.PointsFor, a.PointsFor)
	})
	return top(teams, topN)
}

func RegularSeasonMostPointsAgainst(s *Snapshot, optouts []int, topN int) []model.TeamStats {
	teams := FilterOptouts(s.TeamStats, optouts, teamStatsRoster)
	slices.SortStableFunc(teams, func(a, b model.TeamStats) int {
		return cmp.Compare(b.PointsAgainst, a.PointsAgainst)
	})
	return top(teams, topN)
}

// BracketPlacement finds the playoff match deciding the given placement and
// returns its winner, or its loser when loser is true. The second return
// value is false until that match has been played.
func BracketPlacement(s *Snapshot, placement int, loser bool) (model.BracketMatch, int, bool) {
	i := slices.IndexFunc(s.Bracket, func(m model.BracketMatch) bool {
		return m.Placement == placement
	})
	if i < 0 {
		return model.BracketMatch{}, 0, false
	}
	m := s.Bracket[i]
	if m.Winner == 0 {
		return m, 0, false
	}
	if loser {
		return m, m.Loser, m.Loser != 0
	}
	return m, m.Winner, true
}

func weekHeadToHead(s *Snapshot, week int) []model.HeadToHead {
	return inWeek(s.HeadToHead, week, func(h model.HeadToHead) int { return h.Week })
}
