package stats

import (
	"errors"
	"fmt"

	"github.com/ryan-gillies/commish/model"
)

var ErrUnsupportedRule = errors.New("unsupported ranking rule")

// Rule names a ranking function so pools can refer to it by value.
type Rule string

const (
	RuleHighTeamScore        Rule = "high_team_score"
	RuleHighScoringMargin    Rule = "high_scoring_margin"
	RuleSmallestMarginOfLoss Rule = "smallest_margin_of_loss"
	RuleHighScoreAgainst     Rule = "high_score_against"
	RuleHighPlayerScore      Rule = "high_player_score"
	RuleHeadToHeadWinners    Rule = "head_to_head_winners"
	RuleFirstPlace           Rule = "first_place"
	RuleMostPoints           Rule = "most_points"
	RuleMostPointsAgainst    Rule = "most_points_against"
	RuleTopScoringPlayer     Rule = "top_scoring_player"
	RuleChampion             Rule = "champion"
	RuleRunnerUp             Rule = "runner_up"
	RuleThirdPlace           Rule = "third_place"
	// RuleManual pools have their winner set by the commissioner.
	RuleManual Rule = "manual"
)

// Rank runs the rule against the snapshot and converts the result into
// standings numbered from 1.
func Rank(rule Rule, s *Snapshot, week int, optouts []int, topN int) ([]model.Standing, error) {
	var standings []model.Standing

	switch rule {
	case RuleHighTeamScore:
		standings = teamScoreStandings(HighTeamScore(s, week, optouts, topN))
	case RuleHighScoringMargin:
		standings = h2hStandings(HighScoringMargin(s, week, optouts, topN), false,
			func(h model.HeadToHead) float64 { return h.Margin })
	case RuleSmallestMarginOfLoss:
		standings = h2hStandings(SmallestMarginOfLoss(s, week, optouts, topN), true,
			func(h model.HeadToHead) float64 { return h.Margin })
	case RuleHighScoreAgainst:
		standings = h2hStandings(HighScoreAgainst(s, week, optouts, topN), true,
			func(h model.HeadToHead) float64 { return h.WinnerPoints })
	case RuleHeadToHeadWinners:
		standings = h2hStandings(top(HeadToHeadWinners(s, week, optouts), topN), false,
			func(h model.HeadToHead) float64 { return h.WinnerPoints })
	case RuleHighPlayerScore:
		standings = playerScoreStandings(HighPlayerScore(s, week, optouts, topN))
	case RuleTopScoringPlayer:
		standings = playerTotalStandings(RegularSeasonTopScoringPlayer(s, optouts, topN))
	case RuleFirstPlace:
		standings = teamStatsStandings(RegularSeasonFirstPlace(s, optouts, topN),
			func(t model.TeamStats) float64 { return float64(t.Wins) })
	case RuleMostPoints:
		standings = teamStatsStandings(RegularSeasonMostPoints(s, optouts, topN),
			func(t model.TeamStats) float64 { return t.PointsFor })
	case RuleMostPointsAgainst:
		standings = teamStatsStandings(RegularSeasonMostPointsAgainst(s, optouts, topN),
			func(t model.TeamStats) float64 { return t.PointsAgainst })
	case RuleChampion:
		standings = bracketStandings(s, 1, false)
	case RuleRunnerUp:
		standings = bracketStandings(s, 1, true)
	case RuleThirdPlace:
		standings = bracketStandings(s, 3, false)
	default:
		return nil, fmt.Errorf("error ranking %q: %w", rule, ErrUnsupportedRule)
	}

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings, nil
}

func teamScoreStandings(scores []model.TeamScore) []model.Standing {
	results := make([]model.Standing, 0, len(scores))
	for _, t := range scores {
		results = append(results, model.Standing{
			RosterID:  t.RosterID,
			Week:      t.Week,
			MatchupID: t.MatchupID,
			Value:     t.Points,
		})
	}
	return results
}

// h2hStandings reports on the loser of each matchup when loser is true and
// on the winner otherwise.
func h2hStandings(h2h []model.HeadToHead, loser bool, value func(model.HeadToHead) float64) []model.Standing {
	results := make([]model.Standing, 0, len(h2h))
	for _, h := range h2h {
		roster, opponent := h.Winner, h.Loser
		if loser {
			roster, opponent = h.Loser, h.Winner
		}
		results = append(results, model.Standing{
			RosterID:  roster,
			Week:      h.Week,
			MatchupID: h.MatchupID,
			Opponent:  opponent,
			Value:     value(h),
		})
	}
	return results
}

func playerScoreStandings(scores []model.PlayerScore) []model.Standing {
	results := make([]model.Standing, 0, len(scores))
	for _, p := range scores {
		results = append(results, model.Standing{
			RosterID:   p.RosterID,
			Week:       p.Week,
			PlayerID:   p.PlayerID,
			PlayerName: p.Name,
			Position:   p.Position,
			Value:      p.Score,
		})
	}
	return results
}

func playerTotalStandings(totals []model.PlayerTotal) []model.Standing {
	results := make([]model.Standing, 0, len(totals))
	for _, p := range totals {
		results = append(results, model.Standing{
			RosterID:   p.RosterID,
			PlayerID:   p.PlayerID,
			PlayerName: p.Name,
			Position:   p.Position,
			Value:      p.TotalScore,
		})
	}
	return results
}

func teamStatsStandings(teams []model.TeamStats, value func(model.TeamStats) float64) []model.Standing {
	results := make([]model.Standing, 0, len(teams))
	for _, t := range teams {
		results = append(results, model.Standing{
			RosterID:      t.RosterID,
			Value:         value(t),
			Wins:          t.Wins,
			Losses:        t.Losses,
			Ties:          t.Ties,
			PointsFor:     t.PointsFor,
			PointsAgainst: t.PointsAgainst,
		})
	}
	return results
}

func bracketStandings(s *Snapshot, placement int, loser bool) []model.Standing {
	m, roster, decided := BracketPlacement(s, placement, loser)
	if !decided {
		return []model.Standing{}
	}
	opponent := m.Loser
	if loser {
		opponent = m.Winner
	}
	return []model.Standing{{
		RosterID:  roster,
		MatchupID: m.MatchID,
		Opponent:  opponent,
		Value:     float64(placement),
	}}
}
