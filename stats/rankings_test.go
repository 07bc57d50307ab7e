package stats

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"github.com/ryan-gillies/commish/model"
)

func TestHighTeamScore(t *testing.T) {
	s := testSnapshot(3)

	tests := map[string]struct {
		week     int
		optouts  []int
		topN     int
		exRoster []int
		exPoints []float64
	}{
		"single week keeps tie order": {week: 3, exRoster: []int{1, 4, 3, 2}, exPoints: []float64{110.4, 100, 100, 98.2}},
		"all weeks":                   {week: 0, topN: 3, exRoster: []int{2, 1, 3}, exPoints: []float64{120.25, 110.4, 101}},
		"optouts":                     {week: 0, optouts: []int{2}, topN: 2, exRoster: []int{1, 3}, exPoints: []float64{110.4, 101}},
		"unplayed week":               {week: 9, exRoster: []int{}, exPoints: []float64{}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			scores := HighTeamScore(s, tc.week, tc.optouts, tc.topN)
			rosters := make([]int, 0, len(scores))
			points := make([]float64, 0, len(scores))
			for _, sc := range scores {
				rosters = append(rosters, sc.RosterID)
				points = append(points, sc.Points)
			}
			if !reflect.DeepEqual(tc.exRoster, rosters) {
				t.Errorf("expected rosters %v, got %v", tc.exRoster, rosters)
			}
			if !reflect.DeepEqual(tc.exPoints, points) {
				t.Errorf("expected points %v, got %v", tc.exPoints, points)
			}
		})
	}
}

func TestHeadToHeadRankings(t *testing.T) {
	s := testSnapshot(3)

	margin := HighScoringMargin(s, 0, nil, 0)
	if len(margin) != 4 || margin[0].Winner != 2 || margin[0].Margin != 29.75 {
		t.Errorf("unexpected high scoring margin: %+v", margin)
	}
	margin = HighScoringMargin(s, 0, []int{2}, 1)
	if len(margin) != 1 || margin[0].Winner != 1 || margin[0].Margin != 12.2 {
		t.Errorf("expected roster 2 to be filtered as a winner, got: %+v", margin)
	}

	smallest := SmallestMarginOfLoss(s, 0, nil, 1)
	if len(smallest) != 1 || smallest[0].Loser != 4 || smallest[0].Week != 3 {
		t.Errorf("unexpected smallest margin: %+v", smallest)
	}
	smallest = SmallestMarginOfLoss(s, 0, []int{4}, 1)
	if len(smallest) != 1 || smallest[0].Loser != 2 || smallest[0].Margin != 12.2 {
		t.Errorf("expected roster 4 to be filtered as a loser, got: %+v", smallest)
	}

	against := HighScoreAgainst(s, 0, []int{1}, 0)
	if len(against) != 3 || against[0].Loser != 2 || against[0].WinnerPoints != 110.4 {
		t.Errorf("unexpected high score against: %+v", against)
	}

	winners := HeadToHeadWinners(s, 2, []int{3})
	if len(winners) != 1 || winners[0].Winner != 2 {
		t.Errorf("unexpected head to head winners: %+v", winners)
	}
}

func TestHighPlayerScore(t *testing.T) {
	s := testSnapshot(3)

	scores := HighPlayerScore(s, 0, nil, 2)
	if len(scores) != 2 || scores[0].PlayerID != "4046" || scores[1].PlayerID != "9509" {
		t.Errorf("unexpected player scores: %+v", scores)
	}

	scores = HighPlayerScore(s, 3, []int{1}, 0)
	ids := make([]string, 0, len(scores))
	for _, p := range scores {
		ids = append(ids, p.PlayerID)
	}
	if !reflect.DeepEqual([]string{"9509", "KC"}, ids) {
		t.Errorf("unexpected player ids: %v", ids)
	}
}

func TestRegularSeasonTopScoringPlayer(t *testing.T) {
	s := testSnapshot(3)

	expected := []model.PlayerTotal{
		{PlayerID: "4046", TotalScore: 56, RosterID: 1, Position: model.POS_QB, Name: "Patrick Mahomes"},
		{PlayerID: "9509", TotalScore: 43.2, RosterID: 2, Position: model.POS_RB, Name: "Bijan Robinson"},
		{PlayerID: "6794", TotalScore: 30.1, RosterID: 1, Position: model.POS_WR, Name: "Justin Jefferson"},
		{PlayerID: "KC", TotalScore: 8, RosterID: 2, Position: model.POS_DEF, Name: "Kansas City Chiefs"},
	}
	totals := RegularSeasonTopScoringPlayer(s, nil, 0)
	if !reflect.DeepEqual(expected, totals) {
		t.Errorf("totals not as expected\nexpected: %+v\ngot:      %+v", expected, totals)
	}

	totals = RegularSeasonTopScoringPlayer(s, []int{1}, 1)
	if len(totals) != 1 || totals[0].PlayerID != "9509" {
		t.Errorf("unexpected totals with optouts: %+v", totals)
	}
}

func TestRegularSeasonRankings(t *testing.T) {
	s := testSnapshot(3)

	rosters := func(teams []model.TeamStats) []int {
		ids := make([]int, 0, len(teams))
		for _, tm := range teams {
			ids = append(ids, tm.RosterID)
		}
		return ids
	}

	tests := map[string]struct {
		rank     func(*Snapshot, []int, int) []model.TeamStats
		optouts  []int
		exRoster []int
	}{
		"first place":            {rank: RegularSeasonFirstPlace, exRoster: []int{3, 1, 2, 4}},
		"first place optouts":    {rank: RegularSeasonFirstPlace, optouts: []int{3}, exRoster: []int{1, 2, 4}},
		"most points":            {rank: RegularSeasonMostPoints, exRoster: []int{3, 2, 1, 4}},
		"most points against":    {rank: RegularSeasonMostPointsAgainst, exRoster: []int{4, 1, 3, 2}},
		"most points against oo": {rank: RegularSeasonMostPointsAgainst, optouts: []int{4, 1}, exRoster: []int{3, 2}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := rosters(tc.rank(s, tc.optouts, 0))
			if !reflect.DeepEqual(tc.exRoster, got) {
				t.Errorf("expected %v, got %v", tc.exRoster, got)
			}
		})
	}
}

func TestRankingIndependentOfInputOrder(t *testing.T) {
	s := testSnapshot(3)
	reversed := *s
	reversed.TeamStats = slices.Clone(s.TeamStats)
	slices.Reverse(reversed.TeamStats)

	a := RegularSeasonMostPoints(s, nil, 0)
	b := RegularSeasonMostPoints(&reversed, nil, 0)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected the same ranking for reordered input\na: %+v\nb: %+v", a, b)
	}

	if !reflect.DeepEqual(HighTeamScore(s, 0, nil, 0), HighTeamScore(s, 0, nil, 0)) {
		t.Errorf("expected repeated rankings to be equal")
	}
}

func TestBracketPlacement(t *testing.T) {
	s := testSnapshot(3)

	if _, roster, ok := BracketPlacement(s, 1, false); !ok || roster != 3 {
		t.Errorf("expected roster 3 to be champion, got %d (%v)", roster, ok)
	}
	if _, roster, ok := BracketPlacement(s, 1, true); !ok || roster != 1 {
		t.Errorf("expected roster 1 to be runner up, got %d (%v)", roster, ok)
	}
	if _, _, ok := BracketPlacement(s, 3, false); ok {
		t.Errorf("expected third place to be undecided")
	}
	if _, _, ok := BracketPlacement(s, 5, false); ok {
		t.Errorf("expected unknown placement to be undecided")
	}
}

func TestFilterOptouts(t *testing.T) {
	s := testSnapshot(3)
	original := slices.Clone(s.TeamScores)

	once := FilterOptouts(s.TeamScores, []int{1, 3}, teamScoreRoster)
	twice := FilterOptouts(once, []int{1, 3}, teamScoreRoster)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("expected filtering to be idempotent")
	}
	if !reflect.DeepEqual(original, s.TeamScores) {
		t.Errorf("expected the input to be unchanged")
	}
	for _, ts := range once {
		if ts.RosterID == 1 || ts.RosterID == 3 {
			t.Errorf("found opted out roster %d", ts.RosterID)
		}
	}
	if len(once) != 4 || once[0].RosterID != 2 || once[1].RosterID != 4 {
		t.Errorf("expected order to be preserved, got: %+v", once)
	}

	if got := FilterOptouts(s.TeamScores, nil, teamScoreRoster); !reflect.DeepEqual(original, got) {
		t.Errorf("expected no change without optouts")
	}
}

func TestRank(t *testing.T) {
	s := testSnapshot(3)

	tests := map[string]struct {
		rule     Rule
		week     int
		topN     int
		expected []model.Standing
		exErr    error
	}{
		"high team score": {rule: RuleHighTeamScore, week: 3, topN: 1, expected: []model.Standing{
			{Rank: 1, RosterID: 1, Week: 3, MatchupID: 1, Value: 110.4},
		}},
		"smallest margin reports the loser": {rule: RuleSmallestMarginOfLoss, week: 3, topN: 1, expected: []model.Standing{
			{Rank: 1, RosterID: 4, Week: 3, MatchupID: 2, Opponent: 3, Value: 0},
		}},
		"head to head winners": {rule: RuleHeadToHeadWinners, week: 3, expected: []model.Standing{
			{Rank: 1, RosterID: 1, Week: 3, MatchupID: 1, Opponent: 2, Value: 110.4},
			{Rank: 2, RosterID: 3, Week: 3, MatchupID: 2, Opponent: 4, Value: 100},
		}},
		"champion": {rule: RuleChampion, expected: []model.Standing{
			{Rank: 1, RosterID: 3, MatchupID: 3, Opponent: 1, Value: 1},
		}},
		"runner up": {rule: RuleRunnerUp, expected: []model.Standing{
			{Rank: 1, RosterID: 1, MatchupID: 3, Opponent: 3, Value: 1},
		}},
		"third place undecided": {rule: RuleThirdPlace, expected: []model.Standing{}},
		"manual":                {rule: RuleManual, exErr: ErrUnsupportedRule},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			standings, err := Rank(tc.rule, s, tc.week, nil, tc.topN)
			if tc.exErr != nil {
				if !errors.Is(err, tc.exErr) {
					t.Errorf("expected error %v, got %v", tc.exErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(tc.expected, standings) {
				t.Errorf("standings not as expected\nexpected: %+v\ngot:      %+v", tc.expected, standings)
			}
		})
	}
}
