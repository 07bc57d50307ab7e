package sleeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/ryan-gillies/commish/model"
	"github.com/ryan-gillies/commish/testutils"
)

func TestLoadPlayers_success(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	expected := map[string]model.Player{
		"4046": {FirstName: "Patrick", LastName: "Mahomes", Position: model.POS_QB, Team: "KC"},
		"6794": {FirstName: "Justin", LastName: "Jefferson", Position: model.POS_WR, Team: "MIN"},
		"9509": {FirstName: "Bijan", LastName: "Robinson", Position: model.POS_RB, Team: "ATL"},
		"4984": {FirstName: "Josh", LastName: "Allen", Position: model.POS_QB, Team: "BUF"},
		"8155": {FirstName: "Breece", LastName: "Hall", Position: model.POS_RB, Team: "NYJ"},
		"6904": {FirstName: "Jalen", LastName: "Hurts", Position: model.POS_QB, Team: "PHI"},
		"2374": {FirstName: "Tyler", LastName: "Lockett", Position: model.POS_WR, Team: "SEA"},
		"KC":   {FirstName: "Kansas City", LastName: "Chiefs", Position: model.POS_DEF, Team: "KC"},
		"1379": {FirstName: "Kyle", LastName: "Juszczyk", Position: model.POS_RB, Team: "SF"},
	}

	players, err := c.LoadPlayers(context.Background())
	if err != nil {
		t.Fatalf("error should have been nil, was: %v", err)
	}
	if len(players) != len(expected) {
		t.Fatalf("wrong number of players, expected %d, got %d", len(expected), len(players))
	}

	for _, p := range players {
		e, found := expected[p.ID]
		if !found {
			t.Fatalf("unexpected player in the response %s", p.ID)
		}

		if p.FirstName != e.FirstName {
			t.Errorf("expected first name %s, got %s", e.FirstName, p.FirstName)
		}
		if p.LastName != e.LastName {
			t.Errorf("expected last name %s, got %s", e.LastName, p.LastName)
		}
		if p.Position != e.Position {
			t.Errorf("expected position %v, got %v", e.Position, p.Position)
		}
		if p.Team != e.Team {
			t.Errorf("expected team %v, got %v", e.Team, p.Team)
		}
	}
}

func TestLoadPlayers_httpError(t *testing.T) {
	fakeSleeper := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
	}))
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL)

	players, err := c.LoadPlayers(context.Background())
	if err == nil {
		t.Fatalf("error should not have been nil")
	}
	if players != nil {
		t.Fatalf("players should have been nil")
	}
}

func TestGetState(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	state, err := c.GetState(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := &model.NFLState{Season: 2024, Week: 4, SeasonType: "regular"}
	if !reflect.DeepEqual(expected, state) {
		t.Errorf("expected state %+v, got %+v", expected, state)
	}
}

func TestGetLeaguesForUser(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	tests := []struct {
		userID   string
		season   int
		expected []model.League
		err      error
	}{
		{userID: testutils.SleeperUserID, season: 2024, expected: []model.League{
			{LeagueID: testutils.LeagueID, Name: "The Commish Bowl", Season: 2024, TotalRosters: 4, Status: "in_season", Platform: "sleeper"},
			{LeagueID: "1051187316420349952", Name: "Dynasty Degenerates", Season: 2024, TotalRosters: 12, Status: "in_season", Platform: "sleeper"}}},
		{userID: "98765432", season: 2024, expected: nil, err: ErrNoLeagues},
	}

	for _, tc := range tests {
		t.Run(tc.userID, func(t *testing.T) {
			l, err := c.GetLeaguesForUser(context.Background(), tc.userID, tc.season)
			if !reflect.DeepEqual(l, tc.expected) {
				t.Errorf("result does not match expected leagues: %v", l)
			}
			if !errors.Is(err, tc.err) {
				t.Errorf("expected error '%v' but got '%v'", tc.err, err)
			}
		})
	}
}

func TestGetLeague(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	l, err := c.GetLeague(context.Background(), testutils.LeagueID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Name != "The Commish Bowl" || l.TotalRosters != 4 || l.Season != 2024 {
		t.Errorf("unexpected league: %+v", l)
	}

	if _, err := c.GetLeague(context.Background(), "1234"); !errors.Is(err, ErrLeagueNotFound) {
		t.Errorf("expected ErrLeagueNotFound, got %v", err)
	}
}

func TestGetRostersAndUsers(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())
	ctx := context.Background()

	rosters, err := c.GetRosters(ctx, testutils.LeagueID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := model.Roster{
		RosterID: 1, OwnerID: testutils.SleeperUserID, Players: []string{"4046", "6794", "KC"},
		Wins: 2, Losses: 1, PointsFor: 319, PointsForDecimal: 10, PointsAgainst: 329, PointsAgainstDecimal: 60,
	}
	if len(rosters) != 4 || !reflect.DeepEqual(expected, rosters[0]) {
		t.Errorf("unexpected rosters: %+v", rosters)
	}

	users, err := c.GetUsers(ctx, testutils.LeagueID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedUsers := []model.User{
		{LeagueID: testutils.LeagueID, UserID: testutils.SleeperUserID, Username: "gridirongreg", Name: "Greg's Gridiron", Avatar: "b5a3e1f6c0a4"},
		{LeagueID: testutils.LeagueID, UserID: "736781253617311744", Username: "bigplaybecca", Name: "bigplaybecca", Avatar: "9cd7c34b0e2f"},
		{LeagueID: testutils.LeagueID, UserID: "812345678901234567", Username: "tdtommy", Name: "Tommy Touchdowns"},
		{LeagueID: testutils.LeagueID, UserID: "998243771230240768", Username: "fourthdownfran", Name: "fourthdownfran", Avatar: "4aa0a3a2d3d1"},
	}
	if !reflect.DeepEqual(expectedUsers, users) {
		t.Errorf("unexpected users: %+v", users)
	}

	rosters, err = c.GetRosters(ctx, "1234")
	if err != nil || len(rosters) != 0 {
		t.Errorf("expected no rosters for an unknown league, got %v (%v)", rosters, err)
	}
}

func TestGetMatchups(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())
	ctx := context.Background()

	matchups, err := c.GetMatchups(ctx, testutils.LeagueID, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matchups) != 4 {
		t.Fatalf("expected 4 matchup entries, got %d", len(matchups))
	}

	expected := model.MatchupEntry{
		Week: 3, RosterID: 1, MatchupID: 1, Points: 110.4,
		Starters:      []string{"4046", "6794", "KC"},
		PlayersPoints: map[string]float64{"4046": 50.4, "6794": 50.0, "KC": 10.0},
	}
	if !reflect.DeepEqual(expected, matchups[0]) {
		t.Errorf("unexpected matchup: %+v", matchups[0])
	}

	matchups, err = c.GetMatchups(ctx, testutils.LeagueID, 9)
	if err != nil || len(matchups) != 0 {
		t.Errorf("expected no matchups for week 9, got %v (%v)", matchups, err)
	}
}

func TestGetWinnersBracket(t *testing.T) {
	fakeSleeper := testutils.NewFakeSleeperServer()
	defer fakeSleeper.Close()

	c := NewForTest(fakeSleeper.URL())

	bracket, err := c.GetWinnersBracket(context.Background(), testutils.LeagueID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []model.BracketMatch{
		{Round: 1, MatchID: 1, Team1: 1, Team2: 4, Winner: 1, Loser: 4},
		{Round: 1, MatchID: 2, Team1: 3, Team2: 2, Winner: 3, Loser: 2},
		{Round: 2, MatchID: 3, Team1: 1, Team2: 3, Winner: 3, Loser: 1, Placement: 1},
		{Round: 2, MatchID: 4, Team1: 4, Team2: 2, Placement: 3},
	}
	if !reflect.DeepEqual(expected, bracket) {
		t.Errorf("unexpected bracket: %+v", bracket)
	}
}
