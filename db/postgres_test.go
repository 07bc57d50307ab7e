package db

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/ryan-gillies/commish/containers"
	"github.com/ryan-gillies/commish/model"
	"github.com/shopspring/decimal"
)

var (
	// A test global db instance to use for all of the tests instead of setting up a new one each time.
	testDB DB

	// a counter to generate new league ids for each test. To help keep them separated.
	idCtr = int32(0)
)

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer(containers.SchemaPath)

	clock := clock.New()

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	code := m.Run()
	container.Shutdown()
	os.Exit(code)
}

func TestSeason_createAndGet(t *testing.T) {
	ctx := context.Background()
	s := getSeason(2024)
	pools := getPools(s)

	err := testDB.CreateSeason(ctx, s, pools)
	assertFatalf(t, err == nil, "error creating season: %v", err)

	res, err := testDB.GetSeason(ctx, s.LeagueID)
	assertFatalf(t, err == nil, "error retreiving season: %v", err)

	assertEquals(t, "LeagueID", s.LeagueID, res.LeagueID)
	assertEquals(t, "Season", s.Season, res.Season)
	assertEquals(t, "Week", s.Week, res.Week)
	assertEquals(t, "Name", s.Name, res.Name)
	assertEquals(t, "SleeperUserID", s.SleeperUserID, res.SleeperUserID)
	assertEquals(t, "TeamCount", s.TeamCount, res.TeamCount)
	assertEquals(t, "Calendar", s.Calendar, res.Calendar)
	assertTrue(t, "MainBuyIn", s.MainBuyIn.Equal(res.MainBuyIn))
	assertTrue(t, "SideBuyIn", s.SideBuyIn.Equal(res.SideBuyIn))
	assertTrue(t, "MainPot", s.MainPot.Equal(res.MainPot))
	assertTrue(t, "SidePot", s.SidePot.Equal(res.SidePot))
	assertTrue(t, "Optouts", slices.Equal(s.Optouts, res.Optouts))

	// Creating the season again should not change anything.
	s2 := getSeason(2024)
	s2.LeagueID = s.LeagueID
	s2.Week = 9
	s2.Name = "Renamed"
	err = testDB.CreateSeason(ctx, s2, getPools(s2))
	assertFatalf(t, err == nil, "error creating season a second time: %v", err)

	res, err = testDB.GetSeason(ctx, s.LeagueID)
	assertFatalf(t, err == nil, "error retreiving season: %v", err)
	assertEquals(t, "Week", s.Week, res.Week)
	assertEquals(t, "Name", s.Name, res.Name)

	p, err := testDB.ListPools(ctx, model.PoolFilter{LeagueID: s.LeagueID})
	assertFatalf(t, err == nil, "error listing pools: %v", err)
	assertEquals(t, "num pools", len(pools), len(p))

	err = testDB.UpdateSeasonWeek(ctx, s.LeagueID, 6)
	assertFatalf(t, err == nil, "error updating week: %v", err)
	res, err = testDB.GetSeason(ctx, s.LeagueID)
	assertFatalf(t, err == nil, "error retreiving season: %v", err)
	assertEquals(t, "Week", 6, res.Week)

	_, err = testDB.GetSeason(ctx, "unknown")
	assertTrue(t, "season not found", errors.Is(err, ErrSeasonNotFound))

	err = testDB.UpdateSeasonWeek(ctx, "unknown", 3)
	assertTrue(t, "update unknown season", errors.Is(err, ErrSeasonNotFound))
}

func TestListSeasons(t *testing.T) {
	ctx := context.Background()
	older := getSeason(2017)
	newer := getSeason(2018)

	for _, s := range []*model.Season{older, newer} {
		err := testDB.CreateSeason(ctx, s, nil)
		assertFatalf(t, err == nil, "error creating season: %v", err)
	}

	seasons, err := testDB.ListSeasons(ctx)
	assertFatalf(t, err == nil, "error listing seasons: %v", err)

	olderIdx := slices.IndexFunc(seasons, func(s model.Season) bool { return s.LeagueID == older.LeagueID })
	newerIdx := slices.IndexFunc(seasons, func(s model.Season) bool { return s.LeagueID == newer.LeagueID })
	assertFatalf(t, olderIdx >= 0 && newerIdx >= 0, "expected both seasons to be listed")
	assertTrue(t, "most recent season first", newerIdx < olderIdx)
}

func TestPools_resolveAndPay(t *testing.T) {
	ctx := context.Background()
	s := getSeason(2019)
	pools := getPools(s)

	err := testDB.CreateSeason(ctx, s, pools)
	assertFatalf(t, err == nil, "error creating season: %v", err)

	err = testDB.SaveUser(ctx, &model.User{LeagueID: s.LeagueID, RosterID: 3, UserID: "u3", Username: "tdtommy", Name: "Tommy Touchdowns"})
	assertFatalf(t, err == nil, "error saving user: %v", err)

	p := pools[0]
	p.Winner = "tdtommy"
	p.WinnerRosterID = 3
	p.WinnerPayload = &model.Standing{Rank: 1, RosterID: 3, Week: 2, Value: 130.1}
	err = testDB.SetPoolWinner(ctx, p)
	assertFatalf(t, err == nil, "error setting pool winner: %v", err)

	res, err := testDB.GetPool(ctx, s.LeagueID, p.PoolID)
	assertFatalf(t, err == nil, "error retreiving pool: %v", err)
	assertEquals(t, "Winner", "tdtommy", res.Winner)
	assertEquals(t, "WinnerRosterID", 3, res.WinnerRosterID)
	assertEquals(t, "Status", model.PoolResolved, res.Status())
	assertFatalf(t, res.WinnerPayload != nil, "expected a winner payload")
	assertEquals(t, "WinnerPayload", *p.WinnerPayload, *res.WinnerPayload)
	assertTrue(t, "PayoutAmount", p.PayoutAmount.Equal(res.PayoutAmount))
	assertTrue(t, "PayoutPct", p.PayoutPct.Equal(res.PayoutPct))
	assertEquals(t, "Category", p.Category, res.Category)
	assertEquals(t, "Subtype", p.Subtype, res.Subtype)
	if res.Created.IsZero() {
		t.Errorf("expected created time to not be zero")
	}

	payout := &model.Payout{
		ID:            uuid.NewString(),
		PoolID:        p.PoolID,
		LeagueID:      s.LeagueID,
		Week:          p.Week,
		Season:        s.Season,
		Username:      "tdtommy",
		PaymentHandle: "tommy-td",
		Amount:        p.PayoutAmount,
	}
	err = testDB.MarkPoolPaid(ctx, res, payout)
	assertFatalf(t, err == nil, "error marking pool paid: %v", err)
	assertTrue(t, "pool paid", res.Paid)

	// Paying twice must fail and must not add to the ledger.
	second := *payout
	second.ID = uuid.NewString()
	err = testDB.MarkPoolPaid(ctx, res, &second)
	assertTrue(t, "pay twice", errors.Is(err, ErrPoolPaid))

	// Paid pools can't be resolved again.
	err = testDB.SetPoolWinner(ctx, p)
	assertTrue(t, "resolve paid pool", errors.Is(err, ErrPoolPaid))

	err = testDB.SetPoolWinner(ctx, &model.Pool{LeagueID: s.LeagueID, PoolID: "unknown"})
	assertTrue(t, "resolve unknown pool", errors.Is(err, ErrPoolNotFound))

	details, err := testDB.ListPayoutDetails(ctx, 2019, "tdtommy")
	assertFatalf(t, err == nil, "error listing payout details: %v", err)
	assertFatalf(t, len(details) == 1, "expected 1 payout, got %d", len(details))
	assertEquals(t, "payout id", payout.ID, details[0].ID)
	assertEquals(t, "payout pool", p.PoolID, details[0].PoolID)
	assertEquals(t, "payout handle", "tommy-td", details[0].PaymentHandle)
	assertTrue(t, "payout amount", p.PayoutAmount.Equal(details[0].Amount))
	assertTrue(t, "payout paid", details[0].Paid)

	summaries, err := testDB.ListPayoutSummaries(ctx, 2019)
	assertFatalf(t, err == nil, "error listing payout summaries: %v", err)
	assertFatalf(t, len(summaries) == 1, "expected 1 summary, got %d", len(summaries))
	assertEquals(t, "summary name", "Tommy Touchdowns", summaries[0].Name)
	assertTrue(t, "summary amount", p.PayoutAmount.Equal(summaries[0].Amount))

	seasons, err := testDB.ListPayoutSeasons(ctx)
	assertFatalf(t, err == nil, "error listing payout seasons: %v", err)
	assertTrue(t, "payout seasons", slices.Contains(seasons, 2019))

	won, err := testDB.ListPools(ctx, model.PoolFilter{Season: 2019, Username: "tdtommy"})
	assertFatalf(t, err == nil, "error listing pools: %v", err)
	assertFatalf(t, len(won) == 1, "expected 1 pool won, got %d", len(won))
	assertEquals(t, "Status", model.PoolPaid, won[0].Status())
}

func TestPools_payoutPctPrecision(t *testing.T) {
	ctx := context.Background()
	s := getSeason(2020)
	pools := getPools(s)
	pools[0].PayoutPct = decimal.RequireFromString("0.333333333")
	pools[0].PayoutAmount = decimal.RequireFromString("20.00")

	err := testDB.CreateSeason(ctx, s, pools)
	assertFatalf(t, err == nil, "error creating season: %v", err)

	res, err := testDB.GetPool(ctx, s.LeagueID, pools[0].PoolID)
	assertFatalf(t, err == nil, "error retreiving pool: %v", err)
	assertTrue(t, "PayoutPct", pools[0].PayoutPct.Equal(res.PayoutPct))
	assertTrue(t, "PayoutAmount", pools[0].PayoutAmount.Equal(res.PayoutAmount))
}

func TestSaveChildPools(t *testing.T) {
	ctx := context.Background()
	s := getSeason(2020)
	parent := getPools(s)[1]

	err := testDB.CreateSeason(ctx, s, []*model.Pool{parent})
	assertFatalf(t, err == nil, "error creating season: %v", err)

	child := func(matchup, roster int, winner string) *model.Pool {
		c := *parent
		c.PoolID = fmt.Sprintf("%s_%d", parent.PoolID, matchup)
		c.ParentPoolID = parent.PoolID
		c.PayoutAmount = decimal.RequireFromString("16.67")
		c.Winner = winner
		c.WinnerRosterID = roster
		return &c
	}

	children := []*model.Pool{child(1, 1, "gridirongreg"), child(2, 4, "fourthdownfran")}
	err = testDB.SaveChildPools(ctx, children)
	assertFatalf(t, err == nil, "error saving child pools: %v", err)

	// Saving again overwrites the winners.
	children[1].Winner = "bigplaybecca"
	children[1].WinnerRosterID = 2
	err = testDB.SaveChildPools(ctx, children)
	assertFatalf(t, err == nil, "error saving child pools again: %v", err)

	pools, err := testDB.ListPools(ctx, model.PoolFilter{LeagueID: s.LeagueID})
	assertFatalf(t, err == nil, "error listing pools: %v", err)
	assertEquals(t, "num pools", 3, len(pools))

	res, err := testDB.GetPool(ctx, s.LeagueID, children[1].PoolID)
	assertFatalf(t, err == nil, "error retreiving child pool: %v", err)
	assertEquals(t, "Winner", "bigplaybecca", res.Winner)
	assertEquals(t, "ParentPoolID", parent.PoolID, res.ParentPoolID)
	assertTrue(t, "PayoutAmount", decimal.RequireFromString("16.67").Equal(res.PayoutAmount))
	if res.WinnerPayload != nil {
		t.Errorf("expected no winner payload, got %v", res.WinnerPayload)
	}
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := getSeason(2021)
	err := testDB.CreateSeason(ctx, s, nil)
	assertFatalf(t, err == nil, "error creating season: %v", err)

	u := &model.User{LeagueID: s.LeagueID, RosterID: 1, UserID: "605512390839918592", Username: "gridirongreg", Name: "Greg's Gridiron"}
	err = testDB.SaveUser(ctx, u)
	assertFatalf(t, err == nil, "error saving user: %v", err)

	// The roster changes hands.
	u2 := &model.User{LeagueID: s.LeagueID, RosterID: 1, UserID: "736781253617311744", Username: "bigplaybecca", Name: "bigplaybecca", PaymentHandle: "becca-r"}
	err = testDB.SaveUser(ctx, u2)
	assertFatalf(t, err == nil, "error saving user: %v", err)

	res, err := testDB.GetUserByRoster(ctx, s.LeagueID, 1)
	assertFatalf(t, err == nil, "error retreiving user: %v", err)
	assertEquals(t, "user", *u2, *res)

	users, err := testDB.ListUsers(ctx, s.LeagueID)
	assertFatalf(t, err == nil, "error listing users: %v", err)
	assertEquals(t, "num users", 1, len(users))

	_, err = testDB.GetUserByRoster(ctx, s.LeagueID, 7)
	assertTrue(t, "user not found", errors.Is(err, ErrUserNotFound))
}

func TestPlayers(t *testing.T) {
	ctx := context.Background()
	players := []model.Player{
		{ID: "4046", FirstName: "Patrick", LastName: "Mahomes", FullName: "Patrick Mahomes", Position: model.POS_QB, Team: "KC"},
		{ID: "KC", FirstName: "Kansas City", LastName: "Chiefs", Position: model.POS_DEF, Team: "KC"},
	}

	err := testDB.SavePlayers(ctx, players)
	assertFatalf(t, err == nil, "error saving players: %v", err)

	players[0].Team = "LV"
	err = testDB.SavePlayers(ctx, players)
	assertFatalf(t, err == nil, "error updating players: %v", err)

	dir, err := testDB.GetPlayers(ctx, []string{"4046", "KC", "0"})
	assertFatalf(t, err == nil, "error loading players: %v", err)
	assertEquals(t, "num players", 2, len(dir))
	assertEquals(t, "mahomes", players[0], dir["4046"])
	assertEquals(t, "chiefs", players[1], dir["KC"])

	name, pos := dir.Lookup("KC")
	assertEquals(t, "defense name", "Kansas City Chiefs", name)
	assertEquals(t, "defense position", model.POS_DEF, pos)

	dir, err = testDB.GetPlayers(ctx, nil)
	assertFatalf(t, err == nil, "error loading no players: %v", err)
	assertEquals(t, "num players", 0, len(dir))
}

func getSeason(year int) *model.Season {
	id := atomic.AddInt32(&idCtr, 1)
	s := &model.Season{
		LeagueID:      fmt.Sprintf("10482369650140%05d", id),
		Season:        year,
		Week:          3,
		Name:          "The Commish Bowl",
		SleeperUserID: "605512390839918592",
		MainBuyIn:     decimal.NewFromInt(100),
		SideBuyIn:     decimal.NewFromInt(20),
		TeamCount:     4,
		Optouts:       []int{4},
		Calendar:      model.DefaultCalendar,
	}
	s.ComputePots()
	return s
}

func getPools(s *model.Season) []*model.Pool {
	return []*model.Pool{
		{
			LeagueID:     s.LeagueID,
			PoolID:       "highest_score_of_week_2",
			Name:         "HighestScoreOfWeekPool",
			Label:        "Highest Score Of Week 2",
			Category:     model.CategorySide,
			Subtype:      model.SubtypeWeekly,
			Week:         2,
			PayoutPct:    decimal.RequireFromString("0.025"),
			PayoutAmount: decimal.RequireFromString("1.50"),
		},
		{
			LeagueID:     s.LeagueID,
			PoolID:       "opening_week_winners",
			Name:         "OpeningWeekWinnersPool",
			Label:        "Opening Week Winners",
			Category:     model.CategorySide,
			Subtype:      model.SubtypeSpecialWeek,
			Week:         1,
			PayoutPct:    decimal.RequireFromString("0.05"),
			PayoutAmount: decimal.RequireFromString("3.00"),
		},
	}
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

func assertTrue(t *testing.T, field string, cond bool) {
	if !cond {
		t.Errorf("%s - expected to be true but it was false", field)
	}
}
