package mockcontroller

import (
	"context"
	"sync"
	"time"

	"github.com/ryan-gillies/commish/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) SetupSeason(ctx context.Context, year int) (*model.Season, error) {
	args := c.Called(ctx, year)

	var s *model.Season
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Season)
	}

	return s, args.Error(1)
}

func (c *C) SyncUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	args := c.Called(ctx, leagueID)

	var res []model.User
	if args.Get(0) != nil {
		res = args.Get(0).([]model.User)
	}

	return res, args.Error(1)
}

func (c *C) ResolvePool(ctx context.Context, leagueID, poolID string) (*model.Pool, error) {
	args := c.Called(ctx, leagueID, poolID)

	var p *model.Pool
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Pool)
	}

	return p, args.Error(1)
}

func (c *C) ResolveSeason(ctx context.Context, leagueID string) ([]model.Pool, error) {
	args := c.Called(ctx, leagueID)

	var res []model.Pool
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Pool)
	}

	return res, args.Error(1)
}

func (c *C) SetPropWinner(ctx context.Context, leagueID, poolID string, rosterID int) (*model.Pool, error) {
	args := c.Called(ctx, leagueID, poolID, rosterID)

	var p *model.Pool
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Pool)
	}

	return p, args.Error(1)
}

func (c *C) PayPool(ctx context.Context, leagueID, poolID string) (*model.Payout, error) {
	args := c.Called(ctx, leagueID, poolID)

	var p *model.Payout
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Payout)
	}

	return p, args.Error(1)
}

func (c *C) RunResolutionCycle(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) UpdatePlayers(ctx context.Context) error {
	args := c.Called(ctx)
	return args.Error(0)
}

func (c *C) RunPeriodicPlayerUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	c.Called(frequency, shutdown, wg)
}

func (c *C) ListLeagues(ctx context.Context) ([]model.League, error) {
	args := c.Called(ctx)

	var res []model.League
	if args.Get(0) != nil {
		res = args.Get(0).([]model.League)
	}

	return res, args.Error(1)
}

func (c *C) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	args := c.Called(ctx, leagueID)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}

	return l, args.Error(1)
}

func (c *C) ListSeasons(ctx context.Context) ([]int, error) {
	args := c.Called(ctx)

	var res []int
	if args.Get(0) != nil {
		res = args.Get(0).([]int)
	}

	return res, args.Error(1)
}

func (c *C) ListPools(ctx context.Context, filter model.PoolFilter) ([]model.Pool, error) {
	args := c.Called(ctx, filter)

	var res []model.Pool
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Pool)
	}

	return res, args.Error(1)
}

func (c *C) GetPool(ctx context.Context, leagueID, poolID string) (*model.Pool, error) {
	args := c.Called(ctx, leagueID, poolID)

	var p *model.Pool
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Pool)
	}

	return p, args.Error(1)
}

func (c *C) GetLeaderboard(ctx context.Context, leagueID, poolID string) ([]model.Standing, error) {
	args := c.Called(ctx, leagueID, poolID)

	var res []model.Standing
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Standing)
	}

	return res, args.Error(1)
}

func (c *C) ListPayoutSeasons(ctx context.Context) ([]int, error) {
	args := c.Called(ctx)

	var res []int
	if args.Get(0) != nil {
		res = args.Get(0).([]int)
	}

	return res, args.Error(1)
}

func (c *C) ListPayoutSummaries(ctx context.Context, season int) ([]model.PayoutSummary, error) {
	args := c.Called(ctx, season)

	var res []model.PayoutSummary
	if args.Get(0) != nil {
		res = args.Get(0).([]model.PayoutSummary)
	}

	return res, args.Error(1)
}

func (c *C) ListPayoutDetails(ctx context.Context, season int, username string) ([]model.Payout, error) {
	args := c.Called(ctx, season, username)

	var res []model.Payout
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Payout)
	}

	return res, args.Error(1)
}
