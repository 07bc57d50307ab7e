package mockdb

import (
	"context"

	"github.com/ryan-gillies/commish/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) CreateSeason(ctx context.Context, s *model.Season, pools []*model.Pool) error {
	args := db.Called(ctx, s, pools)
	return args.Error(0)
}

func (db *DB) GetSeason(ctx context.Context, leagueID string) (*model.Season, error) {
	args := db.Called(ctx, leagueID)

	var s *model.Season
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Season)
	}

	return s, args.Error(1)
}

func (db *DB) ListSeasons(ctx context.Context) ([]model.Season, error) {
	args := db.Called(ctx)

	var r []model.Season
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Season)
	}

	return r, args.Error(1)
}

func (db *DB) UpdateSeasonWeek(ctx context.Context, leagueID string, week int) error {
	args := db.Called(ctx, leagueID, week)
	return args.Error(0)
}

func (db *DB) ListPools(ctx context.Context, filter model.PoolFilter) ([]model.Pool, error) {
	args := db.Called(ctx, filter)

	var r []model.Pool
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Pool)
	}

	return r, args.Error(1)
}

func (db *DB) GetPool(ctx context.Context, leagueID, poolID string) (*model.Pool, error) {
	args := db.Called(ctx, leagueID, poolID)

	var p *model.Pool
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Pool)
	}

	return p, args.Error(1)
}

func (db *DB) SetPoolWinner(ctx context.Context, p *model.Pool) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) SaveChildPools(ctx context.Context, children []*model.Pool) error {
	args := db.Called(ctx, children)
	return args.Error(0)
}

func (db *DB) MarkPoolPaid(ctx context.Context, p *model.Pool, payout *model.Payout) error {
	args := db.Called(ctx, p, payout)
	return args.Error(0)
}

func (db *DB) ListPayoutSeasons(ctx context.Context) ([]int, error) {
	args := db.Called(ctx)

	var r []int
	if args.Get(0) != nil {
		r = args.Get(0).([]int)
	}

	return r, args.Error(1)
}

func (db *DB) ListPayoutSummaries(ctx context.Context, season int) ([]model.PayoutSummary, error) {
	args := db.Called(ctx, season)

	var r []model.PayoutSummary
	if args.Get(0) != nil {
		r = args.Get(0).([]model.PayoutSummary)
	}

	return r, args.Error(1)
}

func (db *DB) ListPayoutDetails(ctx context.Context, season int, username string) ([]model.Payout, error) {
	args := db.Called(ctx, season, username)

	var r []model.Payout
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Payout)
	}

	return r, args.Error(1)
}

func (db *DB) SaveUser(ctx context.Context, u *model.User) error {
	args := db.Called(ctx, u)
	return args.Error(0)
}

func (db *DB) GetUserByRoster(ctx context.Context, leagueID string, rosterID int) (*model.User, error) {
	args := db.Called(ctx, leagueID, rosterID)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}

	return u, args.Error(1)
}

func (db *DB) ListUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	args := db.Called(ctx, leagueID)

	var r []model.User
	if args.Get(0) != nil {
		r = args.Get(0).([]model.User)
	}

	return r, args.Error(1)
}

func (db *DB) SavePlayers(ctx context.Context, players []model.Player) error {
	args := db.Called(ctx, players)
	return args.Error(0)
}

func (db *DB) GetPlayers(ctx context.Context, ids []string) (model.PlayerDirectory, error) {
	args := db.Called(ctx, ids)

	var r model.PlayerDirectory
	if args.Get(0) != nil {
		r = args.Get(0).(model.PlayerDirectory)
	}

	return r, args.Error(1)
}
