package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/ryan-gillies/commish/db"
	"github.com/ryan-gillies/commish/model"
	"github.com/ryan-gillies/commish/payment"
	"github.com/ryan-gillies/commish/sleeper"
)

var (
	ErrWeekNotAvailable = errors.New("week has not been completed")
	ErrAlreadyPaid      = db.ErrPoolPaid
	ErrManualPool       = errors.New("pool winner is set manually")
	ErrNotManual        = errors.New("pool winner is not set manually")
	ErrNotResolved      = errors.New("pool has not been resolved")
	ErrSplitPool        = errors.New("pool is paid through its per-winner pools")
	ErrNoWinner         = errors.New("no eligible winner")
	ErrNoLeaderboard    = errors.New("pool has no leaderboard")
	ErrPaymentsDisabled = errors.New("payments are not configured")
	ErrNoPaymentHandle  = errors.New("winner has no payment handle")
	ErrNoLeague         = errors.New("no league found for season")
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// SetupSeason creates the season and its pools from the season config.
	// A season that already exists is returned with its week refreshed.
	SetupSeason(ctx context.Context, year int) (*model.Season, error)
	// SyncUsers refreshes the roster to user directory of a league.
	SyncUsers(ctx context.Context, leagueID string) ([]model.User, error)

	ResolvePool(ctx context.Context, leagueID, poolID string) (*model.Pool, error)
	// ResolveSeason attempts every unresolved pool of the season once. Pools
	// whose week is not complete are skipped.
	ResolveSeason(ctx context.Context, leagueID string) ([]model.Pool, error)
	SetPropWinner(ctx context.Context, leagueID, poolID string, rosterID int) (*model.Pool, error)
	PayPool(ctx context.Context, leagueID, poolID string) (*model.Payout, error)
	// RunResolutionCycle resolves every tracked season, paying the winners
	// when auto pay is enabled.
	RunResolutionCycle(ctx context.Context) error

	UpdatePlayers(ctx context.Context) error
	RunPeriodicPlayerUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup)

	ListLeagues(ctx context.Context) ([]model.League, error)
	GetLeague(ctx context.Context, leagueID string) (*model.League, error)
	ListSeasons(ctx context.Context) ([]int, error)
	ListPools(ctx context.Context, filter model.PoolFilter) ([]model.Pool, error)
	GetPool(ctx context.Context, leagueID, poolID string) (*model.Pool, error)
	GetLeaderboard(ctx context.Context, leagueID, poolID string) ([]model.Standing, error)
	ListPayoutSeasons(ctx context.Context) ([]int, error)
	ListPayoutSummaries(ctx context.Context, season int) ([]model.PayoutSummary, error)
	ListPayoutDetails(ctx context.Context, season int, username string) ([]model.Payout, error)
}

type Options struct {
	// Directory holding the <year>.yaml season files.
	SeasonConfigDir string
	// Pay winners as soon as a resolution cycle resolves their pool.
	AutoPay bool
}

type controller struct {
	clock    clock.Clock
	sleeper  sleeper.Client
	db       db.DB
	payments payment.Client
	opts     Options
}

// New returns a controller. payments may be nil, in which case pools can be
// resolved but not paid.
func New(clock clock.Clock, sleeper sleeper.Client, db db.DB, payments payment.Client, opts Options) (C, error) {
	if clock == nil || sleeper == nil || db == nil {
		return nil, errors.New("controller requires a clock, a sleeper client and a db")
	}
	c := &controller{
		clock:    clock,
		sleeper:  sleeper,
		db:       db,
		payments: payments,
		opts:     opts,
	}
	return c, nil
}
