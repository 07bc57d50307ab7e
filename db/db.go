package db

import (
	"context"

	"github.com/ryan-gillies/commish/model"
)

type DB interface {
	// CreateSeason stores a season and its pools in a single transaction.
	// Seasons and pools that already exist are left untouched.
	CreateSeason(ctx context.Context, s *model.Season, pools []*model.Pool) error
	GetSeason(ctx context.Context, leagueID string) (*model.Season, error)
	// Lists all seasons, the most recent season first.
	ListSeasons(ctx context.Context) ([]model.Season, error)
	UpdateSeasonWeek(ctx context.Context, leagueID string, week int) error

	ListPools(ctx context.Context, filter model.PoolFilter) ([]model.Pool, error)
	GetPool(ctx context.Context, leagueID, poolID string) (*model.Pool, error)
	// SetPoolWinner records the winner, winner roster and payload of an unpaid
	// pool.
	SetPoolWinner(ctx context.Context, p *model.Pool) error
	// SaveChildPools inserts or updates the per-winner pools of a split pool.
	// Children that have been paid are not changed.
	SaveChildPools(ctx context.Context, children []*model.Pool) error
	// MarkPoolPaid flips the pool to paid and appends the payout to the ledger.
	// Returns ErrPoolPaid if the pool was already paid.
	MarkPoolPaid(ctx context.Context, p *model.Pool, payout *model.Payout) error

	ListPayoutSeasons(ctx context.Context) ([]int, error)
	// Totals paid per user, season 0 means all seasons.
	ListPayoutSummaries(ctx context.Context, season int) ([]model.PayoutSummary, error)
	ListPayoutDetails(ctx context.Context, season int, username string) ([]model.Payout, error)

	SaveUser(ctx context.Context, u *model.User) error
	GetUserByRoster(ctx context.Context, leagueID string, rosterID int) (*model.User, error)
	ListUsers(ctx context.Context, leagueID string) ([]model.User, error)

	SavePlayers(ctx context.Context, players []model.Player) error
	GetPlayers(ctx context.Context, ids []string) (model.PlayerDirectory, error)
}
