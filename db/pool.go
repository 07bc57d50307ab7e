package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ryan-gillies/commish/model"
)

const poolColumns = `p.league_id, p.pool_id, p.pool_class, p.label, p.pool_type,
		p.pool_subtype, p.week, p.payout_pct, p.payout_amount, p.winner,
		p.winner_roster_id, p.winner_payload, p.parent_pool_id, p.paid,
		p.created, p.updated`

func (db *postgresDB) ListPools(ctx context.Context, filter model.PoolFilter) ([]model.Pool, error) {
	query := `SELECT ` + poolColumns + `
		FROM pools p JOIN seasons s ON s.league_id = p.league_id
		WHERE (@leagueID::text = '' OR p.league_id = @leagueID)
			AND (@season::int = 0 OR s.season = @season)
			AND (@username::text = '' OR p.winner = @username)
		ORDER BY s.season DESC, p.pool_type DESC, p.week, p.pool_id`

	args := pgx.NamedArgs{
		"leagueID": filter.LeagueID,
		"season":   filter.Season,
		"username": filter.Username,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing pools: %w", err)
	}
	defer rows.Close()

	results := make([]model.Pool, 0, 32)
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning pool: %w", err)
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func (db *postgresDB) GetPool(ctx context.Context, leagueID, poolID string) (*model.Pool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools p
		WHERE p.league_id=@leagueID AND p.pool_id=@poolID`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"poolID":   poolID,
	}
	p, err := scanPool(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", ErrPoolNotFound, leagueID, poolID)
		}
		return nil, fmt.Errorf("error scanning pool %s/%s: %w", leagueID, poolID, err)
	}
	return p, nil
}

func (db *postgresDB) SetPoolWinner(ctx context.Context, p *model.Pool) error {
	const query = `UPDATE pools
		SET winner=@winner,
			winner_roster_id=@winnerRosterID,
			winner_payload=@winnerPayload,
			updated=@updated
		WHERE league_id=@leagueID AND pool_id=@poolID AND paid=false`

	args := namedArgsForPool(p)
	args["updated"] = db.now()

	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error setting winner for pool %s/%s: %w", p.LeagueID, p.PoolID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the pool does not exist or it has been paid.
		if _, err := db.GetPool(ctx, p.LeagueID, p.PoolID); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s/%s", ErrPoolPaid, p.LeagueID, p.PoolID)
	}
	return nil
}

func (db *postgresDB) SaveChildPools(ctx context.Context, children []*model.Pool) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, p := range children {
		if err := db.insertPool(ctx, tx, p, true); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting child pool transaction: %w", err)
	}
	return nil
}

// insertPool adds a pool. Existing pools are skipped, or when overwrite is set
// their winner and payout are replaced as long as they have not been paid.
func (db *postgresDB) insertPool(ctx context.Context, tx pgx.Tx, p *model.Pool, overwrite bool) error {
	if p == nil {
		return errors.New("insertPool - pool is nil")
	}

	const insert = `INSERT INTO pools (
		league_id,
		pool_id,
		pool_class,
		label,
		pool_type,
		pool_subtype,
		week,
		payout_pct,
		payout_amount,
		winner,
		winner_roster_id,
		winner_payload,
		parent_pool_id,
		paid,
		created,
		updated
	) VALUES (
		@leagueID,
		@poolID,
		@name,
		@label,
		@category,
		@subtype,
		@week,
		@payoutPct,
		@payoutAmount,
		@winner,
		@winnerRosterID,
		@winnerPayload,
		@parentPoolID,
		false,
		@now,
		@now
	)`

	const skip = ` ON CONFLICT (league_id, pool_id) DO NOTHING`
	const update = ` ON CONFLICT (league_id, pool_id) DO UPDATE
		SET winner=EXCLUDED.winner,
			winner_roster_id=EXCLUDED.winner_roster_id,
			winner_payload=EXCLUDED.winner_payload,
			payout_amount=EXCLUDED.payout_amount,
			updated=EXCLUDED.updated
		WHERE pools.paid=false`

	query := insert + skip
	if overwrite {
		query = insert + update
	}

	args := namedArgsForPool(p)
	args["now"] = db.now()
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting pool (%s/%s): %w", p.LeagueID, p.PoolID, err)
	}
	return nil
}

func scanPool(row pgx.Row) (*model.Pool, error) {
	var p model.Pool
	var category, subtype string
	var winner, parentPoolID pgtype.Text
	var winnerRosterID pgtype.Int4
	var created, updated pgtype.Timestamptz
	err := row.Scan(
		&p.LeagueID,
		&p.PoolID,
		&p.Name,
		&p.Label,
		&category,
		&subtype,
		&p.Week,
		&p.PayoutPct,
		&p.PayoutAmount,
		&winner,
		&winnerRosterID,
		&p.WinnerPayload,
		&parentPoolID,
		&p.Paid,
		&created,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	p.Category = model.Category(category)
	p.Subtype = model.Subtype(subtype)
	p.Winner = winner.String
	p.WinnerRosterID = int(winnerRosterID.Int32)
	p.ParentPoolID = parentPoolID.String
	p.Created = created.Time
	p.Updated = updated.Time
	return &p, nil
}

func namedArgsForPool(p *model.Pool) pgx.NamedArgs {
	return pgx.NamedArgs{
		"leagueID":     p.LeagueID,
		"poolID":       p.PoolID,
		"name":         p.Name,
		"label":        p.Label,
		"category":     string(p.Category),
		"subtype":      string(p.Subtype),
		"week":         p.Week,
		"payoutPct":    p.PayoutPct,
		"payoutAmount": p.PayoutAmount,
		"winner":       nullString(p.Winner),
		"winnerRosterID": pgtype.Int4{
			Int32: int32(p.WinnerRosterID),
			Valid: p.WinnerRosterID != 0,
		},
		"winnerPayload": p.WinnerPayload,
		"parentPoolID":  nullString(p.ParentPoolID),
	}
}
