package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ryan-gillies/commish/model"
)

func (db *postgresDB) MarkPoolPaid(ctx context.Context, p *model.Pool, payout *model.Payout) error {
	if p == nil || payout == nil {
		return errors.New("MarkPoolPaid - pool and payout are required")
	}

	const update = `UPDATE pools SET paid=true, updated=@now
		WHERE league_id=@leagueID AND pool_id=@poolID AND paid=false`

	const insert = `INSERT INTO payouts (
		id,
		league_id,
		pool_id,
		week,
		season,
		username,
		payment_handle,
		amount,
		paid,
		created
	) VALUES (
		@id,
		@leagueID,
		@poolID,
		@week,
		@season,
		@username,
		@paymentHandle,
		@amount,
		true,
		@now
	)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := db.now()
	tag, err := tx.Exec(ctx, update, pgx.NamedArgs{
		"leagueID": p.LeagueID,
		"poolID":   p.PoolID,
		"now":      now,
	})
	if err != nil {
		return fmt.Errorf("error marking pool %s/%s paid: %w", p.LeagueID, p.PoolID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s/%s", ErrPoolPaid, p.LeagueID, p.PoolID)
	}

	args := pgx.NamedArgs{
		"id":            payout.ID,
		"leagueID":      payout.LeagueID,
		"poolID":        payout.PoolID,
		"week":          payout.Week,
		"season":        payout.Season,
		"username":      payout.Username,
		"paymentHandle": payout.PaymentHandle,
		"amount":        payout.Amount,
		"now":           now,
	}
	if _, err := tx.Exec(ctx, insert, args); err != nil {
		return fmt.Errorf("error inserting payout for pool %s/%s: %w", p.LeagueID, p.PoolID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting payout transaction: %w", err)
	}

	p.Paid = true
	p.Updated = now.Time
	payout.Paid = true
	payout.Created = now.Time
	return nil
}

func (db *postgresDB) ListPayoutSeasons(ctx context.Context) ([]int, error) {
	const query = `SELECT DISTINCT season FROM payouts ORDER BY season DESC`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing payout seasons: %w", err)
	}
	defer rows.Close()

	seasons := make([]int, 0, 4)
	for rows.Next() {
		var season int
		if err := rows.Scan(&season); err != nil {
			return nil, fmt.Errorf("error scanning payout season: %w", err)
		}
		seasons = append(seasons, season)
	}
	return seasons, rows.Err()
}

func (db *postgresDB) ListPayoutSummaries(ctx context.Context, season int) ([]model.PayoutSummary, error) {
	const query = `SELECT p.username, COALESCE(MAX(u.name), p.username), SUM(p.amount)
		FROM payouts p
		LEFT JOIN users u ON u.league_id = p.league_id AND u.username = p.username
		WHERE (@season::int = 0 OR p.season = @season)
		GROUP BY p.username
		ORDER BY SUM(p.amount) DESC, p.username`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"season": season})
	if err != nil {
		return nil, fmt.Errorf("error listing payout summaries: %w", err)
	}
	defer rows.Close()

	results := make([]model.PayoutSummary, 0, 12)
	for rows.Next() {
		var s model.PayoutSummary
		if err := rows.Scan(&s.Username, &s.Name, &s.Amount); err != nil {
			return nil, fmt.Errorf("error scanning payout summary: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

func (db *postgresDB) ListPayoutDetails(ctx context.Context, season int, username string) ([]model.Payout, error) {
	const query = `SELECT id, pool_id, league_id, week, season, username,
			payment_handle, amount, paid, created
		FROM payouts
		WHERE (@season::int = 0 OR season = @season) AND username = @username
		ORDER BY season DESC, week DESC, created DESC`

	args := pgx.NamedArgs{
		"season":   season,
		"username": username,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing payouts for %s: %w", username, err)
	}
	defer rows.Close()

	results := make([]model.Payout, 0, 8)
	for rows.Next() {
		var p model.Payout
		var id pgtype.UUID
		var created pgtype.Timestamptz
		err := rows.Scan(&id, &p.PoolID, &p.LeagueID, &p.Week, &p.Season, &p.Username,
			&p.PaymentHandle, &p.Amount, &p.Paid, &created)
		if err != nil {
			return nil, fmt.Errorf("error scanning payout: %w", err)
		}
		p.ID = uuidString(id)
		p.Created = created.Time
		results = append(results, p)
	}
	return results, rows.Err()
}
