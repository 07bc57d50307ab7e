package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ryan-gillies/commish/model"
)

func (db *postgresDB) SaveUser(ctx context.Context, u *model.User) error {
	if u == nil {
		return errors.New("SaveUser - user is nil")
	}

	const query = `INSERT INTO users (
		league_id,
		roster_id,
		user_id,
		username,
		name,
		avatar,
		payment_handle,
		updated
	) VALUES (
		@leagueID,
		@rosterID,
		@userID,
		@username,
		@name,
		@avatar,
		@paymentHandle,
		@updated
	) ON CONFLICT (league_id, roster_id) DO UPDATE
		SET user_id=EXCLUDED.user_id,
			username=EXCLUDED.username,
			name=EXCLUDED.name,
			avatar=EXCLUDED.avatar,
			payment_handle=EXCLUDED.payment_handle,
			updated=EXCLUDED.updated`

	args := pgx.NamedArgs{
		"leagueID":      u.LeagueID,
		"rosterID":      u.RosterID,
		"userID":        u.UserID,
		"username":      u.Username,
		"name":          u.Name,
		"avatar":        nullString(u.Avatar),
		"paymentHandle": nullString(u.PaymentHandle),
		"updated":       db.now(),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving user %s for roster %d: %w", u.Username, u.RosterID, err)
	}
	return nil
}

func (db *postgresDB) GetUserByRoster(ctx context.Context, leagueID string, rosterID int) (*model.User, error) {
	const query = `SELECT league_id, roster_id, user_id, username, name, avatar, payment_handle
		FROM users WHERE league_id=@leagueID AND roster_id=@rosterID`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"rosterID": rosterID,
	}
	u, err := scanUser(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: roster %d in league %s", ErrUserNotFound, rosterID, leagueID)
		}
		return nil, fmt.Errorf("error scanning user for roster %d: %w", rosterID, err)
	}
	return u, nil
}

func (db *postgresDB) ListUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	const query = `SELECT league_id, roster_id, user_id, username, name, avatar, payment_handle
		FROM users WHERE league_id=@leagueID ORDER BY roster_id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	results := make([]model.User, 0, 12)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		results = append(results, *u)
	}
	return results, rows.Err()
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	var avatar, paymentHandle sql.NullString
	err := row.Scan(&u.LeagueID, &u.RosterID, &u.UserID, &u.Username, &u.Name, &avatar, &paymentHandle)
	if err != nil {
		return nil, err
	}
	u.Avatar = valueOrEmpty(avatar)
	u.PaymentHandle = valueOrEmpty(paymentHandle)
	return &u, nil
}
