package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ryan-gillies/commish/model"
)

// SavePlayers inserts or updates the players in a single batch.
func (db *postgresDB) SavePlayers(ctx context.Context, players []model.Player) error {
	const query = `INSERT INTO players (
		id,
		name_first,
		name_last,
		full_name,
		position,
		team,
		updated
	) VALUES (
		@id,
		@nameFirst,
		@nameLast,
		@fullName,
		@position,
		@team,
		@updated
	) ON CONFLICT (id) DO UPDATE
		SET name_first=EXCLUDED.name_first,
			name_last=EXCLUDED.name_last,
			full_name=EXCLUDED.full_name,
			position=EXCLUDED.position,
			team=EXCLUDED.team,
			updated=EXCLUDED.updated`

	if len(players) == 0 {
		return nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	updated := db.now()
	batch := &pgx.Batch{}
	for i := range players {
		args := namedArgsForPlayer(&players[i])
		args["updated"] = updated
		batch.Queue(query, args)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("error saving players: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting player transaction: %w", err)
	}
	return nil
}

// GetPlayers returns the players with the given ids. Unknown ids are left out
// of the directory.
func (db *postgresDB) GetPlayers(ctx context.Context, ids []string) (model.PlayerDirectory, error) {
	const query = `SELECT id, name_first, name_last, full_name, position, team
		FROM players WHERE id = ANY(@ids)`

	result := make(model.PlayerDirectory, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("error loading players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning player: %w", err)
		}
		result[p.ID] = *p
	}
	return result, rows.Err()
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var result model.Player
	var pos DBPosition
	var fullName, team sql.NullString
	err := row.Scan(
		&result.ID,
		&result.FirstName,
		&result.LastName,
		&fullName,
		&pos,
		&team,
	)
	if err != nil {
		return nil, err
	}

	result.FullName = valueOrEmpty(fullName)
	result.Position = pos.position
	result.Team = valueOrEmpty(team)
	return &result, nil
}

func namedArgsForPlayer(p *model.Player) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":        p.ID,
		"nameFirst": p.FirstName,
		"nameLast":  p.LastName,
		"fullName":  nullString(p.FullName),
		"position":  &DBPosition{position: p.Position},
		"team":      nullString(p.Team),
	}
}

type DBPosition struct {
	position model.Position
}

func (p *DBPosition) ScanText(v pgtype.Text) error {
	p.position = model.ParsePosition(v.String)
	return nil
}

func (p *DBPosition) TextValue() (pgtype.Text, error) {
	return pgtype.Text{
		String: string(p.position),
		Valid:  true,
	}, nil
}
