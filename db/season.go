package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ryan-gillies/commish/model"
)

const seasonColumns = `league_id, season, week, name, sleeper_user_id,
		main_buy_in, side_buy_in, team_count, optouts, main_pot, side_pot,
		opening_week, rivalry_week, last_regular_week, championship_week`

func (db *postgresDB) CreateSeason(ctx context.Context, s *model.Season, pools []*model.Pool) error {
	if s == nil {
		return errors.New("CreateSeason - season is nil")
	}

	const query = `INSERT INTO seasons (
		league_id,
		season,
		week,
		name,
		sleeper_user_id,
		main_buy_in,
		side_buy_in,
		team_count,
		optouts,
		main_pot,
		side_pot,
		opening_week,
		rivalry_week,
		last_regular_week,
		championship_week,
		created,
		updated
	) VALUES (
		@leagueID,
		@season,
		@week,
		@name,
		@sleeperUserID,
		@mainBuyIn,
		@sideBuyIn,
		@teamCount,
		@optouts,
		@mainPot,
		@sidePot,
		@openingWeek,
		@rivalryWeek,
		@lastRegularWeek,
		@championshipWeek,
		@now,
		@now
	) ON CONFLICT (league_id) DO NOTHING`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	optouts := make([]int32, 0, len(s.Optouts))
	for _, o := range s.Optouts {
		optouts = append(optouts, int32(o))
	}
	args := pgx.NamedArgs{
		"leagueID":         s.LeagueID,
		"season":           s.Season,
		"week":             s.Week,
		"name":             s.Name,
		"sleeperUserID":    s.SleeperUserID,
		"mainBuyIn":        s.MainBuyIn,
		"sideBuyIn":        s.SideBuyIn,
		"teamCount":        s.TeamCount,
		"optouts":          optouts,
		"mainPot":          s.MainPot,
		"sidePot":          s.SidePot,
		"openingWeek":      s.Calendar.OpeningWeek,
		"rivalryWeek":      s.Calendar.RivalryWeek,
		"lastRegularWeek":  s.Calendar.LastRegularWeek,
		"championshipWeek": s.Calendar.ChampionshipWeek,
		"now":              db.now(),
	}
	if _, err := tx.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting season (%s): %w", s.LeagueID, err)
	}

	for _, p := range pools {
		if err := db.insertPool(ctx, tx, p, false); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error commiting season transaction: %w", err)
	}
	return nil
}

func (db *postgresDB) GetSeason(ctx context.Context, leagueID string) (*model.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE league_id=@leagueID`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
	}
	s, err := scanSeason(db.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrSeasonNotFound, leagueID)
		}
		return nil, fmt.Errorf("error scanning season %s: %w", leagueID, err)
	}
	return s, nil
}

func (db *postgresDB) ListSeasons(ctx context.Context) ([]model.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons ORDER BY season DESC, league_id`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing seasons: %w", err)
	}
	defer rows.Close()

	results := make([]model.Season, 0, 4)
	for rows.Next() {
		s, err := scanSeason(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning season: %w", err)
		}
		results = append(results, *s)
	}
	return results, rows.Err()
}

func (db *postgresDB) UpdateSeasonWeek(ctx context.Context, leagueID string, week int) error {
	const query = `UPDATE seasons SET week=@week, updated=@updated WHERE league_id=@leagueID`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"week":     week,
		"updated":  db.now(),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating week for season %s: %w", leagueID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrSeasonNotFound, leagueID)
	}
	return nil
}

func scanSeason(row pgx.Row) (*model.Season, error) {
	var s model.Season
	var optouts []int32
	err := row.Scan(
		&s.LeagueID,
		&s.Season,
		&s.Week,
		&s.Name,
		&s.SleeperUserID,
		&s.MainBuyIn,
		&s.SideBuyIn,
		&s.TeamCount,
		&optouts,
		&s.MainPot,
		&s.SidePot,
		&s.Calendar.OpeningWeek,
		&s.Calendar.RivalryWeek,
		&s.Calendar.LastRegularWeek,
		&s.Calendar.ChampionshipWeek,
	)
	if err != nil {
		return nil, err
	}

	s.Optouts = make([]int, 0, len(optouts))
	for _, o := range optouts {
		s.Optouts = append(s.Optouts, int(o))
	}
	return &s, nil
}
