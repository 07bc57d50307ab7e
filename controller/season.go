package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/ryan-gillies/commish/config"
	"github.com/ryan-gillies/commish/db"
	"github.com/ryan-gillies/commish/model"
	"github.com/ryan-gillies/commish/pools"
)

func (c *controller) SetupSeason(ctx context.Context, year int) (*model.Season, error) {
	cfg, err := config.LoadSeason(c.opts.SeasonConfigDir, year)
	if err != nil {
		return nil, err
	}

	a := &sleeperAdapter{c}
	leagueID, err := a.getLeagueID(ctx, cfg.Credentials.SleeperUserID, cfg.LeagueID, year)
	if err != nil {
		return nil, err
	}

	existing, err := c.db.GetSeason(ctx, leagueID)
	if err == nil {
		if err := c.refreshWeek(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, db.ErrSeasonNotFound) {
		return nil, err
	}

	league, err := c.sleeper.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	rosters, err := c.sleeper.GetRosters(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading rosters for %s: %w", leagueID, err)
	}

	season := &model.Season{
		LeagueID:      leagueID,
		Season:        year,
		Name:          league.Name,
		SleeperUserID: cfg.Credentials.SleeperUserID,
		MainBuyIn:     cfg.MainBuyIn(),
		SideBuyIn:     cfg.SideBuyIn(),
		TeamCount:     league.TotalRosters,
		Optouts:       a.getOptouts(rosters, cfg.Optouts),
		Calendar:      cfg.ModelCalendar(),
	}
	if season.TeamCount == 0 {
		season.TeamCount = len(rosters)
	}
	season.ComputePots()

	season.Week, err = a.getCompletedWeek(ctx, season)
	if err != nil {
		return nil, err
	}

	created, err := pools.Create(season, cfg.Entries())
	if err != nil {
		return nil, err
	}
	if err := pools.Validate(season, created); err != nil {
		return nil, err
	}

	if err := c.db.CreateSeason(ctx, season, created); err != nil {
		return nil, fmt.Errorf("error saving season %d: %w", year, err)
	}

	log.Info().
		Str("league_id", leagueID).
		Int("season", year).
		Int("pools", len(created)).
		Str("main_pot", season.MainPot.StringFixed(2)).
		Str("side_pot", season.SidePot.StringFixed(2)).
		Msg("season created")

	if _, err := c.syncUsers(ctx, season, cfg); err != nil {
		return nil, err
	}
	return season, nil
}

func (c *controller) SyncUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	season, err := c.db.GetSeason(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadSeason(c.opts.SeasonConfigDir, season.Season)
	if err != nil {
		return nil, err
	}
	return c.syncUsers(ctx, season, cfg)
}

func (c *controller) syncUsers(ctx context.Context, season *model.Season, cfg *config.Season) ([]model.User, error) {
	a := &sleeperAdapter{c}
	users, err := a.getUsers(ctx, season.LeagueID)
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].PaymentHandle = cfg.PaymentHandle(users[i].Username)
		if err := c.db.SaveUser(ctx, &users[i]); err != nil {
			return nil, err
		}
	}

	log.Info().Str("league_id", season.LeagueID).Int("users", len(users)).Msg("users synced")
	return users, nil
}

// refreshWeek moves the season's week forward to the last completed week.
func (c *controller) refreshWeek(ctx context.Context, s *model.Season) error {
	a := &sleeperAdapter{c}
	week, err := a.getCompletedWeek(ctx, s)
	if err != nil {
		return err
	}
	if week == s.Week {
		return nil
	}

	if err := c.db.UpdateSeasonWeek(ctx, s.LeagueID, week); err != nil {
		return err
	}
	log.Info().Str("league_id", s.LeagueID).Int("from", s.Week).Int("week", week).Msg("season week updated")
	s.Week = week
	return nil
}
