package controller

import (
	"context"
	"fmt"
	"slices"

	"github.com/ryan-gillies/commish/model"
	"github.com/ryan-gillies/commish/pools"
	"github.com/ryan-gillies/commish/stats"
)

func (c *controller) ListLeagues(ctx context.Context) ([]model.League, error) {
	seasons, err := c.db.ListSeasons(ctx)
	if err != nil {
		return nil, err
	}

	leagues := make([]model.League, 0, len(seasons))
	for i := range seasons {
		leagues = append(leagues, leagueFromSeason(&seasons[i]))
	}
	return leagues, nil
}

func (c *controller) GetLeague(ctx context.Context, leagueID string) (*model.League, error) {
	s, err := c.db.GetSeason(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error looking up league: %w", err)
	}
	l := leagueFromSeason(s)
	return &l, nil
}

// ListSeasons returns the distinct years with a tracked league, most recent
// first.
func (c *controller) ListSeasons(ctx context.Context) ([]int, error) {
	seasons, err := c.db.ListSeasons(ctx)
	if err != nil {
		return nil, err
	}

	years := make([]int, 0, len(seasons))
	for _, s := range seasons {
		if !slices.Contains(years, s.Season) {
			years = append(years, s.Season)
		}
	}
	slices.SortFunc(years, func(a, b int) int { return b - a })
	return years, nil
}

func (c *controller) ListPools(ctx context.Context, filter model.PoolFilter) ([]model.Pool, error) {
	return c.db.ListPools(ctx, filter)
}

func (c *controller) GetPool(ctx context.Context, leagueID, poolID string) (*model.Pool, error) {
	return c.db.GetPool(ctx, leagueID, poolID)
}

// GetLeaderboard ranks every eligible roster for a season long pool using the
// weeks completed so far.
func (c *controller) GetLeaderboard(ctx context.Context, leagueID, poolID string) ([]model.Standing, error) {
	season, err := c.db.GetSeason(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	p, err := c.db.GetPool(ctx, leagueID, poolID)
	if err != nil {
		return nil, err
	}
	d, err := pools.Lookup(p.Name)
	if err != nil {
		return nil, err
	}
	if !d.HasLeaderboard() {
		return nil, fmt.Errorf("error loading leaderboard for %s: %w", poolID, ErrNoLeaderboard)
	}

	a := &sleeperAdapter{c}
	snap, err := a.getSnapshot(ctx, season)
	if err != nil {
		return nil, err
	}
	standings, err := stats.Rank(d.Leaderboard, snap, d.RuleWeek(p), season.Optouts, pools.LeaderboardSize)
	if err != nil {
		return nil, err
	}

	users, err := c.db.ListUsers(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(users))
	for _, u := range users {
		names[u.RosterID] = u.Username
	}
	for i := range standings {
		standings[i].Username = names[standings[i].RosterID]
	}
	return standings, nil
}

func (c *controller) ListPayoutSeasons(ctx context.Context) ([]int, error) {
	return c.db.ListPayoutSeasons(ctx)
}

func (c *controller) ListPayoutSummaries(ctx context.Context, season int) ([]model.PayoutSummary, error) {
	return c.db.ListPayoutSummaries(ctx, season)
}

func (c *controller) ListPayoutDetails(ctx context.Context, season int, username string) ([]model.Payout, error) {
	return c.db.ListPayoutDetails(ctx, season, username)
}

func leagueFromSeason(s *model.Season) model.League {
	status := "in_season"
	switch {
	case s.Week == 0:
		status = "pre_season"
	case s.Week >= s.Calendar.ChampionshipWeek:
		status = "complete"
	}
	return model.League{
		LeagueID:     s.LeagueID,
		Name:         s.Name,
		Season:       s.Season,
		TotalRosters: s.TeamCount,
		Status:       status,
		Platform:     model.PlatformSleeper,
	}
}
