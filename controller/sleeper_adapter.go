package controller

import (
	"context"
	"fmt"
	"slices"

	"github.com/ryan-gillies/commish/model"
	"github.com/ryan-gillies/commish/stats"
)

type sleeperAdapter struct {
	c *controller
}

// getSnapshot loads every completed regular season week of the league plus the
// playoff bracket and derives the season statistics from them.
func (a *sleeperAdapter) getSnapshot(ctx context.Context, s *model.Season) (*stats.Snapshot, error) {
	last := min(s.Week, s.Calendar.LastRegularWeek)

	matchups := make(map[int][]model.MatchupEntry)
	starters := make(map[string]bool)
	for week := s.Calendar.OpeningWeek; week <= last; week++ {
		entries, err := a.c.sleeper.GetMatchups(ctx, s.LeagueID, week)
		if err != nil {
			return nil, fmt.Errorf("error loading week %d matchups for %s: %w", week, s.LeagueID, err)
		}
		matchups[week] = entries
		for _, e := range entries {
			for _, id := range e.Starters {
				starters[id] = true
			}
		}
	}

	rosters, err := a.c.sleeper.GetRosters(ctx, s.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading rosters for %s: %w", s.LeagueID, err)
	}

	bracket, err := a.c.sleeper.GetWinnersBracket(ctx, s.LeagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading playoff bracket for %s: %w", s.LeagueID, err)
	}

	ids := make([]string, 0, len(starters))
	for id := range starters {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	players, err := a.c.db.GetPlayers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error loading players: %w", err)
	}

	return stats.NewSnapshot(stats.Input{
		Week:     last,
		Matchups: matchups,
		Rosters:  rosters,
		Players:  players,
		Bracket:  bracket,
	}), nil
}

// getOptouts maps the owner ids of opted out users to their roster ids.
func (a *sleeperAdapter) getOptouts(rosters []model.Roster, owners []string) []int {
	optouts := make([]int, 0, len(owners))
	for _, r := range rosters {
		if slices.Contains(owners, r.OwnerID) {
			optouts = append(optouts, r.RosterID)
		}
	}
	slices.Sort(optouts)
	return optouts
}

// getUsers joins the league users to the rosters they own. Users without a
// roster are dropped.
func (a *sleeperAdapter) getUsers(ctx context.Context, leagueID string) ([]model.User, error) {
	rosters, err := a.c.sleeper.GetRosters(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading rosters for %s: %w", leagueID, err)
	}
	users, err := a.c.sleeper.GetUsers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading users for %s: %w", leagueID, err)
	}

	owners := make(map[string]int, len(rosters))
	for _, r := range rosters {
		if r.OwnerID != "" {
			owners[r.OwnerID] = r.RosterID
		}
	}

	result := make([]model.User, 0, len(rosters))
	for _, u := range users {
		rosterID, found := owners[u.UserID]
		if !found {
			continue
		}
		u.RosterID = rosterID
		result = append(result, u)
	}
	slices.SortFunc(result, func(a, b model.User) int {
		return a.RosterID - b.RosterID
	})
	return result, nil
}

// getLeagueID returns the configured league, or the first of the user's
// leagues for the season when none is configured.
func (a *sleeperAdapter) getLeagueID(ctx context.Context, userID, configured string, year int) (string, error) {
	if configured != "" {
		return configured, nil
	}
	leagues, err := a.c.sleeper.GetLeaguesForUser(ctx, userID, year)
	if err != nil {
		return "", fmt.Errorf("error loading %d leagues for %s: %w", year, userID, err)
	}
	if len(leagues) == 0 {
		return "", fmt.Errorf("%w %d", ErrNoLeague, year)
	}
	return leagues[0].LeagueID, nil
}

// getCompletedWeek returns the last week of the season with final scores.
func (a *sleeperAdapter) getCompletedWeek(ctx context.Context, s *model.Season) (int, error) {
	state, err := a.c.sleeper.GetState(ctx)
	if err != nil {
		return 0, fmt.Errorf("error loading nfl state: %w", err)
	}
	return state.CompletedWeek(s.Season, s.Calendar), nil
}
