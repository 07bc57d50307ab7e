package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/ryan-gillies/commish/model"
	"github.com/ryan-gillies/commish/pools"
	"github.com/ryan-gillies/commish/stats"
)

// snapshotLoader builds the season snapshot the first time it is needed and
// reuses it for every pool resolved in the same call.
type snapshotLoader struct {
	a      *sleeperAdapter
	season *model.Season
	snap   *stats.Snapshot
}

func (l *snapshotLoader) get(ctx context.Context) (*stats.Snapshot, error) {
	if l.snap != nil {
		return l.snap, nil
	}
	snap, err := l.a.getSnapshot(ctx, l.season)
	if err != nil {
		return nil, err
	}
	l.snap = snap
	return snap, nil
}

func (c *controller) ResolvePool(ctx context.Context, leagueID, poolID string) (*model.Pool, error) {
	season, err := c.db.GetSeason(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if err := c.refreshWeek(ctx, season); err != nil {
		return nil, err
	}

	p, err := c.db.GetPool(ctx, leagueID, poolID)
	if err != nil {
		return nil, err
	}

	// Per-winner pools are resolved through the pool they were split from.
	if p.ParentPoolID != "" {
		parent, err := c.db.GetPool(ctx, leagueID, p.ParentPoolID)
		if err != nil {
			return nil, err
		}
		loader := &snapshotLoader{a: &sleeperAdapter{c}, season: season}
		if err := c.resolvePool(ctx, season, parent, loader); err != nil {
			return nil, err
		}
		return c.db.GetPool(ctx, leagueID, poolID)
	}

	loader := &snapshotLoader{a: &sleeperAdapter{c}, season: season}
	if err := c.resolvePool(ctx, season, p, loader); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *controller) ResolveSeason(ctx context.Context, leagueID string) ([]model.Pool, error) {
	season, err := c.db.GetSeason(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if err := c.refreshWeek(ctx, season); err != nil {
		return nil, err
	}
	return c.resolveSeason(ctx, season)
}

func (c *controller) resolveSeason(ctx context.Context, season *model.Season) ([]model.Pool, error) {
	all, err := c.db.ListPools(ctx, model.PoolFilter{LeagueID: season.LeagueID})
	if err != nil {
		return nil, err
	}

	split := make(map[string]bool)
	for _, p := range all {
		if p.ParentPoolID != "" {
			split[p.ParentPoolID] = true
		}
	}

	loader := &snapshotLoader{a: &sleeperAdapter{c}, season: season}
	resolved := make([]model.Pool, 0, 8)
	var errs []error
	for i := range all {
		p := &all[i]
		if p.Paid || p.Winner != "" || p.ParentPoolID != "" || split[p.PoolID] {
			continue
		}
		if p.Week > season.Week {
			continue
		}

		err := c.resolvePool(ctx, season, p, loader)
		switch {
		case err == nil:
			resolved = append(resolved, *p)
		case errors.Is(err, ErrManualPool), errors.Is(err, ErrWeekNotAvailable):
			log.Debug().Str("league_id", season.LeagueID).Str("pool_id", p.PoolID).Err(err).Msg("pool skipped")
		default:
			log.Error().Str("league_id", season.LeagueID).Str("pool_id", p.PoolID).Err(err).Msg("error resolving pool")
			errs = append(errs, fmt.Errorf("error resolving pool %s: %w", p.PoolID, err))
		}
	}

	log.Info().
		Str("league_id", season.LeagueID).
		Int("week", season.Week).
		Int("resolved", len(resolved)).
		Int("failed", len(errs)).
		Msg("season resolved")
	return resolved, errors.Join(errs...)
}

// resolvePool runs the pool's ranking rule and records the winner. Special
// week pools record one child pool per winner instead.
func (c *controller) resolvePool(ctx context.Context, season *model.Season, p *model.Pool, loader *snapshotLoader) error {
	if p.Paid {
		return fmt.Errorf("error resolving pool %s: %w", p.PoolID, ErrAlreadyPaid)
	}

	d, err := pools.Lookup(p.Name)
	if err != nil {
		return err
	}
	if d.Rule == stats.RuleManual {
		return fmt.Errorf("error resolving pool %s: %w", p.PoolID, ErrManualPool)
	}
	if p.Week > season.Week {
		return fmt.Errorf("error resolving pool %s for week %d, last completed week is %d: %w",
			p.PoolID, p.Week, season.Week, ErrWeekNotAvailable)
	}

	snap, err := loader.get(ctx)
	if err != nil {
		return err
	}
	if (d.Subtype == model.SubtypeWeekly || d.Subtype == model.SubtypeSpecialWeek) && !snap.HasWeek(p.Week) {
		return fmt.Errorf("error resolving pool %s, no matchups for week %d: %w", p.PoolID, p.Week, ErrWeekNotAvailable)
	}

	topN := 1
	if p.IsSplit() {
		topN = 0
	}
	standings, err := stats.Rank(d.Rule, snap, d.RuleWeek(p), season.Optouts, topN)
	if err != nil {
		return err
	}
	if len(standings) == 0 {
		if d.Subtype == model.SubtypePlayoff {
			return fmt.Errorf("error resolving pool %s, playoff match not decided: %w", p.PoolID, ErrWeekNotAvailable)
		}
		return fmt.Errorf("error resolving pool %s: %w", p.PoolID, ErrNoWinner)
	}

	for i := range standings {
		u, err := c.db.GetUserByRoster(ctx, season.LeagueID, standings[i].RosterID)
		if err != nil {
			return fmt.Errorf("error looking up the winner of pool %s: %w", p.PoolID, err)
		}
		standings[i].Username = u.Username
	}

	if p.IsSplit() {
		return c.saveSplit(ctx, p, standings)
	}

	winner := standings[0]
	p.Winner = winner.Username
	p.WinnerRosterID = winner.RosterID
	p.WinnerPayload = &winner
	if err := c.db.SetPoolWinner(ctx, p); err != nil {
		return err
	}

	log.Info().
		Str("league_id", p.LeagueID).
		Str("pool_id", p.PoolID).
		Int("week", p.Week).
		Str("winner", p.Winner).
		Str("payout", p.PayoutAmount.StringFixed(2)).
		Msg("pool resolved")
	return nil
}

func (c *controller) saveSplit(ctx context.Context, parent *model.Pool, winners []model.Standing) error {
	children := pools.Split(parent, winners)
	for i, child := range children {
		w := winners[i]
		child.Winner = w.Username
		child.WinnerRosterID = w.RosterID
		child.WinnerPayload = &w
	}

	if err := c.db.SaveChildPools(ctx, children); err != nil {
		return err
	}

	for _, child := range children {
		log.Info().
			Str("league_id", child.LeagueID).
			Str("pool_id", child.PoolID).
			Int("week", child.Week).
			Str("winner", child.Winner).
			Str("payout", child.PayoutAmount.StringFixed(2)).
			Msg("pool resolved")
	}
	return nil
}

func (c *controller) SetPropWinner(ctx context.Context, leagueID, poolID string, rosterID int) (*model.Pool, error) {
	p, err := c.db.GetPool(ctx, leagueID, poolID)
	if err != nil {
		return nil, err
	}
	d, err := pools.Lookup(p.Name)
	if err != nil {
		return nil, err
	}
	if d.Rule != stats.RuleManual {
		return nil, fmt.Errorf("error setting winner of pool %s: %w", poolID, ErrNotManual)
	}
	if p.Paid {
		return nil, fmt.Errorf("error setting winner of pool %s: %w", poolID, ErrAlreadyPaid)
	}

	u, err := c.db.GetUserByRoster(ctx, leagueID, rosterID)
	if err != nil {
		return nil, fmt.Errorf("error looking up the winner of pool %s: %w", poolID, err)
	}

	p.Winner = u.Username
	p.WinnerRosterID = rosterID
	p.WinnerPayload = &model.Standing{Rank: 1, RosterID: rosterID, Username: u.Username}
	if err := c.db.SetPoolWinner(ctx, p); err != nil {
		return nil, err
	}

	log.Info().Str("league_id", leagueID).Str("pool_id", poolID).Str("winner", p.Winner).Msg("prop winner set")
	return p, nil
}
