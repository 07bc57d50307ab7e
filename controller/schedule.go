package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const cycleTimeout = 5 * time.Minute

func (c *controller) RunResolutionCycle(ctx context.Context) error {
	start := c.clock.Now()

	seasons, err := c.db.ListSeasons(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for i := range seasons {
		s := &seasons[i]
		if err := c.refreshWeek(ctx, s); err != nil {
			errs = append(errs, err)
			continue
		}

		if _, err := c.resolveSeason(ctx, s); err != nil {
			errs = append(errs, err)
		}

		if c.opts.AutoPay && c.payments != nil {
			payouts, err := c.payResolved(ctx, s.LeagueID)
			if err != nil {
				errs = append(errs, fmt.Errorf("error paying season %d: %w", s.Season, err))
			}
			log.Info().Str("league_id", s.LeagueID).Int("payouts", len(payouts)).Msg("season paid")
		}
	}

	log.Info().
		Int("seasons", len(seasons)).
		Dur("took", c.clock.Now().Sub(start)).
		Msg("resolution cycle finished")
	return errors.Join(errs...)
}

// NewScheduler returns a stopped cron scheduler that runs a resolution cycle
// on the given schedule. A cycle is skipped while the previous one is still
// running.
func NewScheduler(c C, spec string) (*cron.Cron, error) {
	s := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := s.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
		defer cancel()

		if err := c.RunResolutionCycle(ctx); err != nil {
			log.Error().Err(err).Msg("error running resolution cycle")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("error scheduling resolution cycle %q: %w", spec, err)
	}
	return s, nil
}
