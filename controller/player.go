package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

func (c *controller) UpdatePlayers(ctx context.Context) error {
	start := c.clock.Now()
	log.Info().Time("start", start).Msg("update players starting")

	players, err := c.sleeper.LoadPlayers(ctx)
	if err != nil {
		return err
	}

	if err := c.db.SavePlayers(ctx, players); err != nil {
		return fmt.Errorf("error saving %d players: %w", len(players), err)
	}

	log.Info().Int("players", len(players)).Dur("took", c.clock.Now().Sub(start)).Msg("load players finished")
	return nil
}

func (c *controller) RunPeriodicPlayerUpdates(frequency time.Duration, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := time.NewTicker(frequency)
	defer ticker.Stop()
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			c.updatePlayersWithTimeout()
		}
	}
}

func (c *controller) updatePlayersWithTimeout() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.UpdatePlayers(ctx); err != nil {
		log.Error().Err(err).Msg("error updating players")
	}
}
