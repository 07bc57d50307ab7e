package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/ryan-gillies/commish/config"
	"github.com/ryan-gillies/commish/controller"
	"github.com/ryan-gillies/commish/db"
	"github.com/ryan-gillies/commish/payment"
	"github.com/ryan-gillies/commish/sleeper"
	"github.com/ryan-gillies/commish/web"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatal().Err(err).Msg("error loading .env file")
	}

	cfg, err := config.LoadApp()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.LogLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	clock := clock.New()
	db, err := db.New(context.Background(), cfg.ConnString, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to DB")
	}

	sleeperClient, err := sleeper.New(cfg.SleeperURL)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating sleeper client")
	}

	var payments payment.Client
	if cfg.PaymentsEnabled() {
		payments = payment.New(cfg.PaymentURL, cfg.PaymentAccessToken)
	} else {
		log.Warn().Msg("no payment provider configured, pools will not be paid")
	}

	ctrl, err := controller.New(clock, sleeperClient, db, payments, controller.Options{
		SeasonConfigDir: cfg.SeasonConfigDir,
		AutoPay:         cfg.AutoPay,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating a new controller")
	}

	var admins map[string]string
	if cfg.AdminEnabled() {
		admins = map[string]string{cfg.AdminUser: cfg.AdminPassword}
	}
	server, err := web.NewServer(cfg.Port, ctrl, admins)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating new web server")
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Error().Msg("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Setup a job that updates the players database from sleeper every 24-hours
	wg.Add(1)
	go ctrl.RunPeriodicPlayerUpdates(24*time.Hour, shutdown, wg)

	if cfg.ResolveSchedule != "" {
		scheduler, err := controller.NewScheduler(ctrl, cfg.ResolveSchedule)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating resolution scheduler")
		}
		scheduler.Start()
		log.Info().Str("schedule", cfg.ResolveSchedule).Msg("resolution cycle scheduled")

		wg.Add(1)
		go func() {
			defer wg.Done()
			<-shutdown
			// Wait for a running cycle to finish.
			<-scheduler.Stop().Done()
		}()
	}

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Info().Msg("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
