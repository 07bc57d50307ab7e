package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ryan-gillies/commish/controller"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, admins map[string]string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", dashboardHandler(ctrl, render))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/leagues", leaguesHandler(ctrl, render))
		r.Get("/leagues/{leagueID}", getLeagueHandler(ctrl, render))
		r.Get("/seasons", seasonsHandler(ctrl, render))

		r.Route("/pools", func(r chi.Router) {
			r.Get("/", poolsHandler(ctrl, render))
			r.Get("/{leagueID}/{poolID}", getPoolHandler(ctrl, render))
			r.Get("/{leagueID}/{poolID}/leaderboard", leaderboardHandler(ctrl, render))
		})

		r.Route("/payouts", func(r chi.Router) {
			r.Get("/seasons", payoutSeasonsHandler(ctrl, render))
			r.Get("/{season:\\d+}", payoutSummariesHandler(ctrl, render))
			r.Get("/{season:\\d+}/{username}", payoutDetailsHandler(ctrl, render))
		})

		if len(admins) == 0 {
			return
		}
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.BasicAuth("commish", admins))
			r.Use(middleware.Timeout(60 * time.Second)) // Set a longer timeout for /admin actions

			r.Post("/seasons/{year:\\d+}", setupSeasonHandler(ctrl, render))
			r.Post("/leagues/{leagueID}/resolve", resolveSeasonHandler(ctrl, render))
			r.Post("/leagues/{leagueID}/users", syncUsersHandler(ctrl, render))
			r.Post("/pools/{leagueID}/{poolID}/resolve", resolvePoolHandler(ctrl, render))
			r.Post("/pools/{leagueID}/{poolID}/winner", propWinnerHandler(ctrl, render))
			r.Post("/pools/{leagueID}/{poolID}/pay", payPoolHandler(ctrl, render))
			r.Post("/players", forceUpdatePlayers(ctrl, render))
		})
	})

	return r
}
