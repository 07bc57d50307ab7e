package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/ryan-gillies/commish/controller"
	"github.com/ryan-gillies/commish/db"
	"github.com/ryan-gillies/commish/model"
	"github.com/unrolled/render"
)

type errorResponse struct {
	Error string `json:"error"`
}

func dashboardHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasons, err := ctrl.ListSeasons(r.Context())
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "error", err.Error())
			return
		}

		data := map[string]any{
			"seasons": seasons,
		}
		if len(seasons) > 0 {
			season := seasons[0]
			if s := r.URL.Query().Get("season"); s != "" {
				if season, err = strconv.Atoi(s); err != nil {
					render.HTML(w, http.StatusBadRequest, "error", fmt.Sprintf("invalid season: %s", s))
					return
				}
			}

			pools, err := ctrl.ListPools(r.Context(), model.PoolFilter{Season: season})
			if err != nil {
				render.HTML(w, http.StatusInternalServerError, "error", err.Error())
				return
			}
			data["season"] = season
			data["pools"] = pools
		}

		render.HTML(w, http.StatusOK, "dashboard", data)
	}
}

func leaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context())
		renderList(w, render, leagues, err)
	}
}

func getLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := ctrl.GetLeague(r.Context(), chi.URLParam(r, "leagueID"))
		renderItem(w, render, l, err)
	}
}

func seasonsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasons, err := ctrl.ListSeasons(r.Context())
		renderList(w, render, seasons, err)
	}
}

// poolsHandler lists pools, optionally narrowed by the league_id, season and
// username query parameters.
func poolsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := model.PoolFilter{
			LeagueID: q.Get("league_id"),
			Username: q.Get("username"),
		}
		if s := q.Get("season"); s != "" {
			season, err := strconv.Atoi(s)
			if err != nil {
				render.JSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid season: %s", s)})
				return
			}
			filter.Season = season
		}

		pools, err := ctrl.ListPools(r.Context(), filter)
		renderList(w, render, pools, err)
	}
}

func getPoolHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := ctrl.GetPool(r.Context(), chi.URLParam(r, "leagueID"), chi.URLParam(r, "poolID"))
		renderItem(w, render, p, err)
	}
}

func leaderboardHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := ctrl.GetLeaderboard(r.Context(), chi.URLParam(r, "leagueID"), chi.URLParam(r, "poolID"))
		if isNotFound(err) {
			render.JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
			return
		}
		renderList(w, render, standings, err)
	}
}

func payoutSeasonsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seasons, err := ctrl.ListPayoutSeasons(r.Context())
		renderList(w, render, seasons, err)
	}
}

func payoutSummariesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The route only matches digits.
		season, _ := strconv.Atoi(chi.URLParam(r, "season"))
		summaries, err := ctrl.ListPayoutSummaries(r.Context(), season)
		renderList(w, render, summaries, err)
	}
}

func payoutDetailsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		season, _ := strconv.Atoi(chi.URLParam(r, "season"))
		payouts, err := ctrl.ListPayoutDetails(r.Context(), season, chi.URLParam(r, "username"))
		renderList(w, render, payouts, err)
	}
}

// renderList writes a JSON list, an empty one rather than null when there are
// no items.
func renderList[T any](w http.ResponseWriter, render *render.Render, items []T, err error) {
	if err != nil {
		log.Error().Err(err).Msg("error loading list")
		render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	if items == nil {
		items = []T{}
	}
	render.JSON(w, http.StatusOK, items)
}

func renderItem[T any](w http.ResponseWriter, render *render.Render, item *T, err error) {
	switch {
	case isNotFound(err):
		render.JSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case err != nil:
		log.Error().Err(err).Msg("error loading item")
		render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		render.JSON(w, http.StatusOK, item)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, db.ErrSeasonNotFound) ||
		errors.Is(err, db.ErrPoolNotFound) ||
		errors.Is(err, controller.ErrNoLeaderboard)
}
