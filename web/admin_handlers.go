package web

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/ryan-gillies/commish/controller"
	"github.com/unrolled/render"
)

func setupSeasonHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		year, _ := strconv.Atoi(chi.URLParam(r, "year"))
		season, err := ctrl.SetupSeason(r.Context(), year)
		renderTrigger(w, render, season, err)
	}
}

func resolveSeasonHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pools, err := ctrl.ResolveSeason(r.Context(), chi.URLParam(r, "leagueID"))
		renderTrigger(w, render, pools, err)
	}
}

func syncUsersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := ctrl.SyncUsers(r.Context(), chi.URLParam(r, "leagueID"))
		renderTrigger(w, render, users, err)
	}
}

func resolvePoolHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := ctrl.ResolvePool(r.Context(), chi.URLParam(r, "leagueID"), chi.URLParam(r, "poolID"))
		renderTrigger(w, render, p, err)
	}
}

// propWinnerHandler sets the winner of a prop pool from the roster_id form
// value.
func propWinnerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		rosterID, err := strconv.Atoi(r.FormValue("roster_id"))
		if err != nil || rosterID <= 0 {
			msg := fmt.Sprintf("invalid roster_id: %q", r.FormValue("roster_id"))
			render.JSON(w, http.StatusBadRequest, errorResponse{Error: msg})
			return
		}

		p, err := ctrl.SetPropWinner(r.Context(), chi.URLParam(r, "leagueID"), chi.URLParam(r, "poolID"), rosterID)
		renderTrigger(w, render, p, err)
	}
}

func payPoolHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payout, err := ctrl.PayPool(r.Context(), chi.URLParam(r, "leagueID"), chi.URLParam(r, "poolID"))
		renderTrigger(w, render, payout, err)
	}
}

func forceUpdatePlayers(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.UpdatePlayers(r.Context()); err != nil {
			render.Text(w, http.StatusInternalServerError, fmt.Sprintf("error updating players: %v", err))
			return
		}

		render.Text(w, http.StatusOK, "update players completed successfully")
	}
}

// renderTrigger reports the result of an admin action. Every failure is a 500
// carrying the error message.
func renderTrigger(w http.ResponseWriter, render *render.Render, v any, err error) {
	if err != nil {
		log.Error().Err(err).Msg("admin action failed")
		render.JSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	render.JSON(w, http.StatusOK, v)
}
