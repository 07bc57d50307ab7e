package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
)

const (
	SleeperUserID = "605512390839918592"
	LeagueID      = "1048236965014081536"
)

//go:embed sleeperdata
var sleeperdata embed.FS

type FakeSleeperServer struct {
	s *httptest.Server
}

func NewFakeSleeperServer() *FakeSleeperServer {
	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/state/nfl", stateHandler)
		r.Get("/players/nfl", nflPlayersHandler)
		r.Get("/user/{userID}/leagues/nfl/{year}", userLeaguesHandler)

		r.Route("/league/{leagueID}", func(r chi.Router) {
			r.Use(knownLeague)
			r.Get("/", leagueHandler)
			r.Get("/rosters", fileHandler("rosters.json"))
			r.Get("/users", fileHandler("users.json"))
			r.Get("/winners_bracket", fileHandler("winners_bracket.json"))
			r.Get("/matchups/{week}", matchupsHandler)
		})
	})

	return &FakeSleeperServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeSleeperServer) Close() {
	f.s.Close()
}

func (f *FakeSleeperServer) URL() string {
	return f.s.URL
}

func stateHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "state.json")
}

func nflPlayersHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "players.json")
}

func userLeaguesHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	year := chi.URLParam(r, "year")

	if userID == SleeperUserID && year == "2024" {
		serveFile(w, "user_leagues.json")
	} else {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

// knownLeague answers requests for any league other than the test league the
// way sleeper does, with a 200 and a body of "null".
func knownLeague(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "leagueID") != LeagueID {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("null"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func leagueHandler(w http.ResponseWriter, r *http.Request) {
	serveFile(w, "league.json")
}

func matchupsHandler(w http.ResponseWriter, r *http.Request) {
	week := chi.URLParam(r, "week")
	switch week {
	case "1", "2", "3":
		serveFile(w, fmt.Sprintf("matchups_%s.json", week))
	default:
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("[]"))
	}
}

func fileHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		serveFile(w, name)
	}
}

func serveFile(w http.ResponseWriter, name string) {
	b, err := sleeperdata.ReadFile(fmt.Sprintf("sleeperdata/%s", name))
	if err != nil {
		log.Printf("error reading sleeperdata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
