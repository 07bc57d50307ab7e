package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ryan-gillies/commish/controller"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

//go:embed templates
var templates embed.FS

type Server struct {
	server *http.Server
}

// NewServer returns the web server. The admin routes are only served when
// admins is not empty.
func NewServer(port int, ctrl controller.C, admins map[string]string) (*Server, error) {
	render := newRender()
	router := getRouter(ctrl, render, admins)

	s := &Server{
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	return s, nil
}

func (s *Server) ListenAndServe(shutdown chan bool, wg *sync.WaitGroup) {
	go func() {
		defer wg.Done()

		// Wait for the shutdown signal and safely close the server.
		<-shutdown

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			log.Fatal().Err(err).Msg("fatal error shutting down server")
		}
	}()

	log.Info().Str("addr", s.server.Addr).Msg("web server is listening")
	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("fatal error with server")
	}
}

func newRender() *render.Render {
	return render.New(render.Options{
		Directory: "templates",
		Layout:    "layout",
		FileSystem: &render.EmbedFileSystem{
			FS: templates,
		},
		Funcs: []template.FuncMap{
			{
				"money":  moneyFormatter,
				"date":   dateFormatter,
				"status": statusFormatter,
			},
		},
	})
}

func moneyFormatter(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func dateFormatter(t time.Time) string {
	if t.IsZero() {
		return "Never"
	}
	return t.Format("2006-01-02")
}

func statusFormatter(winner string, paid bool) string {
	switch {
	case paid:
		return "Paid"
	case winner != "":
		return "Resolved"
	default:
		return "Open"
	}
}
