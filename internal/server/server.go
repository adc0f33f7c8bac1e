// Package server exposes the bill scraper over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/law-makers/legisinfo/internal/reqctx"
	"github.com/law-makers/legisinfo/pkg/models"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// BillScraper is the extraction entry point the handlers depend on
type BillScraper interface {
	Scrape(ctx context.Context, billURL string) (*models.BillRecord, error)
}

// Options configures a Server
type Options struct {
	Addr            string
	AllowedOrigins  []string
	BillURLPrefix   string
	ShutdownTimeout time.Duration
}

// Server serves the bill API
type Server struct {
	scraper BillScraper
	opts    Options
	log     zerolog.Logger
	handler http.Handler
}

// New creates a Server and builds its handler chain
func New(scraper BillScraper, opts Options, logger zerolog.Logger) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{
		scraper: scraper,
		opts:    opts,
		log:     logger.With().Str("component", "server").Logger(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/bill", s.handleBill)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	s.handler = s.middleware(mux)
	return s
}

// Handler returns the full handler chain, middleware included
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) middleware(next http.Handler) http.Handler {
	h := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request handled")
	})(next)
	h = hlog.UserAgentHandler("user_agent")(h)
	h = hlog.RemoteAddrHandler("remote_addr")(h)
	h = reqctx.Middleware(h)
	h = hlog.NewHandler(s.log)(h)

	return cors.New(cors.Options{
		AllowedOrigins:   s.opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions, http.MethodHead},
		AllowedHeaders:   []string{"*"},
	}).Handler(h)
}

// Run listens on the configured address until ctx is cancelled, then
// drains in-flight requests for at most ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.opts.Addr).Msg("Listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
