// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/law-makers/legisinfo/internal/config"
	"github.com/law-makers/legisinfo/internal/engine"
	"github.com/law-makers/legisinfo/internal/engine/htmlpage"
	"github.com/law-makers/legisinfo/internal/engine/sponsor"
	"github.com/law-makers/legisinfo/internal/engine/xmlfeed"
	"github.com/law-makers/legisinfo/internal/fetch"
	"github.com/law-makers/legisinfo/internal/proxy"
	"github.com/law-makers/legisinfo/internal/ratelimit"
	"github.com/law-makers/legisinfo/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once at startup and shared across all CLI commands.
// Use Close() to ensure proper resource cleanup on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	RateLimiter ratelimit.RateLimiter
	Proxies     *proxy.ProxyPool
	HTTPClient  *http.Client
	Fetcher     *fetch.Fetcher
	Resolver    *sponsor.Resolver
	Scraper     *engine.BillScraper
	startTime   time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the rate limiter for domain-based request throttling
//   - Creates the proxy pool when proxies are configured
//   - Initializes the HTTP client with timeouts, redirect cap and connection pooling
//   - Creates the bill scraper for the configured document format
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := NewLogger(cfg, os.Stderr)
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	rateLimiter := ratelimit.NewDomainLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	proxies := proxy.NewProxyPool(cfg.Proxies)
	if proxies != nil {
		logger.Debug().Int("proxies", proxies.Len()).Msg("Proxy pool initialized")
	}

	httpClient := fetch.NewClient(fetch.ClientOptions{
		Timeout:             cfg.HTTPTimeout,
		MaxRedirects:        cfg.MaxRedirects,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		InsecureSkipVerify:  cfg.InsecureSkipVerify,
	})
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Int("max_redirects", cfg.MaxRedirects).
		Msg("HTTP client initialized")

	fetcher := fetch.New(httpClient, rateLimiter, proxies, fetch.Options{
		UserAgent:    cfg.UserAgent,
		Headers:      cfg.Headers,
		MaxBodyBytes: cfg.MaxBodyBytes,
	})

	extractor, err := NewExtractor(models.DocumentFormat(cfg.Format))
	if err != nil {
		return nil, err
	}
	resolver := sponsor.NewResolver(fetcher, cfg.MembersBaseURL)
	scraper := engine.NewBillScraper(fetcher, extractor, resolver)
	logger.Debug().Str("scraper", scraper.Name()).Msg("Scraper initialized")

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		RateLimiter: rateLimiter,
		Proxies:     proxies,
		HTTPClient:  httpClient,
		Fetcher:     fetcher,
		Resolver:    resolver,
		Scraper:     scraper,
		startTime:   time.Now(),
	}

	logger.Debug().Msg("Application initialized successfully")
	return app, nil
}

// NewLogger builds the process logger: console output unless JSON is requested
func NewLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.LogLevel))

	if !cfg.JSONLog {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel maps a configured level name to a zerolog level
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewExtractor returns the field extractor for a document format
func NewExtractor(format models.DocumentFormat) (engine.Extractor, error) {
	switch format {
	case models.FormatXML, "":
		return xmlfeed.New(), nil
	case models.FormatHTML:
		return htmlpage.New(), nil
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

// Close releases the application's resources.
// Idle upstream connections are closed; in-flight requests are not interrupted.
func (a *Application) Close(ctx context.Context) error {
	if a == nil {
		return nil
	}

	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}
