// Package fetch retrieves upstream bill and member documents over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/law-makers/legisinfo/internal/engine"
	"github.com/law-makers/legisinfo/internal/proxy"
	"github.com/law-makers/legisinfo/internal/ratelimit"
	"github.com/law-makers/legisinfo/pkg/models"
	"github.com/rs/zerolog/log"
)

const defaultAccept = "application/xml,text/xml,text/html,application/xhtml+xml;q=0.9,*/*;q=0.8"

// Options configures a Fetcher
type Options struct {
	UserAgent    string
	Headers      map[string]string
	MaxBodyBytes int64
}

// Fetcher performs single GET requests with a shared client.
// The client's Timeout bounds every fetch.
type Fetcher struct {
	client  *http.Client
	limiter ratelimit.RateLimiter
	proxies *proxy.ProxyPool
	opts    Options
}

// New creates a Fetcher. limiter and proxies may be nil.
func New(client *http.Client, lim ratelimit.RateLimiter, proxies *proxy.ProxyPool, opts Options) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Fetcher{
		client:  client,
		limiter: lim,
		proxies: proxies,
		opts:    opts,
	}
}

// Name returns the name of this fetcher
func (f *Fetcher) Name() string {
	return "HTTPFetcher"
}

// Fetch retrieves url and returns its body. Non-2xx responses are errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*models.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	log.Debug().
		Str("url", url).
		Str("fetcher", f.Name()).
		Msg("Starting fetch")

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, url); err != nil {
			return nil, engine.NewEngineError(engine.ErrCodeNetworkError, "rate limiter wait failed", err).
				WithDetail("url", url)
		}
	}

	var proxyURL string
	if f.proxies != nil {
		proxyURL = f.proxies.GetNext()
		if proxyURL != "" {
			ctx = proxy.WithProxy(ctx, proxyURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, engine.NewEngineError(engine.ErrCodeValidation, "failed to create request", err).
			WithDetail("url", url)
	}

	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", defaultAccept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for key, value := range f.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if proxyURL != "" {
			f.proxies.MarkFailed(proxyURL)
		}
		return nil, classify(err, url)
	}
	defer resp.Body.Close()

	if proxyURL != "" {
		f.proxies.MarkHealthy(proxyURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a little so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, engine.NewEngineError(engine.ErrCodeNetworkError, "upstream returned non-success status",
			NewStatusError(resp.StatusCode, resp.Status)).
			WithDetail("url", url).
			WithDetail("status", resp.StatusCode)
	}

	reader := io.Reader(resp.Body)
	if f.opts.MaxBodyBytes > 0 {
		// one extra byte tells a body at the limit from one past it
		reader = io.LimitReader(resp.Body, f.opts.MaxBodyBytes+1)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to read response body: %w", err), url)
	}
	if f.opts.MaxBodyBytes > 0 && int64(len(body)) > f.opts.MaxBodyBytes {
		return nil, engine.NewEngineError(engine.ErrCodeInvalidContent, "response body exceeds limit", engine.ErrBodyTooLarge).
			WithDetail("url", url).
			WithDetail("max_body_bytes", f.opts.MaxBodyBytes)
	}

	responseTime := time.Since(start).Milliseconds()

	doc := &models.Document{
		URL:          url,
		StatusCode:   resp.StatusCode,
		ContentType:  resp.Header.Get("Content-Type"),
		Body:         body,
		FetchedAt:    time.Now(),
		ResponseTime: responseTime,
	}

	log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Int64("response_time_ms", responseTime).
		Msg("Fetch completed")

	return doc, nil
}

// classify maps a transport error to a TIMEOUT or NETWORK_ERROR engine error
func classify(err error, url string) error {
	if isTimeoutError(err) {
		return engine.NewEngineError(engine.ErrCodeTimeout, "request timed out", err).
			WithDetail("url", url)
	}
	return engine.NewEngineError(engine.ErrCodeNetworkError, "failed to fetch URL", err).
		WithDetail("url", url)
}

func isTimeoutError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
