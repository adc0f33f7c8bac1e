// Package ratelimit throttles outbound requests per upstream host.
package ratelimit

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter throttles requests keyed by the host of their URL
type RateLimiter interface {
	// Wait blocks until a request to urlStr may proceed or ctx is done.
	Wait(ctx context.Context, urlStr string) error

	// Allow reports whether a request to urlStr may proceed now, consuming a token if so.
	Allow(urlStr string) bool
}

// DomainLimiter keeps one token bucket per host name. Ports are ignored, so
// https://www.parl.ca and https://www.parl.ca:443 share a bucket.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	perHost rate.Limit
	burst   int
}

// NewDomainLimiter creates a limiter allowing requestsPerSecond per host with the given burst
func NewDomainLimiter(requestsPerSecond float64, burst int) *DomainLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5.0
	}
	if burst <= 0 {
		burst = 10
	}

	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		perHost: rate.Limit(requestsPerSecond),
		burst:   burst,
	}
}

// Wait blocks on the bucket of urlStr's host. URLs without a host are not throttled.
func (dl *DomainLimiter) Wait(ctx context.Context, urlStr string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if b := dl.bucket(urlStr); b != nil {
		return b.Wait(ctx)
	}
	return nil
}

// Allow takes a token from urlStr's host bucket if one is available
func (dl *DomainLimiter) Allow(urlStr string) bool {
	if b := dl.bucket(urlStr); b != nil {
		return b.Allow()
	}
	return true
}

// Hosts returns the number of hosts currently tracked
func (dl *DomainLimiter) Hosts() int {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	return len(dl.buckets)
}

func (dl *DomainLimiter) bucket(urlStr string) *rate.Limiter {
	host := hostKey(urlStr)
	if host == "" {
		return nil
	}

	dl.mu.Lock()
	defer dl.mu.Unlock()

	b, ok := dl.buckets[host]
	if !ok {
		b = rate.NewLimiter(dl.perHost, dl.burst)
		dl.buckets[host] = b
	}
	return b
}

func hostKey(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
