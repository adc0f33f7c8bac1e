package proxy

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// failureCooldown is how long a failed proxy is skipped
const failureCooldown = 5 * time.Minute

// ProxyPool manages a list of proxies with rotation and failure tracking
type ProxyPool struct {
	proxies []string
	index   int
	mu      sync.Mutex
	failed  map[string]time.Time
	now     func() time.Time
}

// NewProxyPool creates a new ProxyPool. A nil pool is returned for an empty list.
func NewProxyPool(proxies []string) *ProxyPool {
	if len(proxies) == 0 {
		return nil
	}
	return &ProxyPool{
		proxies: proxies,
		failed:  make(map[string]time.Time),
		now:     time.Now,
	}
}

// Len returns the number of configured proxies
func (p *ProxyPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.proxies)
}

// GetNext returns the next healthy proxy from the pool.
// When every proxy has failed recently the next one in rotation is returned anyway.
func (p *ProxyPool) GetNext() string {
	if p == nil {
		return ""
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.proxies) == 0 {
		return ""
	}

	for i := 0; i < len(p.proxies); i++ {
		candidate := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)

		failTime, ok := p.failed[candidate]
		if !ok {
			return candidate
		}
		if p.now().Sub(failTime) >= failureCooldown {
			delete(p.failed, candidate)
			return candidate
		}
	}

	candidate := p.proxies[p.index]
	p.index = (p.index + 1) % len(p.proxies)
	return candidate
}

// MarkFailed marks a proxy as failed so it will be skipped for a while
func (p *ProxyPool) MarkFailed(proxy string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failed[proxy] = p.now()
}

// MarkHealthy clears the failure status of a proxy
func (p *ProxyPool) MarkHealthy(proxy string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.failed, proxy)
}

type ctxKey struct{}

// WithProxy returns a context that routes requests made with it through proxyURL
func WithProxy(ctx context.Context, proxyURL string) context.Context {
	return context.WithValue(ctx, ctxKey{}, proxyURL)
}

// FromContext is an http.Transport Proxy func. It uses the proxy stored on the
// request context and falls back to the environment (HTTP_PROXY and friends).
func FromContext(req *http.Request) (*url.URL, error) {
	if p, ok := req.Context().Value(ctxKey{}).(string); ok && p != "" {
		return url.Parse(p)
	}
	return http.ProxyFromEnvironment(req)
}
