package fetch

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/law-makers/legisinfo/internal/proxy"
)

// ClientOptions configures the shared outbound HTTP client
type ClientOptions struct {
	Timeout             time.Duration
	MaxRedirects        int
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	InsecureSkipVerify  bool
}

// NewClient builds an http.Client with keep-alive pooling, a redirect cap
// and per-request proxy selection.
func NewClient(opts ClientOptions) *http.Client {
	transport := &http.Transport{
		Proxy:               proxy.FromContext,
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
		DisableKeepAlives:   false,
	}
	if opts.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	maxRedirects := opts.MaxRedirects
	return &http.Client{
		Timeout:   opts.Timeout,
		Transport: transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// zero disables following; the 3xx reaches the caller as a status error
			if maxRedirects == 0 {
				return http.ErrUseLastResponse
			}
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}
