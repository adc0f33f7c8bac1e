package config

import (
	"fmt"
	"net/url"

	urlutil "github.com/law-makers/legisinfo/internal/utils/url"
)

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be > 0")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.Format != FormatXML && c.Format != FormatHTML {
		return fmt.Errorf("format must be %q or %q, got %q", FormatXML, FormatHTML, c.Format)
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit must be > 0")
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be >= 1")
	}
	if c.MaxRedirects < 0 {
		return fmt.Errorf("max redirects must be >= 0")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body size must be > 0")
	}
	if err := urlutil.ValidateURL(c.BillURLPrefix); err != nil {
		return fmt.Errorf("bill url prefix: %w", err)
	}
	if err := urlutil.ValidateURL(c.MembersBaseURL); err != nil {
		return fmt.Errorf("members base url: %w", err)
	}
	for _, p := range c.Proxies {
		u, err := url.Parse(p)
		if err != nil || u.Host == "" {
			return fmt.Errorf("invalid proxy %q", p)
		}
		switch u.Scheme {
		case "http", "https", "socks5":
		default:
			return fmt.Errorf("unsupported proxy scheme %q", u.Scheme)
		}
	}
	return nil
}
