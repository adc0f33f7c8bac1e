package config

import (
	"time"

	"github.com/law-makers/legisinfo/pkg/models"
)

// Default constants for application configuration
const (
	DefaultLogLevel            = "info"
	DefaultJSONLog             = false
	DefaultHost                = "0.0.0.0"
	DefaultPort                = 8000
	DefaultUserAgent           = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultHTTPTimeout         = 30 * time.Second
	DefaultShutdownTimeout     = 10 * time.Second
	DefaultMaxRedirects        = 5
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 20
	DefaultRateLimitRPS        = 5.0
	DefaultRateLimitBurst      = 10
	DefaultMaxBodyBytes        = 10 * 1024 * 1024 // 10MB
	DefaultFormat              = FormatXML
	DefaultBillURLPrefix       = "https://www.parl.ca/legisinfo/en/bill/"
	DefaultMembersBaseURL      = "https://www.ourcommons.ca/members/en"

	// EnvPrefix namespaces environment overrides, e.g. LEGISINFO_PORT
	EnvPrefix = "LEGISINFO"
)

// Document formats for the bill record
const (
	FormatXML  = string(models.FormatXML)
	FormatHTML = string(models.FormatHTML)
)

// DefaultAllowedOrigins permits every origin
var DefaultAllowedOrigins = []string{"*"}

// Configuration keys shared by viper, env vars and config files
const (
	keyLogLevel            = "log_level"
	keyJSON                = "json"
	keyHost                = "host"
	keyPort                = "port"
	keyAllowedOrigins      = "allowed_origins"
	keyTimeout             = "timeout"
	keyShutdownTimeout     = "shutdown_timeout"
	keyUserAgent           = "user_agent"
	keyProxies             = "proxies"
	keyHeaders             = "headers"
	keyRateLimitRPS        = "rate_limit_rps"
	keyRateLimitBurst      = "rate_limit_burst"
	keyMaxRedirects        = "max_redirects"
	keyMaxIdleConns        = "max_idle_conns"
	keyMaxIdleConnsPerHost = "max_idle_conns_per_host"
	keyInsecureSkipVerify  = "insecure_skip_verify"
	keyMaxBodyBytes        = "max_body_bytes"
	keyFormat              = "format"
	keyBillURLPrefix       = "bill_url_prefix"
	keyMembersBaseURL      = "members_base_url"
)
