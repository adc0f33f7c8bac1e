// Package config loads legisinfo settings from defaults, an optional file,
// LEGISINFO_* environment variables and CLI flags, in increasing priority.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/law-makers/legisinfo/internal/utils/headers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// Server
	Host            string
	Port            int
	AllowedOrigins  []string
	ShutdownTimeout time.Duration

	// HTTP/Scraping
	HTTPTimeout         time.Duration
	UserAgent           string
	Proxies             []string
	Headers             map[string]string
	MaxRedirects        int // 0 returns the first 3xx instead of following it
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	InsecureSkipVerify  bool
	MaxBodyBytes        int64

	// Rate Limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Bill sources
	Format         string
	BillURLPrefix  string
	MembersBaseURL string
}

// Addr returns the listen address of the server
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Default returns a Config populated only from defaults
func Default() *Config {
	return decode(newViper())
}

// Load builds a Config by combining defaults, an optional config file, environment variables, and CLI flags.
// Caller should pass the executing *cobra.Command so its flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	v := newViper()

	if cmd != nil {
		flags := cmd.Flags()
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}

		if path, _ := flags.GetString(FlagConfig); path != "" {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}

		// -v and -q win over any configured level
		if verbose, _ := flags.GetBool(FlagVerbose); verbose {
			v.Set(keyLogLevel, "debug")
		} else if quiet, _ := flags.GetBool(FlagQuiet); quiet {
			v.Set(keyLogLevel, "error")
		}
	}

	cfg := decode(v)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(keyLogLevel, DefaultLogLevel)
	v.SetDefault(keyJSON, DefaultJSONLog)
	v.SetDefault(keyHost, DefaultHost)
	v.SetDefault(keyPort, DefaultPort)
	v.SetDefault(keyAllowedOrigins, DefaultAllowedOrigins)
	v.SetDefault(keyTimeout, DefaultHTTPTimeout)
	v.SetDefault(keyShutdownTimeout, DefaultShutdownTimeout)
	v.SetDefault(keyUserAgent, DefaultUserAgent)
	v.SetDefault(keyProxies, []string{})
	v.SetDefault(keyHeaders, []string{})
	v.SetDefault(keyRateLimitRPS, DefaultRateLimitRPS)
	v.SetDefault(keyRateLimitBurst, DefaultRateLimitBurst)
	v.SetDefault(keyMaxRedirects, DefaultMaxRedirects)
	v.SetDefault(keyMaxIdleConns, DefaultMaxIdleConns)
	v.SetDefault(keyMaxIdleConnsPerHost, DefaultMaxIdleConnsPerHost)
	v.SetDefault(keyInsecureSkipVerify, false)
	v.SetDefault(keyMaxBodyBytes, DefaultMaxBodyBytes)
	v.SetDefault(keyFormat, DefaultFormat)
	v.SetDefault(keyBillURLPrefix, DefaultBillURLPrefix)
	v.SetDefault(keyMembersBaseURL, DefaultMembersBaseURL)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

func decode(v *viper.Viper) *Config {
	cfg := &Config{
		LogLevel:            strings.ToLower(strings.TrimSpace(v.GetString(keyLogLevel))),
		JSONLog:             v.GetBool(keyJSON),
		Host:                v.GetString(keyHost),
		Port:                v.GetInt(keyPort),
		AllowedOrigins:      v.GetStringSlice(keyAllowedOrigins),
		ShutdownTimeout:     v.GetDuration(keyShutdownTimeout),
		HTTPTimeout:         v.GetDuration(keyTimeout),
		UserAgent:           v.GetString(keyUserAgent),
		Proxies:             nonEmpty(v.GetStringSlice(keyProxies)),
		Headers:             headers.ParseHeaders(v.GetStringSlice(keyHeaders)),
		MaxRedirects:        v.GetInt(keyMaxRedirects),
		MaxIdleConns:        v.GetInt(keyMaxIdleConns),
		MaxIdleConnsPerHost: v.GetInt(keyMaxIdleConnsPerHost),
		InsecureSkipVerify:  v.GetBool(keyInsecureSkipVerify),
		MaxBodyBytes:        v.GetInt64(keyMaxBodyBytes),
		RateLimitRPS:        v.GetFloat64(keyRateLimitRPS),
		RateLimitBurst:      v.GetInt(keyRateLimitBurst),
		Format:              strings.ToLower(strings.TrimSpace(v.GetString(keyFormat))),
		BillURLPrefix:       v.GetString(keyBillURLPrefix),
		MembersBaseURL:      v.GetString(keyMembersBaseURL),
	}

	// An empty --user-agent or --format flag means "not set"
	if strings.TrimSpace(cfg.UserAgent) == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}

	return cfg
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, s := range values {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
