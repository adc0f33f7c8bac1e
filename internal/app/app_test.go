package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/law-makers/legisinfo/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_XMLDefault(t *testing.T) {
	cfg := config.Default()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.Equal(t, "BillScraper/XMLFeed", a.Scraper.Name())
	assert.Nil(t, a.Proxies)
	assert.Equal(t, cfg.HTTPTimeout, a.HTTPClient.Timeout)
}

func TestNew_HTMLWithProxies(t *testing.T) {
	cfg := config.Default()
	cfg.Format = config.FormatHTML
	cfg.Proxies = []string{"http://127.0.0.1:3128", "http://127.0.0.1:3129"}

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "BillScraper/HTMLPage", a.Scraper.Name())
	assert.Equal(t, 2, a.Proxies.Len())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Format = "pdf"
	_, err = New(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown document format")
}

func TestNewLogger_JSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	cfg := config.Default()
	cfg.JSONLog = true
	cfg.LogLevel = "warn"

	var buf bytes.Buffer
	logger := NewLogger(cfg, &buf)
	logger.Info().Msg("hidden")
	logger.Warn().Str("bill", "c-422").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"bill":"c-422"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}
