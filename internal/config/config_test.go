package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/williambechay/portfolio/internal/locale"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, ":8081", cfg.Backend.ListenAddr)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, PrefsCookie, cfg.Prefs.Backend)
	assert.Equal(t, 365*24*time.Hour, cfg.Prefs.TTL)
	assert.Equal(t, "portfolio.contact.created", cfg.Events.Subject)
	assert.Equal(t, uint(4), cfg.Locale.MaxAttempts)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	require.NoError(t, cfg.Validate())
	assert.IsType(t, locale.EmbeddedLoader{}, cfg.LocaleLoader())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := Load(map[string]string{
		"PORTFOLIO_SERVER_ADDR":            "127.0.0.1:9000",
		"PORTFOLIO_BACKEND_URL":            "https://abc.supabase.co",
		"PORTFOLIO_BACKEND_API_KEY":        "anon",
		"PORTFOLIO_STORE_DRIVER":           "SQLite",
		"PORTFOLIO_STORE_DSN":              "/var/lib/portfolio/inbox.db",
		"PORTFOLIO_PREFS_BACKEND":          "redis",
		"PORTFOLIO_PREFS_REDIS_URL":        "redis://localhost:6379/0",
		"PORTFOLIO_LOCALE_BASE_URL":        "https://cdn.example.com/locales",
		"PORTFOLIO_LOG_FORMAT":             "json",
		"PORTFOLIO_ADMIN_RATE_LIMIT_BURST": "2",
		"PORT":                             "3000",
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr, "explicit address wins over PORT")
	assert.Equal(t, "anon", cfg.Backend.APIKey)
	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, PrefsRedis, cfg.Prefs.Backend)
	assert.Equal(t, 2, cfg.Admin.RateLimitBurst)
	assert.IsType(t, &locale.CachedLoader{}, cfg.LocaleLoader())
	assert.Equal(t, "json", cfg.LoggingOptions().Format)
}

func TestLoad_Port(t *testing.T) {
	cfg, err := Load(map[string]string{"PORT": "3000"})
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Addr)
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(map[string]string{"PORTFOLIO_BACKEND_TIMEOUT": "soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: parse env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = " " }, "server address is required"},
		{"bad backend url", func(c *Config) { c.Backend.URL = "not a url" }, "backend url"},
		{"zero timeout", func(c *Config) { c.Backend.Timeout = 0 }, "backend timeout"},
		{"sql without dsn", func(c *Config) { c.Store.Driver = StorePostgres }, "store dsn is required"},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mongo" }, "unknown store driver"},
		{"redis without url", func(c *Config) { c.Prefs.Backend = PrefsRedis }, "prefs redis url is required"},
		{"unknown prefs", func(c *Config) { c.Prefs.Backend = "disk" }, "unknown prefs backend"},
		{"bad locale url", func(c *Config) { c.Locale.BaseURL = "/relative" }, "locale base url"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "config:"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "unknown log format"},
		{"rotation limits", func(c *Config) { c.Log.File = "app.log"; c.Log.MaxFiles = 0 }, "log rotation"},
		{"rate limit", func(c *Config) { c.Admin.RateLimitPerMinute = 0 }, "admin rate limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(nil)
			require.NoError(t, err)
			tt.mutate(&cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
