// Package config loads portfolio runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/williambechay/portfolio/internal/inbox"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/logging"
)

// Prefix is prepended to every variable name.
const Prefix = "PORTFOLIO_"

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = string(inbox.DialectPostgres)
	StoreSQLite   = string(inbox.DialectSQLite)
)

// Prefs backends for the web UI.
const (
	PrefsCookie = "cookie"
	PrefsRedis  = "redis"
)

// ServerConfig configures the web UI listener.
type ServerConfig struct {
	Addr              string        `env:"ADDR" envDefault:":8080"`
	SecureCookies     bool          `env:"SECURE_COOKIES"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// BackendConfig configures the message backend. URL selects the REST client;
// when empty the UI talks to the inbox in-process. ListenAddr is used by the
// standalone inbox service.
type BackendConfig struct {
	URL        string        `env:"URL"`
	APIKey     string        `env:"API_KEY"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s"`
	ListenAddr string        `env:"LISTEN_ADDR" envDefault:":8081"`
}

// StoreConfig selects message persistence.
type StoreConfig struct {
	Driver string `env:"DRIVER" envDefault:"memory"`
	DSN    string `env:"DSN"`
}

// EventsConfig enables NATS announcements of new messages.
type EventsConfig struct {
	NATSURL string `env:"NATS_URL"`
	Subject string `env:"SUBJECT" envDefault:"portfolio.contact.created"`
}

// PrefsConfig selects where the language choice is persisted.
type PrefsConfig struct {
	Backend  string        `env:"BACKEND" envDefault:"cookie"`
	RedisURL string        `env:"REDIS_URL"`
	TTL      time.Duration `env:"TTL" envDefault:"8760h"`
	// File is the CLI preference file; empty uses the user config dir.
	File string `env:"FILE"`
}

// LocaleConfig configures translation loading. An empty BaseURL uses the
// bundled trees.
type LocaleConfig struct {
	BaseURL     string `env:"BASE_URL"`
	MaxAttempts uint   `env:"MAX_ATTEMPTS" envDefault:"4"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level     string `env:"LEVEL" envDefault:"info"`
	Format    string `env:"FORMAT" envDefault:"text"`
	NoColor   bool   `env:"NO_COLOR"`
	File      string `env:"FILE"`
	MaxSizeMB int    `env:"MAX_SIZE_MB" envDefault:"10"`
	MaxFiles  int    `env:"MAX_FILES" envDefault:"5"`
}

// AdminConfig configures admin password verification.
type AdminConfig struct {
	PasswordHash       string  `env:"PASSWORD_HASH"`
	RateLimitPerMinute float64 `env:"RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" envDefault:"5"`
}

// Config captures runtime settings for every portfolio command.
type Config struct {
	Server  ServerConfig  `envPrefix:"SERVER_"`
	Backend BackendConfig `envPrefix:"BACKEND_"`
	Store   StoreConfig   `envPrefix:"STORE_"`
	Events  EventsConfig  `envPrefix:"EVENTS_"`
	Prefs   PrefsConfig   `envPrefix:"PREFS_"`
	Locale  LocaleConfig  `envPrefix:"LOCALE_"`
	Log     LogConfig     `envPrefix:"LOG_"`
	Admin   AdminConfig   `envPrefix:"ADMIN_"`
}

// FromEnv reads the process environment.
func FromEnv() (Config, error) {
	return Load(envMap(os.Environ()))
}

// Load parses environ. A bare PORT variable sets the UI listen address when
// PORTFOLIO_SERVER_ADDR is absent.
func Load(environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix, Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if _, ok := environ[Prefix+"SERVER_ADDR"]; !ok {
		if port := strings.TrimSpace(environ["PORT"]); port != "" {
			cfg.Server.Addr = ":" + port
		}
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Prefs.Backend = strings.ToLower(strings.TrimSpace(cfg.Prefs.Backend))
	return cfg, nil
}

// Validate ensures the configuration is usable.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("config: server address is required"))
	}
	if c.Backend.URL != "" {
		if u, err := url.Parse(c.Backend.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("config: backend url %q is invalid", c.Backend.URL))
		}
	}
	if c.Backend.Timeout <= 0 {
		errs = append(errs, errors.New("config: backend timeout must be positive"))
	}
	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres, StoreSQLite:
		if strings.TrimSpace(c.Store.DSN) == "" {
			errs = append(errs, fmt.Errorf("config: store dsn is required for driver %q", c.Store.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown store driver %q", c.Store.Driver))
	}
	switch c.Prefs.Backend {
	case PrefsCookie:
	case PrefsRedis:
		if strings.TrimSpace(c.Prefs.RedisURL) == "" {
			errs = append(errs, errors.New("config: prefs redis url is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown prefs backend %q", c.Prefs.Backend))
	}
	if c.Locale.BaseURL != "" {
		if u, err := url.Parse(c.Locale.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("config: locale base url %q is invalid", c.Locale.BaseURL))
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("config: unknown log format %q", c.Log.Format))
	}
	if c.Log.File != "" && (c.Log.MaxSizeMB <= 0 || c.Log.MaxFiles <= 0) {
		errs = append(errs, errors.New("config: log rotation limits must be positive"))
	}
	if c.Admin.RateLimitPerMinute <= 0 || c.Admin.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("config: admin rate limit must be positive"))
	}
	return errors.Join(errs...)
}

// LocaleLoader returns the loader selected by the Locale section.
func (c Config) LocaleLoader() locale.Loader {
	if c.Locale.BaseURL == "" {
		return locale.EmbeddedLoader{}
	}
	return locale.NewCachedLoader(locale.HTTPLoader{
		BaseURL:     c.Locale.BaseURL,
		MaxAttempts: c.Locale.MaxAttempts,
	})
}

// LoggingOptions maps the Log section onto logging.Options. The writer is
// left to the caller.
func (c Config) LoggingOptions() logging.Options {
	return logging.Options{
		Level:   c.Log.Level,
		Format:  c.Log.Format,
		NoColor: c.Log.NoColor,
	}
}

func envMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}
