// Package server renders the portfolio site: home, contact and admin pages.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/prefs"
	"github.com/williambechay/portfolio/internal/ui/content"
	"github.com/williambechay/portfolio/logging"
)

// PrefsFactory returns the preference store for one request.
type PrefsFactory func(w http.ResponseWriter, r *http.Request) prefs.Store

// CookiePrefs keeps the language choice in a cookie.
func CookiePrefs(secure bool) PrefsFactory {
	return func(w http.ResponseWriter, r *http.Request) prefs.Store {
		return prefs.NewCookieStore(w, r, secure)
	}
}

// RedisPrefs keeps the language choice in Redis, keyed by a visitor cookie.
func RedisPrefs(client prefs.RedisClient, ttl time.Duration, secure bool) PrefsFactory {
	return func(w http.ResponseWriter, r *http.Request) prefs.Store {
		return prefs.NewRedisStore(client, prefs.VisitorID(w, r, secure), ttl)
	}
}

// Options configures the UI HTTP server.
type Options struct {
	Listen  string
	Backend backend.Backend
	// Catalog defaults to the embedded catalog.
	Catalog *content.Catalog
	// LocaleLoader defaults to the bundled trees. It is wrapped in a cache.
	LocaleLoader locale.Loader
	// Prefs defaults to CookiePrefs(SecureCookies).
	Prefs         PrefsFactory
	SecureCookies bool
	// SubmitTimeout bounds one contact submission.
	SubmitTimeout time.Duration
	// FormTTL is how long an idle form token keeps its state. Defaults to
	// 30 minutes.
	FormTTL           time.Duration
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	Logger            *slog.Logger
	Templates         map[string]*template.Template
}

type server struct {
	backend       backend.Backend
	catalog       *content.Catalog
	loader        locale.Loader
	prefs         PrefsFactory
	submitTimeout time.Duration
	contactForms  *formFlights
	adminForms    *formFlights
	templates     map[string]*template.Template
	stylesPath    string
	currentYear   int
	logger        *slog.Logger
}

func newServer(opts Options) (*server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	catalog := opts.Catalog
	if catalog == nil {
		loaded, err := content.Default()
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		catalog = loaded
	}
	loader := opts.LocaleLoader
	if loader == nil {
		loader = locale.EmbeddedLoader{}
	}
	if _, cached := loader.(*locale.CachedLoader); !cached {
		loader = locale.NewCachedLoader(loader)
	}
	factory := opts.Prefs
	if factory == nil {
		factory = CookiePrefs(opts.SecureCookies)
	}
	tmpl := opts.Templates
	if tmpl == nil {
		loaded, err := loadTemplates()
		if err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
		tmpl = loaded
	}
	return &server{
		backend:       opts.Backend,
		catalog:       catalog,
		loader:        loader,
		prefs:         factory,
		submitTimeout: opts.SubmitTimeout,
		contactForms:  newFormFlights(opts.FormTTL),
		adminForms:    newFormFlights(opts.FormTTL),
		templates:     tmpl,
		stylesPath:    "/styles.css",
		currentYear:   time.Now().Year(),
		logger:        logger,
	}, nil
}

// NewHandler builds the site handler, wrapped in request logging.
func NewHandler(opts Options) (http.Handler, error) {
	srv, err := newServer(opts)
	if err != nil {
		return nil, err
	}
	return logging.Middleware(srv.logger, srv.routes()), nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /contact", s.handleContact)
	mux.HandleFunc("POST /contact", s.handleContactSubmit)
	mux.HandleFunc("GET /admin", s.handleAdmin)
	mux.HandleFunc("POST /admin", s.handleAdminLogin)
	mux.HandleFunc("POST /admin/logout", s.handleAdminLogout)
	mux.HandleFunc("POST /lang", s.handleToggleLanguage)
	mux.HandleFunc("GET /styles.css", s.handleStyles)
	mux.HandleFunc("GET /app.js", s.handleScript)
	mux.HandleFunc("GET /robots.txt", s.handleRobots)
	mux.HandleFunc("GET /sitemap.xml", s.handleSitemap)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

// Run starts the UI HTTP server and blocks until ctx ends or the listener
// fails.
func Run(ctx context.Context, opts Options) error {
	if opts.Listen == "" {
		opts.Listen = "127.0.0.1:8080"
	}
	handler, err := NewHandler(opts)
	if err != nil {
		return err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	readHeader := opts.ReadHeaderTimeout
	if readHeader <= 0 {
		readHeader = 10 * time.Second
	}
	shutdown := opts.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = 5 * time.Second
	}

	ln, err := net.Listen("tcp", opts.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.Listen, err)
	}
	return Serve(ctx, ln, &http.Server{Handler: handler, ReadHeaderTimeout: readHeader}, shutdown, logger, "portfolio site")
}

// Serve runs srv on ln until ctx ends, then shuts it down gracefully.
func Serve(ctx context.Context, ln net.Listener, srv *http.Server, shutdown time.Duration, logger *slog.Logger, name string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("serving "+name, "addr", "http://"+ln.Addr().String())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdown)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown %s: %w", name, err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
