package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/config"
	"github.com/williambechay/portfolio/internal/inbox"
	"github.com/williambechay/portfolio/internal/inbox/auth"
	"github.com/williambechay/portfolio/internal/inbox/events"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/prefs"
)

// signalContext is cancelled on the first SIGINT or SIGTERM. A second signal
// exits immediately.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
			return
		}
		cancel()
		select {
		case <-sigCh:
			logger.Warn("second interrupt received, forcing shutdown")
			os.Exit(1)
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// inboxDeps are the server-side collaborators of the inbox.
type inboxDeps struct {
	store     inbox.Store
	verifier  *auth.Verifier
	publisher events.Publisher
	closers   []func() error
}

func (d *inboxDeps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			logger.Warn("close inbox dependency", "error", err)
		}
	}
}

// openInbox opens the configured message store, event publisher and
// password verifier.
func openInbox(ctx context.Context, c config.Config) (*inboxDeps, error) {
	deps := &inboxDeps{}

	switch c.Store.Driver {
	case config.StorePostgres, config.StoreSQLite:
		dialect, err := inbox.ParseDialect(c.Store.Driver)
		if err != nil {
			return nil, err
		}
		sqlStore, err := inbox.Open(ctx, dialect, c.Store.DSN)
		if err != nil {
			return nil, err
		}
		deps.store = sqlStore
		deps.closers = append(deps.closers, sqlStore.Close)
	default:
		logger.Warn("using in-memory message store; messages are lost on restart")
		deps.store = inbox.NewMemoryStore()
	}

	deps.publisher = events.Noop{}
	if c.Events.NATSURL != "" {
		pub, err := events.NewNATSPublisher(c.Events.NATSURL, c.Events.Subject)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.publisher = pub
		deps.closers = append(deps.closers, pub.Close)
	}
	deps.store = inbox.WithEvents(deps.store, deps.publisher, logger)

	verifier, err := auth.NewVerifier(c.Admin.PasswordHash)
	if err != nil {
		deps.Close()
		return nil, err
	}
	if !verifier.Configured() {
		logger.Warn("admin password hash not set; admin login is disabled")
	}
	deps.verifier = verifier
	return deps, nil
}

// remoteBackend returns the REST client when a backend URL is configured.
func remoteBackend(c config.Config) (backend.Backend, bool) {
	if c.Backend.URL == "" {
		return nil, false
	}
	return backend.RESTClient{
		BaseURL:    c.Backend.URL,
		APIKey:     c.Backend.APIKey,
		HTTPClient: &http.Client{Timeout: c.Backend.Timeout},
	}, true
}

// openBackend returns the configured collaborator. Without a backend URL the
// inbox is opened in-process; the returned cleanup releases it.
func openBackend(ctx context.Context, c config.Config) (backend.Backend, func(), error) {
	if be, ok := remoteBackend(c); ok {
		return be, func() {}, nil
	}
	deps, err := openInbox(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return backend.Local{Store: deps.store, Verifier: deps.verifier}, deps.Close, nil
}

// cliPrefs returns the preference file used by terminal commands.
func cliPrefs(c config.Config) (*prefs.FileStore, error) {
	path := c.Prefs.File
	if path == "" {
		p, err := prefs.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return prefs.NewFileStore(path), nil
}

// cliLocale loads the persisted language for a terminal command.
func cliLocale(ctx context.Context, c config.Config) (*locale.Store, error) {
	store, err := cliPrefs(c)
	if err != nil {
		return nil, err
	}
	loc := locale.New(locale.Options{Loader: c.LocaleLoader(), Prefs: store, Logger: logger})
	loc.Initialize(ctx)
	if err := loc.Wait(ctx); err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	return loc, nil
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
