package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/config"
	"github.com/williambechay/portfolio/internal/inbox/api"
	"github.com/williambechay/portfolio/internal/inbox/auth"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/prefs"
	"github.com/williambechay/portfolio/internal/ui/server"
	"github.com/williambechay/portfolio/logging"
)

var (
	serveListen   string
	backendListen string
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Serve the portfolio site",
	GroupID: "servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		be, cleanup, err := openBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		opts, err := siteOptions(ctx, cfg, be)
		if err != nil {
			return err
		}
		if serveListen != "" {
			opts.Listen = serveListen
		}
		return server.Run(ctx, opts)
	},
}

var backendCmd = &cobra.Command{
	Use:     "backend",
	Short:   "Serve the contact inbox API",
	GroupID: "servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		deps, err := openInbox(ctx, cfg)
		if err != nil {
			return err
		}
		defer deps.Close()

		addr := cfg.Backend.ListenAddr
		if backendListen != "" {
			addr = backendListen
		}
		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return serveInbox(ctx, cfg, deps, ln)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "address for the site (overrides PORTFOLIO_SERVER_ADDR)")
	backendCmd.Flags().StringVar(&backendListen, "listen", "", "address for the inbox API (overrides PORTFOLIO_BACKEND_LISTEN_ADDR)")
}

// siteOptions builds the UI server options shared by serve and dev.
func siteOptions(ctx context.Context, c config.Config, be backend.Backend) (server.Options, error) {
	loader := locale.NewCachedLoader(c.LocaleLoader())
	if err := locale.CheckTrees(ctx, loader, logger); err != nil {
		return server.Options{}, err
	}

	factory := server.CookiePrefs(c.Server.SecureCookies)
	if c.Prefs.Backend == config.PrefsRedis {
		client, err := prefs.NewRedisClient(c.Prefs.RedisURL)
		if err != nil {
			return server.Options{}, err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return server.Options{}, fmt.Errorf("ping redis: %w", err)
		}
		factory = server.RedisPrefs(client, c.Prefs.TTL, c.Server.SecureCookies)
	}

	return server.Options{
		Listen:            c.Server.Addr,
		Backend:           be,
		LocaleLoader:      loader,
		Prefs:             factory,
		SecureCookies:     c.Server.SecureCookies,
		SubmitTimeout:     c.Backend.Timeout,
		ReadHeaderTimeout: c.Server.ReadHeaderTimeout,
		ShutdownTimeout:   c.Server.ShutdownTimeout,
		Logger:            logger,
	}, nil
}

// serveInbox runs the inbox API on ln until ctx ends.
func serveInbox(ctx context.Context, c config.Config, deps *inboxDeps, ln net.Listener) error {
	handler := api.NewRouter(api.Options{
		Store:    deps.store,
		Verifier: deps.verifier,
		Limiter:  auth.NewLimiter(c.Admin.RateLimitPerMinute, c.Admin.RateLimitBurst),
		APIKey:   c.Backend.APIKey,
		Logger:   logger,
	})
	srv := &http.Server{
		Handler:           logging.Middleware(logger, handler),
		ReadHeaderTimeout: c.Server.ReadHeaderTimeout,
	}
	shutdown := c.Server.ShutdownTimeout
	if shutdown <= 0 {
		shutdown = 10 * time.Second
	}
	return server.Serve(ctx, ln, srv, shutdown, logger, "contact inbox")
}
