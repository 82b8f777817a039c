package main

import (
	"fmt"
	"net"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/ui/server"
)

var devCmd = &cobra.Command{
	Use:     "dev",
	Short:   "Serve the site and the inbox API together",
	Long:    "Runs the inbox API and the site in one process. The site talks to the API over HTTP, exactly as it would in production.",
	GroupID: "servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		deps, err := openInbox(ctx, cfg)
		if err != nil {
			return err
		}
		defer deps.Close()

		apiAddr := cfg.Backend.ListenAddr
		if backendListen != "" {
			apiAddr = backendListen
		}
		ln, err := net.Listen("tcp", apiAddr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", apiAddr, err)
		}
		apiErr := make(chan error, 1)
		go func() {
			apiErr <- serveInbox(ctx, cfg, deps, ln)
		}()

		be := backend.RESTClient{
			BaseURL:    "http://" + loopback(ln.Addr().String()),
			APIKey:     cfg.Backend.APIKey,
			HTTPClient: &http.Client{Timeout: cfg.Backend.Timeout},
		}
		opts, err := siteOptions(ctx, cfg, be)
		if err != nil {
			stop()
			<-apiErr
			return err
		}
		if serveListen != "" {
			opts.Listen = serveListen
		}

		siteErr := server.Run(ctx, opts)
		stop()
		if err := <-apiErr; err != nil && !isCanceled(err) {
			return fmt.Errorf("inbox api: %w", err)
		}
		return siteErr
	},
}

func init() {
	devCmd.Flags().StringVar(&serveListen, "listen", "", "address for the site (overrides PORTFOLIO_SERVER_ADDR)")
	devCmd.Flags().StringVar(&backendListen, "api-listen", "", "address for the inbox API (overrides PORTFOLIO_BACKEND_LISTEN_ADDR)")
}

// loopback rewrites an unspecified listen host such as "[::]:8081" to one a
// local client can dial.
func loopback(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || net.ParseIP(host).IsUnspecified() {
		host = "127.0.0.1"
	}
	return net.JoinHostPort(host, port)
}
