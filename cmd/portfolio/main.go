// Command portfolio serves the portfolio site and its contact inbox, and
// offers terminal access to the inbox.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/williambechay/portfolio/internal/config"
	"github.com/williambechay/portfolio/logging"
)

var (
	cfg    config.Config
	logger *slog.Logger

	logLevel string
	logFile  io.Closer
)

var rootCmd = &cobra.Command{
	Use:           "portfolio <command>",
	Short:         "Portfolio site, contact inbox and admin tools",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.FromEnv()
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		opts := cfg.LoggingOptions()
		if cfg.Log.File != "" {
			fw, err := logging.OpenFile(cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxFiles)
			if err != nil {
				return err
			}
			logFile = fw
			opts.Writer = io.MultiWriter(os.Stderr, fw)
		}
		l, err := logging.New(opts)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides PORTFOLIO_LOG_LEVEL")

	rootCmd.AddGroup(
		&cobra.Group{ID: "servers", Title: "Servers:"},
		&cobra.Group{ID: "inbox", Title: "Inbox:"},
		&cobra.Group{ID: "settings", Title: "Settings:"},
	)
	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(backendCmd)
	rootCmd.AddCommand(devCmd)

	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(contactCmd)

	rootCmd.AddCommand(langCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

func main() {
	os.Exit(run())
}

// run executes the command tree and closes the log file whether or not the
// command failed.
func run() int {
	err := rootCmd.Execute()
	closeLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

func closeLogFile() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}
