package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/williambechay/portfolio/internal/backend"
	"github.com/williambechay/portfolio/internal/locale"
	"github.com/williambechay/portfolio/internal/ui/admin"
	"github.com/williambechay/portfolio/internal/ui/model"
)

var adminJSON bool

var adminCmd = &cobra.Command{
	Use:     "admin",
	Short:   "Log in and list contact messages",
	GroupID: "inbox",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		be, cleanup, err := openBackend(ctx, cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		loc, err := cliLocale(ctx, cfg)
		if err != nil {
			return err
		}

		stderr := cmd.ErrOrStderr()
		ctrl := admin.New(admin.Options{
			Backend:    be,
			Translator: loc,
			Notifier:   admin.NotifierFunc(func(t model.Toast) { printToast(stderr, t) }),
			Logger:     logger,
		})
		defer ctrl.Close()

		prompt := loc.Lookup(locale.KeyAdminLoginPassword, "Password") + ": "
		password, err := readSecret(prompt, os.Stdin, stderr)
		if err != nil {
			return err
		}
		if err := ctrl.LoginWith(ctx, password); err != nil {
			if errors.Is(err, admin.ErrAuthFailed) {
				return errors.New("authentication failed")
			}
			return err
		}

		snap := ctrl.Snapshot()
		if adminJSON {
			return writeMessagesJSON(cmd.OutOrStdout(), snap.Messages)
		}
		rows := admin.Project(snap.Messages, loc, loc.Language())
		writeRows(cmd.OutOrStdout(), loc, rows)
		return nil
	},
}

func init() {
	adminCmd.Flags().BoolVar(&adminJSON, "json", false, "print raw messages as JSON")
}

func writeMessagesJSON(w io.Writer, messages []backend.StoredMessage) error {
	if messages == nil {
		messages = []backend.StoredMessage{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(messages)
}

func writeRows(w io.Writer, tr locale.Translator, rows []admin.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, tr.Lookup(locale.KeyAdminDashboardNoMessages, "No messages yet."))
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
		tr.Lookup(locale.KeyAdminDashboardDate, "Date"),
		tr.Lookup(locale.KeyAdminDashboardName, "Name"),
		tr.Lookup(locale.KeyAdminDashboardEmail, "Email"),
		tr.Lookup(locale.KeyAdminDashboardReason, "Reason"),
		tr.Lookup(locale.KeyAdminDashboardSubject, "Subject"),
		tr.Lookup(locale.KeyAdminDashboardMessage, "Message"),
	)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", row.Date, row.Name, row.Email, row.Reason, row.Subject, oneLine(row.Message, 60))
	}
	_ = tw.Flush()
}

// oneLine collapses newlines and cuts s to n runes.
func oneLine(s string, n int) string {
	out := make([]rune, 0, n)
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		if len(out) == n {
			return string(out) + "…"
		}
		out = append(out, r)
	}
	return string(out)
}
