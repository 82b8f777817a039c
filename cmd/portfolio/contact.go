package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/williambechay/portfolio/internal/contact"
)

var contactFlags contact.Submission

var contactCmd = &cobra.Command{
	Use:     "contact",
	Short:   "Send a message through the contact form",
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

		if contactFlags.Message == "-" {
			body, err := readAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			contactFlags.Message = body
		}

		gateway := contact.NewGateway(contact.Options{Backend: be, Timeout: cfg.Backend.Timeout, Logger: logger})
		res := gateway.Submit(ctx, contactFlags)
		if res.OK() {
			printToast(cmd.OutOrStdout(), contact.SuccessToast(loc))
			return nil
		}
		printToast(cmd.ErrOrStderr(), contact.ErrorToast(loc))
		var verr *contact.ValidationError
		if errors.As(res.Err, &verr) {
			return verr
		}
		return res.Err
	},
}

func init() {
	f := contactCmd.Flags()
	f.StringVar(&contactFlags.Name, "name", "", "your name (required)")
	f.StringVar(&contactFlags.Email, "email", "", "your email (required)")
	f.StringVar(&contactFlags.Subject, "subject", "", "message subject")
	f.StringVar((*string)(&contactFlags.Reason), "reason", "", "reason: project, bug, collaboration or general")
	f.StringVar(&contactFlags.Message, "message", "", `message body (required); "-" reads stdin`)
}
