package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/williambechay/portfolio/internal/inbox/auth"
)

var hashCost int

var hashPasswordCmd = &cobra.Command{
	Use:     "hash-password",
	Short:   "Print a bcrypt hash for PORTFOLIO_ADMIN_PASSWORD_HASH",
	GroupID: "settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readSecret("Password: ", os.Stdin, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if password == "" {
			return errors.New("password is required")
		}
		hash, err := auth.HashPassword(password, hashCost)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	hashPasswordCmd.Flags().IntVar(&hashCost, "cost", 0, "bcrypt cost (default 10)")
}
