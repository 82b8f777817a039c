package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/williambechay/portfolio/internal/locale"
)

var langCmd = &cobra.Command{
	Use:     "lang [toggle|en|fr]",
	Short:   "Show or change the language used by terminal commands",
	GroupID: "settings",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		loc, err := cliLocale(ctx, cfg)
		if err != nil {
			return err
		}
		if len(args) == 1 {
			switch args[0] {
			case "toggle":
				loc.ToggleLanguage(ctx)
			default:
				lang, ok := locale.ParseLanguage(args[0])
				if !ok {
					return fmt.Errorf("unsupported language %q", args[0])
				}
				loc.SetLanguage(ctx, lang)
			}
			if err := loc.Wait(ctx); err != nil {
				return err
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), loc.Language().String())
		return nil
	},
}
