package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"denling/internal/ui"
)

func newProtectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "protect",
		Short: "Arm the streak protection token (forgives one missed day)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			armed, err := svc.ActivateProtection(ctx)
			if err != nil {
				return err
			}
			if !armed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.IconShield+" Protection is already armed."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconShield+" Protection armed — your next missed day won't break the streak."))
			return nil
		},
	}

	return cmd
}
