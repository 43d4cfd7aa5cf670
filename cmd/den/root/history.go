package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"denling/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent check-ins and what they paid out",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.CheckinRepo().Recent(ctx, limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No check-ins yet. Start with: den checkin"))
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
					ui.Key.Render(e.Day.Format("2006-01-02")),
					ui.Good.Render(fmt.Sprintf("day %d", e.Streak)),
					ui.Muted.Render(fmt.Sprintf("+%d coins, +%d XP", e.Coins, e.XP)))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 14, "Number of check-ins to show")

	return cmd
}
