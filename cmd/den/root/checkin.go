package root

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"denling/internal/engine"
	"denling/internal/ui"
)

func newCheckinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record today's activity and keep the streak alive",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CheckIn(ctx)
			if err != nil {
				return err
			}
			printCheckIn(cmd.OutOrStdout(), res)
			return nil
		},
	}

	return cmd
}

func printCheckIn(w io.Writer, res *engine.CheckInResult) {
	if res.AlreadyCheckedIn {
		fmt.Fprintf(w, "%s Already checked in today — streak %d.\n",
			ui.Muted.Render(ui.IconInfo), res.Streak)
		return
	}

	fmt.Fprintf(w, "%s %s\n",
		ui.Good.Render(ui.IconFlame+fmt.Sprintf(" Day %d", res.Streak)),
		ui.Muted.Render(fmt.Sprintf("(best %d)", res.LongestStreak)))
	fmt.Fprintf(w, "%s +%d %s  +%d XP\n", ui.Gold.Render(ui.IconCoin), res.Reward.Coins, ui.Muted.Render("coins"), res.Reward.XP)
	fmt.Fprintln(w, ui.Muted.Render(res.Reward.Message))

	if res.ProtectionUsed {
		fmt.Fprintln(w, ui.Warn.Render(ui.IconShield+" Protection token spent — one missed day forgiven."))
	}
	if res.LevelUp {
		fmt.Fprintf(w, "%s %s\n", ui.BadgeLevelUp, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
	}
	if res.Evolved != nil {
		fmt.Fprintf(w, "%s %s\n", ui.BadgeEvolved, ui.Title.Render(res.Evolved.Name))
		fmt.Fprintln(w, ui.Muted.Render(res.Evolved.UnlockMessage))
	}
}
