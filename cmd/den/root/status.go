package root

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"denling/internal/engine"
	"denling/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show streak, wallet and companion overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := svc.ProfileRepo().GetOrCreateMain(ctx)
			if err != nil {
				return err
			}
			atRisk, err := svc.StreakAtRisk(ctx)
			if err != nil {
				return err
			}
			view, err := svc.CompanionState(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			fmt.Fprintln(out, ui.Heading(ui.IconFlame, "Streak"))
			fmt.Fprintln(out, ui.LabelValue("Current", fmt.Sprintf("%d day(s)", p.CurrentStreak)))
			fmt.Fprintln(out, ui.LabelValue("Longest", fmt.Sprintf("%d day(s)", p.LongestStreak)))
			if atRisk {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" No check-in yet today — the streak is at risk."))
			}
			if p.ProtectionActive {
				fmt.Fprintln(out, ui.Good.Render(ui.IconShield+" Protection armed"))
			} else {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconShield+" Protection off (den protect)"))
			}
			fmt.Fprintln(out, ui.LabelValue("Coins", p.Coins))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconTrophy+" Next milestones"))
			for _, m := range engine.UpcomingMilestones(p.CurrentStreak, 3) {
				fmt.Fprintf(out, "- %s %s\n",
					ui.Key.Render(fmt.Sprintf("day %d:", m.Days)),
					ui.Muted.Render(fmt.Sprintf("+%d coins, +%d XP", m.Reward.Coins, m.Reward.XP)))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.Heading(ui.IconPaw, "Companion"))
			printCompanion(out, view)
			return nil
		},
	}

	return cmd
}

func printCompanion(out io.Writer, view *engine.CompanionView) {
	ev := view.Evolution
	fmt.Fprintln(out, ui.LabelValue("Stage", fmt.Sprintf("%s (%s, stage %d)", ev.Current.Name, view.Species, ev.Current.Index)))
	fmt.Fprintln(out, ui.LabelValue("Level", view.Level))
	fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d (next level at %d, %d to go)", view.XPTotal, view.NextLevelAt, view.XPToNext)))
	fmt.Fprintln(out, ui.LabelValue("Features", strings.Join(ev.Current.Features, ", ")))
	if ev.Next != nil {
		fmt.Fprintln(out, ui.LabelValue("Next stage", fmt.Sprintf("%s at level %d (%d level(s) away, %d%% through %s)",
			ev.Next.Name, ev.Next.MinLevel, ev.LevelsToNext, ev.ProgressPercent, ev.Current.Name)))
	} else {
		fmt.Fprintln(out, ui.Gold.Render(ui.IconSparkle+" Final stage reached"))
	}
}
