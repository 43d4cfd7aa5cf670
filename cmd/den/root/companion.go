package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"denling/internal/ui"
)

func newCompanionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "companion",
		Short: "Show the companion's stage and evolution progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			view, err := svc.CompanionState(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconPaw, "Companion"))
			printCompanion(cmd.OutOrStdout(), view)
			return nil
		},
	}

	return cmd
}

func newAdoptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adopt <species>",
		Short: "Switch the companion to another species",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("species is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			view, err := svc.AdoptSpecies(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				ui.Good.Render(ui.IconEgg+" Adopted"),
				ui.Title.Render(fmt.Sprintf("%s the %s", view.Evolution.Current.Name, view.Species)))
			printCompanion(cmd.OutOrStdout(), view)
			return nil
		},
	}

	return cmd
}
