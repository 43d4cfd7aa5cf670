package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"denling/internal/ui"
)

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task (counts as today's activity)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
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

			id, _ := strconv.ParseInt(args[0], 10, 64)
			res, err := svc.CompleteTask(ctx, id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Good.Render(ui.IconDone+" Completed"), res.TaskID)
			if res.NextID != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n",
					ui.Muted.Render(ui.IconLoop+" Next occurrence"), *res.NextID,
					ui.Muted.Render("due "+res.NextDue.Format("2006-01-02")))
			}
			if res.CheckIn != nil {
				printCheckIn(cmd.OutOrStdout(), res.CheckIn)
			}
			return nil
		},
	}

	return cmd
}
