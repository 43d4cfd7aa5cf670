package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"denling/internal/engine"
	"denling/internal/ui"
)

func newAddCmd() *cobra.Command {
	var due string
	var repeat string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task (optionally repeating)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			rule, err := engine.ParseRecurrenceRule(repeat)
			if err != nil {
				return err
			}

			var dueDate *time.Time
			if due != "" {
				d, err := time.ParseInLocation("2006-01-02", due, time.Local)
				if err != nil {
					return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", due)
				}
				dueDate = &d
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CreateTask(ctx, engine.CreateTaskInput{
				Title:      args[0],
				DueDate:    dueDate,
				Recurrence: rule,
			})
			if err != nil {
				return err
			}

			line := fmt.Sprintf("%s #%d %s", ui.Good.Render(ui.IconDone+" Added"), res.TaskID, args[0])
			if rule.Repeats() {
				line += " " + ui.Muted.Render("["+string(rule)+"]")
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}

	cmd.Flags().StringVarP(&due, "due", "d", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&repeat, "repeat", "r", "", "Recurrence rule (daily|weekly|monthly)")

	return cmd
}
