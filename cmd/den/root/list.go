package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"denling/internal/storage"
	"denling/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var tasks []storage.Task
			if all {
				tasks, err = svc.TaskRepo().ListAll(ctx)
			} else {
				tasks, err = svc.OpenTasks(ctx)
			}
			if err != nil {
				return err
			}

			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No tasks. Add one with: den add \"Water the plants\""))
				return nil
			}
			for _, t := range tasks {
				due := ""
				if t.DueDate != nil {
					due = " " + ui.Muted.Render("due "+t.DueDate.Format("2006-01-02"))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s%s %s\n",
					ui.RecurrenceIcon(t.RecurrenceRule), t.ID, t.Title, due, ui.StatusText(t.Status))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed tasks")

	return cmd
}
