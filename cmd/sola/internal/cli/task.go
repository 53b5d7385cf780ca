package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sola-app/sola/cmd/sola/internal/store"
	"github.com/sola-app/sola/cmd/sola/internal/syncer"
	"github.com/sola-app/sola/cmd/sola/internal/ui"
	"github.com/sola-app/sola/pkg/api"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage today's tasks",
	}

	cmd.AddCommand(newTaskAddCmd(), newTaskSetCmd(), newTaskRmCmd(), newTaskLsCmd())
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task for today",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("task title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			title := strings.Join(args, " ")
			if err := orch.AddTask(ctx, title); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconNote+" Task added:")+" "+title)
			return nil
		},
	}
}

func newTaskSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <pending|completed|deferred|archived>",
		Short: "Change a task's status",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("task id and status are required")
			}
			if !api.TaskStatus(args[1]).IsValid() {
				return fmt.Errorf("invalid status %q (must be: pending, completed, deferred, archived)", args[1])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			// Full updates need the cached title and date.
			if err := orch.Refresh(ctx, syncer.DomainTasks); err != nil {
				return err
			}
			status := api.TaskStatus(args[1])
			if err := orch.SetTaskStatus(ctx, args[0], status); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Task moved to %s.\n",
				ui.Good.Render(ui.IconDone), ui.StatusText(status))
			return nil
		},
	}
}

func newTaskRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task",
		Args:  requireID("task"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			if err := orch.DeleteTask(ctx, args[0]); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Task deleted."))
			return nil
		},
	}
}

func newTaskLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List today's tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			orch, _, err := openOrchestrator()
			if err != nil {
				return err
			}

			if err := orch.Refresh(ctx, syncer.DomainTasks); err != nil {
				return err
			}

			tasks := orch.Store().Tasks()
			if tasks.State != store.Loaded || len(tasks.Value) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("(no tasks for today)"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconNote+" Tasks — "+orch.Today()))
			for _, t := range tasks.Value {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s  %s  %s\n", t.Title, ui.StatusText(t.Status), ui.Muted.Render(t.ID))
			}
			return nil
		},
	}
}
