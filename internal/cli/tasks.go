package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"task-api/internal/model"
	"task-api/internal/output"
)

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"t"},
		Short:   "Manage tasks on a running task-api",
	}

	cmd.AddCommand(
		newTasksListCmd(a),
		newTasksAddCmd(a),
		newTasksSetCompletedCmd(a, "done", "Mark a task as completed", true),
		newTasksSetCompletedCmd(a, "undo", "Mark a task as not completed", false),
		newTasksRenameCmd(a),
		newTasksRemoveCmd(a),
	)
	return cmd
}

func newTasksListCmd(a *app) *cobra.Command {
	var f output.Filter
	var done, pending bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			tasks, err := c.List(cmd.Context())
			if err != nil {
				return err
			}

			switch {
			case done:
				f.Completed = &done
			case pending:
				completed := false
				f.Completed = &completed
			}
			tasks, err = f.Apply(tasks)
			if err != nil {
				return err
			}

			output.NewPrinter(cmd.OutOrStdout()).Tasks(tasks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.Match, "match", "m", "", `only titles matching a glob, e.g. "Deploy*"`)
	cmd.Flags().BoolVar(&done, "done", false, "only completed tasks")
	cmd.Flags().BoolVar(&pending, "pending", false, "only tasks not yet completed")
	cmd.MarkFlagsMutuallyExclusive("done", "pending")
	return cmd
}

func newTasksAddCmd(a *app) *cobra.Command {
	var completed bool

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}

			created, err := c.Create(cmd.Context(), strings.Join(args, " "), completed)
			if err != nil {
				return err
			}
			output.NewPrinter(cmd.OutOrStdout()).Task(created)
			return nil
		},
	}

	cmd.Flags().BoolVar(&completed, "done", false, "create the task already completed")
	return cmd
}

func newTasksSetCompletedCmd(a *app, use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}

			updated, err := c.Update(cmd.Context(), id, model.TaskUpdate{Completed: model.Some(completed)})
			if err != nil {
				return notFound(id, err)
			}
			output.NewPrinter(cmd.OutOrStdout()).Task(updated)
			return nil
		},
	}
}

func newTasksRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title...>",
		Short: "Change a task's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}

			title := strings.Join(args[1:], " ")
			updated, err := c.Update(cmd.Context(), id, model.TaskUpdate{Title: model.Some(title)})
			if err != nil {
				return notFound(id, err)
			}
			output.NewPrinter(cmd.OutOrStdout()).Task(updated)
			return nil
		},
	}
}

func newTasksRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}

			removed, err := c.Delete(cmd.Context(), id)
			if err != nil {
				return notFound(id, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), "deleted ")
			output.NewPrinter(cmd.OutOrStdout()).Task(removed)
			return nil
		},
	}
}

func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func notFound(id int, err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("task %d: %w", id, model.ErrNotFound)
	}
	return err
}
