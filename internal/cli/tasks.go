package cli

import (
	"errors"

	"kanban-cli/internal/model"
	"kanban-cli/internal/reorder"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Create, edit, delete and move tasks",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksRmCmd(app))
	cmd.AddCommand(newTasksMoveCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var column string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in board order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			var out []model.Task
			if column != "" {
				if _, ok := b.Column(column); !ok {
					return writeErr(cmd, errNotFound("column", column))
				}
				out = b.TasksForColumn(column)
			} else {
				out = b.Tasks()
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "Only tasks in this column")
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var column string
	var content string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a task to a column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := b.CreateTask(column)
			if err != nil {
				return writeErr(cmd, err)
			}
			if content != "" {
				b.UpdateTaskContent(t.ID, content)
				t, _ = b.Task(t.ID)
			}
			if err := commit(cmd, s, b, "task.create", t.ID, map[string]any{"columnId": t.ColumnID, "content": t.Content}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "Owning column id")
	cmd.Flags().StringVar(&content, "content", "", "Task content (default: Task <n>)")
	_ = cmd.MarkFlagRequired("column")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := b.Task(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newTasksEditCmd(app *App) *cobra.Command {
	var content string
	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Replace a task's content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]
			if _, ok := b.Task(id); !ok {
				return writeErr(cmd, errNotFound("task", id))
			}
			if b.UpdateTaskContent(id, content) {
				if err := commit(cmd, s, b, "task.update", id, map[string]any{"content": content}); err != nil {
					return writeErr(cmd, err)
				}
			}
			t, _ := b.Task(id)
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	cmd.Flags().StringVar(&content, "content", "", "New content")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newTasksRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]
			if !b.DeleteTask(id) {
				return writeErr(cmd, errNotFound("task", id))
			}
			if err := commit(cmd, s, b, "task.delete", id, map[string]any{}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id}})
		},
	}
}

func newTasksMoveCmd(app *App) *cobra.Command {
	var over string
	cmd := &cobra.Command{
		Use:   "move <task-id>",
		Short: "Move a task onto another task's slot or into a column",
		Long: `Move a task the same way a drag does.

--over a task: the moved task joins that task's column and takes its position.
--over a column: the moved task joins that column and keeps its relative position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]
			if _, ok := b.Task(id); !ok {
				return writeErr(cmd, errNotFound("task", id))
			}
			_, isTask := b.Task(over)
			_, isColumn := b.Column(over)
			if !isTask && !isColumn {
				return writeErr(cmd, errors.New("--over must name a task or a column"))
			}

			e := reorder.NewEngine(b)
			e.Start(id)
			changed := e.Hover(over)
			e.End(over)
			if changed {
				if err := commit(cmd, s, b, "task.move", id, map[string]any{"over": over}); err != nil {
					return writeErr(cmd, err)
				}
			}
			t, _ := b.Task(id)
			return writeOut(cmd, app, map[string]any{"data": t, "meta": map[string]any{"changed": changed}})
		},
	}
	cmd.Flags().StringVar(&over, "over", "", "Target task or column id")
	_ = cmd.MarkFlagRequired("over")
	return cmd
}
