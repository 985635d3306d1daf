package cli

import (
	"errors"
	"strings"

	"kanban-cli/internal/model"
	"kanban-cli/internal/reorder"

	"github.com/spf13/cobra"
)

type columnView struct {
	model.Column
	TaskCount int `json:"taskCount"`
}

func newColumnsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "columns",
		Aliases: []string{"column", "cols"},
		Short:   "Create, rename, delete and reorder columns",
	}
	cmd.AddCommand(newColumnsListCmd(app))
	cmd.AddCommand(newColumnsAddCmd(app))
	cmd.AddCommand(newColumnsShowCmd(app))
	cmd.AddCommand(newColumnsRenameCmd(app))
	cmd.AddCommand(newColumnsRmCmd(app))
	cmd.AddCommand(newColumnsMoveCmd(app))
	return cmd
}

func newColumnsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List columns in board order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := []columnView{}
			for _, c := range b.Columns() {
				out = append(out, columnView{Column: c, TaskCount: len(b.TasksForColumn(c.ID))})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
}

func newColumnsAddCmd(app *App) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a new column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			c := b.CreateColumn()
			if t := strings.TrimSpace(title); t != "" {
				b.RenameColumn(c.ID, t)
				c, _ = b.Column(c.ID)
			}
			if err := commit(cmd, s, b, "column.create", c.ID, map[string]any{"title": c.Title}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Column title (default: Column <n>)")
	return cmd
}

func newColumnsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <column-id>",
		Short: "Show a column and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			c, ok := b.Column(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("column", args[0]))
			}
			tasks := b.TasksForColumn(c.ID)
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"column": columnView{Column: c, TaskCount: len(tasks)},
					"tasks":  tasks,
				},
			})
		},
	}
}

func newColumnsRenameCmd(app *App) *cobra.Command {
	var title string
	cmd := &cobra.Command{
		Use:   "rename <column-id>",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title = strings.TrimSpace(title)
			if title == "" {
				return writeErr(cmd, errEmptyTitle)
			}
			b, s, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]
			if _, ok := b.Column(id); !ok {
				return writeErr(cmd, errNotFound("column", id))
			}
			if b.RenameColumn(id, title) {
				if err := commit(cmd, s, b, "column.rename", id, map[string]any{"title": title}); err != nil {
					return writeErr(cmd, err)
				}
			}
			c, _ := b.Column(id)
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "New title")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newColumnsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <column-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a column and every task in it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]
			if _, ok := b.Column(id); !ok {
				return writeErr(cmd, errNotFound("column", id))
			}
			removed := len(b.TasksForColumn(id))
			b.DeleteColumn(id)
			if err := commit(cmd, s, b, "column.delete", id, map[string]any{"tasksDeleted": removed}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "tasksDeleted": removed}})
		},
	}
}

func newColumnsMoveCmd(app *App) *cobra.Command {
	var over string
	cmd := &cobra.Command{
		Use:   "move <column-id>",
		Short: "Move a column to the position of another column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]
			if _, ok := b.Column(id); !ok {
				return writeErr(cmd, errNotFound("column", id))
			}
			if _, ok := b.Column(over); !ok {
				return writeErr(cmd, errors.New("--over must name a column"))
			}

			e := reorder.NewEngine(b)
			e.Start(id)
			if e.End(over) {
				if err := commit(cmd, s, b, "column.move", id, map[string]any{"over": over}); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": b.Columns()})
		},
	}
	cmd.Flags().StringVar(&over, "over", "", "Target column id")
	_ = cmd.MarkFlagRequired("over")
	return cmd
}
