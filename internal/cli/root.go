package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"kanban-cli/internal/board"
	"kanban-cli/internal/format"
	"kanban-cli/internal/store"
	"kanban-cli/internal/tui"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
	LogLevel   string
	NoColor    bool

	cfg store.Config
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "kanban",
		Short:        "Kanban board CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  kanban

  # Scriptable commands
  kanban columns add --title Todo
  kanban tasks add --column col-1a2b3c4d --content "Write docs"

  # Replay a drag gesture: pick up a task, hover another, drop
  kanban drag task-9f8e7d6c --hover task-0a1b2c3d --drop task-0a1b2c3d

  # Direct lookup (shortcut for: kanban tasks show <task-id>)
  kanban task-9f8e7d6c
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setup(cmd)
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("KANBAN_DIR", ""), "Path to board dir (default: nearest .kanban walking up from cwd)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("KANBAN_FORMAT", ""), "Output format (json|edn; default json or config.json)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("KANBAN_LOG_LEVEL", ""), "Log level (debug|info|warn|error; default warn)")
	cmd.PersistentFlags().BoolVar(&app.NoColor, "no-color", os.Getenv("NO_COLOR") != "", "Disable colors in the TUI and rendered output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newBoardCmd(app))
	cmd.AddCommand(newColumnsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newDragCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newExportCmd(app))

	return cmd
}

// setup resolves the board dir, reads config.json and configures logging.
func (app *App) setup(cmd *cobra.Command) error {
	if app.Dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Dir = d
	}

	cfg, err := store.Store{Dir: app.Dir}.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	app.cfg = cfg
	if app.Format == "" {
		app.Format = cfg.Format
	}
	if app.Format == "" {
		app.Format = format.JSON
	}
	if app.Format != format.JSON && app.Format != format.EDN {
		return writeErr(cmd, fmt.Errorf("unknown format: %s", app.Format))
	}
	if app.LogLevel == "" {
		app.LogLevel = cfg.LogLevel
	}
	if app.LogLevel == "" {
		app.LogLevel = "warn"
	}

	lvl, err := log.ParseLevel(app.LogLevel)
	if err != nil {
		return writeErr(cmd, fmt.Errorf("invalid log level: %w", err))
	}
	log.SetLevel(lvl)
	log.SetOutput(cmd.ErrOrStderr())
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true, DisableColors: app.NoColor})
	log.WithFields(log.Fields{"dir": app.Dir, "format": app.Format}).Debug("cli configured")
	return nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	b, s, err := loadBoard(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	return tui.Run(s, b, tui.Options{
		Glyphs:      app.cfg.Glyphs(),
		ColumnWidth: app.cfg.ColumnWidth(),
		NoColor:     app.NoColor,
	})
}

func storeFor(app *App) store.Store {
	return store.Store{Dir: app.Dir}
}

func loadBoard(ctx context.Context, app *App) (*board.Board, store.Store, error) {
	s := storeFor(app)
	b, err := s.Load(ctx)
	if err != nil {
		return nil, s, err
	}
	return b, s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
