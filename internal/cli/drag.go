package cli

import (
	"strings"

	"kanban-cli/internal/reorder"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type gestureStep struct {
	Op      string `json:"op"`
	Target  string `json:"target,omitempty"`
	Changed bool   `json:"changed"`
}

func newDragCmd(app *App) *cobra.Command {
	var hovers []string
	var drop string

	cmd := &cobra.Command{
		Use:   "drag <id>",
		Short: "Replay one drag gesture: pick up, hover over targets, drop",
		Long: strings.TrimSpace(`
Replay a full drag gesture through the reorder engine.

Tasks move while hovering (--hover may repeat). Columns move only on drop.
Omitting --drop ends the gesture outside any target.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, s, err := loadBoard(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e := reorder.NewEngine(b, reorder.WithLogger(log.WithField("gesture", args[0])))

			subject := e.Start(args[0])
			if subject.IsNone() {
				return writeErr(cmd, errNotFound("column or task", args[0]))
			}

			steps := []gestureStep{{Op: "start", Target: args[0]}}
			changed := false
			for _, over := range hovers {
				ok := e.Hover(over)
				changed = changed || ok
				steps = append(steps, gestureStep{Op: "hover", Target: over, Changed: ok})
			}
			ok := e.End(drop)
			changed = changed || ok
			steps = append(steps, gestureStep{Op: "end", Target: drop, Changed: ok})

			if changed {
				if err := commit(cmd, s, b, "gesture", subject.ID, map[string]any{
					"kind":  subject.Kind.String(),
					"hover": hovers,
					"drop":  drop,
				}); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data": e.Snapshot(),
				"meta": map[string]any{"subject": subject, "steps": steps, "changed": changed},
			})
		},
	}
	cmd.Flags().StringArrayVar(&hovers, "hover", nil, "Hover over this id (repeatable, applied in order)")
	cmd.Flags().StringVar(&drop, "drop", "", "Drop target id (default: outside)")
	return cmd
}
