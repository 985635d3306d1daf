package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	var entity string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List recorded mutations (oldest-first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := storeFor(app)
			var err error
			var out any
			if id := strings.TrimSpace(entity); id != "" {
				out, err = s.ReadEventsForEntity(cmd.Context(), id, limit)
			} else {
				out, err = s.ReadEvents(cmd.Context(), limit)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 200, "Max events to return, newest kept (0 = all)")
	cmd.Flags().StringVar(&entity, "entity", "", "Only events for this column or task id")
	return cmd
}
