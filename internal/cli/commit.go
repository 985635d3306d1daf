package cli

import (
	"kanban-cli/internal/board"
	"kanban-cli/internal/store"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// commit saves the board and records one event. The event log is best-effort: a failed append
// is logged, the saved board stands.
func commit(cmd *cobra.Command, s store.Store, b *board.Board, typ, entityID string, payload any) error {
	ctx := cmd.Context()
	if err := s.Save(ctx, b); err != nil {
		return err
	}
	if err := s.AppendEvent(ctx, typ, entityID, payload); err != nil {
		log.WithError(err).WithFields(log.Fields{"type": typ, "entity": entityID}).Warn("append event failed")
	}
	return nil
}
