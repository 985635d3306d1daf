package board

import (
	"strings"

	"github.com/google/uuid"
)

const (
	KindColumn = "col"
	KindTask   = "task"
)

// IDFunc mints an identifier for a new entity of the given kind (KindColumn or KindTask).
type IDFunc func(kind string) string

// ShortIDs returns prefix-<8 hex chars> ids, e.g. col-1a2b3c4d.
func ShortIDs(kind string) string {
	u := uuid.New()
	return kind + "-" + strings.ReplaceAll(u.String(), "-", "")[:8]
}

// nextID asks the configured IDFunc for an unused id. Short ids collide eventually, and a caller
// supplied IDFunc may hand out duplicates, so fall back to a full uuid after a few attempts.
func (b *Board) nextID(kind string) string {
	for i := 0; i < 16; i++ {
		id := strings.TrimSpace(b.newID(kind))
		if id != "" && !b.idExists(id) {
			return id
		}
	}
	for {
		id := kind + "-" + uuid.NewString()
		if !b.idExists(id) {
			return id
		}
	}
}

func (b *Board) idExists(id string) bool {
	return b.columnIndex(id) >= 0 || b.taskIndex(id) >= 0
}
