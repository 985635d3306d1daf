package cli

import (
	"errors"

	"kanban-cli/internal/board"
)

func errNotFound(kind, id string) error {
	return board.NotFoundError{Kind: kind, ID: id}
}

var errEmptyTitle = errors.New("title must not be empty")
