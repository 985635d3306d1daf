package store

import (
	"context"
	"os"
	"path/filepath"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
)

const (
	dirName        = ".kanban"
	sqliteFileName = "board.sqlite"
	configFileName = "config.json"
)

// Store persists a board directory: the SQLite snapshot, the event log and config.json.
type Store struct {
	Dir string
}

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) hasDatabase() bool {
	st, err := os.Stat(s.sqlitePath())
	return err == nil && !st.IsDir()
}

// Load restores the board. A directory without a database yields an empty board.
func (s Store) Load(ctx context.Context, opts ...board.Option) (*board.Board, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return board.FromSnapshot(snap, opts...)
}

func (s Store) Save(ctx context.Context, b *board.Board) error {
	return s.SaveSnapshot(ctx, b.Snapshot())
}

// LoadSnapshot reads the stored board. A missing database is an empty board and is not created.
func (s Store) LoadSnapshot(ctx context.Context) (model.Board, error) {
	if !s.hasDatabase() {
		return model.Board{Columns: []model.Column{}, Tasks: []model.Task{}}, nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return model.Board{}, err
	}
	defer db.Close()
	return loadStateFromSQLite(ctx, db)
}
