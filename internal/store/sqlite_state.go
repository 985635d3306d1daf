package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kanban-cli/internal/model"

	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", s.sqlitePath(), err)
	}
	return db, nil
}

// SaveSnapshot replaces the stored board with snap in one transaction.
func (s Store) SaveSnapshot(ctx context.Context, snap model.Board) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, "column_seq", strconv.Itoa(snap.ColumnSeq)); err != nil {
		return err
	}

	// Replace-all. Tasks first: they reference columns.
	for _, t := range []string{"tasks", "columns"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()
	for i, c := range snap.Columns {
		if _, err := tx.ExecContext(ctx, `INSERT INTO columns(id, position, title, updated_at_unixms) VALUES(?, ?, ?, ?)`,
			c.ID, i, c.Title, nowMs); err != nil {
			return fmt.Errorf("save column %s: %w", c.ID, err)
		}
	}
	for i, t := range snap.Tasks {
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(id, column_id, position, content, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			t.ID, t.ColumnID, i, t.Content, nowMs); err != nil {
			return fmt.Errorf("save task %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"columns": len(snap.Columns), "tasks": len(snap.Tasks)}).Debug("board saved")
	return nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS columns (
			id TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			column_id TEXT NOT NULL REFERENCES columns(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			content TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_column ON tasks(column_id, position);`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			ts_unixms INTEGER NOT NULL,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_entity ON events(entity_id, ts_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (model.Board, error) {
	out := model.Board{Columns: []model.Column{}, Tasks: []model.Task{}}

	var seq string
	err := db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, "column_seq").Scan(&seq)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return model.Board{}, err
	default:
		n, err := strconv.Atoi(strings.TrimSpace(seq))
		if err != nil {
			return model.Board{}, fmt.Errorf("invalid column_seq %q: %w", seq, err)
		}
		out.ColumnSeq = n
	}

	rows, err := db.QueryContext(ctx, `SELECT id, title FROM columns ORDER BY position ASC`)
	if err != nil {
		return model.Board{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var c model.Column
		if err := rows.Scan(&c.ID, &c.Title); err != nil {
			return model.Board{}, err
		}
		out.Columns = append(out.Columns, c)
	}
	if err := rows.Err(); err != nil {
		return model.Board{}, err
	}

	trows, err := db.QueryContext(ctx, `SELECT id, column_id, content FROM tasks ORDER BY position ASC`)
	if err != nil {
		return model.Board{}, err
	}
	defer trows.Close()
	for trows.Next() {
		var t model.Task
		if err := trows.Scan(&t.ID, &t.ColumnID, &t.Content); err != nil {
			return model.Board{}, err
		}
		out.Tasks = append(out.Tasks, t)
	}
	if err := trows.Err(); err != nil {
		return model.Board{}, err
	}
	return out, nil
}
