package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
)

func TestSQLiteStore_SaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	b := board.New()
	a := b.CreateColumn()
	c := b.CreateColumn()
	t1, _ := b.CreateTask(a.ID)
	t2, _ := b.CreateTask(c.ID)
	t3, _ := b.CreateTask(a.ID)
	b.RenameColumn(c.ID, "Done")
	b.DeleteColumn(a.ID)
	b.CreateColumn()

	if err := s.Save(ctx, b); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got.Snapshot(), b.Snapshot()) {
		t.Fatalf("round trip mismatch:\nwant=%+v\ngot=%+v", b.Snapshot(), got.Snapshot())
	}
	if _, ok := got.Task(t1.ID); ok {
		t.Fatalf("expected cascaded task %s to stay deleted", t1.ID)
	}
	if _, ok := got.Task(t3.ID); ok {
		t.Fatalf("expected cascaded task %s to stay deleted", t3.ID)
	}
	if _, ok := got.Task(t2.ID); !ok {
		t.Fatalf("expected task %s to survive", t2.ID)
	}
	if col := got.CreateColumn(); col.Title != "Column 4" {
		t.Fatalf("expected column sequence to persist, got %q", col.Title)
	}
}

func TestSQLiteStore_PreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	snap := model.Board{
		Columns: []model.Column{{ID: "c2", Title: "B"}, {ID: "c1", Title: "A"}},
		Tasks: []model.Task{
			{ID: "t9", ColumnID: "c1", Content: "x"},
			{ID: "t1", ColumnID: "c2", Content: "y"},
			{ID: "t5", ColumnID: "c1", Content: "z"},
		},
		ColumnSeq: 2,
	}
	if err := s.SaveSnapshot(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("order not preserved:\nwant=%+v\ngot=%+v", snap, got)
	}
}

func TestSQLiteStore_RejectsDanglingTask(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	snap := model.Board{
		Columns: []model.Column{{ID: "c1", Title: "A"}},
		Tasks:   []model.Task{{ID: "t1", ColumnID: "missing", Content: "x"}},
	}
	if err := s.SaveSnapshot(ctx, snap); err == nil {
		t.Fatalf("expected foreign key violation")
	}
}

func TestSQLiteStore_EmptyDir(t *testing.T) {
	s := Store{Dir: filepath.Join(t.TempDir(), "nested", ".kanban")}
	b, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(b.Columns()) != 0 || len(b.Tasks()) != 0 {
		t.Fatalf("expected empty board, got %+v", b.Snapshot())
	}
	evs, err := s.ReadEvents(context.Background(), 0)
	if err != nil || len(evs) != 0 {
		t.Fatalf("expected no events; got %v (err=%v)", evs, err)
	}
	if _, err := os.Stat(s.Dir); !os.IsNotExist(err) {
		t.Fatalf("reading must not create %s; stat err=%v", s.Dir, err)
	}
}

func TestEventLog_AppendAndRead(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	if err := s.AppendEvent(ctx, "column.create", "col-1", map[string]any{"title": "Column 1"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent(ctx, "task.create", "task-1", map[string]any{"columnId": "col-1"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent(ctx, "task.update", "task-1", map[string]any{"content": "hi"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.AppendEvent(ctx, "", "task-1", nil); err == nil {
		t.Fatalf("expected error for missing type")
	}

	all, err := s.ReadEvents(ctx, 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(all) != 3 || all[0].Type != "column.create" || all[2].Type != "task.update" {
		t.Fatalf("unexpected events: %+v", all)
	}

	tail, err := s.ReadEvents(ctx, 2)
	if err != nil {
		t.Fatalf("read tail: %v", err)
	}
	if len(tail) != 2 || tail[0].Type != "task.create" || tail[1].Type != "task.update" {
		t.Fatalf("unexpected tail: %+v", tail)
	}

	forTask, err := s.ReadEventsForEntity(ctx, "task-1", 0)
	if err != nil {
		t.Fatalf("read entity: %v", err)
	}
	if len(forTask) != 2 {
		t.Fatalf("expected 2 events for task-1, got %d", len(forTask))
	}
	payload, _ := forTask[1].Payload.(map[string]any)
	if payload["content"] != "hi" {
		t.Fatalf("unexpected payload: %#v", forTask[1].Payload)
	}
}

func TestConfig_LoadSaveValidate(t *testing.T) {
	s := Store{Dir: t.TempDir()}

	cfg, err := s.LoadConfig()
	if err != nil {
		t.Fatalf("load missing config: %v", err)
	}
	if cfg.Glyphs() != "unicode" || cfg.ColumnWidth() != 0 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	want := Config{Format: "edn", LogLevel: "debug", TUI: &TUIConfig{Glyphs: "ascii", ColumnWidth: 24}}
	if err := s.SaveConfig(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("config mismatch: want=%+v got=%+v", want, got)
	}

	if err := s.SaveConfig(Config{Format: "yaml"}); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := os.WriteFile(filepath.Join(s.Dir, configFileName), []byte(`{"tui":{"glyphs":"emoji"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadConfig(); err == nil {
		t.Fatalf("expected validation error on load")
	}
}

func TestDiscoverDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, dirName), 0o755); err != nil {
		t.Fatal(err)
	}
	deep := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(deep, 0o755); err != nil {
		t.Fatal(err)
	}
	got, ok := DiscoverDir(deep)
	if !ok || got != filepath.Join(root, dirName) {
		t.Fatalf("DiscoverDir = %q, %v", got, ok)
	}
}

func TestEventLog_UndecodablePayloadKeepsRawText(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}
	if err := s.AppendEvent(ctx, "task.create", "task-1", map[string]any{"columnId": "col-1"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err = db.ExecContext(ctx, `INSERT INTO events(event_id, ts_unixms, type, entity_id, payload_json) VALUES(?, ?, ?, ?, ?)`,
		"ev-broken", int64(1<<42), "task.update", "task-1", "{not json")
	_ = db.Close()
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	evs, err := s.ReadEventsForEntity(ctx, "task-1", 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("expected both events; got %+v", evs)
	}
	if evs[1].ID != "ev-broken" || evs[1].Payload != "{not json" {
		t.Fatalf("expected raw payload on the broken event; got %#v", evs[1])
	}
}
