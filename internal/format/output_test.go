package format

import (
	"bytes"
	"strings"
	"testing"

	"kanban-cli/internal/model"
)

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": model.Task{ID: "t1", ColumnID: "c1", Content: "a<b"}}, "", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := `{"data":{"id":"t1","columnId":"c1","content":"a<b"}}` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q; want %q", got, want)
	}
}

func TestWrite_EDN(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{
		"data": model.Snapshot{
			Board: model.Board{
				Columns:   []model.Column{{ID: "c1", Title: "Todo"}},
				Tasks:     []model.Task{},
				ColumnSeq: 1,
			},
			Active: model.ColumnSubject("c1"),
		},
	}
	if err := Write(&buf, v, EDN, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := strings.TrimSpace(buf.String())
	want := `{:data {:active {:id "c1" :kind "column"} :column-seq 1 :columns [{:id "c1" :title "Todo"}] :tasks []}}`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestWrite_EDNPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"a": []any{1, true, nil}}, EDN, true); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "{\n  :a [\n    1\n    true\n    nil\n  ]\n}\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q; want %q", got, want)
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
