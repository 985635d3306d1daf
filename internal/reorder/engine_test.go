package reorder

import (
	"reflect"
	"testing"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
)

// fixture builds columns [A,B] and tasks [t1@A, t2@A, t3@B] with readable ids.
func fixture(t *testing.T) *board.Board {
	t.Helper()
	b, err := board.FromSnapshot(model.Board{
		Columns: []model.Column{{ID: "A", Title: "A"}, {ID: "B", Title: "B"}},
		Tasks: []model.Task{
			{ID: "t1", ColumnID: "A", Content: "one"},
			{ID: "t2", ColumnID: "A", Content: "two"},
			{ID: "t3", ColumnID: "B", Content: "three"},
		},
		ColumnSeq: 2,
	})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return b
}

func taskLayout(b *board.Board) []string {
	out := []string{}
	for _, t := range b.Tasks() {
		out = append(out, t.ID+"@"+t.ColumnID)
	}
	return out
}

func columnOrder(b *board.Board) []string {
	out := []string{}
	for _, c := range b.Columns() {
		out = append(out, c.ID)
	}
	return out
}

func TestEngine_StartResolvesKind(t *testing.T) {
	b := fixture(t)
	e := NewEngine(b)

	if got := e.Start("A"); got != model.ColumnSubject("A") {
		t.Fatalf("Start(A) = %v", got)
	}
	if got := e.Start("t2"); got != model.TaskSubject("t2") {
		t.Fatalf("Start(t2) = %v (expected reset onto the new subject)", got)
	}
	if got := e.Start("missing"); !got.IsNone() || e.Dragging() {
		t.Fatalf("Start(missing) = %v; expected idle", got)
	}
}

func TestEngine_HoverTaskOverTaskInOtherColumn(t *testing.T) {
	b := fixture(t)
	e := NewEngine(b)

	e.Start("t1")
	if !e.Hover("t3") {
		t.Fatalf("expected hover to change state")
	}
	want := []string{"t2@A", "t3@B", "t1@B"}
	if got := taskLayout(b); !reflect.DeepEqual(got, want) {
		t.Fatalf("tasks = %v; want %v", got, want)
	}
	if got := b.TasksForColumn("A"); len(got) != 1 || got[0].ID != "t2" {
		t.Fatalf("column A = %+v", got)
	}

	e.End("t3")
	if e.Dragging() {
		t.Fatalf("expected idle after end")
	}
	if got := taskLayout(b); !reflect.DeepEqual(got, want) {
		t.Fatalf("end mutated tasks: %v", got)
	}
}

func TestEngine_HoverTaskWithinColumn(t *testing.T) {
	b := fixture(t)
	e := NewEngine(b)

	e.Start("t2")
	if !e.Hover("t1") {
		t.Fatalf("expected hover to reorder")
	}
	want := []string{"t2@A", "t1@A", "t3@B"}
	if got := taskLayout(b); !reflect.DeepEqual(got, want) {
		t.Fatalf("tasks = %v; want %v", got, want)
	}
}

func TestEngine_HoverTaskOverColumnReassignsOnly(t *testing.T) {
	b := fixture(t)
	e := NewEngine(b)

	e.Start("t1")
	if !e.Hover("B") {
		t.Fatalf("expected hover over column to reassign")
	}
	want := []string{"t1@B", "t2@A", "t3@B"}
	if got := taskLayout(b); !reflect.DeepEqual(got, want) {
		t.Fatalf("tasks = %v; want %v", got, want)
	}
	// Hovering the column it already belongs to does nothing.
	if e.Hover("B") {
		t.Fatalf("expected second hover over same column to be a no-op")
	}
}

func TestEngine_HoverNoOps(t *testing.T) {
	b := fixture(t)
	e := NewEngine(b)
	before := b.Snapshot()

	// Idle.
	if e.Hover("t2") {
		t.Fatalf("hover while idle changed state")
	}
	// Self.
	e.Start("t1")
	if e.Hover("t1") {
		t.Fatalf("hover over self changed state")
	}
	// Own column.
	if e.Hover("A") {
		t.Fatalf("hover over own column changed state")
	}
	// Unknown target.
	if e.Hover("zzz") {
		t.Fatalf("hover over unknown id changed state")
	}
	// Column drags ignore hover.
	e.Start("A")
	if e.Hover("B") {
		t.Fatalf("column hover changed state")
	}
	if !reflect.DeepEqual(before, b.Snapshot()) {
		t.Fatalf("state changed by no-op hovers")
	}
}

func TestEngine_HoverAfterActiveTaskDeleted(t *testing.T) {
	b := fixture(t)
	e := NewEngine(b)

	e.Start("t1")
	b.DeleteTask("t1")
	if e.Hover("t3") {
		t.Fatalf("expected no-op when active task disappeared")
	}
	e.End("")
}

func TestEngine_ColumnDrop(t *testing.T) {
	b := fixture(t)
	e := NewEngine(b)

	e.Start("A")
	e.Hover("B")
	if got := columnOrder(b); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("columns reordered before drop: %v", got)
	}
	if !e.End("B") {
		t.Fatalf("expected drop to reorder columns")
	}
	if got := columnOrder(b); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Fatalf("columns = %v; want [B A]", got)
	}
	if e.Dragging() {
		t.Fatalf("expected idle after drop")
	}
}

func TestEngine_ColumnDropOutsideOrOnTask(t *testing.T) {
	b := fixture(t)
	e := NewEngine(b)

	e.Start("A")
	if e.End("") {
		t.Fatalf("drop outside changed state")
	}
	e.Start("A")
	if e.End("t3") {
		t.Fatalf("drop onto task changed state")
	}
	e.Start("A")
	if e.End("A") {
		t.Fatalf("drop onto self changed state")
	}
	if got := columnOrder(b); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("columns = %v; want [A B]", got)
	}
	if e.Dragging() {
		t.Fatalf("expected idle")
	}
}

func TestEngine_CancelKeepsHoverMutations(t *testing.T) {
	b := fixture(t)
	e := NewEngine(b)

	e.Start("t1")
	e.Hover("B")
	e.Cancel()
	if got, _ := b.Task("t1"); got.ColumnID != "B" {
		t.Fatalf("expected hover reassignment to persist after cancel, got %+v", got)
	}
	if !e.Active().IsNone() {
		t.Fatalf("expected idle after cancel")
	}
}

func TestEngine_CrossColumnMovePreservesTaskMultiset(t *testing.T) {
	b := fixture(t)
	e := NewEngine(b)
	ids := func() map[string]bool {
		out := map[string]bool{}
		for _, t := range b.Tasks() {
			out[t.ID] = true
		}
		return out
	}
	before := ids()

	e.Start("t3")
	e.Hover("t1")
	e.Hover("t2")
	e.Hover("B")
	e.End("B")

	after := ids()
	if len(b.Tasks()) != 3 || !reflect.DeepEqual(before, after) {
		t.Fatalf("task set changed: before=%v after=%v", before, after)
	}
}

func TestEngine_Snapshot(t *testing.T) {
	b := fixture(t)
	e := NewEngine(b)
	e.Start("t2")

	snap := e.Snapshot()
	if snap.Active != model.TaskSubject("t2") {
		t.Fatalf("unexpected active %v", snap.Active)
	}
	// Mutating the snapshot must not leak into the board.
	snap.Tasks[0].Content = "changed"
	snap.Columns[0].Title = "changed"
	if got, _ := b.Task("t1"); got.Content != "one" {
		t.Fatalf("snapshot aliases board tasks")
	}
	if got, _ := b.Column("A"); got.Title != "A" {
		t.Fatalf("snapshot aliases board columns")
	}
}
