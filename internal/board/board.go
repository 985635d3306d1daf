// Package board holds the authoritative ordered columns and tasks.
//
// All lookups by id are tolerant: an unknown id leaves state untouched and reports changed=false.
// The only escalated condition is a task referencing a column that does not exist.
package board

import (
	"fmt"

	"kanban-cli/internal/model"

	log "github.com/sirupsen/logrus"
)

type Board struct {
	columns []model.Column
	tasks   []model.Task

	// columnSeq counts every column ever created; default titles use it.
	columnSeq int

	newID  IDFunc
	logger log.FieldLogger
}

type Option func(*Board)

func WithIDFunc(f IDFunc) Option {
	return func(b *Board) {
		if f != nil {
			b.newID = f
		}
	}
}

func WithLogger(l log.FieldLogger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

func New(opts ...Option) *Board {
	b := &Board{
		columns: []model.Column{},
		tasks:   []model.Task{},
		newID:   ShortIDs,
		logger:  log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// FromSnapshot rebuilds a board from persisted state. Tasks whose column is missing are dropped so
// the restored board satisfies the same invariants as a freshly built one.
func FromSnapshot(snap model.Board, opts ...Option) (*Board, error) {
	b := New(opts...)
	seen := map[string]bool{}
	for _, c := range snap.Columns {
		if seen[c.ID] {
			return nil, NotPermutationError{Kind: "column", Reason: "duplicate id " + c.ID}
		}
		seen[c.ID] = true
		b.columns = append(b.columns, c)
	}
	for _, t := range snap.Tasks {
		if seen[t.ID] {
			return nil, NotPermutationError{Kind: "task", Reason: "duplicate id " + t.ID}
		}
		if b.columnIndex(t.ColumnID) < 0 {
			b.logger.WithFields(log.Fields{"task": t.ID, "column": t.ColumnID}).Warn("dropping task with dangling column reference")
			continue
		}
		seen[t.ID] = true
		b.tasks = append(b.tasks, t)
	}
	b.columnSeq = snap.ColumnSeq
	if b.columnSeq < len(b.columns) {
		b.columnSeq = len(b.columns)
	}
	return b, nil
}

func (b *Board) CreateColumn() model.Column {
	b.columnSeq++
	c := model.Column{
		ID:    b.nextID(KindColumn),
		Title: fmt.Sprintf("Column %d", b.columnSeq),
	}
	b.columns = append(b.columns, c)
	return c
}

// DeleteColumn removes the column and every task it owns.
func (b *Board) DeleteColumn(id string) bool {
	idx := b.columnIndex(id)
	if idx < 0 {
		b.logger.WithField("id", id).Debug("delete column: not found")
		return false
	}
	b.columns = append(b.columns[:idx:idx], b.columns[idx+1:]...)

	kept := make([]model.Task, 0, len(b.tasks))
	for _, t := range b.tasks {
		if t.ColumnID != id {
			kept = append(kept, t)
		}
	}
	b.tasks = kept
	return true
}

// RenameColumn does not validate title; trimming and rejecting empty input is up to the caller.
func (b *Board) RenameColumn(id, title string) bool {
	idx := b.columnIndex(id)
	if idx < 0 {
		b.logger.WithField("id", id).Debug("rename column: not found")
		return false
	}
	if b.columns[idx].Title == title {
		return false
	}
	b.columns[idx].Title = title
	return true
}

func (b *Board) CreateTask(columnID string) (model.Task, error) {
	if b.columnIndex(columnID) < 0 {
		return model.Task{}, InvalidReferenceError{ColumnID: columnID}
	}
	t := model.Task{
		ID:       b.nextID(KindTask),
		ColumnID: columnID,
		Content:  fmt.Sprintf("Task %d", len(b.tasks)+1),
	}
	b.tasks = append(b.tasks, t)
	return t, nil
}

func (b *Board) DeleteTask(id string) bool {
	idx := b.taskIndex(id)
	if idx < 0 {
		b.logger.WithField("id", id).Debug("delete task: not found")
		return false
	}
	b.tasks = append(b.tasks[:idx:idx], b.tasks[idx+1:]...)
	return true
}

func (b *Board) UpdateTaskContent(id, content string) bool {
	idx := b.taskIndex(id)
	if idx < 0 {
		b.logger.WithField("id", id).Debug("update task: not found")
		return false
	}
	if b.tasks[idx].Content == content {
		return false
	}
	b.tasks[idx].Content = content
	return true
}

// TasksForColumn returns the column's tasks in global task order. Never nil.
func (b *Board) TasksForColumn(columnID string) []model.Task {
	out := []model.Task{}
	for _, t := range b.tasks {
		if t.ColumnID == columnID {
			out = append(out, t)
		}
	}
	return out
}

func (b *Board) Columns() []model.Column {
	return append([]model.Column{}, b.columns...)
}

func (b *Board) Tasks() []model.Task {
	return append([]model.Task{}, b.tasks...)
}

func (b *Board) Column(id string) (model.Column, bool) {
	idx := b.columnIndex(id)
	if idx < 0 {
		return model.Column{}, false
	}
	return b.columns[idx], true
}

func (b *Board) Task(id string) (model.Task, bool) {
	idx := b.taskIndex(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return b.tasks[idx], true
}

func (b *Board) ColumnSeq() int { return b.columnSeq }

func (b *Board) Snapshot() model.Board {
	return model.Board{
		Columns:   b.Columns(),
		Tasks:     b.Tasks(),
		ColumnSeq: b.columnSeq,
	}
}

// ReplaceColumns installs a new column order. cols must hold exactly the current columns.
func (b *Board) ReplaceColumns(cols []model.Column) error {
	if len(cols) != len(b.columns) {
		return NotPermutationError{Kind: "column", Reason: fmt.Sprintf("length %d, want %d", len(cols), len(b.columns))}
	}
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if seen[c.ID] {
			return NotPermutationError{Kind: "column", Reason: "duplicate id " + c.ID}
		}
		if b.columnIndex(c.ID) < 0 {
			return NotPermutationError{Kind: "column", Reason: "unknown id " + c.ID}
		}
		seen[c.ID] = true
	}
	b.columns = append(b.columns[:0:0], cols...)
	return nil
}

// ReplaceTasks installs a new task order and column membership. tasks must hold exactly the
// current tasks and each must reference an existing column.
func (b *Board) ReplaceTasks(tasks []model.Task) error {
	if len(tasks) != len(b.tasks) {
		return NotPermutationError{Kind: "task", Reason: fmt.Sprintf("length %d, want %d", len(tasks), len(b.tasks))}
	}
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			return NotPermutationError{Kind: "task", Reason: "duplicate id " + t.ID}
		}
		if b.taskIndex(t.ID) < 0 {
			return NotPermutationError{Kind: "task", Reason: "unknown id " + t.ID}
		}
		if b.columnIndex(t.ColumnID) < 0 {
			return InvalidReferenceError{TaskID: t.ID, ColumnID: t.ColumnID}
		}
		seen[t.ID] = true
	}
	b.tasks = append(b.tasks[:0:0], tasks...)
	return nil
}

func (b *Board) columnIndex(id string) int {
	for i := range b.columns {
		if b.columns[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) taskIndex(id string) int {
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
