// Package reorder turns drag gestures into new column and task orders.
package reorder

import (
	"kanban-cli/internal/model"

	log "github.com/sirupsen/logrus"
)

// Collections is the state the engine reads and writes back. *board.Board satisfies it.
type Collections interface {
	Columns() []model.Column
	Tasks() []model.Task
	ColumnSeq() int
	ReplaceColumns([]model.Column) error
	ReplaceTasks([]model.Task) error
}

// Engine tracks one gesture at a time: Idle until Start, Dragging until End.
type Engine struct {
	c      Collections
	active model.DragSubject
	logger log.FieldLogger
}

type EngineOption func(*Engine)

func WithLogger(l log.FieldLogger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(c Collections, opts ...EngineOption) *Engine {
	e := &Engine{c: c, logger: log.StandardLogger()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Active() model.DragSubject { return e.active }

func (e *Engine) Dragging() bool { return !e.active.IsNone() }

// Snapshot copies the collections together with the active subject.
func (e *Engine) Snapshot() model.Snapshot {
	return model.Snapshot{
		Board: model.Board{
			Columns:   e.c.Columns(),
			Tasks:     e.c.Tasks(),
			ColumnSeq: e.c.ColumnSeq(),
		},
		Active: e.active,
	}
}

// Start picks up id. A start during an unfinished gesture replaces it. Unknown ids leave the
// engine idle; the element may have been removed between render and dispatch.
func (e *Engine) Start(id string) model.DragSubject {
	if e.Dragging() {
		e.logger.WithFields(log.Fields{"active": e.active.String(), "id": id}).Debug("gesture start while dragging; resetting")
	}
	e.active = e.resolve(id)
	if e.active.IsNone() {
		e.logger.WithField("id", id).Debug("gesture start: unknown id")
	}
	return e.active
}

// Hover applies live task reordering. Column drags ignore hover. Reports whether state changed.
func (e *Engine) Hover(overID string) bool {
	if e.active.Kind != model.DragTask || overID == "" || overID == e.active.ID {
		return false
	}
	tasks := e.c.Tasks()
	from := IndexOf(tasks, e.active.ID, taskKey)
	if from < 0 {
		e.logger.WithField("active", e.active.String()).Debug("gesture hover: active task is gone")
		return false
	}

	if to := IndexOf(tasks, overID, taskKey); to >= 0 {
		tasks[from].ColumnID = tasks[to].ColumnID
		return e.writeTasks(Move(tasks, from, to))
	}

	if IndexOf(e.c.Columns(), overID, columnKey) < 0 {
		e.logger.WithFields(log.Fields{"active": e.active.String(), "over": overID}).Debug("gesture hover: unknown target")
		return false
	}
	if tasks[from].ColumnID == overID {
		return false
	}
	tasks[from].ColumnID = overID
	return e.writeTasks(tasks)
}

// End finishes the gesture. overID == "" means the subject was dropped outside any target.
// Only column drags mutate here; task drags were applied while hovering.
func (e *Engine) End(overID string) bool {
	active := e.active
	e.active = model.NoSubject()

	if active.Kind != model.DragColumn || overID == "" || overID == active.ID {
		return false
	}
	cols, ok := MoveByID(e.c.Columns(), active.ID, overID, columnKey)
	if !ok {
		e.logger.WithFields(log.Fields{"active": active.String(), "over": overID}).Debug("gesture end: not a column target")
		return false
	}
	if err := e.c.ReplaceColumns(cols); err != nil {
		e.logger.WithError(err).Warn("gesture end: replace columns")
		return false
	}
	return true
}

// Cancel drops the active subject outside any target.
func (e *Engine) Cancel() { e.End("") }

func (e *Engine) resolve(id string) model.DragSubject {
	if id == "" {
		return model.NoSubject()
	}
	if IndexOf(e.c.Columns(), id, columnKey) >= 0 {
		return model.ColumnSubject(id)
	}
	if IndexOf(e.c.Tasks(), id, taskKey) >= 0 {
		return model.TaskSubject(id)
	}
	return model.NoSubject()
}

func (e *Engine) writeTasks(tasks []model.Task) bool {
	if err := e.c.ReplaceTasks(tasks); err != nil {
		e.logger.WithError(err).Warn("gesture hover: replace tasks")
		return false
	}
	return true
}

func columnKey(c model.Column) string { return c.ID }
func taskKey(t model.Task) string     { return t.ID }
