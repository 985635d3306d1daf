package tui

import (
	"context"
	"fmt"
	"strings"

	"kanban-cli/internal/board"
	"kanban-cli/internal/model"
	"kanban-cli/internal/reorder"
	"kanban-cli/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"
)

type mode int

const (
	modeBoard mode = iota
	modeDrag
	modeRename
	modeEdit
)

// selection points at a column header (Task == -1) or a card inside column Col.
type selection struct {
	Col  int
	Task int
}

type appModel struct {
	ctx    context.Context
	store  store.Store
	board  *board.Board
	engine *reorder.Engine

	keys  keyMap
	help  help.Model
	input textinput.Model

	// editor holds task content, which may span lines.
	editor textarea.Model

	width       int
	height      int
	columnWidth int

	mode mode
	sel  selection

	// editID is the column (rename) or task (edit) the input writes to.
	editID string

	// subject, dropTarget and dragChanged describe the gesture in progress.
	subject     model.DragSubject
	dropTarget  string
	dragChanged bool

	status    string
	statusErr bool
}

func newAppModel(ctx context.Context, s store.Store, b *board.Board, opts Options) appModel {
	in := textinput.New()
	in.CharLimit = 500
	in.Prompt = ""

	ed := textarea.New()
	ed.CharLimit = 0
	ed.ShowLineNumbers = false
	ed.Prompt = "  "
	ed.SetWidth(60)
	ed.SetHeight(3)
	// enter commits; alt+enter and ctrl+j break the line.
	ed.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"))

	return appModel{
		ctx:         ctx,
		store:       s,
		board:       b,
		engine:      reorder.NewEngine(b, reorder.WithLogger(log.WithField("component", "tui"))),
		keys:        defaultKeyMap(),
		help:        help.New(),
		input:       in,
		editor:      ed,
		columnWidth: opts.ColumnWidth,
		sel:         selection{Col: 0, Task: -1},
	}
}

func (m appModel) Init() tea.Cmd { return nil }

func (m *appModel) restore(st *store.TUIState) {
	if st == nil {
		return
	}
	m.help.ShowAll = st.ShowHelp
	if st.SelectedID != "" {
		m.focus(st.SelectedID)
	}
}

func (m appModel) uiState() *store.TUIState {
	st := &store.TUIState{Version: 1, ShowHelp: m.help.ShowAll}
	if t, ok := m.selectedTask(); ok {
		st.SelectedID = t.ID
	} else if c, ok := m.selectedColumn(); ok {
		st.SelectedID = c.ID
	}
	return st
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.editor.SetWidth(max(msg.Width-2, 10))
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeRename, modeEdit:
			return m.updateInput(msg)
		case modeDrag:
			return m.updateDrag(msg)
		default:
			return m.updateBoard(msg)
		}
	}
	return m, nil
}

func (m appModel) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	m.statusErr = false

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.sel.Col--
		m.clamp()
	case key.Matches(msg, m.keys.Right):
		m.sel.Col++
		m.clamp()
	case key.Matches(msg, m.keys.Up):
		if m.sel.Task >= 0 {
			m.sel.Task--
		}
	case key.Matches(msg, m.keys.Down):
		m.sel.Task++
		m.clamp()

	case key.Matches(msg, m.keys.NewCol):
		c := m.board.CreateColumn()
		m.commit("column.create", c.ID, map[string]any{"title": c.Title})
		m.focus(c.ID)

	case key.Matches(msg, m.keys.AddTsk):
		c, ok := m.selectedColumn()
		if !ok {
			m.setError("no column selected; press n to add one")
			break
		}
		t, err := m.board.CreateTask(c.ID)
		if err != nil {
			m.setError(err.Error())
			break
		}
		m.commit("task.create", t.ID, map[string]any{"columnId": t.ColumnID, "content": t.Content})
		m.focus(t.ID)

	case key.Matches(msg, m.keys.Rename):
		if c, ok := m.selectedColumn(); ok {
			return m.startInput(modeRename, c.ID, c.Title)
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selectedTask(); ok {
			return m.startInput(modeEdit, t.ID, t.Content)
		}

	case key.Matches(msg, m.keys.DelTsk):
		if t, ok := m.selectedTask(); ok && m.board.DeleteTask(t.ID) {
			m.commit("task.delete", t.ID, map[string]any{})
			m.clamp()
		}
	case key.Matches(msg, m.keys.DelCol):
		if c, ok := m.selectedColumn(); ok {
			removed := len(m.board.TasksForColumn(c.ID))
			if m.board.DeleteColumn(c.ID) {
				m.commit("column.delete", c.ID, map[string]any{"tasksDeleted": removed})
				m.sel.Task = -1
				m.clamp()
			}
		}

	case key.Matches(msg, m.keys.PickUp):
		m.pickUp()
	}
	return m, nil
}

func (m *appModel) pickUp() {
	id := ""
	if t, ok := m.selectedTask(); ok {
		id = t.ID
	} else if c, ok := m.selectedColumn(); ok {
		id = c.ID
	}
	subject := m.engine.Start(id)
	if subject.IsNone() {
		return
	}
	m.mode = modeDrag
	m.subject = subject
	m.dragChanged = false
	m.dropTarget = ""
	if subject.Kind == model.DragColumn {
		m.dropTarget = subject.ID
	}
}

func (m appModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		m.engine.Cancel()
		m.finishDrag(m.dragChanged)
		return m, tea.Quit
	case key.Matches(msg, m.keys.Drop):
		changed := m.engine.End(m.dropTarget)
		m.finishDrag(m.dragChanged || changed)
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.engine.Cancel()
		m.finishDrag(m.dragChanged)
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.subject.Kind == model.DragColumn {
		m.moveColumnTarget(msg)
		return m, nil
	}
	m.hoverTask(msg)
	return m, nil
}

// moveColumnTarget walks the drop target across columns; nothing moves until the drop.
func (m *appModel) moveColumnTarget(msg tea.KeyMsg) {
	cols := m.board.Columns()
	i := reorder.IndexOf(cols, m.dropTarget, func(c model.Column) string { return c.ID })
	switch {
	case key.Matches(msg, m.keys.Left):
		i--
	case key.Matches(msg, m.keys.Right):
		i++
	default:
		return
	}
	if i < 0 || i >= len(cols) {
		return
	}
	m.dropTarget = cols[i].ID
	m.sel = selection{Col: i, Task: -1}
}

// hoverTask translates arrow keys into hovers: up/down over the neighbouring card, left/right
// over the neighbouring column.
func (m *appModel) hoverTask(msg tea.KeyMsg) {
	t, ok := m.board.Task(m.subject.ID)
	if !ok {
		return
	}
	cols := m.board.Columns()
	ci := reorder.IndexOf(cols, t.ColumnID, func(c model.Column) string { return c.ID })
	siblings := m.board.TasksForColumn(t.ColumnID)
	ti := reorder.IndexOf(siblings, t.ID, func(t model.Task) string { return t.ID })

	over := ""
	switch {
	case key.Matches(msg, m.keys.Up):
		if ti > 0 {
			over = siblings[ti-1].ID
		}
	case key.Matches(msg, m.keys.Down):
		if ti >= 0 && ti < len(siblings)-1 {
			over = siblings[ti+1].ID
		}
	case key.Matches(msg, m.keys.Left):
		if ci > 0 {
			over = cols[ci-1].ID
		}
	case key.Matches(msg, m.keys.Right):
		if ci >= 0 && ci < len(cols)-1 {
			over = cols[ci+1].ID
		}
	}
	if over == "" {
		return
	}
	if m.engine.Hover(over) {
		m.dragChanged = true
		m.dropTarget = over
	}
	m.focus(m.subject.ID)
}

func (m *appModel) finishDrag(changed bool) {
	subject := m.subject
	target := m.dropTarget
	m.mode = modeBoard
	m.subject = model.NoSubject()
	m.dropTarget = ""
	m.dragChanged = false
	if changed {
		m.commit("gesture", subject.ID, map[string]any{"kind": subject.Kind.String(), "drop": target})
	}
	m.focus(subject.ID)
}

func (m appModel) startInput(md mode, id, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.editID = id
	if md == modeEdit {
		m.editor.SetValue(value)
		return m, m.editor.Focus()
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopInput()
		return m, nil
	case "enter":
		v := m.input.Value()
		switch m.mode {
		case modeRename:
			v = strings.TrimSpace(v)
			if v == "" {
				m.setError("title must not be empty")
				return m, nil
			}
			if m.board.RenameColumn(m.editID, v) {
				m.commit("column.rename", m.editID, map[string]any{"title": v})
			}
		case modeEdit:
			v = m.editor.Value()
			if m.board.UpdateTaskContent(m.editID, v) {
				m.commit("task.update", m.editID, map[string]any{"content": v})
			}
		}
		m.stopInput()
		return m, nil
	}
	var cmd tea.Cmd
	if m.mode == modeEdit {
		m.editor, cmd = m.editor.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *appModel) stopInput() {
	m.mode = modeBoard
	m.editID = ""
	m.input.Blur()
	m.input.SetValue("")
	m.editor.Blur()
	m.editor.SetValue("")
}

// commit saves the board and records the event. A failed save is shown in the status line.
func (m *appModel) commit(typ, entityID string, payload any) {
	if err := m.store.Save(m.ctx, m.board); err != nil {
		log.WithError(err).WithField("type", typ).Error("save board")
		m.setError("save failed: " + err.Error())
		return
	}
	if err := m.store.AppendEvent(m.ctx, typ, entityID, payload); err != nil {
		log.WithError(err).WithFields(log.Fields{"type": typ, "entity": entityID}).Warn("append event failed")
	}
	m.status = fmt.Sprintf("%s %s", typ, entityID)
	m.statusErr = false
}

func (m *appModel) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m appModel) selectedColumn() (model.Column, bool) {
	cols := m.board.Columns()
	if m.sel.Col < 0 || m.sel.Col >= len(cols) {
		return model.Column{}, false
	}
	return cols[m.sel.Col], true
}

func (m appModel) selectedTask() (model.Task, bool) {
	c, ok := m.selectedColumn()
	if !ok || m.sel.Task < 0 {
		return model.Task{}, false
	}
	tasks := m.board.TasksForColumn(c.ID)
	if m.sel.Task >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.sel.Task], true
}

func (m *appModel) clamp() {
	n := len(m.board.Columns())
	if n == 0 {
		m.sel = selection{Col: 0, Task: -1}
		return
	}
	m.sel.Col = max(0, min(m.sel.Col, n-1))
	c, _ := m.selectedColumn()
	nt := len(m.board.TasksForColumn(c.ID))
	m.sel.Task = max(-1, min(m.sel.Task, nt-1))
}

// focus moves the selection onto a column header or a card by id.
func (m *appModel) focus(id string) {
	for ci, c := range m.board.Columns() {
		if c.ID == id {
			m.sel = selection{Col: ci, Task: -1}
			return
		}
		for ti, t := range m.board.TasksForColumn(c.ID) {
			if t.ID == id {
				m.sel = selection{Col: ci, Task: ti}
				return
			}
		}
	}
	m.clamp()
}

func (m appModel) View() string {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}

	snap := m.board.Snapshot()
	title := lipgloss.NewStyle().Bold(true).Render("Kanban")
	summary := styleMuted().Render(fmt.Sprintf("  %d columns, %d tasks", len(snap.Columns), len(snap.Tasks)))
	if m.mode == modeDrag {
		summary += styleMuted().Render("  dragging " + m.subject.String())
	}
	head := normalizePane(title+summary, w, 1)

	footer := m.renderFooter(w)
	bodyH := h - 1 - lipgloss.Height(footer)
	if bodyH < 1 {
		bodyH = 1
	}
	body := renderBoard(boardView{
		Board:       snap,
		Sel:         m.sel,
		Active:      m.engine.Active(),
		DropTarget:  m.columnDropTarget(),
		ColumnWidth: m.columnWidth,
	}, w, bodyH)

	return lipgloss.JoinVertical(lipgloss.Left, head, body, footer)
}

func (m appModel) columnDropTarget() string {
	if m.mode != modeDrag || m.subject.Kind != model.DragColumn {
		return ""
	}
	return m.dropTarget
}

func (m appModel) renderFooter(w int) string {
	lines := make([]string, 0, 3)
	switch m.mode {
	case modeRename:
		lines = append(lines, "Rename column: "+m.input.View())
	case modeEdit:
		lines = append(lines, "Edit task (enter: save, alt+enter: new line, esc: cancel)", m.editor.View())
	}
	if m.status != "" {
		st := styleMuted()
		if m.statusErr {
			st = styleError()
		}
		lines = append(lines, st.Render(truncateText(m.status, w)))
	}
	if m.mode == modeDrag {
		lines = append(lines, m.help.View(dragKeyMap{k: m.keys}))
	} else {
		lines = append(lines, m.help.View(m.keys))
	}
	return strings.Join(lines, "\n")
}
