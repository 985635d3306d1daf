package tui

import (
	"fmt"
	"strings"

	"kanban-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

type boardView struct {
	Board  model.Board
	Sel    selection
	Active model.DragSubject
	// DropTarget is the column a column gesture would land on.
	DropTarget string
	// ColumnWidth fixes the column width; 0 divides the screen evenly.
	ColumnWidth int
}

const columnGap = 2

func renderBoard(v boardView, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	cols := v.Board.Columns
	n := len(cols)
	if n == 0 {
		return normalizePane(styleMuted().Render("No columns. Press n to add one."), width, height)
	}

	colW := v.ColumnWidth
	if colW <= 0 {
		avail := width - columnGap*(n-1)
		if avail < n {
			avail = n
		}
		colW = avail / n
	}
	if colW < 10 {
		colW = 10
	}

	// Scroll horizontally so the selected column stays on screen.
	visible := (width + columnGap) / (colW + columnGap)
	if visible < 1 {
		visible = 1
	}
	first := 0
	if v.Sel.Col >= visible {
		first = v.Sel.Col - visible + 1
	}
	last := min(n, first+visible)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Background(colorControlBg)
	headerSelectedStyle := lipgloss.NewStyle().Bold(true).Foreground(colorSelectedFg).Background(colorSelectedBg)
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(colorAccent)

	cardStyle := lipgloss.NewStyle().Width(colW).Padding(0, 1)
	cardSelectedStyle := cardStyle.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
	cardActiveStyle := cardStyle.Foreground(colorAccentFg).Background(colorAccent).Bold(true)
	innerW := max(colW-2, 1)

	renderCard := func(t model.Task, selected, active bool) string {
		prefix := "  "
		if active {
			prefix = glyphGrip() + " "
		}
		text := t.Content
		if strings.TrimSpace(text) == "" {
			text = "(empty)"
		}
		lines := wrapText(text, innerW-2)
		for i := range lines {
			if i == 0 {
				lines[i] = prefix + lines[i]
			} else {
				lines[i] = "  " + lines[i]
			}
		}
		inner := normalizePane(strings.Join(lines, "\n"), innerW, 0)
		switch {
		case active:
			return cardActiveStyle.Render(inner)
		case selected:
			return cardSelectedStyle.Render(inner)
		}
		return cardStyle.Render(inner)
	}

	renderCol := func(ci int, c model.Column) string {
		tasks := v.Board.TasksFor(c.ID)
		title := strings.TrimSpace(c.Title)
		if title == "" {
			title = "(untitled)"
		}
		head := fmt.Sprintf("%s (%d)", title, len(tasks))
		isActive := v.Active.Kind == model.DragColumn && v.Active.ID == c.ID
		switch {
		case isActive:
			head = glyphGrip() + " " + head
		case v.DropTarget != "" && v.DropTarget == c.ID:
			head = glyphDropArrow() + " " + head
		}

		hs := headerStyle
		switch {
		case isActive:
			hs = activeStyle
		case ci == v.Sel.Col && v.Sel.Task < 0:
			hs = headerSelectedStyle
		}
		lines := make([]string, 0, max(2, height))
		lines = append(lines, hs.Width(colW).Render(truncateText(head, colW)))

		if len(tasks) == 0 {
			lines = append(lines, styleMuted().Render("(empty)"))
			return normalizePane(strings.Join(lines, "\n"), colW, height)
		}

		lines = append(lines, "")
		for ti, t := range tasks {
			selected := ci == v.Sel.Col && ti == v.Sel.Task
			active := v.Active.Kind == model.DragTask && v.Active.ID == t.ID
			lines = append(lines, strings.Split(renderCard(t, selected, active), "\n")...)
			if ti < len(tasks)-1 {
				sep := " " + strings.Repeat(glyphHRule(), max(colW-2, 0)) + " "
				lines = append(lines, styleMuted().Render(sep))
			}
		}
		return normalizePane(strings.Join(lines, "\n"), colW, height)
	}

	out := ""
	sep := strings.Repeat(" ", columnGap)
	for i := first; i < last; i++ {
		rendered := renderCol(i, cols[i])
		if i == first {
			out = rendered
			continue
		}
		out = lipgloss.JoinHorizontal(lipgloss.Top, out, sep, rendered)
	}
	return normalizePane(out, width, height)
}
