package publish

import (
	"bytes"
	"fmt"
	"strings"

	"kanban-cli/internal/model"

	"github.com/charmbracelet/glamour"
)

type RenderOptions struct {
	// Title is the document heading; defaults to "Board".
	Title string
	// IncludeIDs appends entity ids to headings and list items.
	IncludeIDs bool
}

// RenderBoardMarkdown renders the board as one section per column, in board order.
func RenderBoardMarkdown(b model.Board, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "Board"
	}
	writeLn("# " + title)

	if len(b.Columns) == 0 {
		writeLn("")
		writeLn("_No columns._")
		return buf.String()
	}

	for _, c := range b.Columns {
		tasks := b.TasksFor(c.ID)
		heading := strings.TrimSpace(c.Title)
		if heading == "" {
			heading = "(untitled)"
		}
		heading = fmt.Sprintf("%s (%d)", heading, len(tasks))
		if opt.IncludeIDs {
			heading += " `" + c.ID + "`"
		}
		writeLn("")
		writeLn("## " + heading)
		writeLn("")
		if len(tasks) == 0 {
			writeLn("_No tasks._")
			continue
		}
		for _, t := range tasks {
			line := "- " + escapeListItem(t.Content)
			if opt.IncludeIDs {
				line += " `" + t.ID + "`"
			}
			writeLn(line)
		}
	}
	return buf.String()
}

// RenderTerminal renders markdown for a terminal using a fixed glamour style.
func RenderTerminal(md string, width int, style string) (string, error) {
	if width < 20 {
		width = 20
	}
	if strings.TrimSpace(style) == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func escapeListItem(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(empty)"
	}
	// Multi-line content stays inside the list item.
	return strings.ReplaceAll(s, "\n", "\n  ")
}
