package tui

import (
	"context"
	"os"
	"path/filepath"

	"kanban-cli/internal/board"
	"kanban-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	// Glyphs is "unicode" or "ascii".
	Glyphs      string
	ColumnWidth int
	NoColor     bool
}

// Run shows the board in the alternate screen until the user quits. Log output goes to
// <dir>/tui.log while the program runs.
func Run(s store.Store, b *board.Board, opts Options) error {
	applyColorProfilePreference(opts.NoColor)
	applyThemePreference()
	applyGlyphPreference(opts.Glyphs)

	if err := s.Ensure(); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(s.Dir, "tui.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	prev := log.StandardLogger().Out
	log.SetOutput(f)
	defer log.SetOutput(prev)

	m := newAppModel(context.Background(), s, b, opts)
	if st, err := s.LoadTUIState(); err != nil {
		log.WithError(err).Warn("load tui state")
	} else {
		m.restore(st)
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if fm, ok := final.(appModel); ok {
		if serr := s.SaveTUIState(fm.uiState()); serr != nil {
			log.WithError(serr).Warn("save tui state")
		}
	}
	return err
}
