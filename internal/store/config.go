package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the optional per-board config.json. Flags and environment variables win over it.
type Config struct {
	// Format is the default CLI output format (json|edn).
	Format string `json:"format,omitempty"`
	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string `json:"logLevel,omitempty"`

	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set (e.g. "unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
	// ColumnWidth fixes the rendered column width; 0 means share the terminal width.
	ColumnWidth int `json:"columnWidth,omitempty"`
}

func (s Store) configPath() string {
	return filepath.Join(s.Dir, configFileName)
}

// LoadConfig reads config.json. A missing file is not an error.
func (s Store) LoadConfig() (Config, error) {
	var cfg Config
	b, err := os.ReadFile(s.configPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", s.configPath(), err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", s.configPath(), err)
	}
	return cfg, nil
}

func (s Store) SaveConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	tmp := s.configPath() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.configPath())
}

func (c Config) Validate() error {
	switch strings.TrimSpace(c.Format) {
	case "", "json", "edn":
	default:
		return fmt.Errorf("invalid format: %q (expected json|edn)", c.Format)
	}
	if c.TUI != nil {
		switch strings.TrimSpace(c.TUI.Glyphs) {
		case "", "unicode", "ascii":
		default:
			return fmt.Errorf("invalid tui.glyphs: %q (expected unicode|ascii)", c.TUI.Glyphs)
		}
		if c.TUI.ColumnWidth < 0 {
			return fmt.Errorf("invalid tui.columnWidth: %d", c.TUI.ColumnWidth)
		}
	}
	return nil
}

func (c Config) Glyphs() string {
	if c.TUI == nil || strings.TrimSpace(c.TUI.Glyphs) == "" {
		return "unicode"
	}
	return strings.TrimSpace(c.TUI.Glyphs)
}

func (c Config) ColumnWidth() int {
	if c.TUI == nil {
		return 0
	}
	return c.TUI.ColumnWidth
}
