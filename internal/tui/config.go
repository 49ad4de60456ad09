package tui

import (
	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/NYTEMODEONLY/codedexpro/internal/tui/themes"
	"github.com/atotto/clipboard"
)

// Config holds TUI configuration.
type Config struct {
	Theme         themes.Theme
	Clipboard     func(string) error
	ExportDir     string
	JournalPath   string
	DefaultFormat codes.Format
	Width         int
	Height        int
	ShowHelp      bool
	AutoStart     bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:         themes.Default,
		Clipboard:     clipboard.WriteAll,
		DefaultFormat: codes.FormatNumbered,
		Width:         80,
		Height:        24,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(c *Config) {
		c.Clipboard = write
	}
}

// WithDefaultFormat selects the initial block layout.
func WithDefaultFormat(f codes.Format) Option {
	return func(c *Config) {
		if f.Valid() {
			c.DefaultFormat = f
		}
	}
}

// WithExportDir sets the directory suggested in the export prompt.
func WithExportDir(dir string) Option {
	return func(c *Config) {
		c.ExportDir = dir
	}
}

// WithJournalPath shows where scans are journaled in the help view.
func WithJournalPath(path string) Option {
	return func(c *Config) {
		c.JournalPath = path
	}
}

// WithAutoStart opens the camera as soon as the UI starts.
func WithAutoStart(enabled bool) Option {
	return func(c *Config) {
		c.AutoStart = enabled
	}
}
