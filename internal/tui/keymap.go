package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Camera
	ToggleCamera key.Binding
	Scan         key.Binding
	Add          key.Binding

	// Navigation
	Up        key.Binding
	Down      key.Binding
	SwitchTab key.Binding
	PrevBlock key.Binding
	NextBlock key.Binding

	// Output
	CycleFormat    key.Binding
	Copy           key.Binding
	CopyAll        key.Binding
	ExportText     key.Binding
	ExportMarkdown key.Binding
	Clear          key.Binding

	// Prompts
	Confirm key.Binding
	Cancel  key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ToggleCamera: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start/stop camera"),
		),
		Scan: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("Space", "scan now"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add code"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "scroll down"),
		),
		SwitchTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch tab"),
		),
		PrevBlock: key.NewBinding(
			key.WithKeys("[", "h", "left"),
			key.WithHelp("[", "previous block"),
		),
		NextBlock: key.NewBinding(
			key.WithKeys("]", "l", "right"),
			key.WithHelp("]", "next block"),
		),

		CycleFormat: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle format"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y", "c"),
			key.WithHelp("y", "copy block"),
		),
		CopyAll: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy all codes"),
		),
		ExportText: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "export .txt"),
		),
		ExportMarkdown: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "export .md"),
		),
		Clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear all"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "cancel"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleCamera, k.Scan, k.Add, k.SwitchTab, k.Copy, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ToggleCamera, k.Scan, k.Add},
		{k.SwitchTab, k.PrevBlock, k.NextBlock, k.Up, k.Down},
		{k.CycleFormat, k.Copy, k.CopyAll, k.ExportText, k.ExportMarkdown, k.Clear},
		{k.Help, k.Quit},
	}
}
