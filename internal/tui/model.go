// Package tui is the terminal front end of the scanner: a camera status
// line, a list of collected codes, and a block view for copying and
// exporting codes ten at a time.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/NYTEMODEONLY/codedexpro/internal/common"
	"github.com/NYTEMODEONLY/codedexpro/internal/scanner"
	"github.com/NYTEMODEONLY/codedexpro/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the main TUI state. The scan session is only touched from
// Update, so it needs no locking.
type Model struct {
	ctx         context.Context
	session     *scanner.Session
	theme       themes.Theme
	config      Config
	keymap      KeyMap
	help        help.Model
	input       textinput.Model
	list        viewport.Model
	status      string
	container   codes.Container
	format      codes.Format
	selection   codes.Selection
	tab         Tab
	prompt      promptKind
	statusLevel statusLevel
	tickGen     int
	width       int
	height      int
	showHelp    bool
	quitting    bool
}

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, session *scanner.Session, cfg Config) Model {
	input := textinput.New()
	input.CharLimit = 256

	m := Model{
		ctx:       ctx,
		session:   session,
		config:    cfg,
		theme:     cfg.Theme,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		input:     input,
		list:      viewport.New(cfg.Width, listHeight(cfg.Height)),
		format:    cfg.DefaultFormat,
		selection: codes.All,
		width:     cfg.Width,
		height:    cfg.Height,
		showHelp:  cfg.ShowHelp,
		status:    "Ready to scan Pokémon TCG codes",
	}
	m.refreshList()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.config.AutoStart {
		return func() tea.Msg { return startCameraMsg{} }
	}
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.Width = msg.Width
		m.list.Height = listHeight(msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case scanTickMsg:
		if msg.gen != m.tickGen || !m.session.Running() {
			return m, nil
		}
		m.applyResult(m.session.Tick(m.ctx, msg.at))
		return m, m.scheduleTick()

	case startCameraMsg:
		if m.session.Running() {
			return m, nil
		}
		cmd := m.toggleCamera()
		return m, cmd

	case settingsReloadedMsg:
		m.session.Reload(msg.settings)
		m.theme = themes.GetTheme(msg.settings.Theme)
		m.setStatus(levelInfo, "Settings updated")
		return m, nil

	case exportDoneMsg:
		switch {
		case msg.err != nil:
			m.setStatus(levelError, fmt.Sprintf("Export failed: %v", msg.err))
		case !msg.result.Written():
			m.setStatus(levelWarning, msg.result.Message)
		default:
			m.setStatus(levelSuccess, fmt.Sprintf("Exported %d codes to %s", msg.result.Count, msg.result.Path))
		}
		return m, nil

	case clipboardDoneMsg:
		if msg.err != nil {
			m.setStatus(levelError, fmt.Sprintf("Copy failed: %v", msg.err))
		} else {
			m.setStatus(levelSuccess, fmt.Sprintf("Copied %d codes to clipboard", msg.count))
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			return m.quit()
		}
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := m.session.Store().Count()

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keymap.ToggleCamera):
		cmd := m.toggleCamera()
		return m, cmd

	case key.Matches(msg, m.keymap.Scan):
		m.manualScan()

	case key.Matches(msg, m.keymap.Add):
		m.openPrompt(promptAdd, "Code: ", "")
		m.input.Placeholder = "Enter Pokémon TCG code"
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.SwitchTab):
		if m.tab == TabCodes {
			m.tab = TabBlocks
		} else {
			m.tab = TabCodes
		}

	case key.Matches(msg, m.keymap.NextBlock):
		m.selection = m.selection.Next(n)

	case key.Matches(msg, m.keymap.PrevBlock):
		m.selection = m.selection.Prev(n)

	case key.Matches(msg, m.keymap.CycleFormat):
		m.format = m.format.Next()
		m.setStatus(levelInfo, "Format: "+m.format.Label())

	case key.Matches(msg, m.keymap.Copy):
		cmd := m.copyBlock()
		return m, cmd

	case key.Matches(msg, m.keymap.CopyAll):
		cmd := m.copyAll()
		return m, cmd

	case key.Matches(msg, m.keymap.ExportText):
		cmd := m.openExport(codes.ContainerText)
		return m, cmd

	case key.Matches(msg, m.keymap.ExportMarkdown):
		cmd := m.openExport(codes.ContainerMarkdown)
		return m, cmd

	case key.Matches(msg, m.keymap.Clear):
		if n == 0 {
			m.setStatus(levelWarning, "No codes to clear")
			return m, nil
		}
		m.openPrompt(promptClear, fmt.Sprintf("Clear all %d codes? (y/N) ", n), "")

	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt == promptClear {
		if msg.String() == "y" || msg.String() == "Y" {
			m.session.Clear()
			m.selection = codes.All
			m.refreshList()
			m.setStatus(levelInfo, "All codes cleared")
		} else {
			m.setStatus(levelInfo, "Clear canceled")
		}
		m.closePrompt()
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.closePrompt()
		return m, nil

	case key.Matches(msg, m.keymap.Confirm):
		value := m.input.Value()
		kind := m.prompt
		m.closePrompt()
		switch kind {
		case promptAdd:
			m.addTyped(value)
		case promptExport:
			if value == "" {
				value = codes.DefaultFileName(m.container)
			}
			return m, exportCmd(value, m.container, m.session.Store().All(), m.format)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) toggleCamera() tea.Cmd {
	if m.session.Running() {
		m.tickGen++
		if err := m.session.Stop(); err != nil {
			m.setStatus(levelError, err.Error())
			return nil
		}
		m.setStatus(levelInfo, "Camera stopped")
		return nil
	}

	if err := m.session.Start(m.ctx); err != nil {
		m.setStatus(levelError, fmt.Sprintf("Could not open camera: %v", err))
		return nil
	}
	m.tickGen++
	m.setStatus(levelSuccess, "Camera active - scanning for QR codes")
	return m.scheduleTick()
}

func (m *Model) manualScan() {
	r, err := m.session.ManualScan(m.ctx)
	switch {
	case errors.Is(err, common.ErrCameraNotRunning):
		m.setStatus(levelWarning, "Camera not running. Press s to start it.")
	case err != nil:
		m.setStatus(levelError, err.Error())
	case !r.Found():
		m.setStatus(levelInfo, "No QR code detected in current frame")
	default:
		m.applyResult(r)
	}
}

func (m *Model) addTyped(value string) {
	r := m.session.AddTyped(m.ctx, value)
	switch r.Kind {
	case scanner.ResultAccepted:
		m.refreshList()
		m.setStatus(levelSuccess, "Code added manually: "+r.Code)
	case scanner.ResultDuplicate:
		m.setStatus(levelWarning, "Code already in list: "+r.Code)
	}
}

// applyResult reports a scan outcome; a quiet tick leaves the status alone.
func (m *Model) applyResult(r scanner.Result) {
	switch r.Kind {
	case scanner.ResultAccepted:
		m.refreshList()
		m.setStatus(levelSuccess, fmt.Sprintf("QR code detected: %s (%d codes)", r.Code, m.session.Store().Count()))
	case scanner.ResultDuplicate:
		m.setStatus(levelInfo, "Already collected: "+r.Code)
	}
}

func (m *Model) openExport(c codes.Container) tea.Cmd {
	if m.session.Store().Count() == 0 {
		m.setStatus(levelWarning, codes.EmptyExportMessage)
		return nil
	}
	m.container = c
	path := codes.DefaultFileName(c)
	if m.config.ExportDir != "" {
		path = filepath.Join(m.config.ExportDir, path)
	}
	m.openPrompt(promptExport, "Export to: ", path)
	return textinput.Blink
}

func (m *Model) openPrompt(kind promptKind, prompt, value string) {
	m.prompt = kind
	m.input.Prompt = prompt
	m.input.Placeholder = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) currentBlock() codes.Block {
	all := m.session.Store().All()
	m.selection = m.selection.Clamp(len(all))
	return codes.Select(all, m.selection)
}

func (m *Model) setStatus(level statusLevel, msg string) {
	m.statusLevel = level
	m.status = msg
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.tickGen++
	return m, tea.Quit
}

func listHeight(height int) int {
	// header, tabs, status bar, help and borders
	return max(height-8, 3)
}
