package tui

import (
	"strings"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/NYTEMODEONLY/codedexpro/internal/common"
	tea "github.com/charmbracelet/bubbletea"
)

// scheduleTick arms the next auto-scan. The interval is read on every
// tick so a reloaded setting applies without restarting the camera.
func (m Model) scheduleTick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.session.Settings().Interval, func(t time.Time) tea.Msg {
		return scanTickMsg{at: t, gen: gen}
	})
}

// exportCmd writes the whole code list off the update loop.
func exportCmd(path string, c codes.Container, all []string, f codes.Format) tea.Cmd {
	return func() tea.Msg {
		result, err := codes.ExportFile(path, c, all, f)
		if err != nil {
			common.LogError(err, "Export failed", common.Fields{"path": path})
		}
		return exportDoneMsg{result: result, err: err}
	}
}

// copyBlock puts the selected block on the clipboard.
func (m *Model) copyBlock() tea.Cmd {
	block := m.currentBlock()
	if block.Empty() {
		m.setStatus(levelWarning, "Nothing to copy")
		return nil
	}
	return m.clipboardCmd(codes.RenderClipboard(block, m.format), len(block.Codes))
}

// copyAll puts every accepted code on the clipboard, one per line,
// regardless of the selected block and format.
func (m *Model) copyAll() tea.Cmd {
	all := m.session.Store().All()
	if len(all) == 0 {
		m.setStatus(levelWarning, "Nothing to copy")
		return nil
	}
	return m.clipboardCmd(strings.Join(all, "\n"), len(all))
}

func (m *Model) clipboardCmd(text string, count int) tea.Cmd {
	write := m.config.Clipboard
	return func() tea.Msg {
		if write == nil {
			return clipboardDoneMsg{err: common.ErrUnsupported}
		}
		return clipboardDoneMsg{err: write(text), count: count}
	}
}
