package tui

import (
	"fmt"
	"strings"

	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.tab {
	case TabBlocks:
		body = m.renderBlocks()
	default:
		body = m.list.View()
	}

	sections := []string{
		m.renderHeader(),
		m.renderTabs(),
		m.theme.BorderedBox.Width(max(m.width-2, 10)).Render(body),
	}
	if m.prompt != promptNone {
		sections = append(sections, m.input.View())
	}
	sections = append(sections, m.renderStatusBar())
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keymap.FullHelp()))
		if m.config.JournalPath != "" {
			sections = append(sections, m.theme.Faint.Render("Journal: "+m.config.JournalPath))
		}
	} else {
		sections = append(sections, m.help.ShortHelpView(m.keymap.ShortHelp()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("CodeDex Pro")
	camera := m.theme.CameraOff.Render("● camera off")
	if m.session.Running() {
		camera = m.theme.CameraOn.Render("● camera on")
	}

	s := m.session.Settings()
	mode := "auto-detect off"
	if s.AutoDetect {
		mode = fmt.Sprintf("auto-detect every %s, cooldown %s", s.Interval, s.Cooldown)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title, "  ", camera, "  ", m.theme.Faint.Render(mode))
}

func (m Model) renderTabs() string {
	n := m.session.Store().Count()
	labels := []struct {
		text string
		tab  Tab
	}{
		{fmt.Sprintf("Codes (%d)", n), TabCodes},
		{fmt.Sprintf("Code Blocks (%d)", n), TabBlocks},
	}

	tabs := make([]string, 0, len(labels))
	for _, l := range labels {
		style := m.theme.TabInactive
		if l.tab == m.tab {
			style = m.theme.TabActive
		}
		tabs = append(tabs, style.Render(l.text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m Model) renderBlocks() string {
	block := m.currentBlock()

	selector := fmt.Sprintf("◀ %s ▶", block.Label())
	if m.session.Store().Count() == 0 {
		selector = codes.EmptyStoreMessage
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Bold.Render(selector),
		m.theme.Subtitle.Render("Format: "+m.format.Label()),
		"",
		m.theme.Code.Render(codes.Render(block, m.format)),
	)
}

func (m Model) renderStatusBar() string {
	style := m.theme.StatusInfo
	switch m.statusLevel {
	case levelSuccess:
		style = m.theme.StatusSuccess
	case levelWarning:
		style = m.theme.StatusWarning
	case levelError:
		style = m.theme.StatusError
	}
	return m.theme.StatusBar.Width(m.width).Render(style.Render(m.status))
}

// refreshList rebuilds the codes tab content and keeps the newest code
// in view.
func (m *Model) refreshList() {
	all := m.session.Store().All()
	if len(all) == 0 {
		m.list.SetContent(m.theme.Faint.Render(codes.EmptyStoreMessage))
		return
	}

	width := len(fmt.Sprint(len(all)))
	var sb strings.Builder
	for i, code := range all {
		fmt.Fprintf(&sb, "%*d. %s\n", width, i+1, m.theme.Code.Render(code))
	}
	m.list.SetContent(strings.TrimSuffix(sb.String(), "\n"))
	m.list.GotoBottom()
}
