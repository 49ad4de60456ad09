// Package cli holds the terminal helpers shared by the codedex commands:
// styled one-line messages, the code reader, and the interrupt handler.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette, taken from the card-back colors.
var (
	AccentColor  = lipgloss.Color("#FFCB05")
	SuccessColor = lipgloss.Color("#4DAD5B")
	WarningColor = lipgloss.Color("#FFE66D")
	ErrorColor   = lipgloss.Color("#EE1515")
	InfoColor    = lipgloss.Color("#3D7DCA")
	SubtleColor  = lipgloss.Color("#666666")
)

var (
	// TitleStyle heads a block listing.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AccentColor)

	// SubtitleStyle is used for empty-result notes.
	SubtitleStyle = lipgloss.NewStyle().Foreground(SubtleColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)

	// TableHeaderStyle renders history column names. It stays single-line so
	// tabwriter can align the cells.
	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(InfoColor)
)

// Message prefixes.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	CardIcon    = "🃏"
)

// FormatSuccess prefixes message with a check mark.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError prefixes message with a cross.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle renders a block label for listings.
func FormatTitle(title string) string {
	return TitleStyle.Render(CardIcon + " " + title)
}
