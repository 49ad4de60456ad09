package tui

import (
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/NYTEMODEONLY/codedexpro/internal/config"
)

// scanTickMsg fires the auto-scan trigger. Ticks from an older camera
// run carry a stale generation and are dropped.
type scanTickMsg struct {
	at  time.Time
	gen int
}

// settingsReloadedMsg carries settings re-read after a config change.
type settingsReloadedMsg struct {
	settings config.Settings
}

type exportDoneMsg struct {
	err    error
	result codes.ExportResult
}

type clipboardDoneMsg struct {
	err   error
	count int
}

// Tab is one of the two code views.
type Tab int

// Tabs.
const (
	TabCodes Tab = iota
	TabBlocks
)

// promptKind says what the text input is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptAdd
	promptExport
	promptClear
)

// statusLevel colors the status bar message.
type statusLevel int

const (
	levelInfo statusLevel = iota
	levelSuccess
	levelWarning
	levelError
)

// startCameraMsg asks the model to open the camera.
type startCameraMsg struct{}
