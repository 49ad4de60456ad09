// Package camera provides frame sources for the scanner: a V4L2 webcam,
// the screen, and a replay of image files. Any of them can be wrapped in
// a background capture loop that keeps only the newest frame.
package camera

import (
	"fmt"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/common"
	"github.com/NYTEMODEONLY/codedexpro/internal/config"
	"github.com/NYTEMODEONLY/codedexpro/internal/service"
)

// DefaultCaptureInterval is the cadence of the background capture loop.
const DefaultCaptureInterval = 40 * time.Millisecond

// New builds the frame source selected by settings.
func New(settings config.Settings) (service.Camera, error) {
	var cam service.Camera
	switch settings.Camera.Source {
	case config.SourceWebcam, "":
		cam = NewWebcam()
	case config.SourceScreen:
		cam = NewScreen()
	case config.SourceReplay:
		if settings.Camera.ReplayPath == "" {
			return nil, fmt.Errorf("%w: replay source needs a path", common.ErrMissingConfig)
		}
		cam = NewReplay(settings.Camera.ReplayPath)
	default:
		return nil, fmt.Errorf("%w: unknown camera source %q", common.ErrInvalidConfig, settings.Camera.Source)
	}

	if settings.Scan.CaptureLoop {
		return NewBuffered(cam, DefaultCaptureInterval), nil
	}
	return cam, nil
}
