package camera

import (
	"context"
	"fmt"
	"image"

	"github.com/NYTEMODEONLY/codedexpro/internal/common"
	"github.com/kbinani/screenshot"
)

// Screen captures a display, for codes shown on screen rather than held
// up to a camera.
type Screen struct {
	bounds image.Rectangle
	open   bool
}

// NewScreen returns a closed screen source.
func NewScreen() *Screen {
	return &Screen{}
}

// Open selects the display with the given index.
func (s *Screen) Open(_ context.Context, displayIndex int) error {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return fmt.Errorf("no active displays: %w", common.ErrCameraUnavailable)
	}
	if displayIndex < 0 || displayIndex >= n {
		return &common.RetryableError{
			Err:       fmt.Errorf("display %d not found, %d active", displayIndex, n),
			Retryable: false,
		}
	}
	s.bounds = screenshot.GetDisplayBounds(displayIndex)
	s.open = true
	return nil
}

// ReadFrame captures the whole display.
func (s *Screen) ReadFrame(ctx context.Context) (image.Image, error) {
	if !s.open {
		return nil, fmt.Errorf("screen capture is not open")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := screenshot.CaptureRect(s.bounds)
	if err != nil {
		return nil, fmt.Errorf("failed to capture display: %w", err)
	}
	return img, nil
}

// Close releases the display selection.
func (s *Screen) Close() error {
	s.open = false
	return nil
}
