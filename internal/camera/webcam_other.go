//go:build !linux

package camera

import (
	"context"
	"fmt"
	"image"

	"github.com/NYTEMODEONLY/codedexpro/internal/common"
)

// Webcam is only backed by a device on Linux.
type Webcam struct{}

// NewWebcam returns a webcam source that cannot be opened.
func NewWebcam() *Webcam {
	return &Webcam{}
}

// Open always fails with common.ErrUnsupported.
func (w *Webcam) Open(_ context.Context, _ int) error {
	return fmt.Errorf("webcam capture: %w", common.ErrUnsupported)
}

// ReadFrame reports no frame.
func (w *Webcam) ReadFrame(_ context.Context) (image.Image, error) {
	return nil, nil
}

// Close is a no-op.
func (w *Webcam) Close() error {
	return nil
}
