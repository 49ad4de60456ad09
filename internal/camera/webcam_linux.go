//go:build linux

package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/blackjack/webcam"
)

// V4L2 fourcc codes.
const (
	pixelFormatMJPEG webcam.PixelFormat = 0x47504A4D
	pixelFormatYUYV  webcam.PixelFormat = 0x56595559
)

const (
	preferredWidth  = 1280
	preferredHeight = 720
	frameTimeoutSec = 1
)

// Webcam reads frames from /dev/video{N}.
type Webcam struct {
	cam    *webcam.Webcam
	format webcam.PixelFormat
	width  int
	height int
}

// NewWebcam returns a closed webcam source.
func NewWebcam() *Webcam {
	return &Webcam{}
}

// Open opens and starts streaming from the device. An already open
// device is closed first.
func (w *Webcam) Open(_ context.Context, deviceIndex int) error {
	if w.cam != nil {
		if err := w.Close(); err != nil {
			slog.Debug("Failed to close previous device", "error", err)
		}
	}

	path := fmt.Sprintf("/dev/video%d", deviceIndex)
	cam, err := webcam.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	format, err := pickFormat(cam.GetSupportedFormats())
	if err != nil {
		_ = cam.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	width, height := pickSize(cam.GetSupportedFrameSizes(format))
	f, fw, fh, err := cam.SetImageFormat(format, uint32(width), uint32(height))
	if err != nil {
		_ = cam.Close()
		return fmt.Errorf("failed to set image format on %s: %w", path, err)
	}
	if err := cam.StartStreaming(); err != nil {
		_ = cam.Close()
		return fmt.Errorf("failed to start streaming on %s: %w", path, err)
	}

	w.cam = cam
	w.format = f
	w.width = int(fw)
	w.height = int(fh)
	slog.Info("Webcam opened", "device", path, "width", w.width, "height", w.height)
	return nil
}

// ReadFrame waits up to a second for the next frame. A timeout is
// reported as no frame.
func (w *Webcam) ReadFrame(ctx context.Context) (image.Image, error) {
	if w.cam == nil {
		return nil, errors.New("webcam is not open")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err := w.cam.WaitForFrame(frameTimeoutSec)
	var timeout *webcam.Timeout
	if errors.As(err, &timeout) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed waiting for frame: %w", err)
	}

	data, err := w.cam.ReadFrame()
	if err != nil {
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	return decodeFrame(data, w.format == pixelFormatMJPEG, w.width, w.height)
}

// Close stops streaming and releases the device.
func (w *Webcam) Close() error {
	if w.cam == nil {
		return nil
	}
	cam := w.cam
	w.cam = nil
	if err := cam.StopStreaming(); err != nil {
		slog.Debug("Failed to stop streaming", "error", err)
	}
	return cam.Close()
}

func pickFormat(supported map[webcam.PixelFormat]string) (webcam.PixelFormat, error) {
	for _, f := range []webcam.PixelFormat{pixelFormatMJPEG, pixelFormatYUYV} {
		if _, ok := supported[f]; ok {
			return f, nil
		}
	}
	return 0, errors.New("device supports neither MJPEG nor YUYV")
}

func pickSize(sizes []webcam.FrameSize) (int, int) {
	bestW, bestH := preferredWidth, preferredHeight
	var found bool
	for _, s := range sizes {
		if s.MinWidth <= preferredWidth && preferredWidth <= s.MaxWidth &&
			s.MinHeight <= preferredHeight && preferredHeight <= s.MaxHeight {
			return preferredWidth, preferredHeight
		}
		// Otherwise keep the largest discrete size not above 720p.
		w, h := int(s.MaxWidth), int(s.MaxHeight)
		if h <= preferredHeight && (!found || w*h > bestW*bestH) {
			bestW, bestH = w, h
			found = true
		}
	}
	return bestW, bestH
}
