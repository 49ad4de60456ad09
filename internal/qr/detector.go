// Package qr decodes QR payloads from camera frames.
package qr

import (
	"context"
	"image"
	"log/slog"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/multi"
	"github.com/makiuchi-d/gozxing/multi/qrcode"
)

// Detector finds every QR code in a frame. It tries the frame as is and,
// when that yields nothing, a cleaned-up monochrome copy.
type Detector struct {
	reader     multi.MultipleBarcodeReader
	hints      map[gozxing.DecodeHintType]interface{}
	preprocess bool
}

// Option configures a Detector.
type Option func(*Detector)

// WithoutPreprocessing disables the monochrome retry.
func WithoutPreprocessing() Option {
	return func(d *Detector) {
		d.preprocess = false
	}
}

// NewDetector creates a detector using the TRY_HARDER decode hint.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		reader: qrcode.NewQRCodeMultiReader(),
		hints: map[gozxing.DecodeHintType]interface{}{
			gozxing.DecodeHintType_TRY_HARDER: true,
		},
		preprocess: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect returns the decoded payloads in reading order. A frame without
// codes yields an empty slice and a nil error.
func (d *Detector) Detect(ctx context.Context, img image.Image) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img == nil || img.Bounds().Empty() {
		return nil, nil
	}

	found := d.decode(img)
	if len(found) > 0 || !d.preprocess {
		return found, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.decode(Preprocess(img)), nil
}

func (d *Detector) decode(img image.Image) []string {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		slog.Debug("Failed to binarize frame", "error", err)
		return nil
	}

	results, err := d.reader.DecodeMultiple(bmp, d.hints)
	if err != nil {
		// NotFoundException is the common case.
		return nil
	}

	seen := make(map[string]struct{}, len(results))
	out := make([]string, 0, len(results))
	for _, r := range results {
		text := r.GetText()
		if text == "" {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		out = append(out, text)
	}
	return out
}
