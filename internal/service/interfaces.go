// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"image"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/model"
)

// Camera is a source of frames. ReadFrame returns a nil image and a nil
// error when no frame is available yet.
type Camera interface {
	Open(ctx context.Context, deviceIndex int) error
	ReadFrame(ctx context.Context) (image.Image, error)
	Close() error
}

// Detector finds QR payloads in a frame. Finding nothing is an empty
// result, not an error.
type Detector interface {
	Detect(ctx context.Context, img image.Image) ([]string, error)
}

// EventFilter defines filtering options for journal queries.
type EventFilter struct {
	SessionID    string
	Limit        int
	AcceptedOnly bool
}

// Journal defines the contract for the scan history store.
type Journal interface {
	Record(ctx context.Context, event *model.ScanEvent) error
	Events(ctx context.Context, filter EventFilter) ([]model.ScanEvent, error)
	Sessions(ctx context.Context) ([]model.SessionSummary, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}
