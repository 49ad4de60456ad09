package camera

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/service"
)

// CaptureLoop reads frames from a camera at a fixed cadence and keeps the
// newest one in a FrameCell.
type CaptureLoop struct {
	cam      service.Camera
	cell     *FrameCell
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	interval time.Duration
}

// NewCaptureLoop creates a stopped loop.
func NewCaptureLoop(cam service.Camera, cell *FrameCell, interval time.Duration) *CaptureLoop {
	if interval <= 0 {
		interval = DefaultCaptureInterval
	}
	return &CaptureLoop{cam: cam, cell: cell, interval: interval}
}

// Start runs the loop in a goroutine until Stop or ctx is done.
func (l *CaptureLoop) Start(ctx context.Context) {
	ctx, l.cancel = context.WithCancel(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run(ctx)
	}()
}

// Stop cancels the loop and waits for it to exit.
func (l *CaptureLoop) Stop() {
	if l.cancel != nil {
		l.cancel()
	}
	l.wg.Wait()
}

func (l *CaptureLoop) run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		img, err := l.cam.ReadFrame(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			slog.Debug("Capture loop read failed", "error", err)
		case err == nil && img != nil:
			l.cell.Store(img)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Buffered decouples frame capture from scanning: a capture loop reads
// the wrapped camera in the background and ReadFrame returns the newest
// frame without blocking.
type Buffered struct {
	cam      service.Camera
	loop     *CaptureLoop
	cell     FrameCell
	interval time.Duration
}

// NewBuffered wraps cam.
func NewBuffered(cam service.Camera, interval time.Duration) *Buffered {
	return &Buffered{cam: cam, interval: interval}
}

// Open opens the wrapped camera and starts capturing.
func (b *Buffered) Open(ctx context.Context, deviceIndex int) error {
	if b.loop != nil {
		_ = b.Close()
	}
	if err := b.cam.Open(ctx, deviceIndex); err != nil {
		return err
	}
	b.cell.Reset()
	b.loop = NewCaptureLoop(b.cam, &b.cell, b.interval)
	// The loop outlives the Open call; Close stops it.
	b.loop.Start(context.WithoutCancel(ctx))
	return nil
}

// ReadFrame returns the latest captured frame, or nil before the first.
func (b *Buffered) ReadFrame(_ context.Context) (image.Image, error) {
	img, _ := b.cell.Load()
	return img, nil
}

// Close stops the loop and closes the wrapped camera.
func (b *Buffered) Close() error {
	if b.loop != nil {
		b.loop.Stop()
		b.loop = nil
	}
	b.cell.Reset()
	return b.cam.Close()
}
