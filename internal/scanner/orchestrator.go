// Package scanner turns camera frames into accepted codes. The
// Orchestrator gates automatic scans behind a cooldown and a small
// recently-seen buffer; the Session wires it to a camera, the code store
// and the scan journal.
package scanner

import (
	"context"
	"image"
	"log/slog"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/NYTEMODEONLY/codedexpro/internal/config"
	"github.com/NYTEMODEONLY/codedexpro/internal/service"
)

// Orchestrator decides whether a decoded frame yields a new code.
// It is not safe for concurrent use.
type Orchestrator struct {
	lastScan time.Time
	detector service.Detector
	recent   *codes.RecentBuffer
	cfg      config.Scan
	scanned  bool
}

// NewOrchestrator creates an orchestrator with an empty recent buffer.
func NewOrchestrator(detector service.Detector, cfg config.Scan) *Orchestrator {
	return &Orchestrator{
		detector: detector,
		recent:   codes.NewRecentBuffer(codes.RecentCapacity),
		cfg:      cfg,
	}
}

// TryAutoScan runs one automatic detection pass on frame. It returns the
// first decoded code when auto detection is on, the cooldown has elapsed
// since the last accepted auto scan and the code was not among the
// recently seen ones. Any other outcome leaves the state untouched.
func (o *Orchestrator) TryAutoScan(ctx context.Context, frame image.Image, now time.Time) (string, bool) {
	if !o.cfg.AutoDetect || frame == nil {
		return "", false
	}
	if o.scanned && now.Sub(o.lastScan) < o.cfg.Cooldown {
		return "", false
	}

	code, ok := o.detectFirst(ctx, frame)
	if !ok {
		return "", false
	}
	if o.recent.Contains(code) {
		slog.Debug("Suppressed recently seen code", "code", code)
		return "", false
	}

	o.recent.Push(code)
	o.lastScan = now
	o.scanned = true
	return code, true
}

// TryManualScan detects the first code in frame, ignoring the cooldown
// and the recent buffer.
func (o *Orchestrator) TryManualScan(ctx context.Context, frame image.Image) (string, bool) {
	if frame == nil {
		return "", false
	}
	return o.detectFirst(ctx, frame)
}

// Reload applies new scan settings from the next call on. The recent
// buffer and the last scan time are kept.
func (o *Orchestrator) Reload(cfg config.Scan) {
	o.cfg = cfg
}

// Settings returns the scan settings in effect.
func (o *Orchestrator) Settings() config.Scan {
	return o.cfg
}

// Recent returns the recently seen codes, oldest first.
func (o *Orchestrator) Recent() []string {
	return o.recent.Snapshot()
}

func (o *Orchestrator) detectFirst(ctx context.Context, frame image.Image) (string, bool) {
	found, err := o.detector.Detect(ctx, frame)
	if err != nil {
		slog.Debug("Detection failed", "error", err)
		return "", false
	}
	for _, code := range found {
		if code != "" {
			return code, true
		}
	}
	return "", false
}
