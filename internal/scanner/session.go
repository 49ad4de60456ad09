package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/NYTEMODEONLY/codedexpro/internal/common"
	"github.com/NYTEMODEONLY/codedexpro/internal/config"
	"github.com/NYTEMODEONLY/codedexpro/internal/model"
	"github.com/NYTEMODEONLY/codedexpro/internal/service"
	"github.com/google/uuid"
)

// ResultKind describes what happened to a scan.
type ResultKind int

// Scan outcomes.
const (
	ResultNone ResultKind = iota
	ResultAccepted
	ResultDuplicate
)

func (k ResultKind) String() string {
	switch k {
	case ResultAccepted:
		return "accepted"
	case ResultDuplicate:
		return "duplicate"
	default:
		return "none"
	}
}

// Result is the outcome of one scan attempt.
type Result struct {
	Code   string
	Source model.ScanSource
	Kind   ResultKind
}

// Found reports whether a code was decoded, new or not.
func (r Result) Found() bool {
	return r.Kind != ResultNone
}

// Session owns the camera lifecycle and feeds decoded codes into the
// store. Like the Orchestrator it is driven from a single goroutine.
type Session struct {
	camera  service.Camera
	journal service.Journal
	clock   service.Clock
	orch    *Orchestrator
	store   *codes.Store
	id      string
	retry   common.RetryOptions
	device  int
	running bool
}

// Option configures a Session.
type Option func(*Session)

// WithJournal records every decoded code to j.
func WithJournal(j service.Journal) Option {
	return func(s *Session) {
		s.journal = j
	}
}

// WithClock replaces the wall clock used for journal timestamps.
func WithClock(c service.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithRetryOptions controls how often Start tries to open the camera.
func WithRetryOptions(opts common.RetryOptions) Option {
	return func(s *Session) {
		s.retry = opts
	}
}

// WithSessionID fixes the id written to the journal.
func WithSessionID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// NewSession creates a stopped session with an empty store.
func NewSession(camera service.Camera, detector service.Detector, settings config.Settings, opts ...Option) *Session {
	s := &Session{
		camera: camera,
		clock:  service.SystemClock{},
		orch:   NewOrchestrator(detector, settings.Scan),
		store:  codes.NewStore(),
		id:     uuid.NewString(),
		device: settings.Camera.Index,
		retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     time.Second,
			Multiplier:   2.0,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID is the journal session id.
func (s *Session) ID() string {
	return s.id
}

// Store exposes the accepted codes.
func (s *Session) Store() *codes.Store {
	return s.store
}

// Settings returns the scan settings in effect.
func (s *Session) Settings() config.Scan {
	return s.orch.Settings()
}

// Running reports whether the camera is open.
func (s *Session) Running() bool {
	return s.running
}

// Start opens the camera. On failure the camera is released, the session
// stays stopped and the error wraps common.ErrCameraUnavailable.
func (s *Session) Start(ctx context.Context) error {
	if s.running {
		return nil
	}

	err := common.WithRetry(ctx, func() error {
		openErr := s.camera.Open(ctx, s.device)
		if errors.Is(openErr, common.ErrUnsupported) {
			return &common.RetryableError{Err: openErr, Retryable: false}
		}
		return openErr
	}, s.retry)
	if err != nil {
		if closeErr := s.camera.Close(); closeErr != nil {
			slog.Debug("Failed to release camera", "error", closeErr)
		}
		return fmt.Errorf("%w: device %d: %w", common.ErrCameraUnavailable, s.device, err)
	}

	s.running = true
	slog.Info("Camera started", "device", s.device, "session", s.id)
	return nil
}

// Stop closes the camera. Stopping a stopped session is a no-op.
func (s *Session) Stop() error {
	if !s.running {
		return nil
	}
	s.running = false
	if err := s.camera.Close(); err != nil {
		return fmt.Errorf("failed to close camera: %w", err)
	}
	slog.Info("Camera stopped", "device", s.device)
	return nil
}

// Toggle starts a stopped session or stops a running one.
func (s *Session) Toggle(ctx context.Context) error {
	if s.running {
		return s.Stop()
	}
	return s.Start(ctx)
}

// Tick performs one automatic scan of the current frame.
func (s *Session) Tick(ctx context.Context, now time.Time) Result {
	if !s.running || !s.orch.Settings().AutoDetect {
		return Result{}
	}
	frame, err := s.camera.ReadFrame(ctx)
	if err != nil {
		slog.Debug("Frame read failed", "error", err)
		return Result{}
	}
	code, ok := s.orch.TryAutoScan(ctx, frame, now)
	if !ok {
		return Result{}
	}
	return s.offer(ctx, code, model.SourceAuto)
}

// ManualScan scans the current frame without cooldown or recent-code
// suppression.
func (s *Session) ManualScan(ctx context.Context) (Result, error) {
	if !s.running {
		return Result{}, common.ErrCameraNotRunning
	}
	frame, err := s.camera.ReadFrame(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read frame: %w", err)
	}
	code, ok := s.orch.TryManualScan(ctx, frame)
	if !ok {
		return Result{}, nil
	}
	return s.offer(ctx, code, model.SourceManual), nil
}

// AddTyped offers a code entered by hand. Surrounding whitespace is
// dropped and a blank entry is ignored.
func (s *Session) AddTyped(ctx context.Context, code string) Result {
	code = strings.TrimSpace(code)
	if code == "" {
		return Result{}
	}
	return s.offer(ctx, code, model.SourceTyped)
}

// Clear empties the store. The recent buffer and cooldown are untouched.
func (s *Session) Clear() {
	s.store.Clear()
	slog.Info("Cleared all codes", "session", s.id)
}

// Reload applies new settings. Scan values take effect on the next tick;
// a new camera index is used the next time the camera starts.
func (s *Session) Reload(settings config.Settings) {
	s.orch.Reload(settings.Scan)
	s.device = settings.Camera.Index
}

func (s *Session) offer(ctx context.Context, code string, source model.ScanSource) Result {
	result := Result{Code: code, Source: source, Kind: ResultDuplicate}
	if s.store.Accept(code) {
		result.Kind = ResultAccepted
		slog.Info("Code accepted", "code", code, "source", source, "count", s.store.Count())
	} else {
		slog.Debug("Duplicate code ignored", "code", code, "source", source)
	}

	if s.journal != nil {
		event := &model.ScanEvent{
			SessionID: s.id,
			Code:      code,
			Source:    source,
			Accepted:  result.Kind == ResultAccepted,
			ScannedAt: s.clock.Now(),
		}
		if err := s.journal.Record(ctx, event); err != nil {
			common.LogError(err, "Failed to journal scan", common.Fields{"code": code, "session": s.id})
		}
	}
	return result
}
