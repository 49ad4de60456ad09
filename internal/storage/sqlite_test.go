package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/model"
	"github.com/NYTEMODEONLY/codedexpro/internal/service"
)

func createTestJournal(t *testing.T) (*SQLiteJournal, func()) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	journal, err := NewSQLiteJournal(dbPath)
	if err != nil {
		t.Fatalf("Failed to create journal: %v", err)
	}

	ctx := context.Background()
	if err := journal.Migrate(ctx); err != nil {
		_ = journal.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return journal, func() { _ = journal.Close() }
}

var baseTime = time.Date(2025, 5, 4, 18, 30, 0, 0, time.UTC)

func event(session, code string, source model.ScanSource, accepted bool, offset time.Duration) *model.ScanEvent {
	return &model.ScanEvent{
		SessionID: session,
		Code:      code,
		Source:    source,
		Accepted:  accepted,
		ScannedAt: baseTime.Add(offset),
	}
}

func TestSQLiteJournal_RecordAndEvents(t *testing.T) {
	journal, cleanup := createTestJournal(t)
	defer cleanup()
	ctx := context.Background()

	first := event("s1", "AAA", model.SourceAuto, true, 0)
	if err := journal.Record(ctx, first); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if first.ID == 0 {
		t.Error("Record() did not set the event ID")
	}
	for _, e := range []*model.ScanEvent{
		event("s1", "AAA", model.SourceManual, false, time.Second),
		event("s1", "BBB", model.SourceTyped, true, 2*time.Second),
		event("s2", "CCC", model.SourceAuto, true, time.Hour),
	} {
		if err := journal.Record(ctx, e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	tests := []struct {
		name   string
		want   []string
		filter service.EventFilter
	}{
		{name: "all newest first", want: []string{"CCC", "BBB", "AAA", "AAA"}},
		{name: "by session", filter: service.EventFilter{SessionID: "s1"}, want: []string{"BBB", "AAA", "AAA"}},
		{name: "accepted only", filter: service.EventFilter{SessionID: "s1", AcceptedOnly: true}, want: []string{"BBB", "AAA"}},
		{name: "limit", filter: service.EventFilter{Limit: 2}, want: []string{"CCC", "BBB"}},
		{name: "unknown session", filter: service.EventFilter{SessionID: "nope"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := journal.Events(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Events() error = %v", err)
			}
			var got []string
			for _, e := range events {
				got = append(got, e.Code)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Events() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Events()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}

	events, err := journal.Events(ctx, service.EventFilter{SessionID: "s1", Limit: 1})
	if err != nil {
		t.Fatalf("Events() error = %v", err)
	}
	got := events[0]
	if got.Source != model.SourceTyped || !got.Accepted || !got.ScannedAt.Equal(baseTime.Add(2*time.Second)) {
		t.Errorf("Events() round trip = %+v", got)
	}
}

func TestSQLiteJournal_Sessions(t *testing.T) {
	journal, cleanup := createTestJournal(t)
	defer cleanup()
	ctx := context.Background()

	for _, e := range []*model.ScanEvent{
		event("old", "A", model.SourceAuto, true, 0),
		event("old", "A", model.SourceAuto, false, time.Minute),
		event("old", "B", model.SourceManual, true, 2*time.Minute),
		event("new", "C", model.SourceTyped, true, time.Hour),
	} {
		if err := journal.Record(ctx, e); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	sessions, err := journal.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Sessions() returned %d sessions, want 2", len(sessions))
	}
	if sessions[0].ID != "new" {
		t.Errorf("Sessions()[0].ID = %q, want most recent session first", sessions[0].ID)
	}
	old := sessions[1]
	if old.Events != 3 || old.Accepted != 2 {
		t.Errorf("old session counts = %d events, %d accepted; want 3, 2", old.Events, old.Accepted)
	}
	if !old.FirstScan.Equal(baseTime) || !old.LastScan.Equal(baseTime.Add(2*time.Minute)) {
		t.Errorf("old session span = %v..%v", old.FirstScan, old.LastScan)
	}
}

func TestSQLiteJournal_Validation(t *testing.T) {
	journal, cleanup := createTestJournal(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		event   *model.ScanEvent
		wantErr error
		name    string
	}{
		{name: "nil event", event: nil, wantErr: ErrNilParameter},
		{name: "empty code", event: event("s1", "", model.SourceAuto, true, 0), wantErr: ErrInvalidEvent},
		{name: "bad source", event: event("s1", "A", "webcam", true, 0), wantErr: ErrInvalidEvent},
		{name: "no session", event: event("", "A", model.SourceAuto, true, 0), wantErr: ErrInvalidEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := journal.Record(ctx, tt.event)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Record() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	//nolint:staticcheck // nil context is the case under test
	if err := journal.Record(nil, event("s1", "A", model.SourceAuto, true, 0)); !errors.Is(err, ErrNilContext) {
		t.Errorf("Record(nil ctx) error = %v, want %v", err, ErrNilContext)
	}
	if _, err := journal.Events(ctx, service.EventFilter{Limit: -1}); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("Events(limit -1) error = %v, want %v", err, ErrInvalidLimit)
	}
}

func TestSQLiteJournal_MigrateIdempotent(t *testing.T) {
	journal, cleanup := createTestJournal(t)
	defer cleanup()
	ctx := context.Background()

	if err := journal.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
	version, err := journal.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("SchemaVersion() = %d, want %d", version, ExpectedSchemaVersion)
	}

	var indexCount int
	err = journal.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name='idx_scan_events_session'
	`).Scan(&indexCount)
	if err != nil {
		t.Fatalf("Failed to check index: %v", err)
	}
	if indexCount != 1 {
		t.Error("Session index was not created")
	}
}

func TestSQLiteJournal_InMemory(t *testing.T) {
	journal, err := NewSQLiteJournal(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteJournal(:memory:) error = %v", err)
	}
	defer journal.Close()
	ctx := context.Background()

	if err := journal.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := journal.Record(ctx, event("m", "X", model.SourceTyped, true, 0)); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	events, err := journal.Events(ctx, service.EventFilter{})
	if err != nil || len(events) != 1 {
		t.Fatalf("Events() = %v, %v; want one event", events, err)
	}
}

func TestSQLiteJournal_Backup(t *testing.T) {
	journal, cleanup := createTestJournal(t)
	defer cleanup()
	ctx := context.Background()

	if err := journal.Record(ctx, event("s1", "KEEP", model.SourceAuto, true, 0)); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	dest := filepath.Join(t.TempDir(), "backups", "copy.db")
	if err := journal.Backup(ctx, dest); err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if err := journal.Backup(ctx, dest); !errors.Is(err, ErrBackupExists) {
		t.Errorf("second Backup() error = %v, want %v", err, ErrBackupExists)
	}

	copyJournal, err := NewSQLiteJournal(dest)
	if err != nil {
		t.Fatalf("open backup: %v", err)
	}
	defer copyJournal.Close()
	events, err := copyJournal.Events(ctx, service.EventFilter{})
	if err != nil {
		t.Fatalf("Events() on backup error = %v", err)
	}
	if len(events) != 1 || events[0].Code != "KEEP" {
		t.Errorf("backup events = %+v", events)
	}
}

func TestNewSQLiteJournal_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteJournal(" "); !errors.Is(err, ErrEmptyString) {
		t.Errorf("NewSQLiteJournal(\" \") error = %v, want %v", err, ErrEmptyString)
	}
}

var _ service.Journal = (*SQLiteJournal)(nil)
