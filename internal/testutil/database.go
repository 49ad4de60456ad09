// Package testutil provides shared helpers for tests that need a scan journal.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/model"
	"github.com/NYTEMODEONLY/codedexpro/internal/storage"
)

// TestJournal is a migrated in-memory journal bound to a test.
type TestJournal struct {
	*storage.SQLiteJournal
	t *testing.T
}

// SetupTestJournal creates a new in-memory journal and runs migrations.
// The journal is closed when the test finishes.
//
// Example:
//
//	j := testutil.SetupTestJournal(t)
//	j.MustRecord("session-1", "ABC", model.SourceAuto, true)
func SetupTestJournal(t *testing.T) *TestJournal {
	t.Helper()

	journal, err := storage.NewSQLiteJournal(":memory:")
	if err != nil {
		t.Fatalf("failed to create test journal: %v", err)
	}
	if err := journal.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = journal.Close()
	})

	return &TestJournal{SQLiteJournal: journal, t: t}
}

// MustRecord journals an event stamped with the current time or fails the test.
func (j *TestJournal) MustRecord(session, code string, source model.ScanSource, accepted bool) model.ScanEvent {
	j.t.Helper()
	e := model.ScanEvent{
		SessionID: session,
		Code:      code,
		Source:    source,
		Accepted:  accepted,
		ScannedAt: time.Now(),
	}
	if err := j.Record(context.Background(), &e); err != nil {
		j.t.Fatalf("failed to record %q: %v", code, err)
	}
	return e
}
