// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"time"
)

// ScanSource indicates how a code reached the store.
type ScanSource string

// Scan source constants.
const (
	SourceAuto   ScanSource = "auto"
	SourceManual ScanSource = "manual"
	SourceTyped  ScanSource = "typed"
)

// Valid reports whether s is a known source.
func (s ScanSource) Valid() bool {
	switch s {
	case SourceAuto, SourceManual, SourceTyped:
		return true
	}
	return false
}

// ParseScanSource converts a stored or user supplied value.
func ParseScanSource(s string) (ScanSource, error) {
	src := ScanSource(s)
	if !src.Valid() {
		return "", fmt.Errorf("unknown scan source %q", s)
	}
	return src, nil
}

// ScanEvent is one decoded code offered to the store.
type ScanEvent struct {
	ScannedAt time.Time  `json:"scanned_at"`
	SessionID string     `json:"session_id"`
	Code      string     `json:"code"`
	Source    ScanSource `json:"source"`
	ID        int64      `json:"id"`
	Accepted  bool       `json:"accepted"` // false when the store already held the code
}

// Validate checks that the event can be journaled.
func (e ScanEvent) Validate() error {
	if e.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if e.Code == "" {
		return fmt.Errorf("code is required")
	}
	if !e.Source.Valid() {
		return fmt.Errorf("unknown scan source %q", e.Source)
	}
	if e.ScannedAt.IsZero() {
		return fmt.Errorf("scan time is required")
	}
	return nil
}

// SessionSummary aggregates the events of one scan session.
type SessionSummary struct {
	FirstScan time.Time `json:"first_scan"`
	LastScan  time.Time `json:"last_scan"`
	ID        string    `json:"id"`
	Events    int       `json:"events"`
	Accepted  int       `json:"accepted"`
}
