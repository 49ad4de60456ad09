// Package storage persists the scan journal in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NYTEMODEONLY/codedexpro/internal/model"
	"github.com/NYTEMODEONLY/codedexpro/internal/service"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidEvent = errors.New("invalid scan event")
	ErrInvalidLimit = errors.New("limit cannot be negative")
	ErrBackupExists = errors.New("backup target already exists")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateEvent(event *model.ScanEvent) error {
	if event == nil {
		return fmt.Errorf("%w: event", ErrNilParameter)
	}
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	return nil
}

func validateFilter(filter service.EventFilter) error {
	if filter.Limit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, filter.Limit)
	}
	return nil
}
