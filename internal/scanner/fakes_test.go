package scanner

import (
	"context"
	"errors"
	"image"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/model"
	"github.com/NYTEMODEONLY/codedexpro/internal/service"
)

var testFrame = image.NewGray(image.Rect(0, 0, 4, 4))

// scriptedDetector returns the next queued result on each call and then
// keeps returning the last one.
type scriptedDetector struct {
	err     error
	results [][]string
	calls   int
}

func (d *scriptedDetector) Detect(_ context.Context, _ image.Image) ([]string, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	if len(d.results) == 0 {
		return nil, nil
	}
	r := d.results[0]
	if len(d.results) > 1 {
		d.results = d.results[1:]
	}
	return r, nil
}

func detecting(codes ...string) *scriptedDetector {
	results := make([][]string, len(codes))
	for i, c := range codes {
		results[i] = []string{c}
	}
	return &scriptedDetector{results: results}
}

type fakeCamera struct {
	frame     image.Image
	openErr   error
	readErr   error
	openCalls int
	closed    int
	open      bool
	failOpens int
}

func (c *fakeCamera) Open(_ context.Context, _ int) error {
	c.openCalls++
	if c.openErr != nil {
		return c.openErr
	}
	if c.failOpens > 0 {
		c.failOpens--
		return errors.New("device busy")
	}
	c.open = true
	return nil
}

func (c *fakeCamera) ReadFrame(_ context.Context) (image.Image, error) {
	if c.readErr != nil {
		return nil, c.readErr
	}
	return c.frame, nil
}

func (c *fakeCamera) Close() error {
	c.closed++
	c.open = false
	return nil
}

type memoryJournal struct {
	err    error
	events []model.ScanEvent
}

func (j *memoryJournal) Record(_ context.Context, e *model.ScanEvent) error {
	if j.err != nil {
		return j.err
	}
	j.events = append(j.events, *e)
	return nil
}

func (j *memoryJournal) Events(_ context.Context, _ service.EventFilter) ([]model.ScanEvent, error) {
	return j.events, nil
}

func (j *memoryJournal) Sessions(_ context.Context) ([]model.SessionSummary, error) {
	return nil, nil
}

func (j *memoryJournal) Migrate(_ context.Context) error { return nil }
func (j *memoryJournal) Close() error                    { return nil }

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }
