package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func scanSettings() config.Scan {
	return config.Scan{
		AutoDetect: true,
		Interval:   500 * time.Millisecond,
		Cooldown:   2 * time.Second,
	}
}

func at(seconds float64) time.Time {
	return t0.Add(time.Duration(seconds * float64(time.Second)))
}

func TestTryAutoScan_Cooldown(t *testing.T) {
	ctx := context.Background()
	o := NewOrchestrator(detecting("A", "B", "C"), scanSettings())

	code, ok := o.TryAutoScan(ctx, testFrame, at(0))
	require.True(t, ok)
	assert.Equal(t, "A", code)

	_, ok = o.TryAutoScan(ctx, testFrame, at(1.0))
	assert.False(t, ok, "scan inside the cooldown must be rejected")

	code, ok = o.TryAutoScan(ctx, testFrame, at(2.5))
	require.True(t, ok)
	assert.Equal(t, "B", code)
}

func TestTryAutoScan_CooldownRejectionSkipsDetection(t *testing.T) {
	ctx := context.Background()
	d := detecting("A", "B")
	o := NewOrchestrator(d, scanSettings())

	_, ok := o.TryAutoScan(ctx, testFrame, at(0))
	require.True(t, ok)
	_, ok = o.TryAutoScan(ctx, testFrame, at(0.5))
	require.False(t, ok)
	assert.Equal(t, 1, d.calls)
}

func TestTryAutoScan_CooldownBoundaryIsInclusive(t *testing.T) {
	ctx := context.Background()
	o := NewOrchestrator(detecting("A", "B"), scanSettings())

	_, ok := o.TryAutoScan(ctx, testFrame, at(0))
	require.True(t, ok)
	code, ok := o.TryAutoScan(ctx, testFrame, at(2.0))
	require.True(t, ok)
	assert.Equal(t, "B", code)
}

func TestTryAutoScan_RecentBufferSuppresses(t *testing.T) {
	ctx := context.Background()
	cfg := scanSettings()
	cfg.Cooldown = 0
	o := NewOrchestrator(&scriptedDetector{results: [][]string{{"X"}}}, cfg)

	code, ok := o.TryAutoScan(ctx, testFrame, at(0))
	require.True(t, ok)
	assert.Equal(t, "X", code)

	for i := 1; i <= 5; i++ {
		_, ok := o.TryAutoScan(ctx, testFrame, at(float64(i)*10))
		assert.False(t, ok, "repeat %d of a recent code must be suppressed", i)
	}
	assert.Equal(t, []string{"X"}, o.Recent())
}

func TestTryAutoScan_SuppressionDoesNotResetCooldown(t *testing.T) {
	ctx := context.Background()
	o := NewOrchestrator(detecting("A", "A", "B"), scanSettings())

	_, ok := o.TryAutoScan(ctx, testFrame, at(0))
	require.True(t, ok)
	_, ok = o.TryAutoScan(ctx, testFrame, at(3))
	require.False(t, ok)

	code, ok := o.TryAutoScan(ctx, testFrame, at(3.1))
	require.True(t, ok, "last scan time must still be t=0")
	assert.Equal(t, "B", code)
}

func TestTryAutoScan_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	cfg := scanSettings()
	cfg.Cooldown = 0
	o := NewOrchestrator(detecting("1", "2", "3", "4", "5", "6", "1"), cfg)

	for i := 0; i < 6; i++ {
		_, ok := o.TryAutoScan(ctx, testFrame, at(float64(i)))
		require.True(t, ok)
	}
	assert.Equal(t, []string{"2", "3", "4", "5", "6"}, o.Recent())

	code, ok := o.TryAutoScan(ctx, testFrame, at(7))
	require.True(t, ok, "evicted code is accepted again")
	assert.Equal(t, "1", code)
}

func TestTryAutoScan_NoResult(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		detector *scriptedDetector
		mutate   func(*config.Scan)
		name     string
		nilFrame bool
	}{
		{name: "auto detect disabled", detector: detecting("A"), mutate: func(c *config.Scan) { c.AutoDetect = false }},
		{name: "nil frame", detector: detecting("A"), nilFrame: true},
		{name: "nothing decoded", detector: &scriptedDetector{}},
		{name: "empty payload", detector: &scriptedDetector{results: [][]string{{""}}}},
		{name: "detector error", detector: &scriptedDetector{err: errors.New("boom")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scanSettings()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			o := NewOrchestrator(tt.detector, cfg)
			frame := testFrame
			if tt.nilFrame {
				frame = nil
			}
			_, ok := o.TryAutoScan(ctx, frame, at(0))
			assert.False(t, ok)
			assert.Empty(t, o.Recent())
		})
	}
}

func TestTryAutoScan_FirstCodeOnly(t *testing.T) {
	ctx := context.Background()
	o := NewOrchestrator(&scriptedDetector{results: [][]string{{"A", "B"}}}, scanSettings())

	code, ok := o.TryAutoScan(ctx, testFrame, at(0))
	require.True(t, ok)
	assert.Equal(t, "A", code)
	assert.Equal(t, []string{"A"}, o.Recent())
}

func TestTryManualScan_BypassesGates(t *testing.T) {
	ctx := context.Background()
	o := NewOrchestrator(&scriptedDetector{results: [][]string{{"A"}}}, scanSettings())

	_, ok := o.TryAutoScan(ctx, testFrame, at(0))
	require.True(t, ok)

	for i := 0; i < 3; i++ {
		code, ok := o.TryManualScan(ctx, testFrame)
		require.True(t, ok)
		assert.Equal(t, "A", code)
	}
	assert.Equal(t, []string{"A"}, o.Recent(), "manual scans do not touch the buffer")

	_, ok = o.TryManualScan(ctx, nil)
	assert.False(t, ok)
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	o := NewOrchestrator(detecting("A", "B", "C"), scanSettings())

	_, ok := o.TryAutoScan(ctx, testFrame, at(0))
	require.True(t, ok)

	cfg := scanSettings()
	cfg.Cooldown = 500 * time.Millisecond
	o.Reload(cfg)

	code, ok := o.TryAutoScan(ctx, testFrame, at(0.6))
	require.True(t, ok, "shorter cooldown applies from the next call")
	assert.Equal(t, "B", code)
	assert.Equal(t, []string{"A", "B"}, o.Recent(), "buffer survives reload")

	cfg.AutoDetect = false
	o.Reload(cfg)
	_, ok = o.TryAutoScan(ctx, testFrame, at(10))
	assert.False(t, ok)
}
