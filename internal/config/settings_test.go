package config

import (
	"testing"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/NYTEMODEONLY/codedexpro/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	require.NoError(t, BindEnv(v))
	return v
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, 0, s.Camera.Index)
	assert.Equal(t, SourceWebcam, s.Camera.Source)
	assert.True(t, s.Scan.AutoDetect)
	assert.Equal(t, 500*time.Millisecond, s.Scan.Interval)
	assert.Equal(t, 2*time.Second, s.Scan.Cooldown)
	assert.Equal(t, codes.FormatNumbered, s.DefaultFormat)
	assert.Equal(t, "info", s.Logging.Level)
}

func TestLoad_LegacyEnvironment(t *testing.T) {
	t.Setenv("CAMERA_INDEX", "2")
	t.Setenv("AUTO_DETECT", "False")
	t.Setenv("SCAN_INTERVAL", "750")
	t.Setenv("SCAN_COOLDOWN", "1.5")
	t.Setenv("DEBUG", "true")

	s, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Camera.Index)
	assert.False(t, s.Scan.AutoDetect)
	assert.Equal(t, 750*time.Millisecond, s.Scan.Interval)
	assert.Equal(t, 1500*time.Millisecond, s.Scan.Cooldown)
	assert.True(t, s.Debug)
	assert.Equal(t, "debug", s.Logging.Level)
}

func TestLoad_PrefixedEnvironmentWins(t *testing.T) {
	t.Setenv("CODEDEX_SCAN_COOLDOWN_SECONDS", "3")
	t.Setenv("SCAN_COOLDOWN", "1")

	s, err := Load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, s.Scan.Cooldown)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "malformed interval", key: KeyScanInterval, value: "fast"},
		{name: "interval too short", key: KeyScanInterval, value: 50},
		{name: "interval too long", key: KeyScanInterval, value: 5000},
		{name: "cooldown too short", key: KeyScanCooldown, value: 0.1},
		{name: "malformed cooldown", key: KeyScanCooldown, value: "soon"},
		{name: "camera index negative", key: KeyCameraIndex, value: -1},
		{name: "camera index too high", key: KeyCameraIndex, value: 11},
		{name: "malformed auto detect", key: KeyAutoDetect, value: "sometimes"},
		{name: "unknown source", key: KeyCameraSource, value: "telescope"},
		{name: "unknown format", key: KeyDefaultFormat, value: "tsv"},
		{name: "unknown log level", key: KeyLogLevel, value: "loud"},
		{name: "unknown log format", key: KeyLogFormat, value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper(t)
			v.Set(tt.key, tt.value)
			_, err := Load(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestLoad_ReplayRequiresPath(t *testing.T) {
	v := newViper(t)
	v.Set(KeyCameraSource, SourceReplay)
	_, err := Load(v)
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	v.Set(KeyReplayPath, "/tmp/frames")
	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/frames", s.Camera.ReplayPath)
}
