package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/NYTEMODEONLY/codedexpro/internal/common"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyCameraIndex   = "camera.index"
	KeyCameraSource  = "camera.source"
	KeyReplayPath    = "camera.replay_path"
	KeyAutoDetect    = "scan.auto_detect"
	KeyScanInterval  = "scan.interval_ms"
	KeyScanCooldown  = "scan.cooldown_seconds"
	KeyCaptureLoop   = "scan.capture_loop"
	KeyDebug         = "debug"
	KeyTheme         = "ui.theme"
	KeyJournalPath   = "journal.path"
	KeyDefaultFormat = "format.default"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
)

// Frame source names.
const (
	SourceWebcam = "webcam"
	SourceScreen = "screen"
	SourceReplay = "replay"
)

// Accepted ranges, matching the settings dialog of the desktop app.
const (
	MinCameraIndex  = 0
	MaxCameraIndex  = 10
	MinScanInterval = 100 * time.Millisecond
	MaxScanInterval = 2000 * time.Millisecond
	MinScanCooldown = 500 * time.Millisecond
	MaxScanCooldown = 10 * time.Second
)

// DefaultJournalPath is where scan events are recorded unless configured.
const DefaultJournalPath = "$HOME/.local/share/codedex/journal.db"

// Camera selects the frame source.
type Camera struct {
	Source     string
	ReplayPath string
	Index      int
}

// Scan holds the values the scan orchestrator consumes.
type Scan struct {
	Interval    time.Duration
	Cooldown    time.Duration
	AutoDetect  bool
	CaptureLoop bool
}

// Logging configures the slog handler.
type Logging struct {
	Level  string
	Format string
}

// Settings is the validated application configuration.
type Settings struct {
	Logging       Logging
	Camera        Camera
	Theme         string
	JournalPath   string
	DefaultFormat codes.Format
	Scan          Scan
	Debug         bool
}

// Defaults returns the built-in configuration.
func Defaults() Settings {
	return Settings{
		Camera: Camera{
			Index:  0,
			Source: SourceWebcam,
		},
		Scan: Scan{
			AutoDetect: true,
			Interval:   500 * time.Millisecond,
			Cooldown:   2 * time.Second,
		},
		Theme:         "default",
		JournalPath:   ExpandPath(DefaultJournalPath),
		DefaultFormat: codes.FormatNumbered,
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyCameraIndex, d.Camera.Index)
	v.SetDefault(KeyCameraSource, d.Camera.Source)
	v.SetDefault(KeyReplayPath, "")
	v.SetDefault(KeyAutoDetect, d.Scan.AutoDetect)
	v.SetDefault(KeyScanInterval, d.Scan.Interval.Milliseconds())
	v.SetDefault(KeyScanCooldown, d.Scan.Cooldown.Seconds())
	v.SetDefault(KeyCaptureLoop, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyTheme, d.Theme)
	v.SetDefault(KeyJournalPath, DefaultJournalPath)
	v.SetDefault(KeyDefaultFormat, string(d.DefaultFormat))
	v.SetDefault(KeyLogLevel, d.Logging.Level)
	v.SetDefault(KeyLogFormat, d.Logging.Format)
}

// legacyEnv maps keys to the unprefixed variables the desktop app used in .env.
var legacyEnv = map[string]string{
	KeyCameraIndex:  "CAMERA_INDEX",
	KeyAutoDetect:   "AUTO_DETECT",
	KeyScanInterval: "SCAN_INTERVAL",
	KeyScanCooldown: "SCAN_COOLDOWN",
	KeyDebug:        "DEBUG",
}

// BindEnv wires CODEDEX_* variables and the legacy names into v.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix("CODEDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := "CODEDEX_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// Load reads and validates settings from v. Malformed or out-of-range
// values are rejected with ErrInvalidConfig.
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	var err error

	if s.Camera.Index, err = cast.ToIntE(v.Get(KeyCameraIndex)); err != nil {
		return Settings{}, invalid(KeyCameraIndex, v.Get(KeyCameraIndex), err)
	}
	s.Camera.Source = strings.ToLower(v.GetString(KeyCameraSource))
	s.Camera.ReplayPath = ExpandPath(v.GetString(KeyReplayPath))

	if s.Scan.AutoDetect, err = cast.ToBoolE(v.Get(KeyAutoDetect)); err != nil {
		return Settings{}, invalid(KeyAutoDetect, v.Get(KeyAutoDetect), err)
	}
	intervalMS, err := cast.ToIntE(v.Get(KeyScanInterval))
	if err != nil {
		return Settings{}, invalid(KeyScanInterval, v.Get(KeyScanInterval), err)
	}
	s.Scan.Interval = time.Duration(intervalMS) * time.Millisecond

	cooldownSec, err := cast.ToFloat64E(v.Get(KeyScanCooldown))
	if err != nil {
		return Settings{}, invalid(KeyScanCooldown, v.Get(KeyScanCooldown), err)
	}
	s.Scan.Cooldown = time.Duration(cooldownSec * float64(time.Second))

	if s.Scan.CaptureLoop, err = cast.ToBoolE(v.Get(KeyCaptureLoop)); err != nil {
		return Settings{}, invalid(KeyCaptureLoop, v.Get(KeyCaptureLoop), err)
	}
	if s.Debug, err = cast.ToBoolE(v.Get(KeyDebug)); err != nil {
		return Settings{}, invalid(KeyDebug, v.Get(KeyDebug), err)
	}

	s.Theme = v.GetString(KeyTheme)
	s.JournalPath = ExpandPath(v.GetString(KeyJournalPath))

	if s.DefaultFormat, err = codes.ParseFormat(v.GetString(KeyDefaultFormat)); err != nil {
		return Settings{}, invalid(KeyDefaultFormat, v.Get(KeyDefaultFormat), err)
	}

	s.Logging = Logging{
		Level:  v.GetString(KeyLogLevel),
		Format: v.GetString(KeyLogFormat),
	}
	if s.Debug {
		s.Logging.Level = "debug"
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Camera.Index < MinCameraIndex || s.Camera.Index > MaxCameraIndex {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d",
			common.ErrInvalidConfig, KeyCameraIndex, MinCameraIndex, MaxCameraIndex, s.Camera.Index)
	}
	switch s.Camera.Source {
	case SourceWebcam, SourceScreen:
	case SourceReplay:
		if s.Camera.ReplayPath == "" {
			return fmt.Errorf("%w: %s is required for the replay source", common.ErrMissingConfig, KeyReplayPath)
		}
	default:
		return fmt.Errorf("%w: %s must be webcam, screen or replay, got %q",
			common.ErrInvalidConfig, KeyCameraSource, s.Camera.Source)
	}
	if s.Scan.Interval < MinScanInterval || s.Scan.Interval > MaxScanInterval {
		return fmt.Errorf("%w: %s must be between %d and %d, got %d",
			common.ErrInvalidConfig, KeyScanInterval,
			MinScanInterval.Milliseconds(), MaxScanInterval.Milliseconds(), s.Scan.Interval.Milliseconds())
	}
	if s.Scan.Cooldown < MinScanCooldown || s.Scan.Cooldown > MaxScanCooldown {
		return fmt.Errorf("%w: %s must be between %.1f and %.1f, got %.2f",
			common.ErrInvalidConfig, KeyScanCooldown,
			MinScanCooldown.Seconds(), MaxScanCooldown.Seconds(), s.Scan.Cooldown.Seconds())
	}
	if _, err := common.ParseLevel(s.Logging.Level); err != nil {
		return err
	}
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %s must be console or json, got %q", common.ErrInvalidConfig, KeyLogFormat, s.Logging.Format)
	}
	return nil
}

func invalid(key string, value any, err error) error {
	return fmt.Errorf("%w: %s=%v: %v", common.ErrInvalidConfig, key, value, err)
}
