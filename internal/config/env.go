package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/common"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is the dotenv file read at startup and written by SetEnv.
const DefaultEnvFile = ".env"

// settingEnv maps user-facing setting names to their .env variable.
var settingEnv = map[string]string{
	"camera_index":  "CAMERA_INDEX",
	"debug_mode":    "DEBUG",
	"auto_detect":   "AUTO_DETECT",
	"scan_interval": "SCAN_INTERVAL",
	"scan_cooldown": "SCAN_COOLDOWN",
}

// SettingNames lists the names accepted by SetEnv.
func SettingNames() []string {
	names := make([]string, 0, len(settingEnv))
	for name := range settingEnv {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadDotEnv loads variables from the given files into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		slog.Debug("Loaded environment file", "path", path)
	}
	return nil
}

// SetEnv validates value for the named setting and persists it to the
// dotenv file at path, keeping the other entries.
func SetEnv(path, name, value string) error {
	envKey, ok := settingEnv[name]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", common.ErrInvalidConfig, name)
	}

	normalized, err := normalizeSetting(name, value)
	if err != nil {
		return err
	}

	env := map[string]string{}
	if _, statErr := os.Stat(path); statErr == nil {
		env, err = godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	env[envKey] = normalized
	if err := godotenv.Write(env, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func normalizeSetting(name, value string) (string, error) {
	switch name {
	case "camera_index":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinCameraIndex || n > MaxCameraIndex {
			return "", fmt.Errorf("%w: camera_index must be an integer between %d and %d",
				common.ErrInvalidConfig, MinCameraIndex, MaxCameraIndex)
		}
		return strconv.Itoa(n), nil
	case "debug_mode", "auto_detect":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("%w: %s must be true or false", common.ErrInvalidConfig, name)
		}
		return strconv.FormatBool(b), nil
	case "scan_interval":
		n, err := strconv.Atoi(value)
		d := time.Duration(n) * time.Millisecond
		if err != nil || d < MinScanInterval || d > MaxScanInterval {
			return "", fmt.Errorf("%w: scan_interval must be milliseconds between %d and %d",
				common.ErrInvalidConfig, MinScanInterval.Milliseconds(), MaxScanInterval.Milliseconds())
		}
		return strconv.Itoa(n), nil
	case "scan_cooldown":
		f, err := strconv.ParseFloat(value, 64)
		d := time.Duration(f * float64(time.Second))
		if err != nil || d < MinScanCooldown || d > MaxScanCooldown {
			return "", fmt.Errorf("%w: scan_cooldown must be seconds between %.1f and %.1f",
				common.ErrInvalidConfig, MinScanCooldown.Seconds(), MaxScanCooldown.Seconds())
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return "", fmt.Errorf("%w: unknown setting %q", common.ErrInvalidConfig, name)
}
