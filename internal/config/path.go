// Package config loads, validates and persists scanner settings.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ and $VAR references in path.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return os.ExpandEnv(path)
}

// DataDir is the directory holding the journal and the scan log.
func DataDir(journalPath string) string {
	if journalPath == "" || journalPath == ":memory:" {
		return "."
	}
	return filepath.Dir(journalPath)
}
