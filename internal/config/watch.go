package config

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch re-reads settings whenever the config file in use changes and
// hands valid results to onChange. Invalid edits are logged and dropped
// so the running session keeps its last good values. It reports false
// when no config file is in use.
func Watch(v *viper.Viper, onChange func(Settings)) bool {
	if v.ConfigFileUsed() == "" {
		return false
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		s, err := Load(v)
		if err != nil {
			slog.Warn("Ignoring invalid configuration change", "file", e.Name, "error", err)
			return
		}
		slog.Info("Configuration reloaded", "file", e.Name)
		onChange(s)
	})
	v.WatchConfig()
	return true
}
