package main

import (
	"fmt"
	"strings"

	"github.com/NYTEMODEONLY/codedexpro/internal/cli"
	"github.com/NYTEMODEONLY/codedexpro/internal/config"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settingsView is the YAML shape printed by config show. It mirrors the
// config file layout so the output can be pasted back into one.
type settingsView struct {
	Camera struct {
		Source     string `yaml:"source"`
		ReplayPath string `yaml:"replay_path,omitempty"`
		Index      int    `yaml:"index"`
	} `yaml:"camera"`
	Scan struct {
		AutoDetect      bool    `yaml:"auto_detect"`
		IntervalMS      int64   `yaml:"interval_ms"`
		CooldownSeconds float64 `yaml:"cooldown_seconds"`
		CaptureLoop     bool    `yaml:"capture_loop"`
	} `yaml:"scan"`
	UI struct {
		Theme string `yaml:"theme"`
	} `yaml:"ui"`
	Journal struct {
		Path string `yaml:"path"`
	} `yaml:"journal"`
	Format struct {
		Default string `yaml:"default"`
	} `yaml:"format"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Debug bool `yaml:"debug"`
}

func newSettingsView(s config.Settings) settingsView {
	var v settingsView
	v.Camera.Source = s.Camera.Source
	v.Camera.ReplayPath = s.Camera.ReplayPath
	v.Camera.Index = s.Camera.Index
	v.Scan.AutoDetect = s.Scan.AutoDetect
	v.Scan.IntervalMS = s.Scan.Interval.Milliseconds()
	v.Scan.CooldownSeconds = s.Scan.Cooldown.Seconds()
	v.Scan.CaptureLoop = s.Scan.CaptureLoop
	v.UI.Theme = s.Theme
	v.Journal.Path = s.JournalPath
	v.Format.Default = string(s.DefaultFormat)
	v.Logging.Level = s.Logging.Level
	v.Logging.Format = s.Logging.Format
	v.Debug = s.Debug
	return v
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}

	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configSetCmd())

	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(newSettingsView(settings))
			if err != nil {
				return fmt.Errorf("failed to encode settings: %w", err)
			}

			if used := viper.ConfigFileUsed(); used != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "# config file: %s\n", used)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func configSetCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "set <setting> <value>",
		Short: "Save a setting to the .env file",
		Long: fmt.Sprintf(`Validate a setting and save it to the .env file read at startup.

Settings: %s`, strings.Join(config.SettingNames(), ", ")),
		Example: `  codedex config set scan_cooldown 3.5
  codedex config set auto_detect false`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: config.SettingNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SetEnv(envFile, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Settings updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file to update")

	return cmd
}
