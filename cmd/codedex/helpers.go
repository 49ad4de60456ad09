package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/NYTEMODEONLY/codedexpro/internal/cli"
	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/NYTEMODEONLY/codedexpro/internal/config"
	"github.com/NYTEMODEONLY/codedexpro/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadSettings validates the merged flag, env and file configuration.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// journalPath returns the configured journal location, expanded.
func journalPath() string {
	path := viper.GetString(config.KeyJournalPath)
	if path == "" {
		path = config.DefaultJournalPath
	}
	return config.ExpandPath(path)
}

// initJournal opens the scan journal and brings its schema up to date.
func initJournal(ctx context.Context, path string) (*storage.SQLiteJournal, error) {
	journal, err := storage.NewSQLiteJournal(path)
	if err != nil {
		return nil, err
	}

	if err := journal.Migrate(ctx); err != nil {
		_ = journal.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return journal, nil
}

// readCodeInputs reads codes from the named files, or from stdin when no
// file is given or the name is "-".
func readCodeInputs(ctx context.Context, cmd *cobra.Command, files []string) ([]string, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}

	var all []string
	for _, name := range files {
		var r io.Reader
		if name == "-" {
			r = cmd.InOrStdin()
		} else {
			f, err := os.Open(name)
			if err != nil {
				return nil, fmt.Errorf("failed to open %s: %w", name, err)
			}
			defer f.Close()
			r = f
		}

		got, err := cli.ReadCodes(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		all = append(all, got...)
	}
	return all, nil
}

// collect feeds codes through a fresh store, dropping repeats.
func collect(all []string) *codes.Store {
	store := codes.NewStore()
	store.AcceptAll(all)
	return store
}

// resolveFormat picks the --format flag, then the configured default,
// then the numbered layout.
func resolveFormat(cmd *cobra.Command) (codes.Format, error) {
	value, _ := cmd.Flags().GetString("format")
	if value == "" {
		value = viper.GetString(config.KeyDefaultFormat)
	}
	if value == "" {
		return codes.FormatNumbered, nil
	}
	return codes.ParseFormat(value)
}

// resolveContainer picks the --container flag or derives it from path.
func resolveContainer(cmd *cobra.Command, path string) (codes.Container, error) {
	value, _ := cmd.Flags().GetString("container")
	if value == "" {
		if filepath.Ext(path) == "" {
			return codes.ContainerText, nil
		}
		value = path
	}
	return codes.ParseContainer(value)
}

// writeExport exports all to path and reports the outcome on w.
func writeExport(cmd *cobra.Command, w io.Writer, path string, all []string, f codes.Format) error {
	c, err := resolveContainer(cmd, path)
	if err != nil {
		return err
	}

	result, err := codes.ExportFile(path, c, all, f)
	if err != nil {
		return err
	}
	if !result.Written() {
		fmt.Fprintln(w, cli.FormatWarning(result.Message))
		return nil
	}
	fmt.Fprintln(w, cli.FormatSuccess(result.Message))
	return nil
}
