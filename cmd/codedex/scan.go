package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/NYTEMODEONLY/codedexpro/internal/camera"
	"github.com/NYTEMODEONLY/codedexpro/internal/cli"
	"github.com/NYTEMODEONLY/codedexpro/internal/common"
	"github.com/NYTEMODEONLY/codedexpro/internal/config"
	"github.com/NYTEMODEONLY/codedexpro/internal/qr"
	"github.com/NYTEMODEONLY/codedexpro/internal/scanner"
	"github.com/NYTEMODEONLY/codedexpro/internal/tui"
	"github.com/NYTEMODEONLY/codedexpro/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// logFileName is written next to the journal while the TUI owns the terminal.
const logFileName = "codedex.log"

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan codes with the webcam",
		Long: `Open the scanner UI. Point the camera at a code card and the code is
picked up automatically; press space to scan on demand or 'a' to type a
code in. Collected codes can be copied in blocks of ten or exported.`,
		Example: `  # Use the second camera and start scanning straight away
  codedex scan --device 1

  # Scan QR codes shown on screen
  codedex scan --source screen

  # Replay a folder of photos as if it were a camera
  codedex scan --source replay --replay ./photos`,
		RunE: runScan,
	}

	cmd.Flags().String("source", "", "frame source: webcam, screen or replay")
	cmd.Flags().Int("device", 0, "camera (or display) index")
	cmd.Flags().String("replay", "", "image file, directory or glob for the replay source")
	cmd.Flags().Bool("no-auto", false, "disable automatic detection; scan with space only")
	cmd.Flags().Bool("capture-loop", false, "grab frames on a background loop")
	cmd.Flags().Bool("no-start", false, "do not open the camera until 's' is pressed")
	cmd.Flags().String("export-dir", "", "directory suggested when exporting")

	_ = viper.BindPFlag(config.KeyCameraSource, cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag(config.KeyCameraIndex, cmd.Flags().Lookup("device"))
	_ = viper.BindPFlag(config.KeyReplayPath, cmd.Flags().Lookup("replay"))
	_ = viper.BindPFlag(config.KeyCaptureLoop, cmd.Flags().Lookup("capture-loop"))

	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	if noAuto, _ := cmd.Flags().GetBool("no-auto"); noAuto {
		viper.Set(config.KeyAutoDetect, false)
	}
	noStart, _ := cmd.Flags().GetBool("no-start")
	exportDir, _ := cmd.Flags().GetString("export-dir")

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	closeLog, err := redirectLogs(settings)
	if err != nil {
		return err
	}
	defer closeLog()

	handler := cli.NewInterruptHandler(os.Stdout)
	ctx := handler.HandleInterrupts(cmd.Context(), settings.JournalPath)

	journal, err := initJournal(ctx, settings.JournalPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := journal.Close(); closeErr != nil {
			slog.Warn("Failed to close journal", "error", closeErr)
		}
	}()

	cam, err := camera.New(settings)
	if err != nil {
		return err
	}

	session := scanner.NewSession(cam, qr.NewDetector(), settings, scanner.WithJournal(journal))
	slog.Info("Starting scan session", "session", session.ID(), "source", settings.Camera.Source,
		"device", settings.Camera.Index)

	app, err := tui.New(ctx, session,
		tui.WithTheme(themes.GetTheme(settings.Theme)),
		tui.WithDefaultFormat(settings.DefaultFormat),
		tui.WithJournalPath(settings.JournalPath),
		tui.WithExportDir(exportDir),
		tui.WithAutoStart(!noStart),
	)
	if err != nil {
		return err
	}

	if config.Watch(viper.GetViper(), app.Reload) {
		slog.Info("Watching configuration file", "file", viper.ConfigFileUsed())
	}

	if err := app.Run(); err != nil {
		return err
	}
	if handler.WasInterrupted() {
		return nil
	}

	n := session.Store().Count()
	if n == 0 {
		fmt.Println(cli.FormatInfo("No codes collected this session"))
		return nil
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Collected %d codes this session", n)))
	fmt.Println(cli.FormatInfo("Review them with: codedex history list --session " + session.ID()))
	return nil
}

// redirectLogs sends log output to a file so it does not tear the TUI.
func redirectLogs(settings config.Settings) (func(), error) {
	dir := config.DataDir(settings.JournalPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	path := filepath.Join(dir, logFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := common.ParseLevel(settings.Logging.Level)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := common.SetupLoggerTo(f, level, settings.Logging.Format); err != nil {
		_ = f.Close()
		return nil, err
	}

	return func() {
		_ = common.SetupLogger(level, settings.Logging.Format)
		_ = f.Close()
	}, nil
}
