package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/camera"
	"github.com/NYTEMODEONLY/codedexpro/internal/cli"
	"github.com/NYTEMODEONLY/codedexpro/internal/codes"
	"github.com/NYTEMODEONLY/codedexpro/internal/common"
	"github.com/NYTEMODEONLY/codedexpro/internal/model"
	"github.com/NYTEMODEONLY/codedexpro/internal/qr"
	"github.com/NYTEMODEONLY/codedexpro/internal/service"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func decodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <images...>",
		Short: "Scan QR codes in still images",
		Long: `Decode the QR codes in photos or screenshots of code cards. Arguments may
be files, directories or glob patterns. Every code found is collected once
and printed in the chosen layout.`,
		Example: `  # Scan a folder of photos and export the result
  codedex decode ~/Pictures/codes --out pokemon_tcg_codes.md

  # Scan a few screenshots and record them in the history
  codedex decode 'shot-*.png' --journal`,
		Args: cobra.MinimumNArgs(1),
		RunE: runDecode,
	}

	cmd.Flags().StringP("format", "f", "", "layout: numbered, raw, space or comma (default from config)")
	cmd.Flags().StringP("out", "o", "", "also export the codes to this file")
	cmd.Flags().String("container", "", "txt or md (default from the output extension)")
	cmd.Flags().Bool("journal", false, "record decoded codes in the scan history")
	cmd.Flags().Bool("no-preprocess", false, "skip the threshold retry for hard images")
	cmd.Flags().Bool("quiet", false, "hide the progress bar")

	return cmd
}

func runDecode(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := resolveFormat(cmd)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("out")
	useJournal, _ := cmd.Flags().GetBool("journal")
	noPreprocess, _ := cmd.Flags().GetBool("no-preprocess")
	quiet, _ := cmd.Flags().GetBool("quiet")

	var files []string
	for _, arg := range args {
		found, listErr := camera.ListImages(arg)
		if listErr != nil {
			return listErr
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return common.NewUserError("No images to decode", common.ErrNoCodes)
	}

	var opts []qr.Option
	if noPreprocess {
		opts = append(opts, qr.WithoutPreprocessing())
	}
	detector := qr.NewDetector(opts...)

	var journal service.Journal
	if useJournal {
		j, jErr := initJournal(ctx, journalPath())
		if jErr != nil {
			return jErr
		}
		defer func() {
			if closeErr := j.Close(); closeErr != nil {
				slog.Warn("Failed to close journal", "error", closeErr)
			}
		}()
		journal = j
	}

	progress := io.Discard
	if !quiet {
		progress = cmd.ErrOrStderr()
	}
	bar := newDecodeBar(progress, len(files))

	store := codes.NewStore()
	sessionID := uuid.NewString()
	failed := 0
	for _, file := range files {
		found, decodeErr := decodeFile(ctx, detector, file)
		if decodeErr != nil {
			failed++
			slog.Warn("Failed to decode image", "file", file, "error", decodeErr)
		}
		for _, code := range found {
			accepted := store.Accept(code)
			if journal != nil {
				recordDecoded(ctx, journal, sessionID, code, accepted)
			}
		}
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	all := store.All()
	summary := fmt.Sprintf("Found %d codes in %d images", len(all), len(files))
	if failed > 0 {
		summary += fmt.Sprintf(" (%d unreadable)", failed)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatInfo(summary))

	if len(all) == 0 {
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSuffix(codes.RenderClipboard(codes.Select(all, codes.All), f), "\n"))

	if outPath != "" {
		return writeExport(cmd, cmd.ErrOrStderr(), outPath, all, f)
	}
	return nil
}

func decodeFile(ctx context.Context, detector service.Detector, path string) ([]string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return detector.Detect(ctx, img)
}

func recordDecoded(ctx context.Context, journal service.Journal, sessionID, code string, accepted bool) {
	event := &model.ScanEvent{
		SessionID: sessionID,
		Code:      code,
		Source:    model.SourceManual,
		Accepted:  accepted,
		ScannedAt: time.Now(),
	}
	if err := journal.Record(ctx, event); err != nil {
		common.LogError(err, "Failed to journal scan", common.Fields{"code": code})
	}
}

func newDecodeBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Decoding images...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[yellow]=[reset]",
			SaucerHead:    "[yellow]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
