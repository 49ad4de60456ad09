package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/NYTEMODEONLY/codedexpro/internal/cli"
	"github.com/NYTEMODEONLY/codedexpro/internal/model"
	"github.com/NYTEMODEONLY/codedexpro/internal/service"
	"github.com/NYTEMODEONLY/codedexpro/internal/storage"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse the scan journal",
		Long: `Every code the scanner decodes is journaled with its session, source and
time, including repeats that were not added to the list.`,
		Example: `  # Last 20 accepted codes
  codedex history list --accepted --limit 20

  # Sessions, newest first
  codedex history sessions

  # Copy the journal somewhere safe
  codedex history backup ~/codedex-backup.db`,
	}

	cmd.AddCommand(historyListCmd())
	cmd.AddCommand(historySessionsCmd())
	cmd.AddCommand(historyBackupCmd())

	return cmd
}

// withJournal opens the configured journal for the duration of fn.
func withJournal(cmd *cobra.Command, fn func(j *storage.SQLiteJournal) error) error {
	journal, err := initJournal(cmd.Context(), journalPath())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := journal.Close(); closeErr != nil {
			slog.Warn("Failed to close journal", "error", closeErr)
		}
	}()
	return fn(journal)
}

func historyListCmd() *cobra.Command {
	var filter service.EventFilter
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled scans, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *storage.SQLiteJournal) error {
				events, err := j.Events(cmd.Context(), filter)
				if err != nil {
					return fmt.Errorf("failed to list scans: %w", err)
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), events)
				}
				if len(events) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("No scans found."))
					return nil
				}
				printEvents(cmd.OutOrStdout(), events)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filter.SessionID, "session", "s", "", "only scans from this session")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "n", 50, "maximum number of scans (0 for all)")
	cmd.Flags().BoolVar(&filter.AcceptedOnly, "accepted", false, "only codes that were added to the list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func historySessionsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List scan sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withJournal(cmd, func(j *storage.SQLiteJournal) error {
				sessions, err := j.Sessions(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list sessions: %w", err)
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), sessions)
				}
				if len(sessions) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), cli.SubtitleStyle.Render("No sessions found."))
					return nil
				}
				printSessions(cmd.OutOrStdout(), sessions)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func historyBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <dest>",
		Short: "Write a copy of the journal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withJournal(cmd, func(j *storage.SQLiteJournal) error {
				if err := j.Backup(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Journal backed up to %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon), cli.InfoStyle.Render(args[0]))
				return nil
			})
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func tableHeader(w io.Writer, cols ...string) {
	rendered := make([]string, len(cols))
	for i, c := range cols {
		rendered[i] = cli.TableHeaderStyle.Render(c)
	}
	fmt.Fprintln(w, strings.Join(rendered, "\t"))
}

func printEvents(out io.Writer, events []model.ScanEvent) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	tableHeader(w, "TIME", "CODE", "SOURCE", "STATUS", "SESSION")

	for _, e := range events {
		status := cli.SuccessStyle.Render("added")
		if !e.Accepted {
			status = cli.SubtleStyle.Render("repeat")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ScannedAt.Local().Format(time.DateTime),
			e.Code,
			e.Source,
			status,
			cli.SubtleStyle.Render(shortID(e.SessionID)),
		)
	}

	_ = w.Flush()
}

func printSessions(out io.Writer, sessions []model.SessionSummary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	tableHeader(w, "SESSION", "STARTED", "DURATION", "SCANS", "ADDED")

	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
			cli.InfoStyle.Render(s.ID),
			s.FirstScan.Local().Format(time.DateTime),
			s.LastScan.Sub(s.FirstScan).Round(time.Second),
			s.Events,
			s.Accepted,
		)
	}

	_ = w.Flush()
}

// shortID trims a session UUID to its first group for table display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
