package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/taskseries/internal/config"
	"github.com/nao1215/taskseries/internal/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
// This command lists the snapshots saved with 'taskseries report --save'.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [source]",
		Short: "List saved snapshots",
		Long: `History lists the mapping snapshots saved with 'taskseries report --save',
newest first. A source is the comma separated list of input files of the
saved run (for example "tasks.txt" or "a.txt,b.txt").

Examples:
  # All snapshots
  taskseries history

  # Snapshots of one source
  taskseries history tasks.txt

  # Sources with saved snapshots
  taskseries history --sources`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("sources", "L", false,
		"List the sources that have saved snapshots")
	cmd.Flags().String("db-dir", "",
		"Snapshot database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listSources, err := cmd.Flags().GetBool("sources")
	if err != nil {
		return err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, cancel := signalContext(cmd)
	defer cancel()

	if listSources {
		return printSources(ctx, cmd.OutOrStdout(), db)
	}

	var source string
	if len(args) > 0 {
		source = args[0]
	}
	return printHistory(ctx, cmd.OutOrStdout(), db, source)
}

// printSources prints every source that has snapshots.
func printSources(ctx context.Context, w io.Writer, db *database.SnapshotDB) error {
	sources, err := db.ListSources(ctx)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(w, "No snapshots saved yet.")
		fmt.Fprintln(w, "\nUse 'taskseries report --save' to save one.")
		return nil
	}

	fmt.Fprintf(w, "Sources (%d):\n\n", len(sources))
	for _, source := range sources {
		fmt.Fprintf(w, "  %s\n", source)
	}
	return nil
}

// printHistory prints the snapshots of source, or of all sources when empty.
func printHistory(ctx context.Context, w io.Writer, db *database.SnapshotDB, source string) error {
	snapshots, err := db.ListSnapshots(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to get snapshot history: %w", err)
	}

	if len(snapshots) == 0 {
		if source == "" {
			fmt.Fprintln(w, "No snapshots saved yet.")
		} else {
			fmt.Fprintf(w, "No snapshots found for %s\n", source)
		}
		fmt.Fprintln(w, "\nUse 'taskseries report --save' to save one.")
		return nil
	}

	if source == "" {
		fmt.Fprintf(w, "Snapshots (%d):\n\n", len(snapshots))
	} else {
		fmt.Fprintf(w, "Snapshots for %s (%d):\n\n", source, len(snapshots))
	}
	fmt.Fprintf(w, "  %-6s  %-20s  %-7s  %-12s  %s\n", "ID", "Date", "Tasks", "Digest", "Source")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 70))

	for _, meta := range snapshots {
		fmt.Fprintf(w, "  %-6d  %-20s  %-7d  %-12s  %s\n",
			meta.ID,
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.EntryCount,
			shortDigest(meta.Digest),
			meta.Source,
		)
	}

	fmt.Fprintln(w, "\nUse 'taskseries report --snapshot-id <id>' to print a snapshot.")
	return nil
}

// shortDigest returns the first 12 hex digits of a digest.
func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
