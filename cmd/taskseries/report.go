package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/taskseries/internal/config"
	"github.com/nao1215/taskseries/internal/database"
	"github.com/nao1215/taskseries/internal/report"
	"github.com/nao1215/taskseries/internal/supplier"
	"github.com/spf13/cobra"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [files...]",
		Short: "Classify task lists and print the task to series mapping",
		Long: `Report reads task lists (one task name per line), classifies every task
into its model series and prints one line per task:

  Task: "<task>" -> Series: "<series>"

Without files the configuration file decides: its tasks table is printed
as is, else its inputs are read, else tasks.txt. Use "-" to read stdin.

Examples:
  # Report a task list
  taskseries report tasks.txt

  # Merge several lists, sorted by task name
  taskseries report --sort a.txt b.txt

  # Read a GBK encoded export and write JSON to a file
  taskseries report -e gbk --json -o out.json export.txt

  # Save a snapshot, then report it again later without the input
  taskseries report --save tasks.txt
  taskseries report --from-db tasks.txt

Configuration file (.taskseries) example:
  inputs: [tasks.txt]
  encoding: auto
  rules:
    - pattern: 'LXd\d+'
    - pattern: 'bc_'
      series: bc
  inheritDefaults: true`,
		Args: cobra.ArbitraryArgs,
		RunE: runReportCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// addReportFlags registers the report flags on cmd.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("sort", "s", false,
		"Print entries in task name order instead of input order")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the grouped Markdown report (mutually exclusive with --json)")
	cmd.Flags().Bool("chart", false,
		"Add a pie chart of tasks per series to the Markdown report")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the specified file (creates directories if needed)")
	cmd.Flags().StringP("encoding", "e", config.DefaultEncoding,
		"Text encoding of the inputs (utf-8, auto, gbk, gb18030, euc-kr, big5)")
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of input files read concurrently")
	cmd.Flags().Bool("save", false,
		"Save the reported mapping as a snapshot")
	cmd.Flags().Bool("from-db", false,
		"Report the latest saved snapshot of the inputs instead of reading them")
	cmd.Flags().Int64("snapshot-id", 0,
		"Report the saved snapshot with this ID (implies --from-db)")
	cmd.Flags().String("db-dir", "",
		"Snapshot database directory (default: XDG data directory)")
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildReportConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	return runReport(ctx, cmd, cfg, logger)
}

// buildReportConfig creates a Config from flags, arguments and the config file.
// Flags set on the command line take precedence over the config file.
func buildReportConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.ConfigFilePath = getConfigFlag(cmd)

	flags := cmd.Flags()
	var err error

	if cfg.Sort, err = flags.GetBool("sort"); err != nil {
		return nil, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.Chart, err = flags.GetBool("chart"); err != nil {
		return nil, err
	}
	if cfg.OutputFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Encoding, err = flags.GetString("encoding"); err != nil {
		return nil, err
	}
	if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
		return nil, err
	}
	if cfg.SaveToDB, err = flags.GetBool("save"); err != nil {
		return nil, err
	}
	if cfg.FromDB, err = flags.GetBool("from-db"); err != nil {
		return nil, err
	}
	if cfg.SnapshotID, err = flags.GetInt64("snapshot-id"); err != nil {
		return nil, err
	}
	if cfg.SnapshotID > 0 {
		cfg.FromDB = true
	}

	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.File, err = config.Load(cfg.ConfigFilePath)
	if err != nil {
		return nil, err
	}

	cfg.Inputs = args
	if len(cfg.Inputs) == 0 && !cfg.File.HasTasks() {
		cfg.Inputs = cfg.File.Inputs
	}
	if !flags.Changed("encoding") && cfg.File.Encoding != "" {
		cfg.Encoding = cfg.File.Encoding
	}
	if !flags.Changed("sort") && cfg.File.Sort {
		cfg.Sort = true
	}

	return cfg, nil
}

// runReport selects the supplier and writer, runs the Reporter and saves
// the snapshot when requested.
func runReport(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (err error) {
	var db *database.SnapshotDB
	if cfg.FromDB || cfg.SaveToDB {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
	}

	sup, err := newSupplier(cmd, cfg, db, logger)
	if err != nil {
		return err
	}

	output, closeOutput, err := openOutput(cfg.OutputFile, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeOutput())
	}()

	reporter := report.NewReporter(sup,
		report.WithWriter(newReportWriter(cfg, output)),
		report.WithSorted(cfg.Sort),
		report.WithLogger(logger),
	)

	m, err := reporter.Report(ctx)
	if err != nil {
		return err
	}

	if !cfg.SaveToDB {
		return nil
	}

	id, created, err := db.SaveSnapshot(ctx, cfg.Source(), m)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	if created {
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved snapshot %d for %s (%d tasks)\n", id, cfg.Source(), m.Len())
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "Mapping unchanged since snapshot %d for %s\n", id, cfg.Source())
	}
	return nil
}

// newSupplier picks the mapping source: the snapshot store with --from-db,
// the config file's tasks table, or the task-list files.
func newSupplier(cmd *cobra.Command, cfg *config.Config, db *database.SnapshotDB, logger *slog.Logger) (supplier.Supplier, error) {
	if cfg.FromDB {
		logger.Debug("reading snapshot", "source", cfg.Source(), "id", cfg.SnapshotID)
		return supplier.NewStore(db, cfg.Source(), cfg.SnapshotID), nil
	}

	if cfg.UsesStaticTasks() {
		logger.Debug("using tasks table from config file", "tasks", len(cfg.File.Tasks))
		return cfg.File.StaticSupplier(), nil
	}

	classifier, err := cfg.File.Classifier()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return supplier.NewFile(cfg.InputPaths(),
		supplier.WithClassifier(classifier),
		supplier.WithEncoding(cfg.Encoding),
		supplier.WithConcurrency(cfg.Concurrency),
		supplier.WithStdin(cmd.InOrStdin()),
		supplier.WithLogger(logger),
	), nil
}

// newReportWriter returns the writer for the requested output format.
func newReportWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output,
			report.WithChart(cfg.Chart),
			report.WithSummary(true),
		)
	default:
		return report.NewLineWriter(output)
	}
}
