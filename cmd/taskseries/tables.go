package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nao1215/taskseries/internal/config"
	"github.com/nao1215/taskseries/internal/logtable"
	"github.com/nao1215/taskseries/internal/supplier"
	"github.com/nao1215/taskseries/internal/textenc"
	"github.com/spf13/cobra"
)

// Default input and output files per record kind.
const (
	defaultTaskLogInput     = "rawLog.txt"
	defaultTaskLogOutput    = "log_formated_result.txt"
	defaultModelStatsInput  = "剪辑模型统计结果.csv"
	defaultModelStatsOutput = "剪辑模型统计结果_formatted.txt"
)

// NewTablesCmd creates the tables command.
func NewTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Format task logs or model statistics as tables",
		Long: `Tables renders every record of a raw task log or a model statistics export
as a fixed-width table with its areas sorted by count.

Task logs (--kind task) end with the per-city totals over all records,
model statistics (--kind model) with the total countNum. Lines that do not
parse are reported as warnings and skipped.

Examples:
  # rawLog.txt -> log_formated_result.txt
  taskseries tables

  # 剪辑模型统计结果.csv -> 剪辑模型统计结果_formatted.txt
  taskseries tables --kind model

  taskseries tables -k task -i today.log -o today.txt`,
		Args: cobra.NoArgs,
		RunE: runTablesCmd,
	}

	cmd.Flags().StringP("kind", "k", string(logtable.KindTask),
		"Record kind: task or model")
	cmd.Flags().StringP("input", "i", "",
		"Input file (default: "+defaultTaskLogInput+" or "+defaultModelStatsInput+")")
	cmd.Flags().StringP("output", "o", "",
		"Output file (default: "+defaultTaskLogOutput+" or "+defaultModelStatsOutput+")")
	cmd.Flags().StringP("encoding", "e", config.DefaultEncoding,
		"Text encoding of the input file")

	return cmd
}

// tablesDefaults returns the default input and output files of kind.
func tablesDefaults(kind logtable.Kind) (input, output string) {
	if kind == logtable.KindModel {
		return defaultModelStatsInput, defaultModelStatsOutput
	}
	return defaultTaskLogInput, defaultTaskLogOutput
}

// runTablesCmd executes the tables command.
func runTablesCmd(cmd *cobra.Command, _ []string) (err error) {
	kindFlag, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	kind, err := logtable.ParseKind(kindFlag)
	if err != nil {
		return err
	}

	inputFile, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}
	outputFile, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	defaultInput, defaultOutput := tablesDefaults(kind)
	if inputFile == "" {
		inputFile = defaultInput
	}
	if outputFile == "" {
		outputFile = defaultOutput
	}

	encoding, err := cmd.Flags().GetString("encoding")
	if err != nil {
		return err
	}
	if err := textenc.Validate(encoding); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	in, err := os.Open(inputFile) //nolint:gosec // Reading user-provided paths is intentional
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", supplier.ErrSourceNotFound, inputFile)
		}
		return fmt.Errorf("failed to open %s: %w", inputFile, err)
	}
	defer in.Close()

	decoded, err := textenc.NewReader(in, encoding)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputFile, err)
	}

	output, closeOutput, err := openOutput(outputFile, nil)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeOutput())
	}()

	summary, err := logtable.NewFormatter(logger).Format(kind, decoded, output)
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", inputFile, err)
	}

	logger.Debug("formatted records", "records", summary.Records, "skipped", summary.Skipped)
	fmt.Fprintf(cmd.OutOrStdout(), "Formatted %d records from %s into %s\n", summary.Records, inputFile, outputFile)
	if summary.Skipped > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d lines that could not be parsed\n", summary.Skipped)
	}
	return nil
}
