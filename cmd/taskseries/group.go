package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/nao1215/taskseries/internal/config"
	"github.com/nao1215/taskseries/internal/model"
	"github.com/nao1215/taskseries/internal/report"
	"github.com/nao1215/taskseries/internal/supplier"
	"github.com/spf13/cobra"
)

// NewGroupCmd creates the group command.
func NewGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group <input-file> <output-file>",
		Short: "Group task names by model series into a Markdown file",
		Long: `Group reads a task list, classifies every task and writes a Markdown file
with one section per series:

  # Model Series Groups

  ## Series: jja20-3
  - ` + "`lt_jja20-3_demo`" + `

Series are sorted by name with Uncategorized last; tasks are sorted by name.
A task listed twice is listed twice. An input without tasks writes no file.

Examples:
  taskseries group tasks.txt groups.md
  taskseries group --chart -e auto export.txt groups.md`,
		Args: cobra.ExactArgs(2),
		RunE: runGroupCmd,
	}

	cmd.Flags().StringP("encoding", "e", config.DefaultEncoding,
		"Text encoding of the input file")
	cmd.Flags().Bool("chart", false,
		"Add a pie chart of tasks per series")

	return cmd
}

// runGroupCmd executes the group command.
func runGroupCmd(cmd *cobra.Command, args []string) (err error) {
	inputFile, outputFile := args[0], args[1]
	if outputFile == "" {
		return errors.New("output file must not be empty")
	}

	encoding, err := cmd.Flags().GetString("encoding")
	if err != nil {
		return err
	}
	chart, err := cmd.Flags().GetBool("chart")
	if err != nil {
		return err
	}

	cf, err := loadConfigFile(cmd)
	if err != nil {
		return err
	}
	classifier, err := cf.Classifier()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd)

	ctx, cancel := signalContext(cmd)
	defer cancel()

	entries, err := supplier.NewFile([]string{inputFile},
		supplier.WithClassifier(classifier),
		supplier.WithEncoding(encoding),
		supplier.WithStdin(cmd.InOrStdin()),
		supplier.WithLogger(logger),
	).Entries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		logger.Debug("no tasks found", "input", inputFile)
		fmt.Fprintf(cmd.ErrOrStderr(), "No tasks found in %s; %s was not written\n", inputFile, outputFile)
		return nil
	}

	output, closeOutput, err := openOutput(outputFile, nil)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeOutput())
	}()

	groups := model.GroupEntries(entries)
	if _, err := report.NewMarkdownWriter(output, report.WithChart(chart)).WriteGroups(groups); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}

	absPath, err := filepath.Abs(outputFile)
	if err != nil {
		absPath = outputFile
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Grouped %d tasks from %s into %s\n", len(entries), inputFile, absPath)
	return nil
}
