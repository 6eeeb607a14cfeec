package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for taskseries.
// Without a subcommand it runs the report with the default supplier.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskseries",
		Short: "Map task names to model series and report them",
		Long: `taskseries classifies task names into model series and prints the mapping,
one line per task:

  Task: "<task>" -> Series: "<series>"

Without a subcommand the mapping comes from the tasks table of the
configuration file, else from its inputs, else from tasks.txt in the
current directory. Use 'taskseries report' to name input files.`,
		Args:          cobra.NoArgs,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runReportCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .taskseries in current or home directory)")

	addReportFlags(cmd)

	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewGroupCmd())
	cmd.AddCommand(NewTablesCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
