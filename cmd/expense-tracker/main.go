package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "1.0.0"

func main() {
	if err := loadDotenv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDotenv exports the variables in path. A missing file is not an error.
func loadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "expense-tracker",
		Short: "Record, filter and summarize personal expenses",
		Long: `Expense Tracker is a tool for recording dated expenses in a JSON file,
filtering them by date range, category or description, and summarizing totals per category.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Expense Tracker v%s\n", version)
			fmt.Fprintln(cmd.OutOrStdout(), "Use --help for available commands")
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a TOML config file")
	flags.StringVar(&a.dataFile, "data-file", "", "JSON data file (overrides data_file)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (overrides log_level)")

	cmd.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newFilterCmd(a),
		newSearchCmd(a),
		newSummaryCmd(a),
		newTotalCmd(a),
		newDeleteCmd(a),
		newSeedCmd(a),
	)

	return cmd
}
