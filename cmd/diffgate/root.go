package main

import "github.com/spf13/cobra"

// newRootCmd creates the root command and registers all sub commands
func newRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "diffgate",
		Short: "Semantic size gate for Rust diffs",
		Long: "diffgate maps unified diff lines onto Rust code units, tells production code\n" +
			"apart from tests, benchmarks and examples, and scores the production changes against limits.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newUnitsCmd())
	return rootCmd
}
