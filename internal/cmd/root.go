package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dsmctl",
	Short: "Design Structure Matrix analyzer for git repositories",
	Long: `dsmctl clones a repository, resolves its intra-repository imports across
js/ts, python, java, csharp, go, and c/c++ sources, and emits a weighted
dependency matrix with cyclomatic complexity per file and an ordered
directory hierarchy for display.`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
