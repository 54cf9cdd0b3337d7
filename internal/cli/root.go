// Package cli wires the analysis core into a command-line
// orchestration shell: discovery, pipeline, index, cache, and query
// output. The core packages never depend on anything here.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	rootFlag  string
	quietFlag bool
)

// rootCmd represents the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "askrepo",
	Short: "askrepo - analyze a source tree and ask questions about it",
	Long: `askrepo analyzes a source-code tree across many languages, extracts
structural entities and complexity metrics, builds a deterministic
TF-IDF index over code and comments, and answers natural-language
questions with ranked, attributed passages.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlag, "root", "r", ".", "root of the source tree to analyze")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress output")
}
