package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/askrepo/askrepo/internal/storage"
)

var docsFlag []string

// analyzeCmd runs the full analysis pipeline and prints the project
// model summary.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a source tree and print its structural summary",
	Long: `Analyze extracts entities, imports, and complexity metrics from every
supported file under the root, detects architecture patterns, and
builds the retrieval index.

Examples:
  # Analyze the current directory
  askrepo analyze

  # Analyze another tree, including generated documentation
  askrepo analyze --root ../service --docs docs/overview.md
`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringSliceVar(&docsFlag, "docs", nil, "generated documentation files to index alongside the code")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, files, err := loadConfigAndFiles(rootFlag)
	if err != nil {
		return err
	}

	extraDocs, err := readExtraDocs(docsFlag)
	if err != nil {
		return err
	}

	model, err := newPipeline(cfg, quietFlag).Analyze(cmd.Context(), files, extraDocs)
	if err != nil {
		return err
	}

	store := openCache(cfg, rootFlag)
	if store != nil {
		saveModel(store, storage.Fingerprint(files), model)
		store.Close()
	}

	out := cmd.OutOrStdout()
	s := model.Summary
	fmt.Fprintf(out, "Files analyzed:  %d\n", s.TotalFiles)
	fmt.Fprintf(out, "Functions:       %d\n", s.TotalFunctions)
	fmt.Fprintf(out, "Classes:         %d\n", s.TotalClasses)
	fmt.Fprintf(out, "Imports:         %d\n", s.TotalImports)

	langs := make([]string, 0, len(s.Languages))
	for l := range s.Languages {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	fmt.Fprintln(out, "Languages:")
	for _, l := range langs {
		name := l
		if name == "" {
			name = "(unsupported)"
		}
		fmt.Fprintf(out, "  %-14s %d files\n", name, s.Languages[l])
	}

	if len(model.Patterns) > 0 {
		fmt.Fprintln(out, "Architecture:")
		for _, p := range model.Patterns {
			fmt.Fprintf(out, "  %-14s %.0f%% (%s)\n", p.Label, p.Confidence*100, p.Evidence[0])
		}
	}
	if len(model.EntryPoints) > 0 {
		fmt.Fprintf(out, "Entry points:    %v\n", model.EntryPoints)
	}
	fmt.Fprintf(out, "Test coverage:   %s (%d test files / %d regular)\n",
		model.Coverage.Level, model.Coverage.TestFiles, model.Coverage.RegularFiles)

	for _, rec := range model.Recommendations {
		fmt.Fprintf(out, "Note: %s\n", rec)
	}
	if len(model.Diagnostics) > 0 {
		fmt.Fprintf(out, "Diagnostics:     %d\n", len(model.Diagnostics))
	}
	return nil
}
