package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/askrepo/askrepo/internal/lang"
	"github.com/askrepo/askrepo/internal/search"
)

var (
	langFilterFlag string
	kindFilterFlag string
	jsonFlag       bool
)

// askCmd answers a natural-language question with ranked, attributed
// passages from the index.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the analyzed codebase",
	Long: `Ask ranks indexed chunks against the question by TF-IDF cosine
similarity and prints the top results with source attribution and a
confidence band. With --json, output is the handoff shape an external
text-generation service consumes.

Examples:
  askrepo ask "how does user login work"
  askrepo ask --lang python --kind function "where is retry handled"
  askrepo ask --json "what does the scheduler do" | my-llm-tool
`,
	Args: cobra.MinimumNArgs(0),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&langFilterFlag, "lang", "", "restrict results to one language")
	askCmd.Flags().StringVar(&kindFilterFlag, "kind", "", "restrict results to one entity kind (function, class, ...)")
	askCmd.Flags().BoolVar(&jsonFlag, "json", false, "print results as JSON context passages")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	out := cmd.OutOrStdout()

	if question == "" {
		fmt.Fprintln(out, "Try one of:")
		for _, s := range search.Suggestions("") {
			fmt.Fprintf(out, "  askrepo ask %q\n", s)
		}
		return nil
	}

	cfg, files, err := loadConfigAndFiles(rootFlag)
	if err != nil {
		return err
	}

	ix, err := buildIndex(cmd.Context(), cfg, rootFlag, files, quietFlag)
	if err != nil {
		return err
	}

	query := search.Query{
		Text:     question,
		Language: langFilterFlag,
		Kind:     lang.EntityKind(kindFilterFlag),
	}
	results, err := search.Rank(query, ix, cfg.Retrieval.TopK,
		search.Confidence(cfg.Retrieval.MinConfidence), cfg.Thresholds())
	if errors.Is(err, search.ErrNoMatch) {
		fmt.Fprintln(out, "No relevant information found in the codebase for that question.")
		for _, s := range search.Suggestions(question) {
			fmt.Fprintf(out, "  maybe: %s\n", s)
		}
		return nil
	}
	if err != nil {
		return err
	}

	if jsonFlag {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(search.Handoff(results))
	}

	for i, r := range results {
		marker := ""
		if r.Fallback {
			marker = " (best available, low confidence)"
		}
		fmt.Fprintf(out, "%d. [%s %.2f]%s %s\n", i+1, r.Confidence, r.Score, marker, r.Chunk.Provenance.String())
		fmt.Fprintln(out, indent(preview(r.Chunk.Text, 300), "   "))
	}
	return nil
}

func preview(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max] + "..."
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
