package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gitamind/internal/usecase"
)

var (
	queryText    string
	queryTopK    int
	queryJSON    bool
	queryLexical bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Show the passages most relevant to a question",
	Long: `Rank passages of the source document for a question. Passages are ranked
by query-word overlap; when an embedding provider is configured the lexical
shortlist is reordered by meaning.

Examples:
  gitamind query -q "how do I find peace"
  gitamind query -q "duty" --top-k 5 --json
  gitamind query -q "duty" --lexical        # show lexical scores, no reranking`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.Flags().BoolVar(&queryLexical, "lexical", false, "lexical ranking only, with scores")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := cmd.Context()

	retrieveUC, reranked, err := buildRetriever(cfg, buildLoader(cfg, GetRootDir()), queryLexical)
	if err != nil {
		return err
	}

	topK := cfg.Retrieve.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	var results []usecase.PassageResult
	if queryLexical {
		scored, err := retrieveUC.RetrieveLexical(ctx, queryText, topK)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		for i, sp := range scored {
			results = append(results, usecase.PassageResult{Rank: i + 1, Score: sp.Score, Text: sp.Passage.Text})
		}
	} else {
		passages, err := retrieveUC.RetrieveTopPassages(ctx, queryText, topK)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		for i, p := range passages {
			results = append(results, usecase.PassageResult{Rank: i + 1, Text: p.Text})
		}
	}

	out := cmd.OutOrStdout()
	if queryJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Fprintln(out, string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No passages found.")
		return nil
	}

	mode := "lexical"
	if reranked {
		mode = "reranked"
	}
	fmt.Fprintf(out, "Found %d passages for: %s (%s)\n\n", len(results), queryText, mode)
	for _, r := range results {
		if queryLexical {
			fmt.Fprintf(out, "--- [%d] (score: %.0f) ---\n", r.Rank, r.Score)
		} else {
			fmt.Fprintf(out, "--- [%d] ---\n", r.Rank)
		}
		fmt.Fprintln(out, truncateRunes(r.Text, 500))
		fmt.Fprintln(out)
	}

	return nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
