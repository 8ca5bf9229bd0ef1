package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"gitamind/internal/adapter/extractor"
)

var passagesShow int

var passagesCmd = &cobra.Command{
	Use:   "passages",
	Short: "Parse the source document and report passage statistics",
	Long: `Read the configured source document, segment it into passages and print
corpus statistics. Use --show to print the first passages.

Examples:
  gitamind passages
  gitamind passages --show 5`,
	RunE: runPassages,
}

func init() {
	rootCmd.AddCommand(passagesCmd)
	passagesCmd.Flags().IntVar(&passagesShow, "show", 0, "print the first N passages")
}

func runPassages(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	out := cmd.OutOrStdout()

	var bar *progressbar.ProgressBar
	progress := func(page, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Reading pages[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(cmd.ErrOrStderr())
				}),
			)
		}
		_ = bar.Set(page)
	}

	loader := buildLoader(cfg, GetRootDir(), extractor.WithProgress(progress))

	res, err := loader.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load passages: %w", err)
	}

	fmt.Fprintf(out, "Source:    %s\n", res.Source)
	fmt.Fprintf(out, "Passages:  %d\n", res.Stats.Passages)
	fmt.Fprintf(out, "Avg chars: %.1f\n", res.Stats.AvgChars)
	fmt.Fprintf(out, "Longest:   %d\n", res.Stats.LongestChar)
	fmt.Fprintf(out, "Took:      %v\n", res.Duration.Round(time.Millisecond))

	for i := 0; i < passagesShow && i < len(res.Corpus); i++ {
		fmt.Fprintf(out, "\n--- [%d] ---\n%s\n", i, res.Corpus[i].Text)
	}

	return nil
}
