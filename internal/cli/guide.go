package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	guideMessage string
	guideJSON    bool
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Get a guided reflection for a message",
	Long: `Retrieve passages for a message and ask the configured language model
providers, in order, for a short reflection grounded in them.

Examples:
  gitamind guide -m "I am anxious about my results"
  gitamind guide -m "I lost my job" --json`,
	RunE: runGuide,
}

func init() {
	rootCmd.AddCommand(guideCmd)
	guideCmd.Flags().StringVarP(&guideMessage, "message", "m", "", "what you want to reflect on (required)")
	guideCmd.Flags().BoolVar(&guideJSON, "json", false, "output as JSON")
	guideCmd.MarkFlagRequired("message")
}

func runGuide(cmd *cobra.Command, args []string) error {
	a, err := buildApp(GetConfig(), GetRootDir(), false)
	if err != nil {
		return err
	}

	reflection, err := a.guide.Guide(cmd.Context(), guideMessage)
	if err != nil {
		return fmt.Errorf("guide failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if guideJSON {
		output, _ := json.MarshalIndent(reflection, "", "  ")
		fmt.Fprintln(out, string(output))
		return nil
	}

	fmt.Fprintf(out, "Emotion: %s\nTopic:   %s\n\n%s\n\n> %s\n", reflection.Emotion, reflection.Topic, reflection.Response, reflection.ReflectionQuestion)
	if len(reflection.Passages) > 0 {
		fmt.Fprintln(out, "\nPassages:")
		for i, p := range reflection.Passages {
			fmt.Fprintf(out, "  (%d) %s\n", i+1, truncateRunes(p.Text, 200))
		}
	}
	fmt.Fprintf(out, "\n[%s]\n", reflection.Provider)

	return nil
}
