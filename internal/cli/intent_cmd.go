package cli

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/neuroplan/internal/domain"
	"github.com/alexanderramin/neuroplan/internal/intelligence"
	"github.com/spf13/cobra"
)

// intentReport is what Master Control would make of a message.
type intentReport struct {
	Sentiment domain.Sentiment            `json:"sentiment"`
	Action    *intelligence.RoadmapAction `json:"action"`
}

func newIntentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intent <text>",
		Short: "Show the sentiment and roadmap command detected in text",
		Long: `Run the sentiment classifier and the roadmap parser over text and print
the result as JSON. Nothing is created. "action" is null when no roadmap
request is found.

Example:
  intent "create roadmap react 8 weeks"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := joinArgs(args)
			data, err := json.MarshalIndent(intentReport{
				Sentiment: intelligence.DetectSentiment(text),
				Action:    intelligence.ParseRoadmapIntent(text),
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
