package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	openrouter "github.com/realmorrisliu/openrouter-go"
)

var modelsCmd = &cobra.Command{
	Use:   "models [filter]",
	Short: "List available models",
	Long:  `List the models available through the API, optionally filtered by a substring of the model id.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runModels,
}

func init() {
	modelsCmd.Flags().String("category", "", "filter by category (e.g. programming)")
	modelsCmd.Flags().Bool("pricing", false, "show per-token pricing")
}

func runModels(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	setupLogging(verbose)

	client, _, err := newClient()
	if err != nil {
		return err
	}

	category, _ := cmd.Flags().GetString("category")
	showPricing, _ := cmd.Flags().GetBool("pricing")

	var listOpts *openrouter.ListModelsOptions
	if category != "" {
		listOpts = &openrouter.ListModelsOptions{Category: category}
	}

	models, err := client.ListModels(cmd.Context(), listOpts)
	if err != nil {
		return err
	}

	filter := ""
	if len(args) > 0 {
		filter = strings.ToLower(args[0])
	}

	shown := 0
	for _, m := range models {
		if filter != "" && !strings.Contains(strings.ToLower(m.ID), filter) {
			continue
		}
		shown++

		color.Green("%s", m.ID)
		fmt.Printf("  %-15s: %d\n", "Context", m.ContextLength)
		if showPricing && m.Pricing != nil {
			fmt.Printf("  %-15s: %s prompt / %s completion\n", "Pricing", m.Pricing.Prompt, m.Pricing.Completion)
		}
	}

	color.Cyan("%d models", shown)
	return nil
}
