package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Show account credit balance",
	Long:  `Display credit totals and usage for the configured account.`,
	RunE:  runCredits,
}

func runCredits(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	setupLogging(verbose)

	client, _, err := newClient()
	if err != nil {
		return err
	}

	credits, err := client.GetCredits(cmd.Context())
	if err != nil {
		return err
	}

	color.Blue("Account credits:")
	fmt.Printf("  %-15s: $%.4f\n", "Total", credits.TotalCredits)
	fmt.Printf("  %-15s: $%.4f\n", "Used", credits.TotalUsage)
	fmt.Printf("  %-15s: $%.4f\n", "Remaining", credits.Remaining())

	key, err := client.GetCurrentKey(cmd.Context())
	if err == nil {
		fmt.Printf("  %-15s: %s\n", "Key", key.Label)
		if key.Limit != nil {
			fmt.Printf("  %-15s: $%.4f\n", "Key limit", *key.Limit)
		}
	}

	return nil
}
