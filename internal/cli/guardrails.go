package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	openrouter "github.com/realmorrisliu/openrouter-go"
)

var guardrailsCmd = &cobra.Command{
	Use:   "guardrails",
	Short: "Manage guardrails",
	Long:  `List, create, and delete spend guardrails. Requires a provisioning key.`,
}

var guardrailsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List guardrails",
	RunE:  runGuardrailsList,
}

var guardrailsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a guardrail",
	Args:  cobra.ExactArgs(1),
	RunE:  runGuardrailsCreate,
}

var guardrailsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a guardrail",
	Args:  cobra.ExactArgs(1),
	RunE:  runGuardrailsDelete,
}

func init() {
	guardrailsListCmd.Flags().Int("limit", 0, "page size")
	guardrailsCreateCmd.Flags().Float64("limit-usd", 0, "spend limit in USD")
	guardrailsCreateCmd.Flags().String("interval", "", "limit reset interval (e.g. monthly)")
	guardrailsCreateCmd.Flags().StringSlice("models", nil, "allowed model ids")

	guardrailsCmd.AddCommand(guardrailsListCmd)
	guardrailsCmd.AddCommand(guardrailsCreateCmd)
	guardrailsCmd.AddCommand(guardrailsDeleteCmd)
}

func runGuardrailsList(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	setupLogging(verbose)

	client, _, err := newClient()
	if err != nil {
		return err
	}

	var page *openrouter.PaginationOptions
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		page = &openrouter.PaginationOptions{Limit: limit}
	}

	list, err := client.ListGuardrails(cmd.Context(), page)
	if err != nil {
		return err
	}

	for _, g := range list.Data {
		color.Green("%s", g.Name)
		fmt.Printf("  %-15s: %s\n", "ID", g.ID)
		if g.LimitUSD != nil {
			fmt.Printf("  %-15s: $%.2f", "Limit", *g.LimitUSD)
			if g.ResetInterval != "" {
				fmt.Printf(" per %s", g.ResetInterval)
			}
			fmt.Println()
		}
		if len(g.AllowedModels) > 0 {
			fmt.Printf("  %-15s: %s\n", "Models", strings.Join(g.AllowedModels, ", "))
		}
	}

	color.Cyan("%d of %d guardrails", len(list.Data), list.TotalCount)
	return nil
}

func runGuardrailsCreate(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	setupLogging(verbose)

	client, _, err := newClient()
	if err != nil {
		return err
	}

	req := &openrouter.CreateGuardrailRequest{Name: args[0]}
	if limit, _ := cmd.Flags().GetFloat64("limit-usd"); limit > 0 {
		req.LimitUSD = &limit
	}
	req.ResetInterval, _ = cmd.Flags().GetString("interval")
	req.AllowedModels, _ = cmd.Flags().GetStringSlice("models")

	created, err := client.CreateGuardrail(cmd.Context(), req)
	if err != nil {
		return err
	}

	color.Green("Created guardrail %s", created.Name)
	fmt.Printf("  %-15s: %s\n", "ID", created.ID)
	return nil
}

func runGuardrailsDelete(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	setupLogging(verbose)

	client, _, err := newClient()
	if err != nil {
		return err
	}

	if err := client.DeleteGuardrail(cmd.Context(), args[0]); err != nil {
		return err
	}

	color.Green("Deleted guardrail %s", args[0])
	return nil
}
