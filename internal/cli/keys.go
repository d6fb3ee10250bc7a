package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	openrouter "github.com/realmorrisliu/openrouter-go"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage API keys",
	Long:  `List, create, and delete managed API keys. Requires a provisioning key.`,
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List managed keys",
	RunE:  runKeysList,
}

var keysCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a managed key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysCreate,
}

var keysDeleteCmd = &cobra.Command{
	Use:   "delete [hash]",
	Short: "Delete a managed key",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysDelete,
}

func init() {
	keysListCmd.Flags().Bool("disabled", false, "include disabled keys")
	keysCreateCmd.Flags().Float64("limit", 0, "spend limit in USD")

	keysCmd.AddCommand(keysListCmd)
	keysCmd.AddCommand(keysCreateCmd)
	keysCmd.AddCommand(keysDeleteCmd)
}

func runKeysList(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	setupLogging(verbose)

	client, _, err := newClient()
	if err != nil {
		return err
	}

	includeDisabled, _ := cmd.Flags().GetBool("disabled")

	keys, err := client.ListKeys(cmd.Context(), 0, includeDisabled)
	if err != nil {
		return err
	}

	for _, k := range keys {
		if k.Disabled {
			color.Red("%s (disabled)", k.Label)
		} else {
			color.Green("%s", k.Label)
		}
		fmt.Printf("  %-15s: %s\n", "Hash", k.Hash)
		fmt.Printf("  %-15s: $%.4f\n", "Usage", k.Usage)
		if k.Limit != nil {
			fmt.Printf("  %-15s: $%.4f\n", "Limit", *k.Limit)
		}
	}

	color.Cyan("%d keys", len(keys))
	return nil
}

func runKeysCreate(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	setupLogging(verbose)

	client, _, err := newClient()
	if err != nil {
		return err
	}

	req := &openrouter.CreateKeyRequest{Name: args[0]}
	if limit, _ := cmd.Flags().GetFloat64("limit"); limit > 0 {
		req.Limit = &limit
	}

	created, err := client.CreateKey(cmd.Context(), req)
	if err != nil {
		return err
	}

	color.Green("Created key %s", created.Label)
	fmt.Printf("  %-15s: %s\n", "Hash", created.Hash)
	color.Yellow("Secret (shown once): %s", created.Key)
	return nil
}

func runKeysDelete(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	setupLogging(verbose)

	client, _, err := newClient()
	if err != nil {
		return err
	}

	if err := client.DeleteKey(cmd.Context(), args[0]); err != nil {
		return err
	}

	color.Green("Deleted key %s", args[0])
	return nil
}
