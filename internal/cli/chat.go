package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	openrouter "github.com/realmorrisliu/openrouter-go"
)

var chatCmd = &cobra.Command{
	Use:   "chat [prompt]",
	Short: "Send a prompt and stream the reply",
	Long:  `Send a single prompt to a model and stream the reply to stdout.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().StringP("model", "m", "", "model to use (defaults to configured default_model)")
	chatCmd.Flags().String("system", "", "system prompt")
	chatCmd.Flags().Int("max-tokens", 0, "completion token limit")
	chatCmd.Flags().Bool("reasoning", false, "show reasoning deltas")
	chatCmd.Flags().Bool("estimate", false, "print a prompt token estimate before sending")
}

func runChat(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	setupLogging(verbose)

	client, cfg, err := newClient()
	if err != nil {
		return err
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = cfg.DefaultModel
	}
	if model == "" {
		return fmt.Errorf("no model given and no default_model configured")
	}

	prompt := strings.Join(args, " ")
	system, _ := cmd.Flags().GetString("system")
	maxTokens, _ := cmd.Flags().GetInt("max-tokens")
	showReasoning, _ := cmd.Flags().GetBool("reasoning")
	estimate, _ := cmd.Flags().GetBool("estimate")

	var messages []openrouter.ChatMessage
	if system != "" {
		messages = append(messages, openrouter.NewChatMessage(openrouter.RoleSystem, system))
	}
	messages = append(messages, openrouter.NewChatMessage(openrouter.RoleUser, prompt))

	if estimate {
		if n, err := openrouter.EstimateMessageTokens(messages); err == nil {
			color.Cyan("~%d prompt tokens", n)
		}
	}

	req := openrouter.NewChatCompletionRequest(model, messages).WithUsageAccounting()
	if maxTokens > 0 {
		req.WithMaxTokens(maxTokens)
	}

	stream, err := client.StreamChatCompletion(cmd.Context(), req)
	if err != nil {
		return err
	}
	defer stream.Close()

	reasoningColor := color.New(color.Faint)

	for stream.Next() {
		ev := stream.Event()
		switch ev.Type {
		case openrouter.EventContentDelta:
			fmt.Print(ev.Text)
		case openrouter.EventReasoningDelta:
			if showReasoning {
				reasoningColor.Fprint(os.Stdout, ev.Text)
			}
		case openrouter.EventDone:
			fmt.Println()
			if done := ev.Done; done != nil && done.Usage != nil {
				color.Cyan("%s tokens: %d prompt, %d completion",
					done.Model, done.Usage.PromptTokens, done.Usage.CompletionTokens)
			}
		case openrouter.EventError:
			fmt.Println()
			return ev.Err
		}
	}

	return nil
}
