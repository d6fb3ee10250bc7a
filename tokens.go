package openrouter

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
	encodingErr  error
)

// EstimateTokens counts the cl100k_base tokens of text. The count is an
// estimate: models tokenize differently, but it is close enough for
// budgeting prompts against context windows before sending them.
func EstimateTokens(text string) (int, error) {
	encodingOnce.Do(func() {
		encoding, encodingErr = tiktoken.GetEncoding("cl100k_base")
	})
	if encodingErr != nil {
		return 0, fmt.Errorf("load tokenizer: %w", encodingErr)
	}
	return len(encoding.Encode(text, nil, nil)), nil
}

// EstimateMessageTokens sums the token estimates of a conversation,
// adding a small per-message overhead for the chat framing.
func EstimateMessageTokens(messages []ChatMessage) (int, error) {
	const perMessageOverhead = 4

	total := 0
	for _, msg := range messages {
		n, err := EstimateTokens(msg.Content)
		if err != nil {
			return 0, err
		}
		total += n + perMessageOverhead
	}
	return total, nil
}
