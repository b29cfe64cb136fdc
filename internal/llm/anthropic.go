// Package llm provides the Claude-backed implementation of the engine's
// Augmenter hook. The engine never imports this package; callers inject it.
package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"dupscope/internal/logging"
)

const defaultModel = "claude-sonnet-4-5-20250929"

const systemPrompt = "You are a QA analyst reviewing duplicate test-case clusters. " +
	"Answer with a short, concrete paragraph. Do not restate the input."

// Client wraps the Anthropic API behind the analyze.Augmenter shape.
type Client struct {
	api   anthropic.Client
	model string
}

// New returns a Client using the given API key. An empty model selects the
// default.
func New(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		api:   anthropic.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}
}

// Augment sends the prompt and returns the first text block of the response.
// The caller owns the timeout via ctx.
func (c *Client) Augment(ctx context.Context, prompt string) (string, error) {
	logger := logging.New("llm")

	message, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			logger.Debug("augmentation response",
				"bytes", len(block.Text),
				"tokens_in", message.Usage.InputTokens,
				"tokens_out", message.Usage.OutputTokens)
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("anthropic: no text content in response")
}
