package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"

	"museai_server/server/shadow/domain"
)

// AnthropicOptions configure the Anthropic completer.
type AnthropicOptions struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
}

// AnthropicCompleter drives the Messages API as the alternate generation
// backend. It renders the same signature prompts as the OpenAI completer.
type AnthropicCompleter struct {
	client *anthropic.Client
	opts   AnthropicOptions
}

func NewAnthropicCompleter(client *anthropic.Client, optFns ...func(o *AnthropicOptions)) *AnthropicCompleter {
	opts := AnthropicOptions{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4000,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &AnthropicCompleter{client: client, opts: opts}
}

func (c *AnthropicCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.opts.Model,
		MaxTokens:   c.opts.MaxTokens,
		Temperature: anthropic.Float(c.opts.Temperature),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: anthropic api: %v", domain.ErrUpstream, err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.AsText().Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: anthropic api: empty completion", domain.ErrUpstream)
	}
	return b.String(), nil
}
