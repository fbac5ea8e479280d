package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"museai_server/server/shadow/domain"
)

// OpenAIOptions configure the OpenAI completer. Kept to the parameters this
// service actually varies.
type OpenAIOptions struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// OpenAICompleter drives chat completions through the official client.
type OpenAICompleter struct {
	client *openai.Client
	opts   OpenAIOptions
}

func NewOpenAICompleter(client *openai.Client, optFns ...func(o *OpenAIOptions)) *OpenAICompleter {
	opts := OpenAIOptions{
		Model:               openai.ChatModelGPT4o,
		Temperature:         0.7,
		MaxCompletionTokens: 4000,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &OpenAICompleter{client: client, opts: opts}
}

func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Model:               c.opts.Model,
		Temperature:         openai.Float(c.opts.Temperature),
		MaxCompletionTokens: openai.Int(c.opts.MaxCompletionTokens),
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai api: %v", domain.ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai api: no choices returned", domain.ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}

// OpenAIEmbedder turns text into a fixed-length vector via the embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIEmbedder(client *openai.Client, model string) *OpenAIEmbedder {
	if model == "" {
		model = string(openai.EmbeddingModelTextEmbedding3Small)
	}
	return &OpenAIEmbedder{client: client, model: openai.EmbeddingModel(model)}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	// Embedding models are sensitive to literal newline tokens.
	text = strings.ReplaceAll(text, "\n", " ")

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: []string{text}},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: openai embeddings: %v", domain.ErrUpstream, err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: openai embeddings: no embedding returned", domain.ErrUpstream)
	}

	vec := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
