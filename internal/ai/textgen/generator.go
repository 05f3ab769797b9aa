package textgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const systemPrompt = `You are a writing assistant for a job board. Answer with the requested text only, without preamble.`

// Generator drafts text from a prompt with a chat completion model
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a text generator. An empty model selects gpt-4o-mini.
func NewGenerator(apiKey, model string) *Generator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Generator{
		client: &client,
		model:  model,
	}
}

// Generate returns the model's answer to prompt
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", errors.New("prompt cannot be empty")
	}

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(g.model),
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(1200),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat api error: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("no response from openai")
	}

	return completion.Choices[0].Message.Content, nil
}
