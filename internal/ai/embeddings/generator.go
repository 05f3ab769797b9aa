package embeddings

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Dimensions of the vectors produced by the default model
const Dimensions = 1536

// maxInputRunes keeps long job descriptions under the model's token limit
const maxInputRunes = 24000

// Generator creates embeddings used for similar-job lookups
type Generator struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewGenerator creates a new embeddings generator
func NewGenerator(apiKey string) *Generator {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &Generator{
		client: &client,
		model:  openai.EmbeddingModelTextEmbedding3Small,
	}
}

// GenerateEmbedding creates an embedding vector for text
func (g *Generator) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncate(strings.TrimSpace(text), maxInputRunes)
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: []string{text},
		},
		Model: g.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding data returned")
	}

	return toFloat32(resp.Data[0].Embedding), nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
