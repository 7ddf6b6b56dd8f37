package port

import "context"

// GenerateInput carries a single-turn prompt for a text generator.
type GenerateInput struct {
	System    string
	Prompt    string
	MaxTokens int
}

// GenerateOutput contains the generated text and the model that produced it.
type GenerateOutput struct {
	Text      string
	ModelUsed string
}

// TextGenerator abstracts LLM text generation.
type TextGenerator interface {
	Generate(ctx context.Context, input GenerateInput) (*GenerateOutput, error)
}

// Embedder turns texts into embedding vectors, one per input, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
