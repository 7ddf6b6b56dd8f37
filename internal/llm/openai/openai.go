package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"vibecheck/internal/config"
	"vibecheck/internal/llm"
	"vibecheck/internal/port"
)

const (
	providerName       = "openai"
	defaultChatModel   = "gpt-4o-mini"
	defaultEmbedModel  = string(openai.SmallEmbedding3)
	temperature        = float32(0.3)
	maxEmbeddingBatch  = 100
	defaultTimeoutSecs = 120
)

func newClient(cfg *config.ProviderConfig, baseURL string) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = defaultTimeoutSecs * time.Second
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}
	return openai.NewClientWithConfig(clientCfg), nil
}

// Generator implements port.TextGenerator using the chat completions API.
type Generator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewGenerator creates an OpenAI-based text generator from a provider config.
func NewGenerator(cfg *config.ProviderConfig) (port.TextGenerator, error) {
	return NewGeneratorWithBaseURL(cfg, "")
}

// NewGeneratorWithBaseURL creates a generator pointing at a custom API base URL (for testing).
func NewGeneratorWithBaseURL(cfg *config.ProviderConfig, baseURL string) (port.TextGenerator, error) {
	client, err := newClient(cfg, baseURL)
	if err != nil {
		return nil, err
	}
	model := cfg.DefaultModel
	if model == "" {
		model = defaultChatModel
	}
	return &Generator{client: client, model: model, maxTokens: cfg.MaxTokens}, nil
}

func (g *Generator) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	var messages []openai.ChatCompletionMessage
	if input.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: input.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: input.Prompt})

	maxTokens := input.MaxTokens
	if maxTokens <= 0 {
		maxTokens = g.maxTokens
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return nil, classify(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices in response")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, fmt.Errorf("openai: empty response")
	}
	return &port.GenerateOutput{Text: text, ModelUsed: g.model}, nil
}

// Embedder implements port.Embedder using the embeddings API.
type Embedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewEmbedder creates an OpenAI-based embedder from a provider config.
func NewEmbedder(cfg *config.ProviderConfig) (port.Embedder, error) {
	return NewEmbedderWithBaseURL(cfg, "")
}

// NewEmbedderWithBaseURL creates an embedder pointing at a custom API base URL (for testing).
func NewEmbedderWithBaseURL(cfg *config.ProviderConfig, baseURL string) (port.Embedder, error) {
	client, err := newClient(cfg, baseURL)
	if err != nil {
		return nil, err
	}
	model := cfg.DefaultModel
	if model == "" {
		model = defaultEmbedModel
	}
	return &Embedder{client: client, model: openai.EmbeddingModel(model)}, nil
}

func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxEmbeddingBatch {
		end := min(start+maxEmbeddingBatch, len(texts))
		batch := texts[start:end]

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: batch,
			Model: e.model,
		})
		if err != nil {
			return nil, classify(err)
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("openai: got %d embeddings for %d inputs", len(resp.Data), len(batch))
		}

		vectors := make([][]float32, len(batch))
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(batch) {
				return nil, fmt.Errorf("openai: embedding index %d out of range", d.Index)
			}
			vectors[d.Index] = d.Embedding
		}
		out = append(out, vectors...)
	}
	return out, nil
}

// classify maps API failures onto the retry and fallback error types.
func classify(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == http.StatusTooManyRequests:
		return llm.NewRateLimitError(providerName, err, 0)
	case status >= http.StatusInternalServerError:
		return llm.NewOverloadedError(providerName, err)
	}
	return fmt.Errorf("openai: %w", err)
}
