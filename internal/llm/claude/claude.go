package claude

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/liushuangls/go-anthropic/v2"

	"vibecheck/internal/config"
	"vibecheck/internal/llm"
	"vibecheck/internal/port"
)

const (
	providerName = "claude"
	defaultModel = "claude-sonnet-4-20250514"
	temperature  = float32(0.3)
)

// Generator implements port.TextGenerator using the Anthropic Messages API.
type Generator struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewGenerator creates a Claude-based text generator from a provider config.
func NewGenerator(cfg *config.ProviderConfig) (port.TextGenerator, error) {
	return newGenerator(cfg, "")
}

// NewGeneratorWithBaseURL creates a generator pointing at a custom API base URL (for testing).
func NewGeneratorWithBaseURL(cfg *config.ProviderConfig, baseURL string) (port.TextGenerator, error) {
	return newGenerator(cfg, baseURL)
}

func newGenerator(cfg *config.ProviderConfig, baseURL string) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("claude: api key is required")
	}
	model := cfg.DefaultModel
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	opts := []anthropic.ClientOption{
		anthropic.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &Generator{
		client:    anthropic.NewClient(cfg.APIKey, opts...),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (g *Generator) Generate(ctx context.Context, input port.GenerateInput) (*port.GenerateOutput, error) {
	maxTokens := input.MaxTokens
	if maxTokens <= 0 {
		maxTokens = g.maxTokens
	}
	temp := temperature

	resp, err := g.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(g.model),
		System: input.System,
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(input.Prompt)},
			},
		},
		MaxTokens:   maxTokens,
		Temperature: &temp,
	})
	if err != nil {
		return nil, classify(err)
	}

	var sb strings.Builder
	for _, c := range resp.Content {
		if c.Text != nil {
			sb.WriteString(*c.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, fmt.Errorf("claude: empty response")
	}
	return &port.GenerateOutput{Text: text, ModelUsed: g.model}, nil
}

// classify maps API failures onto the retry and fallback error types.
func classify(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsRateLimitErr():
			return llm.NewRateLimitError(providerName, err, 0)
		case apiErr.IsOverloadedErr(), apiErr.IsApiErr():
			return llm.NewOverloadedError(providerName, err)
		}
		return fmt.Errorf("claude: %w", err)
	}

	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.StatusCode == http.StatusTooManyRequests:
			return llm.NewRateLimitError(providerName, err, 0)
		case reqErr.StatusCode >= http.StatusInternalServerError:
			return llm.NewOverloadedError(providerName, err)
		}
	}
	return fmt.Errorf("claude: %w", err)
}
