package llm

import (
	"fmt"

	"vibecheck/internal/config"
	"vibecheck/internal/port"
)

// GeneratorFactory creates a TextGenerator from a provider config.
type GeneratorFactory func(cfg *config.ProviderConfig) (port.TextGenerator, error)

// EmbedderFactory creates an Embedder from a provider config.
type EmbedderFactory func(cfg *config.ProviderConfig) (port.Embedder, error)

// registries of provider factories, populated explicitly via Register* from main.
var (
	generators = map[string]GeneratorFactory{}
	embedders  = map[string]EmbedderFactory{}
)

// RegisterGenerator registers a text generator factory by provider name.
func RegisterGenerator(name string, factory GeneratorFactory) {
	generators[name] = factory
}

// RegisterEmbedder registers an embedder factory by provider name.
func RegisterEmbedder(name string, factory EmbedderFactory) {
	embedders[name] = factory
}

// NewGenerator creates a TextGenerator from a provider config using the registered factory.
func NewGenerator(cfg *config.ProviderConfig) (port.TextGenerator, error) {
	factory, ok := generators[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown generator provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewEmbedder creates an Embedder from a provider config using the registered factory.
func NewEmbedder(cfg *config.ProviderConfig) (port.Embedder, error) {
	factory, ok := embedders[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewGeneratorStack builds the primary generator, falls back to the secondary
// when one is configured, and retries the whole chain on overload.
func NewGeneratorStack(cfg *config.LLMConfig) (port.TextGenerator, error) {
	primary, err := NewGenerator(&cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("primary generator: %w", err)
	}
	gen := primary
	if sec := cfg.SecondaryConfig(); sec != nil {
		secondary, err := NewGenerator(sec)
		if err != nil {
			return nil, fmt.Errorf("secondary generator: %w", err)
		}
		gen = NewFallbackGenerator(
			[]port.TextGenerator{primary, secondary},
			[]string{cfg.Primary.Provider, sec.Provider},
		)
	}
	return NewRetryingGenerator(gen, cfg.RetryDelays), nil
}
