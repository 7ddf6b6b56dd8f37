package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"vibecheck/internal/domain"
	"vibecheck/internal/llm"
	"vibecheck/internal/port"
)

const (
	// DefaultTopK is how many fragments answer a question.
	DefaultTopK = 8
	// MaxTopK bounds a caller-supplied top_k.
	MaxTopK = 20

	previewChars = 200
)

// NoResultsAnswer is returned when no fragment is found.
const NoResultsAnswer = "Geen relevante informatie gevonden."

// SearchInput is the DTO for a question over party programs.
type SearchInput struct {
	Query    string  `json:"query" binding:"required"`
	TopK     int     `json:"top_k"`
	PartyIDs []int64 `json:"party_ids"`
}

// SearchSource is a fragment an answer is based on.
type SearchSource struct {
	PartyID           int64   `json:"party_id"`
	PartyName         string  `json:"party_name"`
	PartyAbbreviation string  `json:"party_abbreviation"`
	Preview           string  `json:"preview"`
	Score             float64 `json:"score"`
	PageStart         *int    `json:"page_start,omitempty"`
	PageEnd           *int    `json:"page_end,omitempty"`
}

// SearchAnswer is a generated answer with its sources.
type SearchAnswer struct {
	Answer  string         `json:"answer"`
	Sources []SearchSource `json:"sources"`
}

// SearchService answers questions from the program fragments closest to them.
type SearchService interface {
	Search(ctx context.Context, input SearchInput) (*SearchAnswer, error)
}

type searchService struct {
	elections port.ElectionRepository
	documents port.DocumentRepository
	embedder  port.Embedder
	generator port.TextGenerator
}

// NewSearchService creates a new SearchService implementation.
func NewSearchService(
	elections port.ElectionRepository,
	documents port.DocumentRepository,
	embedder port.Embedder,
	generator port.TextGenerator,
) SearchService {
	return &searchService{
		elections: elections,
		documents: documents,
		embedder:  embedder,
		generator: generator,
	}
}

func (s *searchService) Search(ctx context.Context, input SearchInput) (*SearchAnswer, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	topK := input.TopK
	if topK <= 0 {
		topK = DefaultTopK
	}
	topK = min(topK, MaxTopK)

	election, err := s.elections.Current(ctx)
	if err != nil {
		return nil, err
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("%w: %d vectors for 1 query", domain.ErrEmbeddingMismatch, len(vectors))
	}

	hits, err := s.documents.Search(ctx, election.ID, vectors[0], topK, input.PartyIDs)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return &SearchAnswer{Answer: NoResultsAnswer, Sources: []SearchSource{}}, nil
	}

	fragments := make([]string, len(hits))
	sources := make([]SearchSource, len(hits))
	for i, h := range hits {
		label := h.PartyAbbreviation
		if label == "" {
			label = h.PartyName
		}
		fragments[i] = fmt.Sprintf("[%s]: %s", label, h.Content)
		sources[i] = toSource(h)
	}

	prompts := promptsFor(election)
	out, err := s.generator.Generate(ctx, port.GenerateInput{
		System: prompts.System(),
		Prompt: prompts.Question(query, fragments),
	})
	if err != nil {
		return nil, err
	}
	return &SearchAnswer{Answer: out.Text, Sources: sources}, nil
}

func toSource(h domain.ScoredDocument) SearchSource {
	src := SearchSource{
		PartyID:           h.PartyID,
		PartyName:         h.PartyName,
		PartyAbbreviation: h.PartyAbbreviation,
		Preview:           preview(h.Content),
		Score:             math.Round((1-h.Distance)*1000) / 1000,
	}
	var meta domain.ChunkMetadata
	if len(h.Metadata) > 0 && json.Unmarshal(h.Metadata, &meta) == nil && meta.PageStart > 0 {
		start := meta.PageStart
		src.PageStart = &start
		if meta.PageEnd > meta.PageStart {
			end := meta.PageEnd
			src.PageEnd = &end
		}
	}
	return src
}

func preview(content string) string {
	short := llm.Truncate(content, previewChars)
	if len(short) < len(content) {
		return short + "..."
	}
	return short
}
