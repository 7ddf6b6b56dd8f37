package service

import (
	"context"
	"fmt"
	"log"

	"vibecheck/internal/domain"
	"vibecheck/internal/port"
)

// DefaultEmbedBatch is how many documents are embedded per request.
const DefaultEmbedBatch = 50

// EmbeddingService fills in missing document embeddings.
type EmbeddingService interface {
	EmbedPending(ctx context.Context, batchSize int) (int, error)
}

type embeddingService struct {
	documents port.DocumentRepository
	embedder  port.Embedder
}

// NewEmbeddingService creates a new EmbeddingService implementation.
func NewEmbeddingService(documents port.DocumentRepository, embedder port.Embedder) EmbeddingService {
	return &embeddingService{documents: documents, embedder: embedder}
}

// EmbedPending embeds documents without an embedding until none are left
// and returns how many it embedded.
func (s *embeddingService) EmbedPending(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = DefaultEmbedBatch
	}
	total := 0
	for {
		docs, err := s.documents.ListWithoutEmbedding(ctx, batchSize)
		if err != nil {
			return total, err
		}
		if len(docs) == 0 {
			break
		}

		texts := make([]string, len(docs))
		for i, d := range docs {
			texts[i] = d.Content
		}
		vectors, err := s.embedder.Embed(ctx, texts)
		if err != nil {
			return total, fmt.Errorf("embedding batch: %w", err)
		}
		if len(vectors) != len(docs) {
			return total, fmt.Errorf("%w: %d vectors for %d documents", domain.ErrEmbeddingMismatch, len(vectors), len(docs))
		}

		for i, d := range docs {
			if err := s.documents.SetEmbedding(ctx, d.ID, vectors[i]); err != nil {
				return total, err
			}
		}
		total += len(docs)
		log.Printf("embeddingService.EmbedPending: embedded %d documents (%d total)", len(docs), total)

		if len(docs) < batchSize {
			break
		}
	}
	return total, nil
}
