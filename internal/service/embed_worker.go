package service

import (
	"context"
	"log"
	"time"
)

// EmbedWorkerConfig holds settings for the embed worker.
type EmbedWorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// EmbedWorker periodically embeds documents that were ingested without an
// embedding, so the API can serve search while ingest runs elsewhere.
type EmbedWorker struct {
	embeddings EmbeddingService
	cfg        EmbedWorkerConfig
}

// NewEmbedWorker creates a new EmbedWorker.
func NewEmbedWorker(embeddings EmbeddingService, cfg EmbedWorkerConfig) *EmbedWorker {
	return &EmbedWorker{embeddings: embeddings, cfg: cfg}
}

// Start runs the polling loop until ctx is canceled. A pass in flight when
// ctx is canceled stops at its next repository call.
func (w *EmbedWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	log.Printf("embedWorker: started (poll=%s, batch=%d)", w.cfg.PollInterval, w.cfg.BatchSize)

	for {
		select {
		case <-ctx.Done():
			log.Printf("embedWorker: shutdown complete")
			return
		case <-ticker.C:
			n, err := w.embeddings.EmbedPending(ctx, w.cfg.BatchSize)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("embedWorker: EmbedPending error: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("embedWorker: embedded %d documents", n)
			}
		}
	}
}
