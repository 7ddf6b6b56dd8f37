package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pgvector/pgvector-go"

	"vibecheck/internal/domain"
	"vibecheck/internal/port"
)

const documentColumns = "d.id, d.party_id, d.source_type, d.content, d.metadata, d.created_at"

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository using pgvector for search.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

// ReplaceForParty deletes the party's documents of sourceType and inserts docs in one transaction.
func (r *documentRepo) ReplaceForParty(ctx context.Context, partyID int64, sourceType domain.DocumentSourceType, docs []domain.Document) error {
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM documents WHERE party_id = $1 AND source_type = $2", partyID, sourceType); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
		for i := range docs {
			doc := &docs[i]
			doc.PartyID = partyID
			doc.SourceType = sourceType
			err := tx.QueryRowxContext(ctx,
				`INSERT INTO documents (party_id, source_type, content, metadata)
				VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
				doc.PartyID, doc.SourceType, doc.Content, doc.Metadata,
			).Scan(&doc.ID, &doc.CreatedAt)
			if err != nil {
				return fmt.Errorf("insert chunk %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("documentRepo.ReplaceForParty: %w", err)
	}
	return nil
}

func (r *documentRepo) ListWithoutEmbedding(ctx context.Context, limit int) ([]domain.Document, error) {
	var docs []domain.Document
	err := r.db.SelectContext(ctx, &docs,
		"SELECT "+documentColumns+" FROM documents d WHERE d.embedding IS NULL ORDER BY d.id LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.ListWithoutEmbedding: %w", err)
	}
	return docs, nil
}

func (r *documentRepo) SetEmbedding(ctx context.Context, documentID int64, embedding []float32) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE documents SET embedding = $1 WHERE id = $2", pgvector.NewVector(embedding), documentID)
	if err != nil {
		return fmt.Errorf("documentRepo.SetEmbedding: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Search returns the topK documents of the election closest to embedding by cosine distance,
// optionally restricted to partyIDs.
func (r *documentRepo) Search(ctx context.Context, electionID int64, embedding []float32, topK int, partyIDs []int64) ([]domain.ScoredDocument, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + documentColumns + `,
			p.name AS party_name, p.abbreviation AS party_abbreviation,
			d.embedding <=> $1 AS distance
		FROM documents d
		JOIN parties p ON p.id = d.party_id
		WHERE p.election_id = $2 AND d.embedding IS NOT NULL`)
	args := []interface{}{pgvector.NewVector(embedding), electionID}
	if len(partyIDs) > 0 {
		args = append(args, partyIDs)
		fmt.Fprintf(&sb, " AND d.party_id = ANY($%d)", len(args))
	}
	args = append(args, topK)
	fmt.Fprintf(&sb, " ORDER BY distance LIMIT $%d", len(args))

	var docs []domain.ScoredDocument
	if err := r.db.SelectContext(ctx, &docs, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("documentRepo.Search: %w", err)
	}
	return docs, nil
}
