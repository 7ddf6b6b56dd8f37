package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vibecheck/internal/domain"
	"vibecheck/internal/port"
)

type topicComparisonRepo struct {
	db *sqlx.DB
}

// NewTopicComparisonRepo creates a new PostgreSQL-backed TopicComparisonRepository.
func NewTopicComparisonRepo(db *sqlx.DB) port.TopicComparisonRepository {
	return &topicComparisonRepo{db: db}
}

func (r *topicComparisonRepo) Upsert(ctx context.Context, comparison *domain.TopicComparison) error {
	query := `INSERT INTO topic_comparisons (election_id, topic_name, comparison_json)
		VALUES ($1, $2, $3)
		ON CONFLICT (election_id, topic_name) DO UPDATE SET
			comparison_json = EXCLUDED.comparison_json,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		comparison.ElectionID, comparison.TopicName, []byte(comparison.Comparison),
	).Scan(&comparison.ID, &comparison.CreatedAt, &comparison.UpdatedAt)
	if err != nil {
		return fmt.Errorf("topicComparisonRepo.Upsert: %w", err)
	}
	return nil
}

func (r *topicComparisonRepo) ListByElection(ctx context.Context, electionID int64) ([]domain.TopicComparison, error) {
	var comparisons []domain.TopicComparison
	err := r.db.SelectContext(ctx, &comparisons,
		"SELECT * FROM topic_comparisons WHERE election_id = $1 ORDER BY topic_name", electionID)
	if err != nil {
		return nil, fmt.Errorf("topicComparisonRepo.ListByElection: %w", err)
	}
	if comparisons == nil {
		comparisons = []domain.TopicComparison{}
	}
	return comparisons, nil
}
