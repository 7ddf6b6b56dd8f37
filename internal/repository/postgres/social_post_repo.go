package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"vibecheck/internal/domain"
	"vibecheck/internal/port"
)

type socialPostRepo struct {
	db *sqlx.DB
}

// NewSocialPostRepo creates a new PostgreSQL-backed SocialPostRepository.
func NewSocialPostRepo(db *sqlx.DB) port.SocialPostRepository {
	return &socialPostRepo{db: db}
}

// Upsert inserts a post or, when the uri is known, refreshes its engagement counts and embed.
func (r *socialPostRepo) Upsert(ctx context.Context, post *domain.SocialPost) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO social_posts (candidate_id, platform, uri, text, posted_at,
			like_count, reply_count, repost_count, embed_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (uri) DO UPDATE SET
			like_count = EXCLUDED.like_count,
			reply_count = EXCLUDED.reply_count,
			repost_count = EXCLUDED.repost_count,
			embed_json = EXCLUDED.embed_json,
			fetched_at = NOW()
		RETURNING id, fetched_at`,
		post.CandidateID, post.Platform, post.URI, post.Text, post.PostedAt,
		post.LikeCount, post.ReplyCount, post.RepostCount, nullableJSON(post.EmbedJSON),
	).Scan(&post.ID, &post.FetchedAt)
	if err != nil {
		return fmt.Errorf("socialPostRepo.Upsert: %w", err)
	}
	return nil
}

func (r *socialPostRepo) ListByCandidate(ctx context.Context, candidateID int64, limit int) ([]domain.SocialPost, error) {
	var posts []domain.SocialPost
	err := r.db.SelectContext(ctx, &posts,
		"SELECT * FROM social_posts WHERE candidate_id = $1 ORDER BY posted_at DESC LIMIT $2",
		candidateID, limit)
	if err != nil {
		return nil, fmt.Errorf("socialPostRepo.ListByCandidate: %w", err)
	}
	return posts, nil
}

func (r *socialPostRepo) DeleteByCandidate(ctx context.Context, candidateID int64, platform domain.SocialPlatform) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM social_posts WHERE candidate_id = $1 AND platform = $2", candidateID, platform)
	if err != nil {
		return fmt.Errorf("socialPostRepo.DeleteByCandidate: %w", err)
	}
	return nil
}

func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
