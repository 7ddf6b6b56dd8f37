package port

import (
	"context"
	"time"

	"vibecheck/internal/domain"
)

// ElectionRepository defines the contract for election persistence.
type ElectionRepository interface {
	Upsert(ctx context.Context, election *domain.Election) error
	GetBySlug(ctx context.Context, slug string) (*domain.Election, error)
	Current(ctx context.Context) (*domain.Election, error)
}

// PartyRepository defines the contract for party persistence.
// Upsert is keyed by (election_id, name).
type PartyRepository interface {
	Upsert(ctx context.Context, party *domain.Party) error
	GetByID(ctx context.Context, id int64) (*domain.Party, error)
	ListByElection(ctx context.Context, electionID int64) ([]domain.Party, error)
	UpdateProgramText(ctx context.Context, partyID int64, text string) error
	UpdateDescription(ctx context.Context, partyID int64, description string) error
	UpdateMotionSummary(ctx context.Context, partyID int64, summary string) error
	UpdatePolledSeats(ctx context.Context, partyID int64, seats int, updatedAt time.Time) error
}

// CandidateRepository defines the contract for candidate persistence.
// Upsert is keyed by (party_id, position_on_list).
type CandidateRepository interface {
	Upsert(ctx context.Context, candidate *domain.Candidate) error
	GetByID(ctx context.Context, id int64) (*domain.Candidate, error)
	GetByPosition(ctx context.Context, partyID int64, position int) (*domain.Candidate, error)
	ListByParty(ctx context.Context, partyID int64) ([]domain.Candidate, error)
	ListByElection(ctx context.Context, electionID int64) ([]domain.Candidate, error)
	SetSocialSummary(ctx context.Context, candidateID int64, summary *string) error
}

// DocumentRepository defines the contract for document chunks and their embeddings.
type DocumentRepository interface {
	ReplaceForParty(ctx context.Context, partyID int64, sourceType domain.DocumentSourceType, docs []domain.Document) error
	ListWithoutEmbedding(ctx context.Context, limit int) ([]domain.Document, error)
	SetEmbedding(ctx context.Context, documentID int64, embedding []float32) error
	Search(ctx context.Context, electionID int64, embedding []float32, topK int, partyIDs []int64) ([]domain.ScoredDocument, error)
}

// MotionRepository defines the contract for council motion persistence.
// Upsert is keyed by notubiz_item_id and replaces the motion's links.
type MotionRepository interface {
	Upsert(ctx context.Context, motion *domain.MotionWithLinks) error
	List(ctx context.Context, electionID int64, offset, limit int) ([]domain.Motion, int, error)
	ListByParty(ctx context.Context, partyID int64, offset, limit int) ([]domain.Motion, int, error)
}

// PollRepository defines the contract for poll persistence.
// Upsert is keyed by (election_id, source_url, field_end) and replaces the results.
type PollRepository interface {
	Upsert(ctx context.Context, poll *domain.PollWithResults) error
	GetByID(ctx context.Context, id int64) (*domain.PollWithResults, error)
	List(ctx context.Context, electionID int64) ([]domain.Poll, error)
	Latest(ctx context.Context, electionID int64) (*domain.PollWithResults, error)
}

// SocialPostRepository defines the contract for social post persistence.
// Upsert is keyed by uri.
type SocialPostRepository interface {
	Upsert(ctx context.Context, post *domain.SocialPost) error
	ListByCandidate(ctx context.Context, candidateID int64, limit int) ([]domain.SocialPost, error)
	DeleteByCandidate(ctx context.Context, candidateID int64, platform domain.SocialPlatform) error
}

// TopicComparisonRepository defines the contract for topic comparison persistence.
// Upsert is keyed by (election_id, topic_name).
type TopicComparisonRepository interface {
	Upsert(ctx context.Context, comparison *domain.TopicComparison) error
	ListByElection(ctx context.Context, electionID int64) ([]domain.TopicComparison, error)
}
