package service

import (
	"context"

	"vibecheck/internal/domain"
	"vibecheck/internal/port"
)

// PostsPerCandidate is how many recent posts a candidate page shows.
const PostsPerCandidate = 25

// PartyDetail is a party with its list.
type PartyDetail struct {
	domain.Party
	Candidates []domain.Candidate `json:"candidates"`
}

// CandidateDetail is a candidate with their party and recent posts.
type CandidateDetail struct {
	domain.Candidate
	Party *domain.Party       `json:"party"`
	Posts []domain.SocialPost `json:"posts"`
}

// ElectionService serves the read side of the current election.
type ElectionService interface {
	Current(ctx context.Context) (*domain.Election, error)
	ListParties(ctx context.Context) ([]domain.Party, error)
	GetParty(ctx context.Context, id int64) (*PartyDetail, error)
	GetCandidate(ctx context.Context, id int64) (*CandidateDetail, error)
	ListMotions(ctx context.Context, offset, limit int) ([]domain.Motion, int, error)
	ListPartyMotions(ctx context.Context, partyID int64, offset, limit int) ([]domain.Motion, int, error)
	ListComparisons(ctx context.Context) ([]domain.TopicComparison, error)
}

type electionService struct {
	elections   port.ElectionRepository
	parties     port.PartyRepository
	candidates  port.CandidateRepository
	motions     port.MotionRepository
	posts       port.SocialPostRepository
	comparisons port.TopicComparisonRepository
}

// NewElectionService creates a new ElectionService implementation.
func NewElectionService(
	elections port.ElectionRepository,
	parties port.PartyRepository,
	candidates port.CandidateRepository,
	motions port.MotionRepository,
	posts port.SocialPostRepository,
	comparisons port.TopicComparisonRepository,
) ElectionService {
	return &electionService{
		elections:   elections,
		parties:     parties,
		candidates:  candidates,
		motions:     motions,
		posts:       posts,
		comparisons: comparisons,
	}
}

func (s *electionService) Current(ctx context.Context) (*domain.Election, error) {
	return s.elections.Current(ctx)
}

func (s *electionService) ListParties(ctx context.Context) ([]domain.Party, error) {
	election, err := s.elections.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.parties.ListByElection(ctx, election.ID)
}

func (s *electionService) GetParty(ctx context.Context, id int64) (*PartyDetail, error) {
	party, err := s.parties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	candidates, err := s.candidates.ListByParty(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PartyDetail{Party: *party, Candidates: candidates}, nil
}

func (s *electionService) GetCandidate(ctx context.Context, id int64) (*CandidateDetail, error) {
	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	party, err := s.parties.GetByID(ctx, candidate.PartyID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByCandidate(ctx, id, PostsPerCandidate)
	if err != nil {
		return nil, err
	}
	return &CandidateDetail{Candidate: *candidate, Party: party, Posts: posts}, nil
}

func (s *electionService) ListMotions(ctx context.Context, offset, limit int) ([]domain.Motion, int, error) {
	election, err := s.elections.Current(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.motions.List(ctx, election.ID, offset, limit)
}

func (s *electionService) ListPartyMotions(ctx context.Context, partyID int64, offset, limit int) ([]domain.Motion, int, error) {
	if _, err := s.parties.GetByID(ctx, partyID); err != nil {
		return nil, 0, err
	}
	return s.motions.ListByParty(ctx, partyID, offset, limit)
}

func (s *electionService) ListComparisons(ctx context.Context) ([]domain.TopicComparison, error) {
	election, err := s.elections.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.comparisons.ListByElection(ctx, election.ID)
}
