package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
)

// MockCandidateRepo is a mock implementation of port.CandidateRepository.
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Upsert(ctx context.Context, candidate *domain.Candidate) error {
	args := m.Called(ctx, candidate)
	return args.Error(0)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetByPosition(ctx context.Context, partyID int64, position int) (*domain.Candidate, error) {
	args := m.Called(ctx, partyID, position)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) ListByParty(ctx context.Context, partyID int64) ([]domain.Candidate, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) ListByElection(ctx context.Context, electionID int64) ([]domain.Candidate, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) SetSocialSummary(ctx context.Context, candidateID int64, summary *string) error {
	args := m.Called(ctx, candidateID, summary)
	return args.Error(0)
}
