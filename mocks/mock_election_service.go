package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
	"vibecheck/internal/service"
)

// MockElectionService is a mock implementation of service.ElectionService.
type MockElectionService struct {
	mock.Mock
}

func (m *MockElectionService) Current(ctx context.Context) (*domain.Election, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Election), args.Error(1)
}

func (m *MockElectionService) ListParties(ctx context.Context) ([]domain.Party, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockElectionService) GetParty(ctx context.Context, id int64) (*service.PartyDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PartyDetail), args.Error(1)
}

func (m *MockElectionService) GetCandidate(ctx context.Context, id int64) (*service.CandidateDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CandidateDetail), args.Error(1)
}

func (m *MockElectionService) ListMotions(ctx context.Context, offset, limit int) ([]domain.Motion, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Motion), args.Int(1), args.Error(2)
}

func (m *MockElectionService) ListPartyMotions(ctx context.Context, partyID int64, offset, limit int) ([]domain.Motion, int, error) {
	args := m.Called(ctx, partyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Motion), args.Int(1), args.Error(2)
}

func (m *MockElectionService) ListComparisons(ctx context.Context) ([]domain.TopicComparison, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopicComparison), args.Error(1)
}
