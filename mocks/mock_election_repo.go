package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
)

// MockElectionRepo is a mock implementation of port.ElectionRepository.
type MockElectionRepo struct {
	mock.Mock
}

func (m *MockElectionRepo) Upsert(ctx context.Context, election *domain.Election) error {
	args := m.Called(ctx, election)
	return args.Error(0)
}

func (m *MockElectionRepo) GetBySlug(ctx context.Context, slug string) (*domain.Election, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Election), args.Error(1)
}

func (m *MockElectionRepo) Current(ctx context.Context) (*domain.Election, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Election), args.Error(1)
}
