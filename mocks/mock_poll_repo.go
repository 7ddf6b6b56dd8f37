package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
)

// MockPollRepo is a mock implementation of port.PollRepository.
type MockPollRepo struct {
	mock.Mock
}

func (m *MockPollRepo) Upsert(ctx context.Context, poll *domain.PollWithResults) error {
	args := m.Called(ctx, poll)
	return args.Error(0)
}

func (m *MockPollRepo) GetByID(ctx context.Context, id int64) (*domain.PollWithResults, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PollWithResults), args.Error(1)
}

func (m *MockPollRepo) List(ctx context.Context, electionID int64) ([]domain.Poll, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Poll), args.Error(1)
}

func (m *MockPollRepo) Latest(ctx context.Context, electionID int64) (*domain.PollWithResults, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PollWithResults), args.Error(1)
}
