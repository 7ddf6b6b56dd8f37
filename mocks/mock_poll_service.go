package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
	"vibecheck/internal/polls"
	"vibecheck/internal/service"
)

// MockPollService is a mock implementation of service.PollService.
type MockPollService struct {
	mock.Mock
}

func (m *MockPollService) FetchPolls(ctx context.Context, sources []polls.Source) (*service.FetchPollsResult, error) {
	args := m.Called(ctx, sources)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FetchPollsResult), args.Error(1)
}

func (m *MockPollService) RefreshPolledSeats(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPollService) List(ctx context.Context) ([]domain.Poll, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Poll), args.Error(1)
}

func (m *MockPollService) Latest(ctx context.Context) (*domain.PollWithResults, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PollWithResults), args.Error(1)
}

func (m *MockPollService) Get(ctx context.Context, id int64) (*domain.PollWithResults, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PollWithResults), args.Error(1)
}
