package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/match"
	"vibecheck/internal/port"
)

// MockCouncilSource is a mock implementation of port.CouncilSource.
type MockCouncilSource struct {
	mock.Mock
}

func (m *MockCouncilSource) FetchMotions(ctx context.Context, from, to time.Time) ([]port.CouncilMotion, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.CouncilMotion), args.Error(1)
}

// MockFeedSource is a mock implementation of port.FeedSource.
type MockFeedSource struct {
	mock.Mock
}

func (m *MockFeedSource) AuthorFeed(ctx context.Context, handle string, limit int) ([]port.FeedPost, error) {
	args := m.Called(ctx, handle, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]port.FeedPost), args.Error(1)
}

// MockProfileFinder is a mock implementation of port.ProfileFinder.
type MockProfileFinder struct {
	mock.Mock
}

func (m *MockProfileFinder) FindProfiles(ctx context.Context, q port.ProfileQuery) ([]match.Profile, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]match.Profile), args.Error(1)
}
