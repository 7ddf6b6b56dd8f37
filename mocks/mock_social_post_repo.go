package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
)

// MockSocialPostRepo is a mock implementation of port.SocialPostRepository.
type MockSocialPostRepo struct {
	mock.Mock
}

func (m *MockSocialPostRepo) Upsert(ctx context.Context, post *domain.SocialPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockSocialPostRepo) ListByCandidate(ctx context.Context, candidateID int64, limit int) ([]domain.SocialPost, error) {
	args := m.Called(ctx, candidateID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SocialPost), args.Error(1)
}

func (m *MockSocialPostRepo) DeleteByCandidate(ctx context.Context, candidateID int64, platform domain.SocialPlatform) error {
	args := m.Called(ctx, candidateID, platform)
	return args.Error(0)
}
