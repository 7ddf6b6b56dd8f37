package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
)

// MockTopicComparisonRepo is a mock implementation of port.TopicComparisonRepository.
type MockTopicComparisonRepo struct {
	mock.Mock
}

func (m *MockTopicComparisonRepo) Upsert(ctx context.Context, comparison *domain.TopicComparison) error {
	args := m.Called(ctx, comparison)
	return args.Error(0)
}

func (m *MockTopicComparisonRepo) ListByElection(ctx context.Context, electionID int64) ([]domain.TopicComparison, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopicComparison), args.Error(1)
}
