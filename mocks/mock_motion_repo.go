package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
)

// MockMotionRepo is a mock implementation of port.MotionRepository.
type MockMotionRepo struct {
	mock.Mock
}

func (m *MockMotionRepo) Upsert(ctx context.Context, motion *domain.MotionWithLinks) error {
	args := m.Called(ctx, motion)
	return args.Error(0)
}

func (m *MockMotionRepo) List(ctx context.Context, electionID int64, offset, limit int) ([]domain.Motion, int, error) {
	args := m.Called(ctx, electionID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Motion), args.Int(1), args.Error(2)
}

func (m *MockMotionRepo) ListByParty(ctx context.Context, partyID int64, offset, limit int) ([]domain.Motion, int, error) {
	args := m.Called(ctx, partyID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Motion), args.Int(1), args.Error(2)
}
