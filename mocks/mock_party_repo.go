package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
)

// MockPartyRepo is a mock implementation of port.PartyRepository.
type MockPartyRepo struct {
	mock.Mock
}

func (m *MockPartyRepo) Upsert(ctx context.Context, party *domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepo) GetByID(ctx context.Context, id int64) (*domain.Party, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepo) ListByElection(ctx context.Context, electionID int64) ([]domain.Party, error) {
	args := m.Called(ctx, electionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepo) UpdateProgramText(ctx context.Context, partyID int64, text string) error {
	args := m.Called(ctx, partyID, text)
	return args.Error(0)
}

func (m *MockPartyRepo) UpdateDescription(ctx context.Context, partyID int64, description string) error {
	args := m.Called(ctx, partyID, description)
	return args.Error(0)
}

func (m *MockPartyRepo) UpdateMotionSummary(ctx context.Context, partyID int64, summary string) error {
	args := m.Called(ctx, partyID, summary)
	return args.Error(0)
}

func (m *MockPartyRepo) UpdatePolledSeats(ctx context.Context, partyID int64, seats int, updatedAt time.Time) error {
	args := m.Called(ctx, partyID, seats, updatedAt)
	return args.Error(0)
}
