package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/service"
)

// MockSearchService is a mock implementation of service.SearchService.
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, input service.SearchInput) (*service.SearchAnswer, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchAnswer), args.Error(1)
}

// MockMatchService is a mock implementation of service.MatchService.
type MockMatchService struct {
	mock.Mock
}

func (m *MockMatchService) Preview(ctx context.Context, input service.MatchInput) ([]service.MatchPreview, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.MatchPreview), args.Error(1)
}
