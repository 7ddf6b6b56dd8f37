package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"vibecheck/internal/domain"
	"vibecheck/internal/service"
)

// MockSummaryService is a mock implementation of service.SummaryService.
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) SummarizePrograms(ctx context.Context, election *domain.Election, partyFilter string) (*service.SummaryResult, error) {
	args := m.Called(ctx, election, partyFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SummaryResult), args.Error(1)
}

func (m *MockSummaryService) SummarizeMotions(ctx context.Context, election *domain.Election, partyFilter string) (*service.SummaryResult, error) {
	args := m.Called(ctx, election, partyFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SummaryResult), args.Error(1)
}

func (m *MockSummaryService) SummarizeSocial(ctx context.Context, election *domain.Election, name string, posts []string) (string, error) {
	args := m.Called(ctx, election, name, posts)
	return args.String(0), args.Error(1)
}

func (m *MockSummaryService) CompareTopics(ctx context.Context, election *domain.Election, topics []string) (*service.SummaryResult, error) {
	args := m.Called(ctx, election, topics)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SummaryResult), args.Error(1)
}
