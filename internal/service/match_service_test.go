package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vibecheck/internal/domain"
	"vibecheck/internal/match"
	"vibecheck/internal/service"
	"vibecheck/mocks"
)

func newMatchService() (service.MatchService, *mocks.MockElectionRepo, *mocks.MockPartyRepo, *mocks.MockCandidateRepo) {
	elections := new(mocks.MockElectionRepo)
	parties := new(mocks.MockPartyRepo)
	candidates := new(mocks.MockCandidateRepo)
	svc := service.NewMatchService(elections, parties, candidates, match.NewPartyMatcher(match.DefaultAliases()))
	return svc, elections, parties, candidates
}

func TestMatchService_Preview_Party(t *testing.T) {
	svc, elections, parties, _ := newMatchService()
	elections.On("Current", mock.Anything).Return(testElection(), nil)
	parties.On("ListByElection", mock.Anything, int64(1)).Return(testParties(), nil)

	out, err := svc.Preview(context.Background(), service.MatchInput{
		Kind:   service.MatchKindParty,
		Labels: []string{"groenlinks", "Partij van de Arbeid", "", "D66"},
	})

	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.True(t, out[0].Matched)
	assert.Equal(t, match.MethodExact, out[0].Method)
	assert.Equal(t, "GroenLinks", out[0].Name)
	assert.Equal(t, int64(10), *out[0].ID)

	assert.True(t, out[1].Matched)
	assert.Equal(t, match.MethodAlias, out[1].Method)
	assert.Equal(t, int64(11), *out[1].ID)

	assert.False(t, out[2].Matched)
	assert.Nil(t, out[2].ID)
	assert.Empty(t, out[2].Name)
}

func TestMatchService_Preview_PartyFuzzy(t *testing.T) {
	svc, elections, parties, _ := newMatchService()
	elections.On("Current", mock.Anything).Return(testElection(), nil)
	parties.On("ListByElection", mock.Anything, int64(1)).Return(testParties(), nil)

	out, err := svc.Preview(context.Background(), service.MatchInput{
		Kind:   service.MatchKindPartyFuzzy,
		Labels: []string{"GroenLinkss"},
	})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Matched)
	assert.Equal(t, match.MethodFuzzy, out[0].Method)
	assert.GreaterOrEqual(t, out[0].Score, match.FuzzyThreshold)
}

func TestMatchService_Preview_Candidate(t *testing.T) {
	svc, elections, _, candidates := newMatchService()
	elections.On("Current", mock.Anything).Return(testElection(), nil)
	candidates.On("ListByElection", mock.Anything, int64(1)).Return(testCandidates(), nil)

	out, err := svc.Preview(context.Background(), service.MatchInput{
		Kind:   service.MatchKindCandidate,
		Labels: []string{"F. Roosma", "Jansen"},
	})

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Matched)
	assert.Equal(t, "Femke Roosma", out[0].Name)
	assert.Equal(t, match.MethodSurname, out[0].Method)
	assert.False(t, out[1].Matched)
}

func TestMatchService_Preview_InvalidKind(t *testing.T) {
	svc, elections, _, _ := newMatchService()

	_, err := svc.Preview(context.Background(), service.MatchInput{Kind: "motion", Labels: []string{"x"}})

	assert.ErrorIs(t, err, domain.ErrInvalidMatchKind)
	elections.AssertNotCalled(t, "Current", mock.Anything)
}
