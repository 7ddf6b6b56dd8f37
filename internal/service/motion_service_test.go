package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vibecheck/internal/domain"
	"vibecheck/internal/match"
	"vibecheck/internal/port"
	"vibecheck/internal/service"
	"vibecheck/mocks"
)

type motionDeps struct {
	elections  *mocks.MockElectionRepo
	parties    *mocks.MockPartyRepo
	candidates *mocks.MockCandidateRepo
	motions    *mocks.MockMotionRepo
	source     *mocks.MockCouncilSource
	reports    *mocks.MockReportService
}

func newMotionService() (service.MotionService, motionDeps) {
	d := motionDeps{
		elections:  new(mocks.MockElectionRepo),
		parties:    new(mocks.MockPartyRepo),
		candidates: new(mocks.MockCandidateRepo),
		motions:    new(mocks.MockMotionRepo),
		source:     new(mocks.MockCouncilSource),
		reports:    new(mocks.MockReportService),
	}
	svc := service.NewMotionService(d.elections, d.parties, d.candidates, d.motions, d.source,
		match.NewPartyMatcher(match.DefaultAliases()), d.reports)
	d.elections.On("Current", mock.Anything).Return(testElection(), nil)
	d.parties.On("ListByElection", mock.Anything, int64(1)).Return(testParties(), nil)
	d.candidates.On("ListByElection", mock.Anything, int64(1)).Return(testCandidates(), nil)
	return svc, d
}

func TestMotionService_FetchMotions_LinksAndReports(t *testing.T) {
	svc, d := newMotionService()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	personID := int64(9001)

	d.source.On("FetchMotions", mock.Anything, from, to).Return([]port.CouncilMotion{
		{
			ItemID:         1,
			MeetingEventID: 77,
			Title:          "Motie meer bomen",
			Type:           "Motie",
			Result:         "Aangenomen",
			Parties:        []string{"Groen Links", "Partij van de Ouderen"},
			Submitters: []port.CouncilSubmitter{
				{ID: &personID, Name: "F. Roosma"},
				{Name: "J. Onbekend"},
			},
		},
		{ItemID: 2, Title: ""},
	}, nil)

	var stored *domain.MotionWithLinks
	d.motions.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.MotionWithLinks")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.MotionWithLinks) }).
		Return(nil).Once()

	d.reports.On("Report", mock.Anything, "notubiz",
		mock.MatchedBy(func(t *match.Tally) bool {
			mc := t.MostCommon()
			return len(mc) == 1 && mc[0].Label == "Partij van de Ouderen"
		}),
		mock.MatchedBy(func(t *match.Tally) bool {
			mc := t.MostCommon()
			return len(mc) == 1 && mc[0].Label == "J. Onbekend"
		}),
	).Return(domain.UnmatchedReport{Source: "notubiz"}, nil)

	result, err := svc.FetchMotions(context.Background(), service.FetchMotionsInput{From: from, To: to})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Fetched)
	assert.Equal(t, 1, result.Stored)

	require.NotNil(t, stored)
	assert.Equal(t, int64(1), stored.ElectionID)
	assert.Equal(t, "Motie", *stored.MotionType)
	assert.Equal(t, int64(77), *stored.MeetingEventID)
	assert.Nil(t, stored.Explanation)

	require.Len(t, stored.Parties, 2)
	assert.Equal(t, int64(10), *stored.Parties[0].PartyID)
	assert.Equal(t, "Groen Links", stored.Parties[0].NotubizPartyName)
	assert.Nil(t, stored.Parties[1].PartyID)

	require.Len(t, stored.Candidates, 2)
	assert.Equal(t, int64(100), *stored.Candidates[0].CandidateID)
	assert.Equal(t, &personID, stored.Candidates[0].NotubizPersonID)
	assert.Nil(t, stored.Candidates[1].CandidateID)

	d.motions.AssertExpectations(t)
	d.reports.AssertExpectations(t)
}

func TestMotionService_FetchMotions_DefaultRange(t *testing.T) {
	svc, d := newMotionService()

	d.source.On("FetchMotions", mock.Anything, service.DefaultMotionsFrom, mock.AnythingOfType("time.Time")).
		Return([]port.CouncilMotion{}, nil)
	d.reports.On("Report", mock.Anything, "notubiz", mock.Anything, mock.Anything).
		Return(domain.UnmatchedReport{Source: "notubiz"}, nil)

	result, err := svc.FetchMotions(context.Background(), service.FetchMotionsInput{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Fetched)
	d.source.AssertExpectations(t)
}

func TestMotionService_FetchMotions_StoreFailureIsSkipped(t *testing.T) {
	svc, d := newMotionService()

	d.source.On("FetchMotions", mock.Anything, mock.Anything, mock.Anything).Return([]port.CouncilMotion{
		{ItemID: 1, Title: "Eerste"},
		{ItemID: 2, Title: "Tweede"},
	}, nil)
	d.motions.On("Upsert", mock.Anything, mock.MatchedBy(func(m *domain.MotionWithLinks) bool {
		return m.NotubizItemID == 1
	})).Return(errors.New("constraint"))
	d.motions.On("Upsert", mock.Anything, mock.MatchedBy(func(m *domain.MotionWithLinks) bool {
		return m.NotubizItemID == 2
	})).Return(nil)
	d.reports.On("Report", mock.Anything, "notubiz", mock.Anything, mock.Anything).
		Return(domain.UnmatchedReport{Source: "notubiz"}, nil)

	result, err := svc.FetchMotions(context.Background(), service.FetchMotionsInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Stored)
	assert.Equal(t, 1, result.Failed)
}

func TestMotionService_FetchMotions_SourceError(t *testing.T) {
	svc, d := newMotionService()

	d.source.On("FetchMotions", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	result, err := svc.FetchMotions(context.Background(), service.FetchMotionsInput{})

	assert.Nil(t, result)
	assert.ErrorContains(t, err, "fetching motions")
	d.motions.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestMotionService_FetchMotions_InvertedRange(t *testing.T) {
	svc, _ := newMotionService()

	_, err := svc.FetchMotions(context.Background(), service.FetchMotionsInput{
		From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Error(t, err)
}

func TestMotionService_FetchMotions_NoElection(t *testing.T) {
	elections := new(mocks.MockElectionRepo)
	elections.On("Current", mock.Anything).Return(nil, domain.ErrElectionNotFound)
	svc := service.NewMotionService(elections, nil, nil, nil, nil, match.NewPartyMatcher(match.DefaultAliases()), nil)

	_, err := svc.FetchMotions(context.Background(), service.FetchMotionsInput{})

	assert.ErrorIs(t, err, domain.ErrElectionNotFound)
}
