package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vibecheck/internal/domain"
	"vibecheck/internal/port"
	"vibecheck/internal/service"
	"vibecheck/mocks"
)

func newSummaryService() (service.SummaryService, *mocks.MockPartyRepo, *mocks.MockMotionRepo, *mocks.MockTextGenerator) {
	parties := new(mocks.MockPartyRepo)
	motions := new(mocks.MockMotionRepo)
	gen := new(mocks.MockTextGenerator)
	return service.NewSummaryService(parties, motions, new(mocks.MockTopicComparisonRepo), gen), parties, motions, gen
}

func newComparisonService() (service.SummaryService, *mocks.MockPartyRepo, *mocks.MockTopicComparisonRepo, *mocks.MockTextGenerator) {
	parties := new(mocks.MockPartyRepo)
	comparisons := new(mocks.MockTopicComparisonRepo)
	gen := new(mocks.MockTextGenerator)
	return service.NewSummaryService(parties, new(mocks.MockMotionRepo), comparisons, gen), parties, comparisons, gen
}

func TestSummaryService_SummarizePrograms(t *testing.T) {
	svc, parties, _, gen := newSummaryService()

	list := testParties()
	list[0].ProgramText = strPtr("Wij willen een groene stad.")
	list[1].ProgramText = strPtr("   ")
	parties.On("ListByElection", mock.Anything, int64(1)).Return(list, nil)

	gen.On("Generate", mock.Anything, mock.MatchedBy(func(in port.GenerateInput) bool {
		return strings.Contains(in.Prompt, "GroenLinks") && strings.Contains(in.Prompt, "Wij willen een groene stad.")
	})).Return(&port.GenerateOutput{Text: "Groen en sociaal.", ModelUsed: "claude"}, nil)
	parties.On("UpdateDescription", mock.Anything, int64(10), "Groen en sociaal.").Return(nil)

	result, err := svc.SummarizePrograms(context.Background(), testElection(), "")

	require.NoError(t, err)
	assert.Equal(t, &service.SummaryResult{Written: 1, Skipped: 2}, result)
	parties.AssertExpectations(t)
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestSummaryService_SummarizePrograms_GeneratorFailure(t *testing.T) {
	svc, parties, _, gen := newSummaryService()

	list := testParties()[:1]
	list[0].ProgramText = strPtr("Programma")
	parties.On("ListByElection", mock.Anything, int64(1)).Return(list, nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("overloaded"))

	result, err := svc.SummarizePrograms(context.Background(), testElection(), "GL")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	parties.AssertNotCalled(t, "UpdateDescription", mock.Anything, mock.Anything, mock.Anything)
}

func TestSummaryService_SummarizeMotions(t *testing.T) {
	svc, parties, motions, gen := newSummaryService()

	parties.On("ListByElection", mock.Anything, int64(1)).Return(testParties(), nil)
	motions.On("ListByParty", mock.Anything, int64(11), 0, 500).Return([]domain.Motion{
		{Title: "Meer sociale huur", MotionType: strPtr("Motie"), Result: strPtr("Aangenomen")},
		{Title: "Geen kap van bomen"},
	}, 2, nil)

	gen.On("Generate", mock.Anything, mock.MatchedBy(func(in port.GenerateInput) bool {
		return strings.Contains(in.Prompt, "- [Motie] Meer sociale huur (Aangenomen)") &&
			strings.Contains(in.Prompt, "- [?] Geen kap van bomen")
	})).Return(&port.GenerateOutput{Text: "De PvdA richt zich op wonen."}, nil)
	parties.On("UpdateMotionSummary", mock.Anything, int64(11), "De PvdA richt zich op wonen.").Return(nil)

	result, err := svc.SummarizeMotions(context.Background(), testElection(), "pvda")

	require.NoError(t, err)
	assert.Equal(t, &service.SummaryResult{Written: 1}, result)
	parties.AssertExpectations(t)
}

func TestSummaryService_SummarizeMotions_NoMotionsSkipped(t *testing.T) {
	svc, parties, motions, gen := newSummaryService()

	parties.On("ListByElection", mock.Anything, int64(1)).Return(testParties()[2:], nil)
	motions.On("ListByParty", mock.Anything, int64(12), 0, 500).Return([]domain.Motion{}, 0, nil)

	result, err := svc.SummarizeMotions(context.Background(), testElection(), "")

	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestSummaryService_SummarizeSocial(t *testing.T) {
	svc, _, _, gen := newSummaryService()

	gen.On("Generate", mock.Anything, mock.MatchedBy(func(in port.GenerateInput) bool {
		return strings.Contains(in.Prompt, "Femke Roosma") && in.System != ""
	})).Return(&port.GenerateOutput{Text: "Actief over wonen."}, nil)

	summary, err := svc.SummarizeSocial(context.Background(), testElection(), "Femke Roosma", []string{"Wonen!"})

	require.NoError(t, err)
	assert.Equal(t, "Actief over wonen.", summary)
}

func TestSummaryService_SummarizeSocial_NoPosts(t *testing.T) {
	svc, _, _, gen := newSummaryService()

	_, err := svc.SummarizeSocial(context.Background(), testElection(), "Zita Pels", nil)

	assert.Error(t, err)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestSummaryService_CompareTopics(t *testing.T) {
	svc, parties, comparisons, gen := newComparisonService()

	list := testParties()
	list[0].ProgramText = strPtr("Inleiding over de stad.\n\nWe bouwen 10.000 betaalbare woningen.\n\nMeer bomen in elke straat.")
	list[1].ProgramText = strPtr("Geen woord over het onderwerp.")
	parties.On("ListByElection", mock.Anything, int64(1)).Return(list, nil)

	gen.On("Generate", mock.Anything, mock.MatchedBy(func(in port.GenerateInput) bool {
		return strings.Contains(in.Prompt, "### GroenLinks\nWe bouwen 10.000 betaalbare woningen.\n\n### PvdA") &&
			strings.Contains(in.Prompt, "### PvdA\nGeen woord over het onderwerp.") &&
			!strings.Contains(in.Prompt, "Partij voor de Dieren") &&
			!strings.Contains(in.Prompt, "Meer bomen")
	})).Return(&port.GenerateOutput{Text: "```json\n{\"GroenLinks\": \"Bouwen.\", \"PvdA\": \"Onbekend.\"}\n```"}, nil)

	var saved *domain.TopicComparison
	comparisons.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.TopicComparison")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.TopicComparison) }).
		Return(nil)

	result, err := svc.CompareTopics(context.Background(), testElection(), []string{" Betaalbare woningen ", ""})

	require.NoError(t, err)
	assert.Equal(t, &service.SummaryResult{Written: 1}, result)
	require.NotNil(t, saved)
	assert.Equal(t, int64(1), saved.ElectionID)
	assert.Equal(t, "Betaalbare woningen", saved.TopicName)
	var positions map[string]string
	require.NoError(t, json.Unmarshal(saved.Comparison, &positions))
	assert.Equal(t, map[string]string{"GroenLinks": "Bouwen.", "PvdA": "Onbekend."}, positions)
}

func TestSummaryService_CompareTopics_ExcerptCapped(t *testing.T) {
	svc, parties, comparisons, gen := newComparisonService()

	para := "Wonen " + strings.Repeat("x", 2000)
	list := testParties()[:1]
	list[0].ProgramText = strPtr(para + "\n\n" + para + "\n\nWonen is het LAATSTE punt.")
	parties.On("ListByElection", mock.Anything, int64(1)).Return(list, nil)

	gen.On("Generate", mock.Anything, mock.MatchedBy(func(in port.GenerateInput) bool {
		return !strings.Contains(in.Prompt, "LAATSTE") && strings.Count(in.Prompt, "x") == 2986
	})).Return(&port.GenerateOutput{Text: `{"GroenLinks": "Meer woningen."}`}, nil)
	comparisons.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.CompareTopics(context.Background(), testElection(), []string{"wonen"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Written)
}

func TestSummaryService_CompareTopics_RawReplyKept(t *testing.T) {
	svc, parties, comparisons, gen := newComparisonService()

	list := testParties()[:1]
	list[0].ProgramText = strPtr("Veilig fietsen.")
	parties.On("ListByElection", mock.Anything, int64(1)).Return(list, nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return(&port.GenerateOutput{Text: "GroenLinks wil veilige fietspaden."}, nil)
	comparisons.On("Upsert", mock.Anything, mock.MatchedBy(func(c *domain.TopicComparison) bool {
		var v map[string]string
		return json.Unmarshal(c.Comparison, &v) == nil && v["raw_response"] == "GroenLinks wil veilige fietspaden."
	})).Return(nil)

	result, err := svc.CompareTopics(context.Background(), testElection(), []string{"verkeer"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Written)
	comparisons.AssertExpectations(t)
}

func TestSummaryService_CompareTopics_SkipsWithoutPrograms(t *testing.T) {
	svc, parties, comparisons, gen := newComparisonService()

	parties.On("ListByElection", mock.Anything, int64(1)).Return(testParties(), nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("unexpected"))

	result, err := svc.CompareTopics(context.Background(), testElection(), []string{"wonen", "klimaat"})

	require.NoError(t, err)
	assert.Equal(t, &service.SummaryResult{Skipped: 2}, result)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	comparisons.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSummaryService_CompareTopics_GeneratorFailure(t *testing.T) {
	svc, parties, comparisons, gen := newComparisonService()

	list := testParties()[:1]
	list[0].ProgramText = strPtr("Klimaat voorop.")
	parties.On("ListByElection", mock.Anything, int64(1)).Return(list, nil)
	gen.On("Generate", mock.Anything, mock.Anything).Return(nil, errors.New("overloaded"))

	result, err := svc.CompareTopics(context.Background(), testElection(), []string{"klimaat"})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	comparisons.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
