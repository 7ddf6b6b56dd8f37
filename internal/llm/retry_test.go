package llm_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vibecheck/internal/llm"
	"vibecheck/mocks"
)

var shortDelays = []time.Duration{0, time.Millisecond, time.Millisecond, time.Millisecond}

func TestRetryingGenerator_RetriesOverload(t *testing.T) {
	g := new(mocks.MockTextGenerator)
	g.On("Generate", mock.Anything, testInput).Return(nil, llm.NewOverloadedError("claude", errors.New("529"))).Twice()
	g.On("Generate", mock.Anything, testInput).Return(output("claude"), nil).Once()

	rg := llm.NewRetryingGenerator(g, shortDelays)

	result, err := rg.Generate(context.Background(), testInput)

	require.NoError(t, err)
	assert.Equal(t, "claude", result.ModelUsed)
	g.AssertNumberOfCalls(t, "Generate", 3)
}

func TestRetryingGenerator_GivesUpAfterLastDelay(t *testing.T) {
	g := new(mocks.MockTextGenerator)
	g.On("Generate", mock.Anything, testInput).Return(nil, llm.NewOverloadedError("claude", errors.New("529")))

	rg := llm.NewRetryingGenerator(g, shortDelays)

	_, err := rg.Generate(context.Background(), testInput)

	assert.True(t, llm.IsOverloaded(err))
	g.AssertNumberOfCalls(t, "Generate", 4)
}

func TestRetryingGenerator_OtherErrorsAreNotRetried(t *testing.T) {
	g := new(mocks.MockTextGenerator)
	g.On("Generate", mock.Anything, testInput).Return(nil, errors.New("bad request"))

	rg := llm.NewRetryingGenerator(g, shortDelays)

	_, err := rg.Generate(context.Background(), testInput)

	assert.EqualError(t, err, "bad request")
	g.AssertNumberOfCalls(t, "Generate", 1)
}

func TestRetryingGenerator_ContextCanceled(t *testing.T) {
	g := new(mocks.MockTextGenerator)
	g.On("Generate", mock.Anything, testInput).Return(nil, llm.NewOverloadedError("claude", errors.New("529")))

	rg := llm.NewRetryingGenerator(g, []time.Duration{0, time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rg.Generate(ctx, testInput)

	assert.ErrorIs(t, err, context.Canceled)
	g.AssertNumberOfCalls(t, "Generate", 1)
}
