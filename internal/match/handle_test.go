package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vibecheck/internal/match"
)

func TestBestProfile(t *testing.T) {
	profiles := []match.Profile{
		{Handle: "someone.bsky.social", DisplayName: "Someone Else"},
		{Handle: "rene.bsky.social", DisplayName: "Rene de Vries"},
		{Handle: "nameless.bsky.social", DisplayName: ""},
	}

	t.Run("accept after ascii folding", func(t *testing.T) {
		got := match.BestProfile("René de Vries", profiles, match.BlueskyThresholds)
		assert.Equal(t, match.DecisionAccept, got.Decision)
		assert.Equal(t, "rene.bsky.social", got.Profile.Handle)
		assert.Equal(t, 1.0, got.Score)
	})

	t.Run("suggest", func(t *testing.T) {
		got := match.BestProfile("Jan de Vries", []match.Profile{
			{Handle: "jdv", DisplayName: "Jan de Vries Amsterdam"},
		}, match.BlueskyThresholds)
		assert.Equal(t, match.DecisionSuggest, got.Decision)
		assert.InDelta(t, 24.0/34.0, got.Score, 1e-9)
	})

	t.Run("linkedin accepts lower scores", func(t *testing.T) {
		got := match.BestProfile("Jan de Vries", []match.Profile{
			{Handle: "jdv", DisplayName: "Jan de Vries Amsterdam"},
		}, match.Thresholds{Accept: 0.70, Suggest: 0.55})
		assert.Equal(t, match.DecisionAccept, got.Decision)
	})

	t.Run("none", func(t *testing.T) {
		got := match.BestProfile("Jan de Vries", []match.Profile{{Handle: "x", DisplayName: "xyz"}}, match.BlueskyThresholds)
		assert.Equal(t, match.DecisionNone, got.Decision)
	})

	t.Run("no profiles", func(t *testing.T) {
		got := match.BestProfile("Jan de Vries", nil, match.LinkedInThresholds)
		assert.Equal(t, match.DecisionNone, got.Decision)
		assert.Empty(t, got.Profile.Handle)
	})
}

func TestSlugToName(t *testing.T) {
	assert.Equal(t, "jan de vries", match.SlugToName("jan-de-vries-4a1b2c"))
	assert.Equal(t, "jan de vries", match.SlugToName("jan-de-vries"))
	assert.Equal(t, "anna b", match.SlugToName("anna-b-12ab"))
	assert.Equal(t, "anna b 12", match.SlugToName("anna-b-12"))
}

func TestTally(t *testing.T) {
	tally := match.NewTally()
	tally.Add("Partij X")
	tally.Add("Partij Y")
	tally.Add("Partij Y")
	tally.Add("Partij Z")
	assert.True(t, tally.Record(match.Result{RawLabel: "Partij Z"}))
	assert.False(t, tally.Record(match.Result{RawLabel: "GL", Matched: true, ID: 1}))

	assert.Equal(t, 3, tally.Len())
	assert.Equal(t, []match.TallyEntry{
		{Label: "Partij Y", Count: 2},
		{Label: "Partij Z", Count: 2},
		{Label: "Partij X", Count: 1},
	}, tally.MostCommon())
}
