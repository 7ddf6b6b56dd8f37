package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vibecheck/internal/domain"
	"vibecheck/internal/electionfile"
	"vibecheck/internal/match"
	"vibecheck/internal/port"
	"vibecheck/internal/service"
	"vibecheck/mocks"
)

const hydrateYAML = `election:
  name: Gemeenteraadsverkiezingen Amsterdam 2026
  city: Amsterdam
  date: "2026-03-18"

parties:
  - name: GroenLinks
    abbreviation: GL
    candidates:
      - name: Femke Roosma
        position: 1
      - name: Zita Pels
        position: 2
        bluesky: "@zita.example.social"
  - name: PvdA
    abbreviation: PvdA
    candidates:
      - name: Lucas Meijer
        position: 1
`

func writeElectionFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "amsterdam-2026.yaml")
	require.NoError(t, os.WriteFile(path, []byte(hydrateYAML), 0o644))
	return path
}

func newHydrateService() (service.HydrateService, *mocks.MockProfileFinder) {
	finder := new(mocks.MockProfileFinder)
	svc := service.NewHydrateService(map[domain.SocialPlatform]port.ProfileFinder{
		domain.PlatformBluesky: finder,
	})
	return svc, finder
}

func expectProfiles(finder *mocks.MockProfileFinder) {
	finder.On("FindProfiles", mock.Anything, port.ProfileQuery{Name: "Femke Roosma", Party: "GroenLinks", City: "Amsterdam"}).
		Return([]match.Profile{
			{Handle: "femke-fan.example.social", DisplayName: "Fans van Femke"},
			{Handle: "femkeroosma.example.social", DisplayName: "Femke Roosma"},
		}, nil)
	finder.On("FindProfiles", mock.Anything, port.ProfileQuery{Name: "Lucas Meijer", Party: "PvdA", City: "Amsterdam"}).
		Return([]match.Profile{{Handle: "lucasm.example.social", DisplayName: "Lucas M"}}, nil)
}

func TestHydrateService_Hydrate_WritesAccepted(t *testing.T) {
	svc, finder := newHydrateService()
	path := writeElectionFile(t)
	expectProfiles(finder)

	result, err := svc.Hydrate(context.Background(), service.HydrateInput{
		Platform:   domain.PlatformBluesky,
		ConfigPath: path,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Checked)
	assert.True(t, result.Written)
	require.Len(t, result.Accepted, 1)
	assert.Equal(t, "@femkeroosma.example.social", result.Accepted[0].Value)
	require.Len(t, result.Suggested, 1)
	assert.Equal(t, "Lucas Meijer", result.Suggested[0].Candidate)
	assert.Equal(t, match.DecisionSuggest, result.Suggested[0].Decision)

	f, err := electionfile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "@femkeroosma.example.social", f.Parties[0].Candidates[0].Bluesky)
	assert.Equal(t, "@zita.example.social", f.Parties[0].Candidates[1].Bluesky)
	assert.Empty(t, f.Parties[1].Candidates[0].Bluesky)

	finder.AssertNotCalled(t, "FindProfiles", mock.Anything, mock.MatchedBy(func(q port.ProfileQuery) bool {
		return q.Name == "Zita Pels"
	}))
}

func TestHydrateService_Hydrate_DryRunLeavesFile(t *testing.T) {
	svc, finder := newHydrateService()
	path := writeElectionFile(t)
	expectProfiles(finder)

	result, err := svc.Hydrate(context.Background(), service.HydrateInput{
		Platform:   domain.PlatformBluesky,
		ConfigPath: path,
		DryRun:     true,
	})

	require.NoError(t, err)
	assert.Len(t, result.Accepted, 1)
	assert.False(t, result.Written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, hydrateYAML, string(data))
}

func TestHydrateService_Hydrate_PartyFilterAndFailures(t *testing.T) {
	svc, finder := newHydrateService()
	path := writeElectionFile(t)
	finder.On("FindProfiles", mock.Anything, mock.Anything).Return(nil, errors.New("search unavailable"))

	result, err := svc.Hydrate(context.Background(), service.HydrateInput{
		Platform:    domain.PlatformBluesky,
		ConfigPath:  path,
		PartyFilter: "pvda",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Checked)
	assert.Equal(t, 1, result.Failed)
	assert.False(t, result.Written)
}

func TestHydrateService_Hydrate_NoFinderForPlatform(t *testing.T) {
	svc, _ := newHydrateService()

	_, err := svc.Hydrate(context.Background(), service.HydrateInput{
		Platform:   domain.PlatformLinkedIn,
		ConfigPath: writeElectionFile(t),
	})

	assert.ErrorContains(t, err, "no profile finder")
}

func TestHydrateService_Hydrate_MissingFile(t *testing.T) {
	svc, _ := newHydrateService()

	_, err := svc.Hydrate(context.Background(), service.HydrateInput{
		Platform:   domain.PlatformBluesky,
		ConfigPath: filepath.Join(t.TempDir(), "missing.yaml"),
	})

	assert.Error(t, err)
}
