package service_test

import (
	"time"

	"vibecheck/internal/domain"
)

func testElection() *domain.Election {
	return &domain.Election{
		ID:   1,
		Slug: "amsterdam-2026",
		Name: "Gemeenteraadsverkiezingen Amsterdam 2026",
		City: "Amsterdam",
		Date: time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC),
	}
}

func testParties() []domain.Party {
	return []domain.Party{
		{ID: 10, ElectionID: 1, Name: "GroenLinks", Abbreviation: "GL"},
		{ID: 11, ElectionID: 1, Name: "PvdA", Abbreviation: "PvdA"},
		{ID: 12, ElectionID: 1, Name: "Partij voor de Dieren", Abbreviation: "PvdD"},
	}
}

func testCandidates() []domain.Candidate {
	handle := "@femke.example.social"
	return []domain.Candidate{
		{ID: 100, PartyID: 10, Name: "Femke Roosma", PositionOnList: 1, BlueskyHandle: &handle},
		{ID: 101, PartyID: 10, Name: "Zita Pels", PositionOnList: 2},
		{ID: 110, PartyID: 11, Name: "Lucas Meijer", PositionOnList: 1},
	}
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func int64Ptr(n int64) *int64 { return &n }
