package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vibecheck/internal/domain"
	"vibecheck/internal/electionfile"
	"vibecheck/internal/pdftext"
	"vibecheck/internal/port"
	s3storage "vibecheck/internal/storage/s3"
)

// PDFExtractor turns PDF bytes into cleaned page text.
type PDFExtractor func(data []byte) (*pdftext.Document, error)

// IngestInput names the election file to load.
type IngestInput struct {
	File        *electionfile.File
	DataDir     string
	PartyFilter string
}

// IngestResult summarizes an ingest run.
type IngestResult struct {
	Election   *domain.Election `json:"election"`
	Parties    int              `json:"parties"`
	Candidates int              `json:"candidates"`
	Programs   int              `json:"programs"`
	Chunks     int              `json:"chunks"`
}

// IngestService loads the curated election file into the database and
// chunks party programs for retrieval.
type IngestService interface {
	Ingest(ctx context.Context, input IngestInput) (*IngestResult, error)
}

type ingestService struct {
	elections  port.ElectionRepository
	parties    port.PartyRepository
	candidates port.CandidateRepository
	documents  port.DocumentRepository
	posts      port.SocialPostRepository
	storage    port.ObjectStorage
	extract    PDFExtractor
}

// NewIngestService creates a new IngestService implementation. storage may be
// nil when no program is kept in object storage.
func NewIngestService(
	elections port.ElectionRepository,
	parties port.PartyRepository,
	candidates port.CandidateRepository,
	documents port.DocumentRepository,
	posts port.SocialPostRepository,
	storage port.ObjectStorage,
	extract PDFExtractor,
) IngestService {
	return &ingestService{
		elections:  elections,
		parties:    parties,
		candidates: candidates,
		documents:  documents,
		posts:      posts,
		storage:    storage,
		extract:    extract,
	}
}

func (s *ingestService) Ingest(ctx context.Context, input IngestInput) (*IngestResult, error) {
	spec := input.File.Election
	date, err := spec.ParsedDate()
	if err != nil {
		return nil, err
	}
	slug, err := spec.Slug()
	if err != nil {
		return nil, err
	}

	election := &domain.Election{Slug: slug, Name: spec.Name, City: spec.City, Date: date}
	if err := s.elections.Upsert(ctx, election); err != nil {
		return nil, err
	}
	log.Printf("ingestService.Ingest: election %s (id %d)", election.Slug, election.ID)

	result := &IngestResult{Election: election}
	selected := input.File.FilterParties(input.PartyFilter)
	if len(selected) == 0 {
		log.Printf("ingestService.Ingest: WARNING: no party matches %q", input.PartyFilter)
		return result, nil
	}

	for i := range selected {
		ps := &selected[i]
		party, err := s.upsertParty(ctx, election.ID, ps)
		if err != nil {
			return nil, err
		}
		result.Parties++

		n, err := s.upsertCandidates(ctx, party.ID, ps.Candidates)
		if err != nil {
			return nil, err
		}
		result.Candidates += n

		chunks, err := s.ingestProgram(ctx, party, ps.ProgramPDF, input.DataDir)
		if err != nil {
			return nil, err
		}
		if chunks > 0 {
			result.Programs++
			result.Chunks += chunks
		}
	}

	log.Printf("ingestService.Ingest: %d parties, %d candidates, %d programs (%d chunks)",
		result.Parties, result.Candidates, result.Programs, result.Chunks)
	return result, nil
}

func (s *ingestService) upsertParty(ctx context.Context, electionID int64, ps *electionfile.PartySpec) (*domain.Party, error) {
	party := &domain.Party{
		ElectionID:   electionID,
		Name:         ps.Name,
		Abbreviation: ps.Abbreviation,
		LogoURL:      optional(ps.Logo),
		WebsiteURL:   optional(ps.Website),
		CurrentSeats: ps.CurrentSeats,
		PolledSeats:  ps.PolledSeats,
	}
	if ps.PollUpdatedAt != "" {
		t, err := time.Parse(time.DateOnly, ps.PollUpdatedAt)
		if err != nil {
			log.Printf("ingestService.Ingest: WARNING: %s: poll_updated_at %q is not a date", ps.Name, ps.PollUpdatedAt)
		} else {
			party.PollUpdatedAt = &t
		}
	}
	if err := s.parties.Upsert(ctx, party); err != nil {
		return nil, err
	}
	return party, nil
}

func (s *ingestService) upsertCandidates(ctx context.Context, partyID int64, specs []electionfile.CandidateSpec) (int, error) {
	for _, cs := range specs {
		existing, err := s.candidates.GetByPosition(ctx, partyID, cs.Position)
		if err != nil && !errors.Is(err, domain.ErrCandidateNotFound) {
			return 0, err
		}

		candidate := &domain.Candidate{
			PartyID:        partyID,
			Name:           cs.Name,
			PositionOnList: cs.Position,
			BlueskyHandle:  optional(cs.Bluesky),
			LinkedInURL:    optional(cs.LinkedIn),
		}
		if err := s.candidates.Upsert(ctx, candidate); err != nil {
			return 0, err
		}

		if existing != nil && existing.BlueskyHandle != nil && candidate.BlueskyHandle == nil {
			log.Printf("ingestService.Ingest: %s no longer has a Bluesky handle, clearing posts", cs.Name)
			if err := s.candidates.SetSocialSummary(ctx, candidate.ID, nil); err != nil {
				return 0, err
			}
			if err := s.posts.DeleteByCandidate(ctx, candidate.ID, domain.PlatformBluesky); err != nil {
				return 0, err
			}
		}
	}
	return len(specs), nil
}

func (s *ingestService) ingestProgram(ctx context.Context, party *domain.Party, location, dataDir string) (int, error) {
	if location == "" {
		return 0, nil
	}
	data, err := s.readProgram(ctx, location, dataDir)
	if err != nil {
		log.Printf("ingestService.Ingest: WARNING: program of %s: %v", party.Name, err)
		return 0, nil
	}

	doc, err := s.extract(data)
	if err != nil {
		log.Printf("ingestService.Ingest: WARNING: program of %s: %v", party.Name, err)
		return 0, nil
	}
	if err := s.parties.UpdateProgramText(ctx, party.ID, doc.FullText); err != nil {
		return 0, err
	}

	chunks, err := pdftext.ChunkPages(doc.Pages, pdftext.DefaultChunkSize, pdftext.DefaultOverlap)
	if err != nil {
		return 0, err
	}
	docs := make([]domain.Document, len(chunks))
	for i, c := range chunks {
		meta, err := json.Marshal(domain.ChunkMetadata{
			ChunkIndex:  i,
			TotalChunks: len(chunks),
			PageStart:   c.PageStart,
			PageEnd:     c.PageEnd,
		})
		if err != nil {
			return 0, fmt.Errorf("chunk metadata: %w", err)
		}
		docs[i] = domain.Document{
			PartyID:    party.ID,
			SourceType: domain.DocumentSourceProgram,
			Content:    c.Content,
			Metadata:   meta,
		}
	}
	if err := s.documents.ReplaceForParty(ctx, party.ID, domain.DocumentSourceProgram, docs); err != nil {
		return 0, err
	}
	log.Printf("ingestService.Ingest: %s program: %d pages, %d chunks", party.Name, len(doc.Pages), len(docs))
	return len(docs), nil
}

func (s *ingestService) readProgram(ctx context.Context, location, dataDir string) ([]byte, error) {
	if strings.HasPrefix(location, s3storage.URIScheme) {
		if s.storage == nil {
			return nil, fmt.Errorf("object storage is not configured for %s", location)
		}
		return s.storage.Fetch(ctx, location)
	}

	path := location
	if !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, location)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
