package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"vibecheck/internal/domain"
	"vibecheck/internal/llm"
	"vibecheck/internal/port"
)

// motionsPerSummary caps how many motions feed one party's motion summary.
const motionsPerSummary = 500

// SummaryResult counts the summaries written by a run.
type SummaryResult struct {
	Written int `json:"written"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// SummaryService writes LLM summaries of programs, motions and social posts,
// and compares party positions per topic.
type SummaryService interface {
	SummarizePrograms(ctx context.Context, election *domain.Election, partyFilter string) (*SummaryResult, error)
	SummarizeMotions(ctx context.Context, election *domain.Election, partyFilter string) (*SummaryResult, error)
	SummarizeSocial(ctx context.Context, election *domain.Election, name string, posts []string) (string, error)
	CompareTopics(ctx context.Context, election *domain.Election, topics []string) (*SummaryResult, error)
}

type summaryService struct {
	parties     port.PartyRepository
	motions     port.MotionRepository
	comparisons port.TopicComparisonRepository
	generator   port.TextGenerator
}

// NewSummaryService creates a new SummaryService implementation.
func NewSummaryService(
	parties port.PartyRepository,
	motions port.MotionRepository,
	comparisons port.TopicComparisonRepository,
	generator port.TextGenerator,
) SummaryService {
	return &summaryService{parties: parties, motions: motions, comparisons: comparisons, generator: generator}
}

func (s *summaryService) SummarizePrograms(ctx context.Context, election *domain.Election, partyFilter string) (*SummaryResult, error) {
	parties, err := s.selectParties(ctx, election.ID, partyFilter)
	if err != nil {
		return nil, err
	}
	prompts := promptsFor(election)
	result := &SummaryResult{}

	for i := range parties {
		p := &parties[i]
		text := strings.TrimSpace(deref(p.ProgramText))
		if text == "" {
			result.Skipped++
			continue
		}
		summary, err := s.generate(ctx, prompts, prompts.ProgramSummary(p.Name, text))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("summaryService.SummarizePrograms: WARNING: %s: %v", p.Name, err)
			result.Failed++
			continue
		}
		if err := s.parties.UpdateDescription(ctx, p.ID, summary); err != nil {
			return nil, err
		}
		log.Printf("summaryService.SummarizePrograms: summarized %s (%d chars)", p.Name, len(summary))
		result.Written++
	}
	return result, nil
}

func (s *summaryService) SummarizeMotions(ctx context.Context, election *domain.Election, partyFilter string) (*SummaryResult, error) {
	parties, err := s.selectParties(ctx, election.ID, partyFilter)
	if err != nil {
		return nil, err
	}
	prompts := promptsFor(election)
	result := &SummaryResult{}

	for i := range parties {
		p := &parties[i]
		motions, _, err := s.motions.ListByParty(ctx, p.ID, 0, motionsPerSummary)
		if err != nil {
			return nil, err
		}
		if len(motions) == 0 {
			result.Skipped++
			continue
		}

		lines := make([]string, len(motions))
		for j, m := range motions {
			lines[j] = llm.MotionLine(deref(m.MotionType), m.Title, deref(m.Result))
		}
		summary, err := s.generate(ctx, prompts, prompts.MotionSummary(p.Name, strings.Join(lines, "\n")))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("summaryService.SummarizeMotions: WARNING: %s: %v", p.Name, err)
			result.Failed++
			continue
		}
		if err := s.parties.UpdateMotionSummary(ctx, p.ID, summary); err != nil {
			return nil, err
		}
		log.Printf("summaryService.SummarizeMotions: summarized %d motions of %s", len(motions), p.Name)
		result.Written++
	}
	return result, nil
}

func (s *summaryService) SummarizeSocial(ctx context.Context, election *domain.Election, name string, posts []string) (string, error) {
	if len(posts) == 0 {
		return "", fmt.Errorf("no posts to summarize for %s", name)
	}
	prompts := promptsFor(election)
	return s.generate(ctx, prompts, prompts.SocialSummary(name, posts))
}

// CompareTopics writes one comparison per topic from the parties' program
// excerpts on it. Topics no program mentions are skipped.
func (s *summaryService) CompareTopics(ctx context.Context, election *domain.Election, topics []string) (*SummaryResult, error) {
	parties, err := s.parties.ListByElection(ctx, election.ID)
	if err != nil {
		return nil, err
	}
	prompts := promptsFor(election)
	result := &SummaryResult{}

	for _, topic := range topics {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		excerpts := map[string]string{}
		for i := range parties {
			if text := relevantText(deref(parties[i].ProgramText), topic, llm.MaxExcerptChars); text != "" {
				excerpts[parties[i].Name] = text
			}
		}
		if len(excerpts) == 0 {
			log.Printf("summaryService.CompareTopics: WARNING: no program text for %q", topic)
			result.Skipped++
			continue
		}

		reply, err := s.generate(ctx, prompts, prompts.TopicComparison(topic, excerpts))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("summaryService.CompareTopics: WARNING: %s: %v", topic, err)
			result.Failed++
			continue
		}

		comparison := &domain.TopicComparison{
			ElectionID: election.ID,
			TopicName:  topic,
			Comparison: comparisonJSON(reply),
		}
		if err := s.comparisons.Upsert(ctx, comparison); err != nil {
			return nil, err
		}
		log.Printf("summaryService.CompareTopics: compared %d parties on %s", len(excerpts), topic)
		result.Written++
	}
	return result, nil
}

// comparisonJSON stores the parsed party positions, or the reply itself
// under raw_response when it is not a JSON object of strings.
func comparisonJSON(reply string) json.RawMessage {
	var v interface{}
	positions, err := llm.ParseComparison(reply)
	if err != nil {
		log.Printf("summaryService.CompareTopics: WARNING: keeping raw reply: %v", err)
		v = map[string]string{"raw_response": reply}
	} else {
		v = positions
	}
	data, _ := json.Marshal(v)
	return data
}

// relevantText joins the paragraphs of programText that mention any word
// of topic, up to limit runes. Without a match it falls back to the start of
// the program.
func relevantText(programText, topic string, limit int) string {
	if strings.TrimSpace(programText) == "" {
		return ""
	}
	keywords := strings.Fields(strings.ToLower(topic))

	var relevant []string
	total := 0
	for _, para := range strings.Split(programText, "\n\n") {
		lower := strings.ToLower(para)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				relevant = append(relevant, para)
				total += utf8.RuneCountInString(para)
				break
			}
		}
		if total >= limit {
			break
		}
	}
	if len(relevant) > 0 {
		return llm.Truncate(strings.Join(relevant, "\n\n"), limit)
	}
	return llm.Truncate(programText, limit)
}

func (s *summaryService) generate(ctx context.Context, prompts llm.Prompts, prompt string) (string, error) {
	out, err := s.generator.Generate(ctx, port.GenerateInput{
		System: prompts.System(),
		Prompt: prompt,
	})
	if err != nil {
		return "", err
	}
	return out.Text, nil
}

func (s *summaryService) selectParties(ctx context.Context, electionID int64, filter string) ([]domain.Party, error) {
	parties, err := s.parties.ListByElection(ctx, electionID)
	if err != nil {
		return nil, err
	}
	selected := filterParties(parties, filter)
	if len(selected) == 0 && filter != "" {
		log.Printf("summaryService: WARNING: no party matches %q", filter)
	}
	return selected, nil
}

func promptsFor(election *domain.Election) llm.Prompts {
	return llm.NewPrompts(election.City, election.Date.Year())
}

// filterParties keeps the parties named by filter (name or abbreviation,
// ignoring case), or all when filter is blank.
func filterParties(parties []domain.Party, filter string) []domain.Party {
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return parties
	}
	var out []domain.Party
	for _, p := range parties {
		if strings.ToLower(p.Name) == needle || strings.ToLower(p.Abbreviation) == needle {
			out = append(out, p)
		}
	}
	return out
}
