package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"vibecheck/internal/domain"
	"vibecheck/internal/electionfile"
	"vibecheck/internal/match"
	"vibecheck/internal/notubiz"
	"vibecheck/internal/pdftext"
	"vibecheck/internal/polls"
	"vibecheck/internal/port"
	"vibecheck/internal/service"
	"vibecheck/internal/social/bluesky"
	"vibecheck/internal/social/brave"
	s3storage "vibecheck/internal/storage/s3"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load the election file into the database",
		Long: `Upsert the election, its parties and candidates, and chunk each party's
program PDF into documents awaiting embedding.

Example:
  vibecheck ingest
  vibecheck ingest --party GroenLinks --embed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			party, _ := cmd.Flags().GetString("party")
			dataDir, _ := cmd.Flags().GetString("data-dir")
			embed, _ := cmd.Flags().GetBool("embed")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			file, err := electionfile.Load(a.cfg.Election.ConfigPath)
			if err != nil {
				return err
			}
			if dataDir == "" {
				dataDir = a.cfg.Election.DataDir
			}
			if dataDir == "" {
				dataDir = electionfile.DataDir(a.cfg.Election.ConfigPath)
			}

			storage, err := s3storage.NewS3Client(&a.cfg.S3)
			if err != nil {
				log.Printf("WARNING: object storage unavailable, only local programs can be read: %v", err)
			}

			svc := service.NewIngestService(a.elections, a.parties, a.candidates, a.documents, a.posts, storage, pdftext.ExtractBytes)
			result, err := svc.Ingest(cmd.Context(), service.IngestInput{
				File:        file,
				DataDir:     dataDir,
				PartyFilter: party,
			})
			if err != nil {
				return err
			}

			if embed {
				emb, err := a.embedder()
				if err != nil {
					return err
				}
				n, err := service.NewEmbeddingService(a.documents, emb).EmbedPending(cmd.Context(), a.cfg.Embed.BatchSize)
				if err != nil {
					return err
				}
				log.Printf("Embedded %d documents", n)
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().String("party", "", "Only ingest parties whose name or abbreviation matches")
	cmd.Flags().String("data-dir", "", "Directory program paths are relative to")
	cmd.Flags().Bool("embed", false, "Embed the new documents after ingesting")
	return cmd
}

func fetchMotionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch-motions",
		Short: "Import council motions from Notubiz",
		Long: `Read the council meetings in a date range, import every motion handled
in them and link it to the parties and candidates that submitted it.

Example:
  vibecheck fetch-motions --from 2022-03-30 --to 2026-03-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromStr, _ := cmd.Flags().GetString("from")
			toStr, _ := cmd.Flags().GetString("to")

			input := service.FetchMotionsInput{}
			var err error
			if input.From, err = parseDateFlag("from", fromStr); err != nil {
				return err
			}
			if input.To, err = parseDateFlag("to", toStr); err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			reports, err := a.reports()
			if err != nil {
				return err
			}
			source := notubiz.NewClient(notubiz.Config{
				BaseURL:        a.cfg.Notubiz.BaseURL,
				OrganisationID: a.cfg.Notubiz.OrganisationID,
				Version:        a.cfg.Notubiz.Version,
				RequestDelay:   a.cfg.Notubiz.RequestDelay,
				Timeout:        timeout(a.cfg.Notubiz.TimeoutSecs),
			})
			matcher := newPartyMatcher()

			svc := service.NewMotionService(a.elections, a.parties, a.candidates, a.motions, source, matcher, reports)
			result, err := svc.FetchMotions(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().String("from", "", "First meeting date, YYYY-MM-DD (default: start of the council term)")
	cmd.Flags().String("to", "", "Last meeting date, YYYY-MM-DD (default: today)")
	return cmd
}

func fetchPollsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch-polls",
		Short: "Import the polls listed in the election file",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			file, err := electionfile.Load(a.cfg.Election.ConfigPath)
			if err != nil {
				return err
			}
			sources := make([]polls.Source, 0, len(file.PollingSources))
			for _, spec := range file.PollingSources {
				src, err := spec.Source()
				if err != nil {
					return err
				}
				sources = append(sources, src)
			}

			reports, err := a.reports()
			if err != nil {
				return err
			}
			registry := polls.Registry{
				string(polls.SchemaOnderzoekAmsterdam): polls.NewOnderzoekScraper(
					httpClient(a.cfg.Polls.TimeoutSecs), a.cfg.Polls.UserAgent, a.cfg.Polls.RequestDelay),
				string(polls.SchemaManual): polls.ManualScraper{},
			}
			matcher := newPartyMatcher()

			svc := service.NewPollService(a.elections, a.parties, a.polls, registry, matcher, reports)
			result, err := svc.FetchPolls(cmd.Context(), sources)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
}

func fetchSocialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch-social",
		Short: "Import candidates' Bluesky posts and summarize them",
		RunE: func(cmd *cobra.Command, args []string) error {
			party, _ := cmd.Flags().GetString("party")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			gen, err := a.generator()
			if err != nil {
				return err
			}
			feed := bluesky.NewClient(a.cfg.Social.BlueskyURL, a.cfg.Social.BlueskyDelay, timeout(a.cfg.Social.TimeoutSecs))
			summaries := service.NewSummaryService(a.parties, a.motions, a.comparisons, gen)

			svc := service.NewSocialService(a.elections, a.parties, a.candidates, a.posts, feed, summaries)
			result, err := svc.FetchSocial(cmd.Context(), party)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().String("party", "", "Only fetch candidates of parties whose name or abbreviation matches")
	return cmd
}

func hydrateCmd(platform domain.SocialPlatform) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hydrate-" + string(platform),
		Short: fmt.Sprintf("Find %s profiles for candidates in the election file", platform),
		Long: fmt.Sprintf(`Search %s for every candidate without a profile. Confident matches are
written back to the election file; weaker ones are printed as suggestions
for manual review.`, platform),
		RunE: func(cmd *cobra.Command, args []string) error {
			party, _ := cmd.Flags().GetString("party")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			var finder port.ProfileFinder
			switch platform {
			case domain.PlatformBluesky:
				finder = bluesky.NewClient(cfg.Social.BlueskyURL, cfg.Social.BlueskyDelay, timeout(cfg.Social.TimeoutSecs))
			case domain.PlatformLinkedIn:
				if cfg.Social.BraveAPIKey == "" {
					return fmt.Errorf("%w: set VIBECHECK_SOCIAL_BRAVE_API_KEY", brave.ErrMissingAPIKey)
				}
				finder = brave.NewClient(brave.Config{
					BaseURL: cfg.Social.BraveURL,
					APIKey:  cfg.Social.BraveAPIKey,
					Delay:   cfg.Social.BraveDelay,
					Timeout: timeout(cfg.Social.TimeoutSecs),
				})
			default:
				return errors.New("unsupported platform")
			}

			svc := service.NewHydrateService(map[domain.SocialPlatform]port.ProfileFinder{platform: finder})
			result, err := svc.Hydrate(cmd.Context(), service.HydrateInput{
				Platform:    platform,
				ConfigPath:  cfg.Election.ConfigPath,
				PartyFilter: party,
				DryRun:      dryRun,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().String("party", "", "Only search candidates of parties whose name or abbreviation matches")
	cmd.Flags().Bool("dry-run", false, "Report matches without writing the election file")
	return cmd
}

func embedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Embed documents that have no embedding yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			batch, _ := cmd.Flags().GetInt("batch-size")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			emb, err := a.embedder()
			if err != nil {
				return err
			}
			if batch <= 0 {
				batch = a.cfg.Embed.BatchSize
			}
			n, err := service.NewEmbeddingService(a.documents, emb).EmbedPending(cmd.Context(), batch)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]int{"embedded": n})
		},
	}
	cmd.Flags().Int("batch-size", 0, "Documents per embedding request (default from VIBECHECK_EMBED_BATCH_SIZE)")
	return cmd
}

func summarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Write program and motion summaries for each party",
		RunE: func(cmd *cobra.Command, args []string) error {
			party, _ := cmd.Flags().GetString("party")
			only, _ := cmd.Flags().GetString("only")
			if only != "" && only != "programs" && only != "motions" {
				return fmt.Errorf("--only must be programs or motions, got %q", only)
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			gen, err := a.generator()
			if err != nil {
				return err
			}
			election, err := a.elections.Current(cmd.Context())
			if err != nil {
				return err
			}
			svc := service.NewSummaryService(a.parties, a.motions, a.comparisons, gen)

			out := map[string]*service.SummaryResult{}
			if only != "motions" {
				if out["programs"], err = svc.SummarizePrograms(cmd.Context(), election, party); err != nil {
					return err
				}
			}
			if only != "programs" {
				if out["motions"], err = svc.SummarizeMotions(cmd.Context(), election, party); err != nil {
					return err
				}
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().String("party", "", "Only summarize parties whose name or abbreviation matches")
	cmd.Flags().String("only", "", "Summarize only programs or only motions")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare party positions on the election file's topics",
		Long: `For every topic in the election file, gather the program paragraphs that
mention it and ask the model for each party's position. Comparisons are
replaced on every run.

Example:
  vibecheck compare
  vibecheck compare --topic wonen --topic klimaat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			topics, _ := cmd.Flags().GetStringSlice("topic")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if len(topics) == 0 {
				file, err := electionfile.Load(a.cfg.Election.ConfigPath)
				if err != nil {
					return err
				}
				topics = file.Topics
			}
			if len(topics) == 0 {
				log.Printf("No topics defined in %s", a.cfg.Election.ConfigPath)
				return nil
			}

			gen, err := a.generator()
			if err != nil {
				return err
			}
			election, err := a.elections.Current(cmd.Context())
			if err != nil {
				return err
			}
			svc := service.NewSummaryService(a.parties, a.motions, a.comparisons, gen)
			result, err := svc.CompareTopics(cmd.Context(), election, topics)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().StringSlice("topic", nil, "Compare only these topics instead of the election file's")
	return cmd
}

func newPartyMatcher() *match.PartyMatcher {
	aliases := match.DefaultAliases()
	log.Printf("Party matcher loaded with %d aliases", aliases.Len())
	return match.NewPartyMatcher(aliases)
}

func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: expected YYYY-MM-DD: %w", name, err)
	}
	return t, nil
}
