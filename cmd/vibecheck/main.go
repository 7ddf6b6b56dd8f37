// Command vibecheck runs the data pipeline: loading the election file,
// importing motions, polls and social posts, and preparing retrieval data.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"vibecheck/internal/config"
	"vibecheck/internal/domain"
	"vibecheck/internal/email/noop"
	"vibecheck/internal/email/ses"
	"vibecheck/internal/llm"
	"vibecheck/internal/llm/claude"
	"vibecheck/internal/llm/openai"
	"vibecheck/internal/port"
	"vibecheck/internal/repository/postgres"
	"vibecheck/internal/service"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "vibecheck",
		Short: "Municipal election data pipeline",
		Long: `vibecheck loads a curated election file into the database and keeps it
current with council motions, opinion polls and candidates' social posts.
It also writes the LLM summaries and topic comparisons the site shows.

The election file is read from VIBECHECK_ELECTION_CONFIG_PATH unless
--config is given.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "", "Election YAML file (overrides VIBECHECK_ELECTION_CONFIG_PATH)")

	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(fetchMotionsCmd())
	rootCmd.AddCommand(fetchPollsCmd())
	rootCmd.AddCommand(fetchSocialCmd())
	rootCmd.AddCommand(hydrateCmd(domain.PlatformBluesky))
	rootCmd.AddCommand(hydrateCmd(domain.PlatformLinkedIn))
	rootCmd.AddCommand(embedCmd())
	rootCmd.AddCommand(summarizeCmd())
	rootCmd.AddCommand(compareCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app holds the configuration and repositories shared by the commands.
type app struct {
	cfg *config.Config
	db  *sqlx.DB

	elections   port.ElectionRepository
	parties     port.PartyRepository
	candidates  port.CandidateRepository
	documents   port.DocumentRepository
	motions     port.MotionRepository
	polls       port.PollRepository
	posts       port.SocialPostRepository
	comparisons port.TopicComparisonRepository
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg.Election.ConfigPath = path
	}
	return cfg, nil
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &app{
		cfg:         cfg,
		db:          db,
		elections:   postgres.NewElectionRepo(db),
		parties:     postgres.NewPartyRepo(db),
		candidates:  postgres.NewCandidateRepo(db),
		documents:   postgres.NewDocumentRepo(db),
		motions:     postgres.NewMotionRepo(db),
		polls:       postgres.NewPollRepo(db),
		posts:       postgres.NewSocialPostRepo(db),
		comparisons: postgres.NewTopicComparisonRepo(db),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) generator() (port.TextGenerator, error) {
	registerProviders()
	gen, err := llm.NewGeneratorStack(&a.cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize generator: %w", err)
	}
	return gen, nil
}

func (a *app) embedder() (port.Embedder, error) {
	registerProviders()
	emb, err := llm.NewEmbedder(&a.cfg.LLM.Embedding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}
	return emb, nil
}

func (a *app) reports() (service.ReportService, error) {
	var sender port.EmailSender
	switch a.cfg.Email.Provider {
	case "ses":
		s, err := ses.NewSESSender(&a.cfg.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		sender = s
	default:
		sender = noop.NewNoopSender(a.cfg.Email.ReportTo)
	}
	return service.NewReportService(sender), nil
}

func registerProviders() {
	llm.RegisterGenerator("claude", claude.NewGenerator)
	llm.RegisterGenerator("openai", openai.NewGenerator)
	llm.RegisterEmbedder("openai", openai.NewEmbedder)
}

func timeout(secs int) time.Duration {
	return time.Duration(secs) * time.Second
}

func httpClient(secs int) *http.Client {
	return &http.Client{Timeout: timeout(secs)}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
