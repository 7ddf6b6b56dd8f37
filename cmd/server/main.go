package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"vibecheck/internal/config"
	"vibecheck/internal/handler"
	"vibecheck/internal/llm"
	"vibecheck/internal/llm/claude"
	"vibecheck/internal/llm/openai"
	"vibecheck/internal/match"
	"vibecheck/internal/middleware"
	"vibecheck/internal/repository/postgres"
	"vibecheck/internal/router"
	"vibecheck/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	electionRepo := postgres.NewElectionRepo(db)
	partyRepo := postgres.NewPartyRepo(db)
	candidateRepo := postgres.NewCandidateRepo(db)
	documentRepo := postgres.NewDocumentRepo(db)
	motionRepo := postgres.NewMotionRepo(db)
	pollRepo := postgres.NewPollRepo(db)
	postRepo := postgres.NewSocialPostRepo(db)
	comparisonRepo := postgres.NewTopicComparisonRepo(db)

	// Initialize LLM providers
	registerProviders()
	generator, err := llm.NewGeneratorStack(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize generator: %w", err)
	}
	embedder, err := llm.NewEmbedder(&cfg.LLM.Embedding)
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %w", err)
	}

	// Initialize services
	aliases := match.DefaultAliases()
	log.Printf("Party matcher loaded with %d aliases", aliases.Len())
	matcher := match.NewPartyMatcher(aliases)
	electionSvc := service.NewElectionService(electionRepo, partyRepo, candidateRepo, motionRepo, postRepo, comparisonRepo)
	// The API only reads polls; fetching runs from the CLI.
	pollSvc := service.NewPollService(electionRepo, partyRepo, pollRepo, nil, matcher, nil)
	searchSvc := service.NewSearchService(electionRepo, documentRepo, embedder, generator)
	matchSvc := service.NewMatchService(electionRepo, partyRepo, candidateRepo, matcher)
	embeddingSvc := service.NewEmbeddingService(documentRepo, embedder)

	// Initialize handlers
	healthH := handler.NewHealthHandler(db)
	electionH := handler.NewElectionHandler(electionSvc)
	pollH := handler.NewPollHandler(pollSvc)
	searchH := handler.NewSearchHandler(searchSvc, matchSvc)

	// Setup router
	r := router.Setup(router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		SearchLimiter:  middleware.PerMinute(cfg.Server.SearchRPM),
	}, healthH, electionH, pollH, searchH)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Embed.PollInterval > 0 {
		worker := service.NewEmbedWorker(embeddingSvc, service.EmbedWorkerConfig{
			PollInterval: cfg.Embed.PollInterval,
			BatchSize:    cfg.Embed.BatchSize,
		})
		go worker.Start(ctx)
		log.Printf("Embed worker started (interval %s)", cfg.Embed.PollInterval)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func registerProviders() {
	llm.RegisterGenerator("claude", claude.NewGenerator)
	llm.RegisterGenerator("openai", openai.NewGenerator)
	llm.RegisterEmbedder("openai", openai.NewEmbedder)
}
