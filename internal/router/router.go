package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"vibecheck/internal/handler"
	"vibecheck/internal/middleware"
)

// Options configures the engine's middleware.
type Options struct {
	AllowedOrigins []string
	// SearchLimiter paces POST /search; nil leaves it unlimited.
	SearchLimiter *rate.Limiter
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	opts Options,
	healthH *handler.HealthHandler,
	electionH *handler.ElectionHandler,
	pollH *handler.PollHandler,
	searchH *handler.SearchHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	v1.GET("/elections/current", electionH.Current)

	parties := v1.Group("/parties")
	parties.GET("", electionH.ListParties)
	parties.GET("/:id", electionH.GetParty)
	parties.GET("/:id/motions", electionH.ListPartyMotions)

	v1.GET("/candidates/:id", electionH.GetCandidate)
	v1.GET("/motions", electionH.ListMotions)
	v1.GET("/comparisons", electionH.ListComparisons)

	polls := v1.Group("/polls")
	polls.GET("", pollH.List)
	polls.GET("/latest", pollH.Latest)
	polls.GET("/:id", pollH.GetByID)
	polls.GET("/:id/export", pollH.Export)

	v1.POST("/search", middleware.RateLimit(opts.SearchLimiter), searchH.Search)
	v1.POST("/match", searchH.Match)

	return r
}
