package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vibecheck/internal/service"
)

// SearchHandler answers questions over party programs and previews how
// raw labels resolve.
type SearchHandler struct {
	searchService service.SearchService
	matchService  service.MatchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService service.SearchService, matchService service.MatchService) *SearchHandler {
	return &SearchHandler{searchService: searchService, matchService: matchService}
}

// Search handles POST /api/v1/search
func (h *SearchHandler) Search(c *gin.Context) {
	var req service.SearchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "query is required")
		return
	}

	answer, err := h.searchService.Search(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, answer)
}

// Match handles POST /api/v1/match
func (h *SearchHandler) Match(c *gin.Context) {
	var req service.MatchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "kind and labels are required")
		return
	}

	previews, err := h.matchService.Preview(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, previews)
}
