package handler

import (
	"github.com/gin-gonic/gin"

	"vibecheck/internal/service"
)

// ElectionHandler serves the current election, its parties, candidates,
// council motions and topic comparisons.
type ElectionHandler struct {
	electionService service.ElectionService
}

// NewElectionHandler creates a new ElectionHandler.
func NewElectionHandler(electionService service.ElectionService) *ElectionHandler {
	return &ElectionHandler{electionService: electionService}
}

// Current handles GET /api/v1/elections/current
func (h *ElectionHandler) Current(c *gin.Context) {
	election, err := h.electionService.Current(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, election)
}

// ListParties handles GET /api/v1/parties
func (h *ElectionHandler) ListParties(c *gin.Context) {
	parties, err := h.electionService.ListParties(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, parties)
}

// GetParty handles GET /api/v1/parties/:id
func (h *ElectionHandler) GetParty(c *gin.Context) {
	id, ok := parseID(c, "id", "party")
	if !ok {
		return
	}
	party, err := h.electionService.GetParty(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, party)
}

// ListPartyMotions handles GET /api/v1/parties/:id/motions
func (h *ElectionHandler) ListPartyMotions(c *gin.Context) {
	id, ok := parseID(c, "id", "party")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	motions, total, err := h.electionService.ListPartyMotions(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, motions, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetCandidate handles GET /api/v1/candidates/:id
func (h *ElectionHandler) GetCandidate(c *gin.Context) {
	id, ok := parseID(c, "id", "candidate")
	if !ok {
		return
	}
	candidate, err := h.electionService.GetCandidate(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, candidate)
}

// ListMotions handles GET /api/v1/motions
func (h *ElectionHandler) ListMotions(c *gin.Context) {
	offset, limit := parsePagination(c)

	motions, total, err := h.electionService.ListMotions(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, motions, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// ListComparisons handles GET /api/v1/comparisons
func (h *ElectionHandler) ListComparisons(c *gin.Context) {
	comparisons, err := h.electionService.ListComparisons(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, comparisons)
}
