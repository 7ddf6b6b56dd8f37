package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"vibecheck/internal/export"
	"vibecheck/internal/service"
)

// PollHandler serves stored opinion polls.
type PollHandler struct {
	pollService service.PollService
}

// NewPollHandler creates a new PollHandler.
func NewPollHandler(pollService service.PollService) *PollHandler {
	return &PollHandler{pollService: pollService}
}

// List handles GET /api/v1/polls
func (h *PollHandler) List(c *gin.Context) {
	polls, err := h.pollService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, polls)
}

// Latest handles GET /api/v1/polls/latest
func (h *PollHandler) Latest(c *gin.Context) {
	poll, err := h.pollService.Latest(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, poll)
}

// GetByID handles GET /api/v1/polls/:id
func (h *PollHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "poll")
	if !ok {
		return
	}
	poll, err := h.pollService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, poll)
}

// Export handles GET /api/v1/polls/:id/export?format=csv|xlsx
func (h *PollHandler) Export(c *gin.Context) {
	id, ok := parseID(c, "id", "poll")
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	poll, err := h.pollService.Get(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	switch format {
	case export.FormatXLSX:
		err = export.WriteXLSX(&buf, poll)
	default:
		err = export.WriteCSV(&buf, poll)
	}
	if err != nil {
		HandleError(c, fmt.Errorf("exporting poll %d: %w", id, err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(poll, format)))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
