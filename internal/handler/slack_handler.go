package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prakasam-dev/daybook-api/internal/service"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
	"github.com/prakasam-dev/daybook-api/pkg/response"
)

// SlackHandler handles Slack digest endpoints.
type SlackHandler struct {
	service *service.SlackService
}

// NewSlackHandler constructs a Slack handler.
func NewSlackHandler(svc *service.SlackService) *SlackHandler {
	return &SlackHandler{service: svc}
}

// Status godoc
// @Summary Slack integration status
// @Tags Slack
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /slack/status [get]
func (h *SlackHandler) Status(c *gin.Context) {
	response.JSON(c, http.StatusOK, gin.H{"enabled": h.service.Enabled()}, nil)
}

// SendDigest godoc
// @Summary Post the daily digest
// @Tags Slack
// @Produce json
// @Param date query string false "Digest date, defaults to today"
// @Success 202 {object} response.Envelope
// @Security BearerAuth
// @Router /slack/digest [post]
func (h *SlackHandler) SendDigest(c *gin.Context) {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD"))
			return
		}
		date = parsed
	}
	text, err := h.service.SendDigest(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"queued": true, "preview": text}, nil)
}
