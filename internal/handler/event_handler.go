package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/service"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
	"github.com/prakasam-dev/daybook-api/pkg/response"
)

// EventHandler handles event calendar endpoints.
type EventHandler struct {
	service *service.EventService
}

// NewEventHandler constructs an event handler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{service: svc}
}

// List godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Param date query string false "Exact date YYYY-MM-DD"
// @Param date_from query string false "Range start"
// @Param date_to query string false "Range end"
// @Param status query string false "Event status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	req := service.EventListRequest{
		Date:     queryDate(c, "date"),
		DateFrom: queryDate(c, "date_from"),
		DateTo:   queryDate(c, "date_to"),
		Status:   c.Query("status"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "limit", 50),
	}
	events, pagination, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, pagination)
}

// Stats godoc
// @Summary Dashboard event counters
// @Tags Events
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /events/stats [get]
func (h *EventHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Get godoc
// @Summary Get event by id
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Create godoc
// @Summary Schedule an event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req service.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, conflicts, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondWithConflicts(c, conflicts, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update an event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.UpdateEventRequest true "Event payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var req service.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, conflicts, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithConflicts(c, conflicts, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Reschedule godoc
// @Summary Move an event to a new slot
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.RescheduleRequest true "New slot"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /events/{id}/reschedule [post]
func (h *EventHandler) Reschedule(c *gin.Context) {
	var req service.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, conflicts, err := h.service.Reschedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithConflicts(c, conflicts, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// CheckConflicts godoc
// @Summary Probe a candidate slot for conflicts
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.ConflictCheckRequest true "Candidate slot"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /events/conflicts [post]
func (h *EventHandler) CheckConflicts(c *gin.Context) {
	var req service.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	conflicts, err := h.service.CheckConflicts(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"conflicts": conflicts}, nil)
}

// Delete godoc
// @Summary Delete an event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 204
// @Security BearerAuth
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// respondWithConflicts includes the colliding events alongside the
// error so the client can show what blocked the write.
func respondWithConflicts(c *gin.Context, conflicts []models.Event, err error) {
	appErr := appErrors.FromError(err)
	if len(conflicts) == 0 {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, response.Envelope{
		Error: appErr,
		Data:  gin.H{"conflicts": conflicts},
	})
}
