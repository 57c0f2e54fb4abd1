package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prakasam-dev/daybook-api/internal/service"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
	"github.com/prakasam-dev/daybook-api/pkg/response"
)

// ReminderHandler handles reminder endpoints.
type ReminderHandler struct {
	service *service.ReminderService
}

// NewReminderHandler constructs a reminder handler.
func NewReminderHandler(svc *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: svc}
}

// List godoc
// @Summary List reminders
// @Tags Reminders
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	reminders, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminders, nil)
}

// Due godoc
// @Summary Today's elapsed reminders
// @Tags Reminders
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reminders/due [get]
func (h *ReminderHandler) Due(c *gin.Context) {
	due, err := h.service.DueNow(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, due, nil)
}

// Add godoc
// @Summary Add a reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Param payload body service.ReminderRequest true "Reminder payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /reminders [post]
func (h *ReminderHandler) Add(c *gin.Context) {
	var req service.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reminder, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reminder)
}

// Update godoc
// @Summary Update a reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Param id path string true "Reminder ID"
// @Param payload body service.ReminderRequest true "Reminder payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reminders/{id} [put]
func (h *ReminderHandler) Update(c *gin.Context) {
	var req service.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	reminder, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reminder, nil)
}

// Delete godoc
// @Summary Delete a reminder
// @Tags Reminders
// @Produce json
// @Param id path string true "Reminder ID"
// @Success 204
// @Security BearerAuth
// @Router /reminders/{id} [delete]
func (h *ReminderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
