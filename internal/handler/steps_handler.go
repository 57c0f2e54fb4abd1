package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/service"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
	"github.com/prakasam-dev/daybook-api/pkg/response"
)

// StepsHandler handles daily step endpoints.
type StepsHandler struct {
	service *service.StepsService
}

// NewStepsHandler constructs a steps handler.
func NewStepsHandler(svc *service.StepsService) *StepsHandler {
	return &StepsHandler{service: svc}
}

// List godoc
// @Summary List step records
// @Tags Steps
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /steps [get]
func (h *StepsHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Trend godoc
// @Summary Aggregated step trend
// @Tags Steps
// @Produce json
// @Param period query string true "week, month or year"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /steps/trend [get]
func (h *StepsHandler) Trend(c *gin.Context) {
	period := models.StepTrendPeriod(c.DefaultQuery("period", "week"))
	trend, err := h.service.Trend(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, trend, nil)
}

// Add godoc
// @Summary Add a step record
// @Tags Steps
// @Accept json
// @Produce json
// @Param payload body service.StepRequest true "Step payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /steps [post]
func (h *StepsHandler) Add(c *gin.Context) {
	var req service.StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Update a step record
// @Tags Steps
// @Accept json
// @Produce json
// @Param date path string true "Record date YYYY-MM-DD"
// @Param payload body service.StepRequest true "Step payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /steps/{date} [put]
func (h *StepsHandler) Update(c *gin.Context) {
	var req service.StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.Update(c.Request.Context(), c.Param("date"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Delete godoc
// @Summary Delete a step record
// @Tags Steps
// @Produce json
// @Param date path string true "Record date YYYY-MM-DD"
// @Success 204
// @Security BearerAuth
// @Router /steps/{date} [delete]
func (h *StepsHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("date")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
