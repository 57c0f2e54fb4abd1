package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/service"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
	"github.com/prakasam-dev/daybook-api/pkg/response"
)

// GoalHandler handles goal tracker endpoints.
type GoalHandler struct {
	service *service.GoalService
}

// NewGoalHandler constructs a goal handler.
func NewGoalHandler(svc *service.GoalService) *GoalHandler {
	return &GoalHandler{service: svc}
}

// List godoc
// @Summary List goals
// @Tags Goals
// @Produce json
// @Param type query string false "Filter by cadence"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /goals [get]
func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.service.List(c.Request.Context(), c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, goals, nil)
}

// Add godoc
// @Summary Add a goal
// @Tags Goals
// @Accept json
// @Produce json
// @Param payload body service.GoalRequest true "Goal payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /goals [post]
func (h *GoalHandler) Add(c *gin.Context) {
	var req service.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	goal, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, goal)
}

// Update godoc
// @Summary Update a goal
// @Tags Goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param payload body service.GoalRequest true "Goal payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /goals/{id} [put]
func (h *GoalHandler) Update(c *gin.Context) {
	var req service.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	goal, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, goal, nil)
}

// SetStatus godoc
// @Summary Toggle goal completion
// @Tags Goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param payload body object true "Status payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /goals/{id}/status [patch]
func (h *GoalHandler) SetStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	goal, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), models.GoalStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, goal, nil)
}

// Delete godoc
// @Summary Delete a goal
// @Tags Goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 204
// @Security BearerAuth
// @Router /goals/{id} [delete]
func (h *GoalHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
