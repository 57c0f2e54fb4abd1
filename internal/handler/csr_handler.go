package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/service"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
	"github.com/prakasam-dev/daybook-api/pkg/response"
)

// CSRHandler handles CSR registry endpoints.
type CSRHandler struct {
	service *service.CSRService
}

// NewCSRHandler constructs a CSR handler.
func NewCSRHandler(svc *service.CSRService) *CSRHandler {
	return &CSRHandler{service: svc}
}

// List godoc
// @Summary List CSR records
// @Tags CSR
// @Produce json
// @Param financial_year query string false "Filter financial year"
// @Param ngo query string false "Filter NGO name"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /csr [get]
func (h *CSRHandler) List(c *gin.Context) {
	filter := models.CSRFilter{
		FinancialYear: c.Query("financial_year"),
		NGOName:       c.Query("ngo"),
	}
	events, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, nil)
}

// Options godoc
// @Summary CSR form dropdown values
// @Tags CSR
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /csr/options [get]
func (h *CSRHandler) Options(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Options(), nil)
}

// Add godoc
// @Summary Add a CSR record
// @Tags CSR
// @Accept json
// @Produce json
// @Param payload body service.CSREventRequest true "CSR payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /csr [post]
func (h *CSRHandler) Add(c *gin.Context) {
	var req service.CSREventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update a CSR record
// @Tags CSR
// @Accept json
// @Produce json
// @Param index path int true "Record position"
// @Param payload body service.CSREventRequest true "CSR payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /csr/{index} [put]
func (h *CSRHandler) Update(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "index must be a number"))
		return
	}
	var req service.CSREventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	event, err := h.service.Update(c.Request.Context(), index, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// Delete godoc
// @Summary Delete a CSR record
// @Tags CSR
// @Produce json
// @Param index path int true "Record position"
// @Success 204
// @Security BearerAuth
// @Router /csr/{index} [delete]
func (h *CSRHandler) Delete(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "index must be a number"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), index); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
