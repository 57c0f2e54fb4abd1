package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prakasam-dev/daybook-api/internal/models"
	"github.com/prakasam-dev/daybook-api/internal/service"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
	"github.com/prakasam-dev/daybook-api/pkg/response"
)

// AttendanceHandler handles attendance endpoints.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler constructs an attendance handler.
func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// List godoc
// @Summary List attendance records
// @Tags Attendance
// @Produce json
// @Param month query string false "Filter month YYYY-MM"
// @Param status query string false "Filter status"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance [get]
func (h *AttendanceHandler) List(c *gin.Context) {
	filter := models.AttendanceFilter{
		Month:  c.Query("month"),
		Status: models.AttendanceStatus(c.Query("status")),
	}
	records, summary, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil, map[string]interface{}{"summary": summary})
}

// Week godoc
// @Summary One week of the attendance grid
// @Tags Attendance
// @Produce json
// @Param week query int false "Week index, 0 is most recent"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance/week [get]
func (h *AttendanceHandler) Week(c *gin.Context) {
	page, err := h.service.WeekPage(c.Request.Context(), queryInt(c, "week", 0))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}

// Mark godoc
// @Summary Record a day's attendance
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.MarkAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /attendance [post]
func (h *AttendanceHandler) Mark(c *gin.Context) {
	var req service.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	record, err := h.service.Mark(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Delete godoc
// @Summary Delete a day's record
// @Tags Attendance
// @Produce json
// @Param date path string true "Date YYYY-MM-DD"
// @Success 204
// @Security BearerAuth
// @Router /attendance/{date} [delete]
func (h *AttendanceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("date")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
