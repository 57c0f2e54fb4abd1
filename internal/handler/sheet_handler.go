package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prakasam-dev/daybook-api/internal/service"
	appErrors "github.com/prakasam-dev/daybook-api/pkg/errors"
	"github.com/prakasam-dev/daybook-api/pkg/response"
)

// SheetHandler handles spreadsheet editor endpoints.
type SheetHandler struct {
	service        *service.SheetService
	maxUploadBytes int64
}

// NewSheetHandler constructs a sheet handler.
func NewSheetHandler(svc *service.SheetService, maxUploadBytes int64) *SheetHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &SheetHandler{service: svc, maxUploadBytes: maxUploadBytes}
}

// List godoc
// @Summary List imported sheets
// @Tags Sheets
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /sheets [get]
func (h *SheetHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()), nil)
}

// Get godoc
// @Summary Get a sheet
// @Tags Sheets
// @Produce json
// @Param id path string true "Sheet ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /sheets/{id} [get]
func (h *SheetHandler) Get(c *gin.Context) {
	sheet, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}

// Import godoc
// @Summary Import a csv or xlsx file
// @Tags Sheets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Spreadsheet file"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /sheets/import [post]
func (h *SheetHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file exceeds the upload limit"))
		return
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileHeader.Filename)), ".")
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open upload"))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file exceeds the upload limit"))
		return
	}
	name := strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	sheet, err := h.service.Import(c.Request.Context(), name, format, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, sheet)
}

// EditCell godoc
// @Summary Edit one cell
// @Tags Sheets
// @Accept json
// @Produce json
// @Param id path string true "Sheet ID"
// @Param payload body object true "Cell edit"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /sheets/{id}/cell [patch]
func (h *SheetHandler) EditCell(c *gin.Context) {
	var req struct {
		Row   int    `json:"row"`
		Col   int    `json:"col"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	sheet, err := h.service.EditCell(c.Request.Context(), c.Param("id"), req.Row, req.Col, req.Value)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}

// AddRow godoc
// @Summary Append an empty row
// @Tags Sheets
// @Produce json
// @Param id path string true "Sheet ID"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /sheets/{id}/rows [post]
func (h *SheetHandler) AddRow(c *gin.Context) {
	sheet, err := h.service.AddRow(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}

// Export godoc
// @Summary Export a sheet
// @Tags Sheets
// @Produce json
// @Param id path string true "Sheet ID"
// @Param format query string true "csv or xlsx"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /sheets/{id}/export [post]
func (h *SheetHandler) Export(c *gin.Context) {
	result, err := h.service.Export(c.Request.Context(), c.Param("id"), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Discard a sheet
// @Tags Sheets
// @Produce json
// @Param id path string true "Sheet ID"
// @Success 204
// @Security BearerAuth
// @Router /sheets/{id} [delete]
func (h *SheetHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// PrintSchedule godoc
// @Summary Render one day's schedule as PDF
// @Tags Sheets
// @Produce json
// @Param date query string true "Date YYYY-MM-DD"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /schedule/print [post]
func (h *SheetHandler) PrintSchedule(c *gin.Context) {
	raw := c.Query("date")
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD"))
		return
	}
	result, err := h.service.PrintSchedule(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Download godoc
// @Summary Download a rendered export
// @Tags Sheets
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200
// @Router /downloads/{token} [get]
func (h *SheetHandler) Download(c *gin.Context) {
	path, err := h.service.ResolveDownload(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
