package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prakasam-dev/daybook-api/internal/service"
	"github.com/prakasam-dev/daybook-api/pkg/response"
)

// BackupHandler exposes the state snapshot endpoint.
type BackupHandler struct {
	service *service.BackupService
}

// NewBackupHandler constructs a backup handler.
func NewBackupHandler(svc *service.BackupService) *BackupHandler {
	return &BackupHandler{service: svc}
}

// Snapshot godoc
// @Summary Dump all state documents
// @Tags Backup
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /backup [get]
func (h *BackupHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil)
}
