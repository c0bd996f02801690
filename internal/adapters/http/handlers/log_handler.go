package handlers

import (
	"github.com/keonU206/Hey-Young-system/internal/core/services"
	"github.com/keonU206/Hey-Young-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// recentLogLimit caps the admin log view at the newest entries
const recentLogLimit = 100

// LogHandler handles the audit log endpoints
type LogHandler struct {
	audit *services.AuditService
}

// NewLogHandler creates a new log handler
func NewLogHandler(audit *services.AuditService) *LogHandler {
	return &LogHandler{audit: audit}
}

// Recent returns the newest audit log entries with actors resolved
// @Summary List recent audit logs
// @Tags Logs
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/admin/logs [get]
func (h *LogHandler) Recent(c *fiber.Ctx) error {
	logs, err := h.audit.Recent(c.Context(), recentLogLimit)
	if err != nil {
		return response.InternalServerError(c, "Failed to load logs")
	}
	return response.Success(c, "Logs retrieved", logs)
}
