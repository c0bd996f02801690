package handlers

import (
	"github.com/keonU206/Hey-Young-system/internal/core/services"
	"github.com/keonU206/Hey-Young-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles admin reporting endpoints
type ReportHandler struct {
	reports *services.ReportService
	audit   *services.AuditService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports *services.ReportService, audit *services.AuditService) *ReportHandler {
	return &ReportHandler{reports: reports, audit: audit}
}

// System returns row counts for every major table
// @Summary System report
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/admin/reports/system [get]
func (h *ReportHandler) System(c *fiber.Ctx) error {
	summary, err := h.reports.Summary(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build system report")
	}
	return response.Success(c, "System report", summary)
}

// Errors returns the newest error-class audit entries
// @Summary Error report
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/admin/reports/errors [get]
func (h *ReportHandler) Errors(c *fiber.Ctx) error {
	logs, err := h.audit.RecentErrors(c.Context(), recentLogLimit)
	if err != nil {
		return response.InternalServerError(c, "Failed to build error report")
	}
	return response.Success(c, "Error report", logs)
}
