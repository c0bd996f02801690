package handlers

import (
	"github.com/keonU206/Hey-Young-system/internal/adapters/http/middleware"
	"github.com/keonU206/Hey-Young-system/internal/core/services"
	"github.com/keonU206/Hey-Young-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SettingHandler handles the system settings endpoints
type SettingHandler struct {
	service *services.SettingService
}

// NewSettingHandler creates a new setting handler
func NewSettingHandler(service *services.SettingService) *SettingHandler {
	return &SettingHandler{service: service}
}

// Get returns the current system settings
// @Summary Get system settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/admin/setting [get]
func (h *SettingHandler) Get(c *fiber.Ctx) error {
	settings, err := h.service.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load settings")
	}
	return response.Success(c, "Settings retrieved", settings)
}

// Update upserts system settings
// @Summary Update system settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body services.UpdateSettingsInput true "Settings to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /api/admin/setting [patch]
func (h *SettingHandler) Update(c *fiber.Ctx) error {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req services.UpdateSettingsInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.service.Update(c.Context(), adminID, &req); err != nil {
		return response.InternalServerError(c, "Failed to update settings")
	}

	settings, err := h.service.Get(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to load settings")
	}

	return response.Success(c, "Settings updated", settings)
}
