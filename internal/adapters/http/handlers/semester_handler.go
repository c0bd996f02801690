package handlers

import (
	"errors"

	"github.com/keonU206/Hey-Young-system/internal/adapters/http/middleware"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
	"github.com/keonU206/Hey-Young-system/internal/core/services"
	"github.com/keonU206/Hey-Young-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SemesterHandler handles semester management endpoints
type SemesterHandler struct {
	service *services.SemesterService
}

// NewSemesterHandler creates a new semester handler
func NewSemesterHandler(service *services.SemesterService) *SemesterHandler {
	return &SemesterHandler{service: service}
}

// List returns all semesters
// @Summary List semesters
// @Tags Semesters
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/admin/semesters [get]
func (h *SemesterHandler) List(c *fiber.Ctx) error {
	semesters, err := h.service.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list semesters")
	}
	return response.Success(c, "Semesters retrieved", semesters)
}

// Create adds a semester
// @Summary Create semester
// @Tags Semesters
// @Accept json
// @Produce json
// @Param body body services.CreateSemesterInput true "Semester data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/admin/semesters [post]
func (h *SemesterHandler) Create(c *fiber.Ctx) error {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req services.CreateSemesterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	semester, err := h.service.Create(c.Context(), adminID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid semester data")
		case errors.Is(err, services.ErrBadSemesterDates):
			return response.BadRequest(c, "End date must be after start date")
		case errors.Is(err, services.ErrSemesterNameTaken):
			return response.Conflict(c, "Semester name already in use")
		default:
			return response.InternalServerError(c, "Failed to create semester")
		}
	}

	return response.Created(c, "Semester created", semester)
}

// Update modifies a semester
// @Summary Update semester
// @Tags Semesters
// @Accept json
// @Produce json
// @Param id path int true "Semester ID"
// @Param body body services.UpdateSemesterInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/admin/semesters/{id} [patch]
func (h *SemesterHandler) Update(c *fiber.Ctx) error {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid semester id")
	}

	var req services.UpdateSemesterInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	semester, err := h.service.Update(c.Context(), adminID, uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSemesterNotFound):
			return response.NotFound(c, "Semester not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid semester data")
		case errors.Is(err, services.ErrBadSemesterDates):
			return response.BadRequest(c, "End date must be after start date")
		case errors.Is(err, services.ErrSemesterNameTaken):
			return response.Conflict(c, "Semester name already in use")
		default:
			return response.InternalServerError(c, "Failed to update semester")
		}
	}

	return response.Success(c, "Semester updated", semester)
}

// Delete removes a semester
// @Summary Delete semester
// @Tags Semesters
// @Produce json
// @Param id path int true "Semester ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/admin/semesters/{id} [delete]
func (h *SemesterHandler) Delete(c *fiber.Ctx) error {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid semester id")
	}

	if err := h.service.Delete(c.Context(), adminID, uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrSemesterNotFound):
			return response.NotFound(c, "Semester not found")
		case errors.Is(err, domain.ErrReferencedRow):
			return response.Conflict(c, "Semester has courses attached")
		default:
			return response.InternalServerError(c, "Failed to delete semester")
		}
	}

	return response.Success(c, "Semester deleted", nil)
}
