package handlers

import (
	"errors"

	"github.com/keonU206/Hey-Young-system/internal/adapters/http/middleware"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
	"github.com/keonU206/Hey-Young-system/internal/core/services"
	"github.com/keonU206/Hey-Young-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DepartmentHandler handles department management endpoints
type DepartmentHandler struct {
	service *services.DepartmentService
}

// NewDepartmentHandler creates a new department handler
func NewDepartmentHandler(service *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{service: service}
}

// List returns all departments
// @Summary List departments
// @Tags Departments
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/admin/departments [get]
func (h *DepartmentHandler) List(c *fiber.Ctx) error {
	departments, err := h.service.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list departments")
	}
	return response.Success(c, "Departments retrieved", departments)
}

// Create adds a department
// @Summary Create department
// @Tags Departments
// @Accept json
// @Produce json
// @Param body body services.CreateDepartmentInput true "Department data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/admin/departments [post]
func (h *DepartmentHandler) Create(c *fiber.Ctx) error {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req services.CreateDepartmentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dept, err := h.service.Create(c.Context(), adminID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Code and name are required")
		case errors.Is(err, services.ErrDeptCodeTaken):
			return response.Conflict(c, "Department code already in use")
		default:
			return response.InternalServerError(c, "Failed to create department")
		}
	}

	return response.Created(c, "Department created", dept)
}

// Update modifies a department
// @Summary Update department
// @Tags Departments
// @Accept json
// @Produce json
// @Param id path int true "Department ID"
// @Param body body services.UpdateDepartmentInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/admin/departments/{id} [patch]
func (h *DepartmentHandler) Update(c *fiber.Ctx) error {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid department id")
	}

	var req services.UpdateDepartmentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	dept, err := h.service.Update(c.Context(), adminID, uint(id), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDepartmentNotFound):
			return response.NotFound(c, "Department not found")
		case errors.Is(err, services.ErrDeptCodeTaken):
			return response.Conflict(c, "Department code already in use")
		default:
			return response.InternalServerError(c, "Failed to update department")
		}
	}

	return response.Success(c, "Department updated", dept)
}

// Delete removes a department
// @Summary Delete department
// @Tags Departments
// @Produce json
// @Param id path int true "Department ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/admin/departments/{id} [delete]
func (h *DepartmentHandler) Delete(c *fiber.Ctx) error {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid department id")
	}

	if err := h.service.Delete(c.Context(), adminID, uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrDepartmentNotFound):
			return response.NotFound(c, "Department not found")
		case errors.Is(err, domain.ErrReferencedRow):
			return response.Conflict(c, "Department is referenced by other records")
		default:
			return response.InternalServerError(c, "Failed to delete department")
		}
	}

	return response.Success(c, "Department deleted", nil)
}
