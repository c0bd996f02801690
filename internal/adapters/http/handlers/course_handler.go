package handlers

import (
	"errors"

	"github.com/keonU206/Hey-Young-system/internal/adapters/http/middleware"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
	"github.com/keonU206/Hey-Young-system/internal/core/services"
	"github.com/keonU206/Hey-Young-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CourseHandler handles course management endpoints
type CourseHandler struct {
	service *services.CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List returns all courses
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/admin/courses [get]
func (h *CourseHandler) List(c *fiber.Ctx) error {
	courses, err := h.service.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list courses")
	}
	return response.Success(c, "Courses retrieved", courses)
}

// Create adds a course offering
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param body body services.CreateCourseInput true "Course data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/admin/courses [post]
func (h *CourseHandler) Create(c *fiber.Ctx) error {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req services.CreateCourseInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	course, err := h.service.Create(c.Context(), adminID, &req)
	if err != nil {
		return h.mapCourseError(c, err, "Failed to create course")
	}

	return response.Created(c, "Course created", course)
}

// Update modifies a course offering
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param body body services.UpdateCourseInput true "Fields to update"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/admin/courses/{id} [patch]
func (h *CourseHandler) Update(c *fiber.Ctx) error {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid course id")
	}

	var req services.UpdateCourseInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	course, err := h.service.Update(c.Context(), adminID, uint(id), &req)
	if err != nil {
		return h.mapCourseError(c, err, "Failed to update course")
	}

	return response.Success(c, "Course updated", course)
}

// Delete removes a course offering
// @Summary Delete course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/admin/courses/{id} [delete]
func (h *CourseHandler) Delete(c *fiber.Ctx) error {
	adminID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.BadRequest(c, "Invalid course id")
	}

	if err := h.service.Delete(c.Context(), adminID, uint(id)); err != nil {
		switch {
		case errors.Is(err, domain.ErrCourseNotFound):
			return response.NotFound(c, "Course not found")
		case errors.Is(err, domain.ErrReferencedRow):
			return response.Conflict(c, "Course has sessions or enrollments attached")
		default:
			return response.InternalServerError(c, "Failed to delete course")
		}
	}

	return response.Success(c, "Course deleted", nil)
}

func (h *CourseHandler) mapCourseError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrCourseNotFound):
		return response.NotFound(c, "Course not found")
	case errors.Is(err, domain.ErrSemesterNotFound):
		return response.BadRequest(c, "Semester does not exist")
	case errors.Is(err, services.ErrInstructorInvalid):
		return response.BadRequest(c, "Instructor does not exist or has the wrong role")
	case errors.Is(err, domain.ErrInvalidInput):
		return response.BadRequest(c, "Invalid course data")
	case errors.Is(err, services.ErrCourseOfferingTaken):
		return response.Conflict(c, "Course with this code and section already exists in the semester")
	default:
		return response.InternalServerError(c, fallback)
	}
}
