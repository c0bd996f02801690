package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/repositories"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"

	"gorm.io/gorm"
)

// Course service errors
var (
	ErrCourseOfferingTaken = errors.New("course with same code/section exists in semester")
	ErrInstructorInvalid   = errors.New("instructor does not exist or has wrong role")
)

// CourseService handles course CRUD with audit capture
type CourseService struct {
	repo     repositories.CourseRepository
	userRepo repositories.UserRepository
	audit    *AuditService
}

// NewCourseService creates a new course service
func NewCourseService(
	repo repositories.CourseRepository,
	userRepo repositories.UserRepository,
	audit *AuditService,
) *CourseService {
	return &CourseService{repo: repo, userRepo: userRepo, audit: audit}
}

// CreateCourseInput represents course creation input
type CreateCourseInput struct {
	Code         string  `json:"code"`
	Title        string  `json:"title"`
	Section      *string `json:"section"`
	SemesterID   uint    `json:"semester_id"`
	InstructorID uint    `json:"instructor_id"`
	RoomDefault  *string `json:"room_default"`
}

// UpdateCourseInput represents partial course update input
type UpdateCourseInput struct {
	Code         *string `json:"code"`
	Title        *string `json:"title"`
	Section      *string `json:"section"`
	SemesterID   *uint   `json:"semester_id"`
	InstructorID *uint   `json:"instructor_id"`
	RoomDefault  *string `json:"room_default"`
}

// List returns all courses ordered by id
func (s *CourseService) List(ctx context.Context) ([]*models.CourseResponse, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.CourseResponse, len(courses))
	for i, c := range courses {
		out[i] = c.ToResponse()
	}
	return out, nil
}

// Create opens a course offering
func (s *CourseService) Create(ctx context.Context, adminID uint, input *CreateCourseInput) (*models.CourseResponse, error) {
	input.Code = strings.TrimSpace(input.Code)
	input.Title = strings.TrimSpace(input.Title)

	if input.Code == "" || input.Title == "" || input.SemesterID == 0 || input.InstructorID == 0 {
		return nil, fmt.Errorf("%w: code, title, semester and instructor are required", domain.ErrInvalidInput)
	}

	if err := s.checkInstructor(ctx, input.InstructorID); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsOffering(ctx, input.Code, input.SemesterID, input.Section)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCourseOfferingTaken
	}

	course := &models.Course{
		Code:         input.Code,
		Title:        input.Title,
		Section:      input.Section,
		SemesterID:   input.SemesterID,
		InstructorID: input.InstructorID,
		RoomDefault:  input.RoomDefault,
	}

	if err := s.repo.Create(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCourseOfferingTaken
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, domain.ErrSemesterNotFound
		}
		return nil, err
	}

	s.audit.Record(ctx, adminID, domain.TargetCourse, course.ID,
		domain.ActionCreate, nil, course.ToResponse())

	return course.ToResponse(), nil
}

// Update patches a course; the audit entry keeps the old and new values, so
// instructor changes stay traceable.
func (s *CourseService) Update(ctx context.Context, adminID, id uint, input *UpdateCourseInput) (*models.CourseResponse, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	before := course.ToResponse()

	if input.Code != nil {
		course.Code = strings.TrimSpace(*input.Code)
	}
	if input.Title != nil {
		course.Title = strings.TrimSpace(*input.Title)
	}
	if input.Section != nil {
		course.Section = optionalString(strings.TrimSpace(*input.Section))
	}
	if input.SemesterID != nil {
		course.SemesterID = *input.SemesterID
	}
	if input.InstructorID != nil {
		if err := s.checkInstructor(ctx, *input.InstructorID); err != nil {
			return nil, err
		}
		course.InstructorID = *input.InstructorID
	}
	if input.RoomDefault != nil {
		course.RoomDefault = optionalString(strings.TrimSpace(*input.RoomDefault))
	}

	if err := s.repo.Update(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCourseOfferingTaken
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, domain.ErrSemesterNotFound
		}
		return nil, err
	}

	s.audit.Record(ctx, adminID, domain.TargetCourse, course.ID,
		domain.ActionUpdate, before, course.ToResponse())

	return course.ToResponse(), nil
}

// Delete removes a course
func (s *CourseService) Delete(ctx context.Context, adminID, id uint) error {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCourseNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.ErrReferencedRow
		}
		return err
	}

	s.audit.Record(ctx, adminID, domain.TargetCourse, id,
		domain.ActionDelete, course.ToResponse(), nil)

	return nil
}

// checkInstructor requires an existing, active user with a teaching role.
// Admins may also be assigned.
func (s *CourseService) checkInstructor(ctx context.Context, instructorID uint) error {
	user, err := s.userRepo.GetByID(ctx, instructorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInstructorInvalid
		}
		return err
	}

	if !user.IsActive || user.Role == string(domain.RoleStudent) {
		return ErrInstructorInvalid
	}
	return nil
}
