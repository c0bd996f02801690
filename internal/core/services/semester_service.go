package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/repositories"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"

	"gorm.io/gorm"
)

// Semester service errors
var (
	ErrSemesterNameTaken = errors.New("semester name already in use")
	ErrBadSemesterDates  = errors.New("end date must be after start date")
)

// SemesterService handles semester CRUD with audit capture
type SemesterService struct {
	repo  repositories.SemesterRepository
	audit *AuditService
}

// NewSemesterService creates a new semester service
func NewSemesterService(repo repositories.SemesterRepository, audit *AuditService) *SemesterService {
	return &SemesterService{repo: repo, audit: audit}
}

// CreateSemesterInput represents semester creation input
type CreateSemesterInput struct {
	Name       string `json:"name"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	TotalWeeks int    `json:"total_weeks"`
}

// UpdateSemesterInput represents partial semester update input
type UpdateSemesterInput struct {
	Name       *string `json:"name"`
	StartDate  *string `json:"start_date"`
	EndDate    *string `json:"end_date"`
	TotalWeeks *int    `json:"total_weeks"`
}

// List returns all semesters ordered by id
func (s *SemesterService) List(ctx context.Context) ([]*models.Semester, error) {
	return s.repo.List(ctx)
}

// Create adds a semester
func (s *SemesterService) Create(ctx context.Context, adminID uint, input *CreateSemesterInput) (*models.Semester, error) {
	input.Name = strings.TrimSpace(input.Name)

	if input.Name == "" || input.StartDate == "" || input.EndDate == "" || input.TotalWeeks <= 0 {
		return nil, fmt.Errorf("%w: name, dates and total weeks are required", domain.ErrInvalidInput)
	}

	start, err := parseDate(input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start date", domain.ErrInvalidInput)
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end date", domain.ErrInvalidInput)
	}
	if !end.After(start) {
		return nil, ErrBadSemesterDates
	}

	exists, err := s.repo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSemesterNameTaken
	}

	semester := &models.Semester{
		Name:       input.Name,
		StartDate:  start,
		EndDate:    end,
		TotalWeeks: input.TotalWeeks,
	}

	if err := s.repo.Create(ctx, semester); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSemesterNameTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, adminID, domain.TargetSemester, semester.ID,
		domain.ActionCreate, nil, semester)

	return semester, nil
}

// Update patches a semester
func (s *SemesterService) Update(ctx context.Context, adminID, id uint, input *UpdateSemesterInput) (*models.Semester, error) {
	semester, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSemesterNotFound
		}
		return nil, err
	}

	before := *semester

	if input.Name != nil {
		semester.Name = strings.TrimSpace(*input.Name)
	}
	if input.StartDate != nil {
		start, err := parseDate(*input.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad start date", domain.ErrInvalidInput)
		}
		semester.StartDate = start
	}
	if input.EndDate != nil {
		end, err := parseDate(*input.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: bad end date", domain.ErrInvalidInput)
		}
		semester.EndDate = end
	}
	if input.TotalWeeks != nil {
		if *input.TotalWeeks <= 0 {
			return nil, fmt.Errorf("%w: total weeks must be positive", domain.ErrInvalidInput)
		}
		semester.TotalWeeks = *input.TotalWeeks
	}

	if !semester.EndDate.After(semester.StartDate) {
		return nil, ErrBadSemesterDates
	}

	if err := s.repo.Update(ctx, semester); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSemesterNameTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, adminID, domain.TargetSemester, semester.ID,
		domain.ActionUpdate, &before, semester)

	return semester, nil
}

// Delete removes a semester. Courses keep a real FK to semesters, so
// deleting a referenced one surfaces as a conflict.
func (s *SemesterService) Delete(ctx context.Context, adminID, id uint) error {
	semester, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrSemesterNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.ErrReferencedRow
		}
		return err
	}

	s.audit.Record(ctx, adminID, domain.TargetSemester, id,
		domain.ActionDelete, semester, nil)

	return nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
