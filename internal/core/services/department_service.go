package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/repositories"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
	"github.com/keonU206/Hey-Young-system/internal/pkg/validate"

	"gorm.io/gorm"
)

// Department service errors
var (
	ErrDeptCodeTaken = errors.New("department code already in use")
)

// DepartmentService handles department CRUD with audit capture
type DepartmentService struct {
	repo  repositories.DepartmentRepository
	audit *AuditService
}

// NewDepartmentService creates a new department service
func NewDepartmentService(repo repositories.DepartmentRepository, audit *AuditService) *DepartmentService {
	return &DepartmentService{repo: repo, audit: audit}
}

// CreateDepartmentInput represents department creation input
type CreateDepartmentInput struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// UpdateDepartmentInput represents partial department update input
type UpdateDepartmentInput struct {
	Code     *string `json:"code"`
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// List returns all departments ordered by id
func (s *DepartmentService) List(ctx context.Context) ([]*models.Department, error) {
	return s.repo.List(ctx)
}

// Create adds a department
func (s *DepartmentService) Create(ctx context.Context, adminID uint, input *CreateDepartmentInput) (*models.Department, error) {
	input.Code = strings.TrimSpace(input.Code)
	input.Name = strings.TrimSpace(input.Name)

	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	exists, err := s.repo.ExistsByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDeptCodeTaken
	}

	dept := &models.Department{
		Code:     input.Code,
		Name:     input.Name,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDeptCodeTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, adminID, domain.TargetDepartment, dept.ID,
		domain.ActionCreate, nil, dept)

	return dept, nil
}

// Update patches a department
func (s *DepartmentService) Update(ctx context.Context, adminID, id uint, input *UpdateDepartmentInput) (*models.Department, error) {
	dept, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, err
	}

	before := *dept

	if input.Code != nil {
		dept.Code = strings.TrimSpace(*input.Code)
	}
	if input.Name != nil {
		dept.Name = strings.TrimSpace(*input.Name)
	}
	if input.IsActive != nil {
		dept.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, dept); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDeptCodeTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, adminID, domain.TargetDepartment, dept.ID,
		domain.ActionUpdate, &before, dept)

	return dept, nil
}

// Delete removes a department
func (s *DepartmentService) Delete(ctx context.Context, adminID, id uint) error {
	dept, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDepartmentNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.ErrReferencedRow
		}
		return err
	}

	s.audit.Record(ctx, adminID, domain.TargetDepartment, id,
		domain.ActionDelete, dept, nil)

	return nil
}
