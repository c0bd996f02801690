package repositories

import (
	"context"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ============================================================
// Departments
// ============================================================

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) Create(ctx context.Context, dept *models.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func (r *departmentRepository) GetByID(ctx context.Context, id uint) (*models.Department, error) {
	var dept models.Department
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dept).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *models.Department) error {
	return r.db.WithContext(ctx).Save(dept).Error
}

func (r *departmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Department{}, id).Error
}

func (r *departmentRepository) List(ctx context.Context) ([]*models.Department, error) {
	var list []*models.Department
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *departmentRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Department{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// ============================================================
// Semesters
// ============================================================

type semesterRepository struct {
	db *gorm.DB
}

// NewSemesterRepository creates a new semester repository
func NewSemesterRepository(db *gorm.DB) SemesterRepository {
	return &semesterRepository{db: db}
}

func (r *semesterRepository) Create(ctx context.Context, semester *models.Semester) error {
	return r.db.WithContext(ctx).Create(semester).Error
}

func (r *semesterRepository) GetByID(ctx context.Context, id uint) (*models.Semester, error) {
	var semester models.Semester
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepository) Update(ctx context.Context, semester *models.Semester) error {
	return r.db.WithContext(ctx).Save(semester).Error
}

func (r *semesterRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Semester{}, id).Error
}

func (r *semesterRepository) List(ctx context.Context) ([]*models.Semester, error) {
	var list []*models.Semester
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

func (r *semesterRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Semester{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// ============================================================
// Courses
// ============================================================

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Course{}, id).Error
}

func (r *courseRepository) List(ctx context.Context) ([]*models.Course, error) {
	var list []*models.Course
	err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error
	return list, err
}

// ExistsOffering checks the (code, semester, section) uniqueness ahead of the
// DB constraint so the common case gets a clean conflict message.
func (r *courseRepository) ExistsOffering(ctx context.Context, code string, semesterID uint, section *string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Course{}).
		Where("code = ? AND semester_id = ?", code, semesterID)
	if section == nil {
		q = q.Where("section IS NULL")
	} else {
		q = q.Where("section = ?", *section)
	}
	err := q.Count(&count).Error
	return count > 0, err
}
