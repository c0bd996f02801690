package repositories

import (
	"context"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByLoginID(ctx context.Context, loginID string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByLoginID(ctx context.Context, loginID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// DepartmentRepository defines department repository interface
type DepartmentRepository interface {
	Create(ctx context.Context, dept *models.Department) error
	GetByID(ctx context.Context, id uint) (*models.Department, error)
	Update(ctx context.Context, dept *models.Department) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Department, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// SemesterRepository defines semester repository interface
type SemesterRepository interface {
	Create(ctx context.Context, semester *models.Semester) error
	GetByID(ctx context.Context, id uint) (*models.Semester, error)
	Update(ctx context.Context, semester *models.Semester) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Semester, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// CourseRepository defines course repository interface
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uint) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.Course, error)
	ExistsOffering(ctx context.Context, code string, semesterID uint, section *string) (bool, error)
}

// SettingRepository defines system settings repository interface
type SettingRepository interface {
	GetAll(ctx context.Context, keys []string) (map[string]string, error)
	Upsert(ctx context.Context, key, value string) error
}

// AuditLogRepository defines audit log repository interface.
// Entries are append-only: there is deliberately no update or delete.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]*models.AuditLogResponse, error)
	ListRecentByActionPrefix(ctx context.Context, prefix string, limit int) ([]*models.AuditLogResponse, error)
}
