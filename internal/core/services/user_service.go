package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/repositories"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
	"github.com/keonU206/Hey-Young-system/internal/pkg/pagination"
	"github.com/keonU206/Hey-Young-system/internal/pkg/password"
	"github.com/keonU206/Hey-Young-system/internal/pkg/validate"

	"gorm.io/gorm"
)

// User service errors
var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrOldPasswordWrong = errors.New("current password is incorrect")
	ErrCannotDeleteSelf = errors.New("cannot delete your own account")
)

// UserService handles admin-side user management and self-service password
// change. Every mutation is followed by a best-effort audit entry with
// before/after snapshots.
type UserService struct {
	userRepo repositories.UserRepository
	audit    *AuditService
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, audit *AuditService) *UserService {
	return &UserService{userRepo: userRepo, audit: audit}
}

// CreateUserInput represents admin-issued user creation input
type CreateUserInput struct {
	LoginID    string `json:"login_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department"`
	Role       string `json:"role" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// UpdateUserInput represents admin-issued user update input (partial)
type UpdateUserInput struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
	Role       *string `json:"role"`
	IsActive   *bool   `json:"is_active"`
}

// ChangePasswordInput represents self-service password change input
type ChangePasswordInput struct {
	LoginID         string `json:"loginId"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users []*models.UserResponse `json:"users"`
	Meta  *pagination.Meta       `json:"meta"`
}

// ListUsers lists users with pagination
func (s *UserService) ListUsers(ctx context.Context, params *pagination.Params) (*ListUsersOutput, error) {
	users, total, err := s.userRepo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}

	return &ListUsersOutput{
		Users: responses,
		Meta:  pagination.GetMeta(params, total),
	}, nil
}

// CreateUser creates an account with any role on behalf of an admin
func (s *UserService) CreateUser(ctx context.Context, adminID uint, input *CreateUserInput) (*models.UserResponse, error) {
	input.LoginID = strings.TrimSpace(input.LoginID)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Department = strings.TrimSpace(input.Department)
	input.Role = strings.TrimSpace(input.Role)

	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !domain.ValidRole(input.Role) {
		return nil, ErrInvalidRole
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrPasswordTooShort
	}

	exists, err := s.userRepo.ExistsByLoginID(ctx, input.LoginID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrLoginIDTaken
	}

	exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		LoginID:      input.LoginID,
		Name:         input.Name,
		Email:        input.Email,
		Department:   optionalString(input.Department),
		Role:         input.Role,
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLoginIDTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, adminID, domain.TargetUser, user.ID,
		domain.ActionCreate, nil, user.ToResponse())

	log.Printf("✅ User created by admin %d: %s [%s]", adminID, user.LoginID, user.Role)
	return user.ToResponse(), nil
}

// UpdateUser patches a user on behalf of an admin
func (s *UserService) UpdateUser(ctx context.Context, adminID, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	before := user.ToResponse()

	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil && *input.Email != user.Email {
		email := strings.TrimSpace(*input.Email)
		if err := validate.Var(email, "required,email"); err != nil {
			return nil, fmt.Errorf("%w: malformed email", domain.ErrInvalidInput)
		}
		exists, err := s.userRepo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailTaken
		}
		user.Email = email
	}
	if input.Department != nil {
		user.Department = optionalString(strings.TrimSpace(*input.Department))
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, adminID, domain.TargetUser, user.ID,
		domain.ActionUpdate, before, user.ToResponse())

	return user.ToResponse(), nil
}

// DeleteUser permanently removes a user. Audit history survives: entries keep
// the actor id even after the row is gone.
func (s *UserService) DeleteUser(ctx context.Context, adminID, id uint) error {
	if adminID == id {
		return ErrCannotDeleteSelf
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	before := user.ToResponse()

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return domain.ErrReferencedRow
		}
		return err
	}

	s.audit.Record(ctx, adminID, domain.TargetUser, id,
		domain.ActionDelete, before, nil)

	log.Printf("✅ User deleted by admin %d: %s", adminID, user.LoginID)
	return nil
}

// ChangePassword verifies the current password and replaces the stored hash.
// Every outcome is audited; snapshots carry the login id only, never any
// password material.
func (s *UserService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	loginID := strings.TrimSpace(input.LoginID)

	if loginID == "" || input.CurrentPassword == "" || input.NewPassword == "" {
		s.audit.Record(ctx, domain.SystemActorID, domain.TargetSystem, 0,
			domain.ActionPasswordChangeFailedMissingFields, nil, loginIDSnapshot(loginID))
		return ErrMissingCredentials
	}

	if !password.ValidatePassword(input.NewPassword) {
		s.audit.Record(ctx, domain.SystemActorID, domain.TargetSystem, 0,
			domain.ActionPasswordChangeFailedTooShort, nil, map[string]interface{}{
				"login_id": loginID,
				"length":   len(input.NewPassword),
			})
		return domain.ErrPasswordTooShort
	}

	user, err := s.userRepo.GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.audit.Record(ctx, domain.SystemActorID, domain.TargetSystem, 0,
				domain.ActionPasswordChangeFailedUserNotFound, nil, loginIDSnapshot(loginID))
			return domain.ErrUserNotFound
		}
		return err
	}

	if !user.IsActive {
		s.audit.Record(ctx, user.ID, domain.TargetUser, user.ID,
			domain.ActionPasswordChangeFailedInactiveUser, nil, loginIDSnapshot(loginID))
		return domain.ErrUserInactive
	}

	if user.PasswordHash == "" {
		s.audit.Record(ctx, user.ID, domain.TargetUser, user.ID,
			domain.ActionPasswordChangeFailedNoHash, nil, loginIDSnapshot(loginID))
		return domain.ErrPasswordNotSet
	}

	if !password.Verify(input.CurrentPassword, user.PasswordHash) {
		s.audit.Record(ctx, user.ID, domain.TargetUser, user.ID,
			domain.ActionPasswordChangeFailedWrongPassword, nil, loginIDSnapshot(loginID))
		return ErrOldPasswordWrong
	}

	hash, err := password.Hash(input.NewPassword)
	if err != nil {
		s.audit.Record(ctx, user.ID, domain.TargetUser, user.ID,
			domain.ActionErrorPasswordChange, nil, loginIDSnapshot(loginID))
		return err
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.audit.Record(ctx, user.ID, domain.TargetUser, user.ID,
			domain.ActionErrorPasswordChange, nil, loginIDSnapshot(loginID))
		return err
	}

	s.audit.Record(ctx, user.ID, domain.TargetUser, user.ID,
		domain.ActionPasswordChangeSuccess, nil, loginIDSnapshot(loginID))

	log.Printf("✅ Password changed: %s", user.LoginID)
	return nil
}
