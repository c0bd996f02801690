package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/repositories"
	"github.com/keonU206/Hey-Young-system/internal/config"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
	"github.com/keonU206/Hey-Young-system/internal/pkg/jwt"
	"github.com/keonU206/Hey-Young-system/internal/pkg/password"
	"github.com/keonU206/Hey-Young-system/internal/pkg/validate"

	"gorm.io/gorm"
)

// Auth errors
var (
	ErrMissingCredentials = errors.New("login id and password are required")
	ErrLoginIDTaken       = errors.New("login id already registered")
	ErrEmailTaken         = errors.New("email already registered")
)

// AuthService owns the login state machine, signup and identity resolution.
// Every login attempt - success or any distinct failure - produces exactly
// one audit entry.
type AuthService struct {
	userRepo    repositories.UserRepository
	settingRepo repositories.SettingRepository
	audit       *AuditService
	cfg         *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	settingRepo repositories.SettingRepository,
	audit *AuditService,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		settingRepo: settingRepo,
		audit:       audit,
		cfg:         cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	StudentID string `json:"studentId"`
	Password  string `json:"password"`
}

// LoginResult carries everything the handler needs after authentication
type LoginResult struct {
	User       *models.UserResponse `json:"user"`
	Token      string               `json:"-"`
	RedirectTo string               `json:"redirectTo"`
}

// SignupInput represents self-service signup input
type SignupInput struct {
	LoginID    string `json:"loginId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Department string `json:"department"`
	Password   string `json:"password" validate:"required"`
}

// RedirectForRole maps a role to its landing location
func RedirectForRole(role string) string {
	switch domain.Role(role) {
	case domain.RoleAdmin:
		return "/admin/dashboard"
	case domain.RoleInstructor:
		return "/instructor/dashboard"
	default:
		return "/student/dashboard"
	}
}

// Login evaluates one authentication attempt from scratch: user exists,
// account active, stored hash verifies. Any other path is rejected with a
// reason-specific error and audit entry.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginResult, error) {
	loginID := strings.TrimSpace(input.StudentID)

	if loginID == "" || input.Password == "" {
		s.audit.Record(ctx, domain.SystemActorID, domain.TargetSystem, 0,
			domain.ActionLoginFailedMissingFields, nil, loginIDSnapshot(loginID))
		return nil, ErrMissingCredentials
	}

	user, err := s.userRepo.GetByLoginID(ctx, loginID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.audit.Record(ctx, domain.SystemActorID, domain.TargetSystem, 0,
				domain.ActionLoginFailedUserNotFound, nil, loginIDSnapshot(loginID))
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		s.audit.Record(ctx, user.ID, domain.TargetUser, user.ID,
			domain.ActionLoginFailedInactiveUser, nil, loginIDSnapshot(loginID))
		return nil, domain.ErrUserInactive
	}

	if user.PasswordHash == "" {
		s.audit.Record(ctx, user.ID, domain.TargetUser, user.ID,
			domain.ActionLoginFailedNoHash, nil, loginIDSnapshot(loginID))
		return nil, domain.ErrPasswordNotSet
	}

	if !password.Verify(input.Password, user.PasswordHash) {
		s.audit.Record(ctx, user.ID, domain.TargetUser, user.ID,
			domain.ActionLoginFailedWrongPassword, nil, loginIDSnapshot(loginID))
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(
		user.ID, user.LoginID, user.Name, user.Role,
		s.cfg.JWT.Secret, s.cfg.JWT.TokenMinutes,
	)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, user.ID, domain.TargetUser, user.ID,
		domain.ActionLoginSuccess, nil, map[string]interface{}{
			"login_id": user.LoginID,
			"role":     user.Role,
		})

	log.Printf("✅ User logged in: %s [%s]", user.LoginID, user.Role)

	return &LoginResult{
		User:       user.ToResponse(),
		Token:      token,
		RedirectTo: RedirectForRole(user.Role),
	}, nil
}

// Signup creates a self-service account. Role is always STUDENT; admins use
// their own creation endpoint for other roles.
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*models.UserResponse, error) {
	input.LoginID = strings.TrimSpace(input.LoginID)
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Department = strings.TrimSpace(input.Department)

	if err := validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrPasswordTooShort
	}

	if !s.signupAllowed(ctx) {
		return nil, domain.ErrSignupDisabled
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
		Role:         string(domain.RoleStudent),
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent signup can slip past the exists checks; the unique
		// index is the final arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrLoginIDTaken
		}
		return nil, err
	}

	s.audit.Record(ctx, user.ID, domain.TargetUser, user.ID,
		domain.ActionCreate, nil, user.ToResponse())

	log.Printf("✅ Student signed up: %s", user.LoginID)
	return user.ToResponse(), nil
}

// CurrentUser resolves a token's user against storage, re-checking the
// active flag. Token validity alone is not enough here.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	return user.ToResponse(), nil
}

// signupAllowed consults the allow_student_signup setting; a missing or
// unreadable setting permits signup.
func (s *AuthService) signupAllowed(ctx context.Context) bool {
	settings, err := s.settingRepo.GetAll(ctx, []string{models.SettingAllowStudentSignup})
	if err != nil {
		log.Printf("⚠️ signup setting lookup failed, allowing: %v", err)
		return true
	}
	return settings[models.SettingAllowStudentSignup] != "false"
}

func loginIDSnapshot(loginID string) map[string]interface{} {
	return map[string]interface{}{"login_id": loginID}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
