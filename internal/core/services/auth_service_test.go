package services

import (
	"context"
	"strings"
	"testing"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/config"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
	"github.com/keonU206/Hey-Young-system/internal/pkg/jwt"
	"github.com/keonU206/Hey-Young-system/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:       "unit-test-secret",
			TokenMinutes: 5,
		},
	}
}

func seedUser(t *testing.T, loginID, plain, role string, active bool) *models.User {
	t.Helper()
	hash := ""
	if plain != "" {
		var err error
		hash, err = password.Hash(plain)
		require.NoError(t, err)
	}
	return &models.User{
		LoginID:      loginID,
		Name:         "Test User",
		Email:        loginID + "@hey-young.ac.kr",
		Role:         role,
		PasswordHash: hash,
		IsActive:     active,
	}
}

func newAuthFixture(t *testing.T, users ...*models.User) (*AuthService, *fakeUserRepo, *recordingAuditRepo) {
	t.Helper()
	userRepo := newFakeUserRepo(users...)
	auditRepo := &recordingAuditRepo{}
	settingRepo := newFakeSettingRepo(nil)
	svc := NewAuthService(userRepo, settingRepo, NewAuditService(auditRepo), testConfig())
	return svc, userRepo, auditRepo
}

func TestLoginSuccess(t *testing.T) {
	svc, _, audit := newAuthFixture(t, seedUser(t, "20250001", "secret-pass", "STUDENT", true))

	result, err := svc.Login(context.Background(), &LoginInput{
		StudentID: "20250001",
		Password:  "secret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "20250001", result.User.LoginID)
	assert.Equal(t, "/student/dashboard", result.RedirectTo)

	claims, err := jwt.ValidateToken(result.Token, "unit-test-secret")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "STUDENT", claims.Role)

	entry := audit.last()
	require.NotNil(t, entry)
	assert.Equal(t, domain.ActionLoginSuccess, entry.Action)
	assert.Equal(t, result.User.ID, entry.ActorID)
}

func TestLoginTrimsLoginID(t *testing.T) {
	svc, _, _ := newAuthFixture(t, seedUser(t, "20250001", "secret-pass", "STUDENT", true))

	result, err := svc.Login(context.Background(), &LoginInput{
		StudentID: "  20250001  ",
		Password:  "secret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "20250001", result.User.LoginID)
}

func TestLoginFailureReasons(t *testing.T) {
	tests := []struct {
		name       string
		user       func(t *testing.T) *models.User
		loginID    string
		password   string
		wantErr    error
		wantAction string
		wantActor  uint
	}{
		{
			name:       "missing fields",
			loginID:    "",
			password:   "",
			wantErr:    ErrMissingCredentials,
			wantAction: domain.ActionLoginFailedMissingFields,
			wantActor:  domain.SystemActorID,
		},
		{
			name:       "unknown user",
			loginID:    "nobody",
			password:   "whatever1",
			wantErr:    domain.ErrUserNotFound,
			wantAction: domain.ActionLoginFailedUserNotFound,
			wantActor:  domain.SystemActorID,
		},
		{
			name: "inactive user",
			user: func(t *testing.T) *models.User {
				return seedUser(t, "20250001", "secret-pass", "STUDENT", false)
			},
			loginID:    "20250001",
			password:   "secret-pass",
			wantErr:    domain.ErrUserInactive,
			wantAction: domain.ActionLoginFailedInactiveUser,
			wantActor:  1,
		},
		{
			name: "no password hash",
			user: func(t *testing.T) *models.User {
				return seedUser(t, "20250001", "", "STUDENT", true)
			},
			loginID:    "20250001",
			password:   "secret-pass",
			wantErr:    domain.ErrPasswordNotSet,
			wantAction: domain.ActionLoginFailedNoHash,
			wantActor:  1,
		},
		{
			name: "wrong password",
			user: func(t *testing.T) *models.User {
				return seedUser(t, "20250001", "secret-pass", "STUDENT", true)
			},
			loginID:    "20250001",
			password:   "not-the-password",
			wantErr:    domain.ErrInvalidCredentials,
			wantAction: domain.ActionLoginFailedWrongPassword,
			wantActor:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var users []*models.User
			if tt.user != nil {
				users = append(users, tt.user(t))
			}
			svc, _, audit := newAuthFixture(t, users...)

			_, err := svc.Login(context.Background(), &LoginInput{
				StudentID: tt.loginID,
				Password:  tt.password,
			})
			assert.ErrorIs(t, err, tt.wantErr)

			// exactly one entry, with the reason matching the actual cause
			require.Equal(t, 1, audit.count())
			entry := audit.last()
			assert.Equal(t, tt.wantAction, entry.Action)
			assert.Equal(t, tt.wantActor, entry.ActorID)
		})
	}
}

func TestLoginAuditNeverContainsPassword(t *testing.T) {
	svc, _, audit := newAuthFixture(t, seedUser(t, "20250001", "hunter2hunter2", "STUDENT", true))

	_, err := svc.Login(context.Background(), &LoginInput{
		StudentID: "20250001",
		Password:  "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{
		StudentID: "20250001",
		Password:  "wrong-guess-123",
	})
	require.Error(t, err)

	for _, entry := range audit.entries {
		assert.NotContains(t, string(entry.BeforeData), "hunter2")
		assert.NotContains(t, string(entry.AfterData), "hunter2")
		assert.NotContains(t, string(entry.AfterData), "wrong-guess")
	}
}

func TestSignupSuccess(t *testing.T) {
	svc, userRepo, audit := newAuthFixture(t)

	user, err := svc.Signup(context.Background(), &SignupInput{
		LoginID:  "20259999",
		Name:     "Lee Jihoon",
		Email:    "jihoon@hey-young.ac.kr",
		Password: "long-enough-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RoleStudent), user.Role, "self-signup always yields a student")
	assert.True(t, user.IsActive)

	stored, err := userRepo.GetByLoginID(context.Background(), "20259999")
	require.NoError(t, err)
	assert.True(t, password.Verify("long-enough-pass", stored.PasswordHash))

	entry := audit.last()
	require.NotNil(t, entry)
	assert.Equal(t, domain.ActionCreate, entry.Action)
	assert.Equal(t, string(domain.TargetUser), entry.TargetType)
}

func TestSignupDisabled(t *testing.T) {
	userRepo := newFakeUserRepo()
	auditRepo := &recordingAuditRepo{}
	settingRepo := newFakeSettingRepo(map[string]string{
		models.SettingAllowStudentSignup: "false",
	})
	svc := NewAuthService(userRepo, settingRepo, NewAuditService(auditRepo), testConfig())

	_, err := svc.Signup(context.Background(), &SignupInput{
		LoginID:  "20259999",
		Name:     "Lee Jihoon",
		Email:    "jihoon@hey-young.ac.kr",
		Password: "long-enough-pass",
	})
	assert.ErrorIs(t, err, domain.ErrSignupDisabled)
}

func TestSignupValidation(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Signup(context.Background(), &SignupInput{
		LoginID:  "20259999",
		Name:     "Lee Jihoon",
		Email:    "not-an-email",
		Password: "long-enough-pass",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Signup(context.Background(), &SignupInput{
		LoginID:  "20259999",
		Name:     "Lee Jihoon",
		Email:    "jihoon@hey-young.ac.kr",
		Password: "short",
	})
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestSignupConflicts(t *testing.T) {
	existing := seedUser(t, "20250001", "secret-pass", "STUDENT", true)
	svc, _, _ := newAuthFixture(t, existing)

	_, err := svc.Signup(context.Background(), &SignupInput{
		LoginID:  "20250001",
		Name:     "Imposter",
		Email:    "other@hey-young.ac.kr",
		Password: "long-enough-pass",
	})
	assert.ErrorIs(t, err, ErrLoginIDTaken)

	_, err = svc.Signup(context.Background(), &SignupInput{
		LoginID:  "20259998",
		Name:     "Imposter",
		Email:    existing.Email,
		Password: "long-enough-pass",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCurrentUserRechecksActiveFlag(t *testing.T) {
	user := seedUser(t, "20250001", "secret-pass", "STUDENT", true)
	svc, userRepo, _ := newAuthFixture(t, user)

	got, err := svc.CurrentUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "20250001", got.LoginID)

	// deactivate after the token was issued
	stored, err := userRepo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	stored.IsActive = false
	require.NoError(t, userRepo.Update(context.Background(), stored))

	_, err = svc.CurrentUser(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrUserInactive)

	_, err = svc.CurrentUser(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRedirectForRole(t *testing.T) {
	assert.Equal(t, "/admin/dashboard", RedirectForRole("ADMIN"))
	assert.Equal(t, "/instructor/dashboard", RedirectForRole("INSTRUCTOR"))
	assert.Equal(t, "/student/dashboard", RedirectForRole("STUDENT"))
	assert.True(t, strings.HasPrefix(RedirectForRole("SOMETHING_ELSE"), "/"))
}
