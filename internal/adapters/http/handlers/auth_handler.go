package handlers

import (
	"errors"
	"time"

	"github.com/keonU206/Hey-Young-system/internal/adapters/http/middleware"
	"github.com/keonU206/Hey-Young-system/internal/config"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
	"github.com/keonU206/Hey-Young-system/internal/core/services"
	"github.com/keonU206/Hey-Young-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// setSessionCookie attaches the signed session token. MaxAge matches the
// token lifetime so both expire together.
func setSessionCookie(c *fiber.Ctx, cfg *config.Config, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Domain:   cfg.Cookie.Domain,
		MaxAge:   cfg.JWT.TokenMinutes * 60,
		Expires:  time.Now().Add(time.Duration(cfg.JWT.TokenMinutes) * time.Minute),
		HTTPOnly: true,
		Secure:   cfg.Cookie.Secure,
		SameSite: cfg.Cookie.SameSite,
	})
}

// clearSessionCookie expires the session cookie immediately
func clearSessionCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Cookie.Domain,
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   cfg.Cookie.Secure,
		SameSite: cfg.Cookie.SameSite,
	})
}

// Login handles password login
// @Summary Log in with login id and password
// @Description Authenticate and receive the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			return response.BadRequest(c, "Login id and password are required")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Account not found")
		case errors.Is(err, domain.ErrUserInactive):
			return response.Forbidden(c, "Account is deactivated")
		case errors.Is(err, domain.ErrPasswordNotSet):
			// An active account without a hash is a data problem, not a
			// caller mistake.
			return response.InternalServerError(c, "Login failed")
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid credentials")
		default:
			return response.InternalServerError(c, "Login failed")
		}
	}

	setSessionCookie(c, h.cfg, result.Token)

	return response.Success(c, "Login successful", result)
}

// Signup handles student self-registration
// @Summary Sign up as a student
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.SignupInput true "Signup data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req services.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.authService.Signup(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSignupDisabled):
			return response.Forbidden(c, "Student signup is disabled")
		case errors.Is(err, domain.ErrPasswordTooShort):
			return response.BadRequest(c, "Password must be at least 8 characters")
		case errors.Is(err, services.ErrLoginIDTaken):
			return response.Conflict(c, "Login id already registered")
		case errors.Is(err, services.ErrEmailTaken):
			return response.Conflict(c, "Email already registered")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid signup data")
		default:
			return response.InternalServerError(c, "Signup failed")
		}
	}

	return response.Created(c, "Account created", user)
}

// Logout clears the session cookie
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearSessionCookie(c, h.cfg)
	return response.Success(c, "Logged out", nil)
}

// Me returns the authenticated user's profile
// @Summary Get current user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.CallerID(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	user, err := h.authService.CurrentUser(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUserInactive):
			// The token outlived the account; force a fresh login.
			clearSessionCookie(c, h.cfg)
			return response.Unauthorized(c, "Session is no longer valid")
		default:
			return response.InternalServerError(c, "Failed to load profile")
		}
	}

	return response.Success(c, "Profile retrieved", fiber.Map{
		"user":       user,
		"redirectTo": services.RedirectForRole(user.Role),
	})
}
