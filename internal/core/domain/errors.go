package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrPasswordNotSet    = errors.New("user has no password hash")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrSignupDisabled    = errors.New("student signup is disabled")
)

// Catalog errors (departments / semesters / courses)
var (
	ErrDepartmentNotFound = errors.New("department not found")
	ErrSemesterNotFound   = errors.New("semester not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrReferencedRow      = errors.New("row is referenced by another record")
)
