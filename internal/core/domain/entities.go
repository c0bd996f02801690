package domain

// Role represents user role in the system
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleInstructor Role = "INSTRUCTOR"
	RoleStudent    Role = "STUDENT"
)

// ValidRole reports whether r is one of the three supported roles.
func ValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// AuditTargetType enumerates the kinds of records an audit entry can point at.
type AuditTargetType string

const (
	TargetUser       AuditTargetType = "USER"
	TargetDepartment AuditTargetType = "DEPARTMENT"
	TargetSemester   AuditTargetType = "SEMESTER"
	TargetCourse     AuditTargetType = "COURSE"
	TargetAttendance AuditTargetType = "ATTENDANCE"
	TargetPolicy     AuditTargetType = "POLICY"
	TargetSystem     AuditTargetType = "SYSTEM"
	TargetOther      AuditTargetType = "OTHER"
)

// SystemActorID is stored as actor_id when an audit entry has no human actor.
// The column is not nullable, so system work uses this sentinel.
const SystemActorID uint = 0

// Audit actions shared across services. Login and password-change failures
// carry one action per distinct reason so entries stay mutually exclusive.
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"

	ActionLoginSuccess             = "LOGIN_SUCCESS"
	ActionLoginFailedMissingFields = "LOGIN_FAILED_MISSING_FIELDS"
	ActionLoginFailedUserNotFound  = "LOGIN_FAILED_USER_NOT_FOUND"
	ActionLoginFailedInactiveUser  = "LOGIN_FAILED_INACTIVE_USER"
	ActionLoginFailedNoHash        = "LOGIN_FAILED_NO_HASH"
	ActionLoginFailedWrongPassword = "LOGIN_FAILED_WRONG_PASSWORD"

	ActionPasswordChangeSuccess             = "PASSWORD_CHANGE_SUCCESS"
	ActionPasswordChangeFailedMissingFields = "PASSWORD_CHANGE_FAILED_MISSING_FIELDS"
	ActionPasswordChangeFailedTooShort      = "PASSWORD_CHANGE_FAILED_TOO_SHORT"
	ActionPasswordChangeFailedUserNotFound  = "PASSWORD_CHANGE_FAILED_USER_NOT_FOUND"
	ActionPasswordChangeFailedInactiveUser  = "PASSWORD_CHANGE_FAILED_INACTIVE_USER"
	ActionPasswordChangeFailedNoHash        = "PASSWORD_CHANGE_FAILED_NO_HASH"
	ActionPasswordChangeFailedWrongPassword = "PASSWORD_CHANGE_FAILED_WRONG_PASSWORD"

	// ERROR_ marks unexpected internal failures; the error report filters
	// on this prefix.
	ActionErrorPasswordChange = "ERROR_PASSWORD_CHANGE"

	ActionSystemSettingsUpdate = "SYSTEM_SETTINGS_UPDATE"
	ActionSystemDailyReport    = "SYSTEM_DAILY_REPORT"
)
