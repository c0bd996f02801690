package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// Identity
// ============================================================

// User represents users table. Deletes are hard deletes; audit history keeps
// its own copy of whatever is removed.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	LoginID      string    `gorm:"column:login_id;uniqueIndex;size:30;not null" json:"login_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Department   *string   `gorm:"size:100" json:"department"`
	Role         string    `gorm:"size:20;not null;default:'STUDENT'" json:"role"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO. Doubles as the audit snapshot shape for user mutations:
// it carries no password material by construction.
type UserResponse struct {
	ID         uint      `json:"id"`
	LoginID    string    `json:"login_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department *string   `json:"department"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		LoginID:    u.LoginID,
		Name:       u.Name,
		Email:      u.Email,
		Department: u.Department,
		Role:       u.Role,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// ============================================================
// Catalog
// ============================================================

// Department represents departments table
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;size:20;not null" json:"code"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Department) TableName() string {
	return "departments"
}

// Semester represents semesters table
type Semester struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"uniqueIndex;size:50;not null" json:"name"`
	StartDate  time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate    time.Time `gorm:"type:date;not null" json:"end_date"`
	TotalWeeks int       `gorm:"not null" json:"total_weeks"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Semester) TableName() string {
	return "semesters"
}

// Course represents courses table.
// (code, semester_id, section) identifies one offering per term.
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Code         string    `gorm:"size:20;not null;uniqueIndex:idx_course_offering" json:"code"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Section      *string   `gorm:"size:10;uniqueIndex:idx_course_offering" json:"section"`
	SemesterID   uint      `gorm:"not null;uniqueIndex:idx_course_offering" json:"semester_id"`
	InstructorID uint      `gorm:"not null;index" json:"instructor_id"`
	RoomDefault  *string   `gorm:"size:50" json:"room_default"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations (real FK constraints; deleting a referenced semester or
	// instructor fails at the storage layer)
	Semester   *Semester `gorm:"foreignKey:SemesterID" json:"semester,omitempty"`
	Instructor *User     `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseResponse DTO, also the audit snapshot shape for course mutations
type CourseResponse struct {
	ID           uint    `json:"id"`
	Code         string  `json:"code"`
	Title        string  `json:"title"`
	Section      *string `json:"section"`
	SemesterID   uint    `json:"semester_id"`
	InstructorID uint    `json:"instructor_id"`
	RoomDefault  *string `json:"room_default"`
}

func (c *Course) ToResponse() *CourseResponse {
	return &CourseResponse{
		ID:           c.ID,
		Code:         c.Code,
		Title:        c.Title,
		Section:      c.Section,
		SemesterID:   c.SemesterID,
		InstructorID: c.InstructorID,
		RoomDefault:  c.RoomDefault,
	}
}

// ============================================================
// Attendance scaffolding
// ============================================================
// Sessions, enrollments and excuses exist so the system report can count them
// and foreign keys hold. Scheduling and check-in logic live elsewhere.

// ClassSession represents class_sessions table
type ClassSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;index" json:"course_id"`
	WeekNo    int       `gorm:"not null" json:"week_no"`
	StartsAt  time.Time `gorm:"not null" json:"starts_at"`
	EndsAt    time.Time `gorm:"not null" json:"ends_at"`
	Room      *string   `gorm:"size:50" json:"room"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Course *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (ClassSession) TableName() string {
	return "class_sessions"
}

// Enrollment represents enrollments table
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_enrollment" json:"course_id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_enrollment" json:"student_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Course  *Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Student *User   `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// Excuse represents excuses table (attachment upload is not handled)
type Excuse struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"not null;index" json:"session_id"`
	StudentID uint      `gorm:"not null;index" json:"student_id"`
	Reason    string    `gorm:"type:text" json:"reason"`
	Status    string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Session *ClassSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

func (Excuse) TableName() string {
	return "excuses"
}

// ============================================================
// Settings & audit
// ============================================================

// SystemSetting represents system_settings table (string key/value rows)
type SystemSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:50;not null" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SystemSetting) TableName() string {
	return "system_settings"
}

// Known setting keys
const (
	SettingCurrentSemesterID      = "current_semester_id"
	SettingAllowStudentSignup     = "allow_student_signup"
	SettingAttendanceGraceMinutes = "attendance_grace_minutes"
)

// AuditLog represents audit_logs table. Append-only: rows are never updated
// or deleted. actor_id 0 means system work; it is a weak reference so history
// survives user deletion, hence no FK constraint here.
type AuditLog struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ActorID    uint           `gorm:"not null;default:0;index" json:"actor_id"`
	TargetType string         `gorm:"size:20;not null;index" json:"target_type"`
	TargetID   uint           `gorm:"not null" json:"target_id"`
	Action     string         `gorm:"size:64;not null;index" json:"action"`
	BeforeData datatypes.JSON `json:"before_data"`
	AfterData  datatypes.JSON `json:"after_data"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditActor is the joined-in actor shape for log listings
type AuditActor struct {
	ID      uint   `json:"id"`
	LoginID string `json:"login_id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
}

// AuditLogResponse DTO with the actor resolved (nil for system entries or
// deleted users)
type AuditLogResponse struct {
	ID         uint           `json:"id"`
	Actor      *AuditActor    `json:"actor"`
	TargetType string         `json:"target_type"`
	TargetID   uint           `json:"target_id"`
	Action     string         `json:"action"`
	BeforeData datatypes.JSON `json:"before_data"`
	AfterData  datatypes.JSON `json:"after_data"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all application tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Department{},
		&Semester{},
		&Course{},
		&ClassSession{},
		&Enrollment{},
		&Excuse{},
		&SystemSetting{},
		&AuditLog{},
	)
}
