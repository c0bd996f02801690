package services

import (
	"context"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"

	"gorm.io/gorm"
)

// ReportService aggregates counts across the whole schema for the admin
// system report. Like the dashboards it grew out of, it talks to the DB
// directly instead of going through per-table repositories.
type ReportService struct {
	db *gorm.DB
}

// NewReportService creates a new report service
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// UserCounts breaks the user total down by role
type UserCounts struct {
	Total       int64 `json:"total"`
	Students    int64 `json:"students"`
	Instructors int64 `json:"instructors"`
	Admins      int64 `json:"admins"`
}

// SystemSummary is the admin system report payload
type SystemSummary struct {
	Users         UserCounts `json:"users"`
	Departments   int64      `json:"departments"`
	Semesters     int64      `json:"semesters"`
	Courses       int64      `json:"courses"`
	ClassSessions int64      `json:"class_sessions"`
	Enrollments   int64      `json:"enrollments"`
	Excuses       int64      `json:"excuses"`
}

// Summary counts every resource in one pass
func (s *ReportService) Summary(ctx context.Context) (*SystemSummary, error) {
	db := s.db.WithContext(ctx)
	summary := &SystemSummary{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&summary.Users.Total, db.Model(&models.User{})},
		{&summary.Users.Students, db.Model(&models.User{}).Where("role = ?", domain.RoleStudent)},
		{&summary.Users.Instructors, db.Model(&models.User{}).Where("role = ?", domain.RoleInstructor)},
		{&summary.Users.Admins, db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin)},
		{&summary.Departments, db.Model(&models.Department{})},
		{&summary.Semesters, db.Model(&models.Semester{})},
		{&summary.Courses, db.Model(&models.Course{})},
		{&summary.ClassSessions, db.Model(&models.ClassSession{})},
		{&summary.Enrollments, db.Model(&models.Enrollment{})},
		{&summary.Excuses, db.Model(&models.Excuse{})},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	return summary, nil
}
