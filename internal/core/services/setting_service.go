package services

import (
	"context"
	"strconv"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/repositories"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
)

// knownSettingKeys lists the settings the API exposes; unknown rows are
// ignored rather than surfaced.
var knownSettingKeys = []string{
	models.SettingCurrentSemesterID,
	models.SettingAllowStudentSignup,
	models.SettingAttendanceGraceMinutes,
}

// SettingsPayload is the typed shape of the system settings
type SettingsPayload struct {
	CurrentSemesterID      *uint `json:"current_semester_id"`
	AllowStudentSignup     bool  `json:"allow_student_signup"`
	AttendanceGraceMinutes int   `json:"attendance_grace_minutes"`
}

// UpdateSettingsInput carries partial settings changes
type UpdateSettingsInput struct {
	CurrentSemesterID      *uint `json:"current_semester_id"`
	AllowStudentSignup     *bool `json:"allow_student_signup"`
	AttendanceGraceMinutes *int  `json:"attendance_grace_minutes"`
}

// SettingService reads and writes the system_settings key/value rows
type SettingService struct {
	repo  repositories.SettingRepository
	audit *AuditService
}

// NewSettingService creates a new setting service
func NewSettingService(repo repositories.SettingRepository, audit *AuditService) *SettingService {
	return &SettingService{repo: repo, audit: audit}
}

// Get returns the current settings with defaults for missing keys
func (s *SettingService) Get(ctx context.Context) (*SettingsPayload, error) {
	rows, err := s.repo.GetAll(ctx, knownSettingKeys)
	if err != nil {
		return nil, err
	}

	payload := &SettingsPayload{
		AllowStudentSignup:     rows[models.SettingAllowStudentSignup] != "false",
		AttendanceGraceMinutes: 10,
	}

	if v, ok := rows[models.SettingCurrentSemesterID]; ok && v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			semID := uint(id)
			payload.CurrentSemesterID = &semID
		}
	}
	if v, ok := rows[models.SettingAttendanceGraceMinutes]; ok {
		if mins, err := strconv.Atoi(v); err == nil {
			payload.AttendanceGraceMinutes = mins
		}
	}

	return payload, nil
}

// Update upserts the provided keys and records one POLICY audit entry with
// the old rows and the requested change.
func (s *SettingService) Update(ctx context.Context, adminID uint, input *UpdateSettingsInput) error {
	oldRows, err := s.repo.GetAll(ctx, knownSettingKeys)
	if err != nil {
		return err
	}

	if input.CurrentSemesterID != nil {
		if err := s.repo.Upsert(ctx, models.SettingCurrentSemesterID,
			strconv.FormatUint(uint64(*input.CurrentSemesterID), 10)); err != nil {
			return err
		}
	}
	if input.AllowStudentSignup != nil {
		if err := s.repo.Upsert(ctx, models.SettingAllowStudentSignup,
			strconv.FormatBool(*input.AllowStudentSignup)); err != nil {
			return err
		}
	}
	if input.AttendanceGraceMinutes != nil {
		if err := s.repo.Upsert(ctx, models.SettingAttendanceGraceMinutes,
			strconv.Itoa(*input.AttendanceGraceMinutes)); err != nil {
			return err
		}
	}

	s.audit.Record(ctx, adminID, domain.TargetPolicy, 0,
		domain.ActionSystemSettingsUpdate, oldRows, input)

	return nil
}
