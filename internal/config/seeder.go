package config

import (
	"log"
	"os"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"
	"github.com/keonU206/Hey-Young-system/internal/core/domain"
	"github.com/keonU206/Hey-Young-system/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedDefaults seeds the default admin account and system settings
func SeedDefaults(db *gorm.DB) error {
	return NewSeeder(db).Run()
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}
	if err := s.seedSettings(); err != nil {
		log.Printf("⚠️ Settings seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser creates the bootstrap admin when no admin exists yet.
// The initial password comes from ADMIN_SEED_PASSWORD and must be changed
// after first login.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	seedPassword := os.Getenv("ADMIN_SEED_PASSWORD")
	if seedPassword == "" {
		log.Println("⚠️ Skipping admin seed: ADMIN_SEED_PASSWORD not set")
		return nil
	}
	if !password.ValidatePassword(seedPassword) {
		log.Println("⚠️ Skipping admin seed: seed password shorter than 8 characters")
		return nil
	}

	hash, err := password.Hash(seedPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		LoginID:      "admin",
		Name:         "System Administrator",
		Email:        "admin@hey-young.ac.kr",
		Role:         string(domain.RoleAdmin),
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.LoginID)
	return nil
}

// seedSettings inserts default system settings when missing
func (s *Seeder) seedSettings() error {
	defaults := map[string]string{
		models.SettingAllowStudentSignup:     "true",
		models.SettingAttendanceGraceMinutes: "10",
	}

	for key, value := range defaults {
		var count int64
		s.db.Model(&models.SystemSetting{}).Where("`key` = ?", key).Count(&count)
		if count > 0 {
			continue
		}
		if err := s.db.Create(&models.SystemSetting{Key: key, Value: value}).Error; err != nil {
			return err
		}
	}

	return nil
}
