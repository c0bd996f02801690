package repositories

import (
	"context"

	"github.com/keonU206/Hey-Young-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingRepository implements SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// GetAll returns the requested keys as a map; absent keys are simply missing.
func (r *settingRepository) GetAll(ctx context.Context, keys []string) (map[string]string, error) {
	var rows []*models.SystemSetting
	err := r.db.WithContext(ctx).Where("`key` IN ?", keys).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// Upsert inserts or replaces a single setting row
func (r *settingRepository) Upsert(ctx context.Context, key, value string) error {
	row := &models.SystemSetting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(row).Error
}
