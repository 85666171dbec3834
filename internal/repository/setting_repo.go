package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// SettingRepository reads the settings slice of the metadata store: setting
// definitions and the externally recorded enforcement points.
type SettingRepository interface {
	ListActiveSettings(ctx context.Context) ([]model.SettingRecord, error)
	ListEnforcementPoints(ctx context.Context) ([]model.EnforcementPoint, error)
}

type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository returns a new instance of SettingRepository
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

func (r *settingRepository) ListActiveSettings(ctx context.Context) ([]model.SettingRecord, error) {
	var definitions []model.SettingDefinition
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("setting_key asc").Find(&definitions).Error; err != nil {
		return nil, err
	}

	records := make([]model.SettingRecord, 0, len(definitions))
	for _, d := range definitions {
		records = append(records, model.SettingRecord{
			Key:         d.SettingKey,
			Module:      d.Module,
			Label:       d.Label,
			DataType:    d.DataType,
			Enforcement: parseJSONList(d.SettingKey, "enforcement", d.Enforcement),
		})
	}
	return records, nil
}

func (r *settingRepository) ListEnforcementPoints(ctx context.Context) ([]model.EnforcementPoint, error) {
	var points []model.EnforcementPoint
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}
