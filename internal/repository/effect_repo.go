package repository

import (
	"context"

	"backend/internal/model"

	"gorm.io/gorm"
)

// EffectRepository reads the effect-type catalog. No activity filter here:
// inactive effects stay in the inventory and are only filtered in the
// summary counters.
type EffectRepository interface {
	ListEffectTypes(ctx context.Context) ([]model.EffectType, error)
}

type effectRepository struct {
	db *gorm.DB
}

// NewEffectRepository returns a new instance of EffectRepository
func NewEffectRepository(db *gorm.DB) EffectRepository {
	return &effectRepository{db: db}
}

func (r *effectRepository) ListEffectTypes(ctx context.Context) ([]model.EffectType, error) {
	var effects []model.EffectType
	if err := r.db.WithContext(ctx).Order("name asc").Find(&effects).Error; err != nil {
		return nil, err
	}
	return effects, nil
}
