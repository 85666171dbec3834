package repository

import (
	"context"
	"encoding/json"
	"log"

	"backend/internal/model"

	"gorm.io/gorm"
)

// ActionRepository reads the action slice of the metadata store: the action
// registry, the impact matrix and the action-event mappings.
type ActionRepository interface {
	ListActiveActions(ctx context.Context) ([]model.ActionRecord, error)
	ListActiveImpactMappings(ctx context.Context) ([]model.ImpactMapping, error)
	ListEventMappings(ctx context.Context) ([]model.EventMapping, error)
}

type actionRepository struct {
	db *gorm.DB
}

// NewActionRepository returns a new instance of ActionRepository
func NewActionRepository(db *gorm.DB) ActionRepository {
	return &actionRepository{db: db}
}

func (r *actionRepository) ListActiveActions(ctx context.Context) ([]model.ActionRecord, error) {
	var entries []model.ActionRegistryEntry
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name asc").Find(&entries).Error; err != nil {
		return nil, err
	}

	records := make([]model.ActionRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, model.ActionRecord{
			Name:       e.Name,
			Module:     e.Module,
			EntityType: e.EntityType,
			Roles:      parseJSONList(e.Name, "roles", e.Roles),
		})
	}
	return records, nil
}

func (r *actionRepository) ListActiveImpactMappings(ctx context.Context) ([]model.ImpactMapping, error) {
	var mappings []model.ImpactMapping
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at asc").Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *actionRepository) ListEventMappings(ctx context.Context) ([]model.EventMapping, error) {
	var mappings []model.EventMapping
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// parseJSONList decodes a jsonb string-array column. A malformed value is a
// partial-data condition: the row degrades to an empty list instead of
// aborting the read.
func parseJSONList(owner, column, raw string) []string {
	if raw == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		log.Printf("malformed %s column on %q, treating as empty: %v", column, owner, err)
		return []string{}
	}
	return values
}
