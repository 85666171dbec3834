package repository

import (
	"context"
	"fmt"

	"backend/internal/model"

	"gorm.io/gorm"
)

// TriggerRepository reads the three heterogeneous trigger sources: the
// storage engine's own trigger catalog, generic workflow rules and the
// ticketing module's automation rules. Each source can fail independently;
// the trigger scanner degrades per source.
type TriggerRepository interface {
	ListDatabaseTriggers(ctx context.Context) ([]model.InventoryTrigger, error)
	ListWorkflowRules(ctx context.Context) ([]model.WorkflowRule, error)
	ListTicketRules(ctx context.Context) ([]model.TicketRule, error)
}

type triggerRepository struct {
	db *gorm.DB
}

// NewTriggerRepository returns a new instance of TriggerRepository
func NewTriggerRepository(db *gorm.DB) TriggerRepository {
	return &triggerRepository{db: db}
}

// ListDatabaseTriggers introspects information_schema for low-level triggers
// defined on the audited schema.
func (r *triggerRepository) ListDatabaseTriggers(ctx context.Context) ([]model.InventoryTrigger, error) {
	var rows []struct {
		TriggerName string
		TableName   string
		Timing      string
		Event       string
		Statement   string
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT trigger_name        AS trigger_name,
		       event_object_table  AS table_name,
		       action_timing       AS timing,
		       event_manipulation  AS event,
		       action_statement    AS statement
		FROM information_schema.triggers
		WHERE trigger_schema = current_schema()
		ORDER BY trigger_name
	`).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to introspect database triggers: %w", err)
	}

	triggers := make([]model.InventoryTrigger, 0, len(rows))
	for _, row := range rows {
		triggers = append(triggers, model.InventoryTrigger{
			Type:            model.TriggerDatabase,
			Name:            row.TriggerName,
			TableOrSchedule: row.TableName,
			Condition:       row.Timing + " " + row.Event,
			Consequence:     row.Statement,
			IsActive:        true, // information_schema only lists enabled triggers
		})
	}
	return triggers, nil
}

func (r *triggerRepository) ListWorkflowRules(ctx context.Context) ([]model.WorkflowRule, error) {
	var rules []model.WorkflowRule
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *triggerRepository) ListTicketRules(ctx context.Context) ([]model.TicketRule, error) {
	var rules []model.TicketRule
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}
