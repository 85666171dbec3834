package model

import (
	"time"

	"github.com/google/uuid"
)

// ScanRecord is one archived scan run. Rows are append-only: scans are never
// updated or deleted, so the table is a diffable audit trail of scan history.
type ScanRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TriggeredBy string    `gorm:"type:varchar(50);index" json:"triggered_by"` // invoking user id
	StartedAt   time.Time `gorm:"not null;index" json:"started_at"`
	DurationMs  int64     `gorm:"not null" json:"duration_ms"`
	Summary     string    `gorm:"type:jsonb" json:"summary"` // serialized Summary
	Payload     string    `gorm:"type:jsonb" json:"payload"` // serialized full InventorySnapshot
	DefectCount int       `gorm:"not null" json:"defect_count"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// ScanDefect is one defect row archived under its parent scan. DefectID is
// the deterministic id shared across scans so reruns can be diffed; ID is
// the row's own key.
type ScanDefect struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ScanID        uuid.UUID `gorm:"type:uuid;not null;index" json:"scan_id"`
	DefectID      string    `gorm:"type:varchar(50);not null;index" json:"defect_id"`
	Type          string    `gorm:"type:varchar(50);not null;index" json:"type"`
	Severity      string    `gorm:"type:varchar(5);not null;index" json:"severity"`
	ComponentType string    `gorm:"type:varchar(50);not null" json:"component_type"`
	ComponentName string    `gorm:"type:varchar(255);not null" json:"component_name"`
	Description   string    `gorm:"type:text" json:"description"`
	SuggestedFix  string    `gorm:"type:text" json:"suggested_fix,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
