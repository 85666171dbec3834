package model

import (
	"time"

	"github.com/google/uuid"
)

// Verification status of an action's observable wiring
const (
	VerificationVerified   = "verified"
	VerificationUnverified = "unverified"
	VerificationNoEvent    = "no_event"
)

// ActionRegistryEntry is one declared, role-gated operation of the audited
// application (e.g. "payroll.approve"). The registry is read-only for the
// scanner; rows are declared by the host system.
type ActionRegistryEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"` // dot-namespaced: "module.verb"
	Module     string    `gorm:"type:varchar(100);not null;index" json:"module"`
	EntityType string    `gorm:"type:varchar(100)" json:"entity_type"`
	Roles      string    `gorm:"type:jsonb" json:"roles"` // JSON array of role names allowed to trigger the action
	IsActive   bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// ImpactMapping declares that an action is expected to cause an effect type.
// Many-to-many: one action may declare zero or more effects.
type ImpactMapping struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActionName string    `gorm:"type:varchar(255);not null;index" json:"action_name"`
	EffectType string    `gorm:"type:varchar(255);not null;index" json:"effect_type"`
	IsActive   bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// EventMapping links an action to an observed event with its verification status.
// Optional per action; verification_status is "verified" or "unverified".
type EventMapping struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActionName         string    `gorm:"type:varchar(255);not null;index" json:"action_name"`
	EventName          string    `gorm:"type:varchar(255);not null" json:"event_name"`
	VerificationStatus string    `gorm:"type:varchar(20);not null" json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
}

// ActionRecord is the parsed read-model handed to the scanners: the jsonb
// roles column is decoded at the repository boundary so scanner code never
// sees raw store rows.
type ActionRecord struct {
	Name       string
	Module     string
	EntityType string
	Roles      []string
}
