package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkflowRule is a generic automation rule of the audited application.
// Event-driven rules carry a TriggerEvent; scheduled ones carry a cron
// Schedule instead.
type WorkflowRule struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	TriggerEvent string    `gorm:"type:varchar(255)" json:"trigger_event"`
	Schedule     string    `gorm:"type:varchar(100)" json:"schedule"` // cron expression, empty for event-driven rules
	Condition    string    `gorm:"type:text" json:"condition"`
	Consequence  string    `gorm:"type:text" json:"consequence"`
	IsActive     bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// TicketRule is a domain-specific automation rule from the ticketing module,
// normalized by the trigger scanner into the same inventory shape.
type TicketRule struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Condition   string    `gorm:"type:text" json:"condition"`
	Consequence string    `gorm:"type:text" json:"consequence"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
