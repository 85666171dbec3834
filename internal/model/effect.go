package model

import (
	"time"

	"github.com/google/uuid"
)

// EffectType catalogs one category of observable side effect the audited
// system can cause (notification sent, record archived, ...).
type EffectType struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Category  string    `gorm:"type:varchar(100);index" json:"category"`
	IsAsync   bool      `gorm:"default:false" json:"is_async"`
	IsActive  bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
