package model

import (
	"time"

	"github.com/google/uuid"
)

// SettingDefinition is one configurable value of the audited application,
// with the list of places its value is claimed to be checked.
type SettingDefinition struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SettingKey  string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"setting_key"`
	Module      string    `gorm:"type:varchar(100);not null;index" json:"module"`
	Label       string    `gorm:"type:varchar(255)" json:"label"`
	DataType    string    `gorm:"type:varchar(50)" json:"data_type"` // boolean, number, string, json
	Enforcement string    `gorm:"type:jsonb" json:"enforcement"`     // JSON array of enforcement point names (UI, API, trigger, RLS...)
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// EnforcementPoint is an externally recorded declaration that a setting is
// checked somewhere, supplementing the inline list on SettingDefinition.
type EnforcementPoint struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SettingKey      string    `gorm:"type:varchar(255);not null;index" json:"setting_key"`
	EnforcementType string    `gorm:"type:varchar(100);not null" json:"enforcement_type"`
	IsVerified      bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt       time.Time `json:"created_at"`
}

// SettingRecord is the parsed read-model for the scanners, with the inline
// enforcement jsonb decoded at the repository boundary.
type SettingRecord struct {
	Key         string
	Module      string
	Label       string
	DataType    string
	Enforcement []string
}
