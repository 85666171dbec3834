package database

import (
	"log"

	"backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate the metadata tables the scanner reads plus the scan
	// archive it writes
	err = db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.Permission{},
		&model.ActionRegistryEntry{},
		&model.ImpactMapping{},
		&model.EventMapping{},
		&model.SettingDefinition{},
		&model.EnforcementPoint{},
		&model.EffectType{},
		&model.WorkflowRule{},
		&model.TicketRule{},
		&model.ScanRecord{},
		&model.ScanDefect{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
