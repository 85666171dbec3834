package repository

import (
	"context"

	"backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScanRepository is the persistence sink for scan history. Append-only: no
// update or delete methods exist on purpose.
type ScanRepository interface {
	CreateScan(ctx context.Context, scan *model.ScanRecord) error
	CreateDefects(ctx context.Context, defects []model.ScanDefect) error
	List(ctx context.Context, page, limit int) ([]model.ScanRecord, int64, error)
	GetByID(ctx context.Context, id string) (*model.ScanRecord, error)
	ListDefects(ctx context.Context, scanID string, page, limit int) ([]model.ScanDefect, int64, error)
}

type scanRepository struct {
	db *gorm.DB
}

// NewScanRepository returns a new instance of ScanRepository
func NewScanRepository(db *gorm.DB) ScanRepository {
	return &scanRepository{db: db}
}

func (r *scanRepository) CreateScan(ctx context.Context, scan *model.ScanRecord) error {
	return GetDB(ctx, r.db).Create(scan).Error
}

func (r *scanRepository) CreateDefects(ctx context.Context, defects []model.ScanDefect) error {
	if len(defects) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&defects).Error
}

func (r *scanRepository) List(ctx context.Context, page, limit int) ([]model.ScanRecord, int64, error) {
	var scans []model.ScanRecord
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.ScanRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&scans).Error; err != nil {
		return nil, 0, err
	}

	return scans, total, nil
}

func (r *scanRepository) GetByID(ctx context.Context, id string) (*model.ScanRecord, error) {
	scanID, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	var scan model.ScanRecord
	if err := GetDB(ctx, r.db).First(&scan, "id = ?", scanID).Error; err != nil {
		return nil, err
	}
	return &scan, nil
}

func (r *scanRepository) ListDefects(ctx context.Context, scanID string, page, limit int) ([]model.ScanDefect, int64, error) {
	parsed, err := uuid.Parse(scanID)
	if err != nil {
		return nil, 0, err
	}

	var defects []model.ScanDefect
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.ScanDefect{}).Where("scan_id = ?", parsed).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Where("scan_id = ?", parsed).Order("severity asc, component_name asc").Offset(offset).Limit(limit).Find(&defects).Error; err != nil {
		return nil, 0, err
	}

	return defects, total, nil
}
