package compliance

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a compliance repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateRecord(ctx context.Context, record *models.ComplianceRecord) (*models.ComplianceRecord, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *repository) FindRecord(ctx context.Context, recordID uuid.UUID) (*models.ComplianceRecord, error) {
	var record models.ComplianceRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", recordID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListRecords(ctx context.Context, userID uuid.UUID) ([]models.ComplianceRecord, error) {
	var records []models.ComplianceRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) UpdateRecord(ctx context.Context, recordID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.ComplianceRecord{}).
		Where("id = ?", recordID).
		Updates(updates).Error
}

func (r *repository) SetAgentBackgroundCheck(ctx context.Context, userID uuid.UUID, status enums.ComplianceStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.AgentProfile{}).
		Where("user_id = ?", userID).
		Update("background_check_status", status).Error
}
