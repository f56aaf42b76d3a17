package compliance

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for compliance records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateRecord(ctx context.Context, record *models.ComplianceRecord) (*models.ComplianceRecord, error)
	FindRecord(ctx context.Context, recordID uuid.UUID) (*models.ComplianceRecord, error)
	ListRecords(ctx context.Context, userID uuid.UUID) ([]models.ComplianceRecord, error)
	UpdateRecord(ctx context.Context, recordID uuid.UUID, updates map[string]any) error

	SetAgentBackgroundCheck(ctx context.Context, userID uuid.UUID, status enums.ComplianceStatus) error
}
