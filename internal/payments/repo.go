package payments

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a payments repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateEscrow(ctx context.Context, escrow *models.EscrowPayment) (*models.EscrowPayment, error) {
	if err := r.db.WithContext(ctx).Create(escrow).Error; err != nil {
		return nil, err
	}
	return escrow, nil
}

func (r *repository) FindEscrowByJob(ctx context.Context, jobID uuid.UUID) (*models.EscrowPayment, error) {
	var escrow models.EscrowPayment
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		First(&escrow).Error
	if err != nil {
		return nil, err
	}
	return &escrow, nil
}

func (r *repository) FindEscrowBySquarePayment(ctx context.Context, squarePaymentID string) (*models.EscrowPayment, error) {
	var escrow models.EscrowPayment
	err := r.db.WithContext(ctx).
		Where("square_payment_id = ?", squarePaymentID).
		First(&escrow).Error
	if err != nil {
		return nil, err
	}
	return &escrow, nil
}

func (r *repository) UpdateEscrow(ctx context.Context, escrowID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.EscrowPayment{}).
		Where("id = ?", escrowID).
		Updates(updates).Error
}

func (r *repository) FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where("id = ?", jobID).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}
