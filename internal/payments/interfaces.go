package payments

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for escrow payments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateEscrow(ctx context.Context, escrow *models.EscrowPayment) (*models.EscrowPayment, error)
	FindEscrowByJob(ctx context.Context, jobID uuid.UUID) (*models.EscrowPayment, error)
	FindEscrowBySquarePayment(ctx context.Context, squarePaymentID string) (*models.EscrowPayment, error)
	UpdateEscrow(ctx context.Context, escrowID uuid.UUID, updates map[string]any) error

	FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
}
