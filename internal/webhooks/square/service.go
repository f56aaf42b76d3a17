package squarewebhook

import (
	"context"
	"strings"

	"github.com/Rushington-dev/staffshield-pro-backend/internal/payments"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service applies Square payment events to the escrow ledger.
type Service struct {
	repo     payments.Repository
	txRunner txRunner
}

// NewService builds the Square webhook service.
func NewService(repo payments.Repository, tx txRunner) (*Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments repo required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	return &Service{repo: repo, txRunner: tx}, nil
}

// SquareWebhookEvent is the envelope Square posts to the webhook endpoint.
type SquareWebhookEvent struct {
	EventID string            `json:"event_id"`
	Type    string            `json:"type"`
	Data    SquareWebhookData `json:"data"`
}

type SquareWebhookData struct {
	Type   string              `json:"type"`
	ID     string              `json:"id"`
	Object SquareWebhookObject `json:"object"`
}

type SquareWebhookObject struct {
	Payment *SquarePaymentObject `json:"payment"`
}

// SquarePaymentObject is the slice of Square's payment resource the escrow
// flow cares about.
type SquarePaymentObject struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// HandleEvent processes Square payment lifecycle events. Events for unknown
// payments and event types outside the payment lifecycle are ignored; Square
// replays everything it ever saw on resubscription.
func (s *Service) HandleEvent(ctx context.Context, event *SquareWebhookEvent) error {
	if event == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "square event required")
	}

	switch strings.ToLower(event.Type) {
	case "payment.created", "payment.updated":
		if event.Data.Object.Payment == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "payment payload missing")
		}
		return s.syncPayment(ctx, event.Data.Object.Payment)
	default:
		return nil
	}
}

func (s *Service) syncPayment(ctx context.Context, payment *SquarePaymentObject) error {
	paymentID := strings.TrimSpace(payment.ID)
	if paymentID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "payment id missing")
	}

	target, terminal := statusFromProvider(payment.Status)
	if !terminal {
		return nil
	}

	return s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		escrow, err := repo.FindEscrowBySquarePayment(ctx, paymentID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				// Not an escrow we opened; drop it.
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load escrow")
		}

		// Only pending escrows follow the provider; released and refunded
		// states are owned by this side.
		if escrow.Status != enums.PaymentStatusPending {
			return nil
		}
		if err := repo.UpdateEscrow(ctx, escrow.ID, map[string]any{"status": target}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update escrow")
		}
		return nil
	})
}

func statusFromProvider(status string) (enums.PaymentStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case "COMPLETED", "APPROVED":
		return enums.PaymentStatusHeld, true
	case "FAILED", "CANCELED":
		return enums.PaymentStatusFailed, true
	default:
		return enums.PaymentStatusPending, false
	}
}
