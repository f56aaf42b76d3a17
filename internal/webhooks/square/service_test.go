package squarewebhook

import (
	"context"
	"testing"

	"github.com/Rushington-dev/staffshield-pro-backend/internal/payments"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubEscrowRepo struct {
	escrows map[string]*models.EscrowPayment
}

func newStubEscrowRepo() *stubEscrowRepo {
	return &stubEscrowRepo{escrows: map[string]*models.EscrowPayment{}}
}

func (s *stubEscrowRepo) WithTx(tx *gorm.DB) payments.Repository { return s }

func (s *stubEscrowRepo) CreateEscrow(ctx context.Context, escrow *models.EscrowPayment) (*models.EscrowPayment, error) {
	return escrow, nil
}

func (s *stubEscrowRepo) FindEscrowByJob(ctx context.Context, jobID uuid.UUID) (*models.EscrowPayment, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubEscrowRepo) FindEscrowBySquarePayment(ctx context.Context, squarePaymentID string) (*models.EscrowPayment, error) {
	escrow, ok := s.escrows[squarePaymentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return escrow, nil
}

func (s *stubEscrowRepo) UpdateEscrow(ctx context.Context, escrowID uuid.UUID, updates map[string]any) error {
	for _, escrow := range s.escrows {
		if escrow.ID == escrowID {
			if status, ok := updates["status"].(enums.PaymentStatus); ok {
				escrow.Status = status
			}
		}
	}
	return nil
}

func (s *stubEscrowRepo) FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	return nil, gorm.ErrRecordNotFound
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo payments.Repository) *Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func seedEscrow(repo *stubEscrowRepo, paymentID string, status enums.PaymentStatus) *models.EscrowPayment {
	escrow := &models.EscrowPayment{
		ID:              uuid.New(),
		JobID:           uuid.New(),
		ClientID:        uuid.New(),
		AmountCents:     50000,
		Currency:        "USD",
		SquarePaymentID: &paymentID,
		Status:          status,
	}
	repo.escrows[paymentID] = escrow
	return escrow
}

func paymentEvent(eventType, paymentID, status string) *SquareWebhookEvent {
	return &SquareWebhookEvent{
		EventID: "evt-" + uuid.NewString(),
		Type:    eventType,
		Data: SquareWebhookData{
			Type: "payment",
			ID:   paymentID,
			Object: SquareWebhookObject{
				Payment: &SquarePaymentObject{ID: paymentID, Status: status},
			},
		},
	}
}

func TestCompletedPaymentHoldsEscrow(t *testing.T) {
	t.Parallel()

	repo := newStubEscrowRepo()
	escrow := seedEscrow(repo, "sq-pay-1", enums.PaymentStatusPending)
	svc := newTestService(t, repo)

	if err := svc.HandleEvent(context.Background(), paymentEvent("payment.updated", "sq-pay-1", "COMPLETED")); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if escrow.Status != enums.PaymentStatusHeld {
		t.Fatalf("expected held got %s", escrow.Status)
	}
}

func TestFailedPaymentMarksEscrowFailed(t *testing.T) {
	t.Parallel()

	repo := newStubEscrowRepo()
	escrow := seedEscrow(repo, "sq-pay-2", enums.PaymentStatusPending)
	svc := newTestService(t, repo)

	if err := svc.HandleEvent(context.Background(), paymentEvent("payment.updated", "sq-pay-2", "FAILED")); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if escrow.Status != enums.PaymentStatusFailed {
		t.Fatalf("expected failed got %s", escrow.Status)
	}
}

func TestProviderNeverOverridesRelease(t *testing.T) {
	t.Parallel()

	repo := newStubEscrowRepo()
	escrow := seedEscrow(repo, "sq-pay-3", enums.PaymentStatusReleased)
	svc := newTestService(t, repo)

	if err := svc.HandleEvent(context.Background(), paymentEvent("payment.updated", "sq-pay-3", "FAILED")); err != nil {
		t.Fatalf("handle failed: %v", err)
	}
	if escrow.Status != enums.PaymentStatusReleased {
		t.Fatalf("released escrow must not regress, got %s", escrow.Status)
	}
}

func TestUnknownPaymentIgnored(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubEscrowRepo())

	if err := svc.HandleEvent(context.Background(), paymentEvent("payment.updated", "sq-pay-unknown", "COMPLETED")); err != nil {
		t.Fatalf("unknown payment must be ignored, got %v", err)
	}
}

func TestUnrelatedEventTypeIgnored(t *testing.T) {
	t.Parallel()

	repo := newStubEscrowRepo()
	escrow := seedEscrow(repo, "sq-pay-4", enums.PaymentStatusPending)
	svc := newTestService(t, repo)

	event := &SquareWebhookEvent{Type: "refund.updated"}
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("unrelated event must be ignored, got %v", err)
	}
	if escrow.Status != enums.PaymentStatusPending {
		t.Fatal("unrelated event must not touch escrows")
	}
}
