package payments

import (
	"context"
	"testing"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/square"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	sq "github.com/square/square-go-sdk"
	"gorm.io/gorm"
)

type stubPaymentsRepo struct {
	jobs      map[uuid.UUID]*models.Job
	escrows   map[uuid.UUID]*models.EscrowPayment
	createErr error
}

func newStubPaymentsRepo() *stubPaymentsRepo {
	return &stubPaymentsRepo{
		jobs:    map[uuid.UUID]*models.Job{},
		escrows: map[uuid.UUID]*models.EscrowPayment{},
	}
}

func (s *stubPaymentsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubPaymentsRepo) CreateEscrow(ctx context.Context, escrow *models.EscrowPayment) (*models.EscrowPayment, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	for _, existing := range s.escrows {
		if existing.JobID == escrow.JobID {
			return nil, errDuplicateEscrow{}
		}
	}
	if escrow.ID == uuid.Nil {
		escrow.ID = uuid.New()
	}
	s.escrows[escrow.ID] = escrow
	return escrow, nil
}

func (s *stubPaymentsRepo) FindEscrowByJob(ctx context.Context, jobID uuid.UUID) (*models.EscrowPayment, error) {
	for _, escrow := range s.escrows {
		if escrow.JobID == jobID {
			return escrow, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPaymentsRepo) FindEscrowBySquarePayment(ctx context.Context, squarePaymentID string) (*models.EscrowPayment, error) {
	for _, escrow := range s.escrows {
		if escrow.SquarePaymentID != nil && *escrow.SquarePaymentID == squarePaymentID {
			return escrow, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubPaymentsRepo) UpdateEscrow(ctx context.Context, escrowID uuid.UUID, updates map[string]any) error {
	escrow := s.escrows[escrowID]
	if status, ok := updates["status"].(enums.PaymentStatus); ok {
		escrow.Status = status
	}
	return nil
}

func (s *stubPaymentsRepo) FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return job, nil
}

type errDuplicateEscrow struct{}

func (errDuplicateEscrow) Error() string {
	return `duplicate key value violates unique constraint "idx_escrow_payments_job_id"`
}

type stubGateway struct {
	status   string
	lastCall *square.PaymentCreateParams
	err      error
}

func (g *stubGateway) CreatePayment(ctx context.Context, params square.PaymentCreateParams) (*sq.Payment, error) {
	g.lastCall = &params
	if g.err != nil {
		return nil, g.err
	}
	id := "sq-pay-" + uuid.NewString()
	status := g.status
	if status == "" {
		status = "COMPLETED"
	}
	return &sq.Payment{ID: &id, Status: &status}, nil
}

func (g *stubGateway) LocationID() string { return "LOC123" }

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository, gateway paymentGateway) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, gateway, nil)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func seedJob(repo *stubPaymentsRepo, clientID uuid.UUID) *models.Job {
	start := time.Date(2026, 4, 1, 21, 0, 0, 0, time.UTC)
	job := &models.Job{
		ID:           uuid.New(),
		ClientID:     clientID,
		Title:        "Overnight patrol",
		StartTime:    start,
		EndTime:      start.Add(8 * time.Hour),
		HourlyRate:   decimal.NewFromInt(75),
		AgentsNeeded: 2,
		Status:       enums.JobStatusAssigned,
	}
	repo.jobs[job.ID] = job
	return job
}

func TestCreateEscrowComputesJobTotal(t *testing.T) {
	t.Parallel()

	repo := newStubPaymentsRepo()
	clientID := uuid.New()
	job := seedJob(repo, clientID)
	gateway := &stubGateway{}
	svc := newTestService(t, repo, gateway)

	escrow, err := svc.CreateEscrow(context.Background(), CreateEscrowInput{
		JobID: job.ID, ClientID: clientID, SourceID: "cnon:card-nonce",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 8h x $75/h x 2 agents = $1200.00
	if escrow.AmountCents != 120000 {
		t.Fatalf("expected 120000 cents got %d", escrow.AmountCents)
	}
	if gateway.lastCall == nil || gateway.lastCall.AmountCents != 120000 {
		t.Fatal("gateway must be charged the computed total")
	}
	if escrow.Status != enums.PaymentStatusHeld {
		t.Fatalf("completed charge must hold funds, got %s", escrow.Status)
	}
	if escrow.SquarePaymentID == nil {
		t.Fatal("expected the provider payment id recorded")
	}
}

func TestCreateEscrowDuplicateJob(t *testing.T) {
	t.Parallel()

	repo := newStubPaymentsRepo()
	clientID := uuid.New()
	job := seedJob(repo, clientID)
	svc := newTestService(t, repo, &stubGateway{})

	input := CreateEscrowInput{JobID: job.ID, ClientID: clientID, SourceID: "cnon:card-nonce"}
	if _, err := svc.CreateEscrow(context.Background(), input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.CreateEscrow(context.Background(), input)
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for second escrow got %v", err)
	}
}

func TestCreateEscrowForeignJob(t *testing.T) {
	t.Parallel()

	repo := newStubPaymentsRepo()
	job := seedJob(repo, uuid.New())
	svc := newTestService(t, repo, &stubGateway{})

	_, err := svc.CreateEscrow(context.Background(), CreateEscrowInput{
		JobID: job.ID, ClientID: uuid.New(), SourceID: "cnon:card-nonce",
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("foreign job must read as not-found, got %v", err)
	}
}

func TestReleaseRequiresHeldFunds(t *testing.T) {
	t.Parallel()

	repo := newStubPaymentsRepo()
	clientID := uuid.New()
	jobID := uuid.New()
	escrowID := uuid.New()
	repo.escrows[escrowID] = &models.EscrowPayment{
		ID: escrowID, JobID: jobID, ClientID: clientID,
		AmountCents: 50000, Currency: "USD",
		Status: enums.PaymentStatusPending,
	}
	svc := newTestService(t, repo, &stubGateway{})

	_, err := svc.Release(context.Background(), clientID, jobID)
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}

	repo.escrows[escrowID].Status = enums.PaymentStatusHeld
	released, err := svc.Release(context.Background(), clientID, jobID)
	if err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if released.Status != enums.PaymentStatusReleased {
		t.Fatalf("expected released got %s", released.Status)
	}
	if released.ReleasedAt == nil {
		t.Fatal("expected released_at set")
	}
}

func TestRefundFromHeld(t *testing.T) {
	t.Parallel()

	repo := newStubPaymentsRepo()
	clientID := uuid.New()
	jobID := uuid.New()
	escrowID := uuid.New()
	repo.escrows[escrowID] = &models.EscrowPayment{
		ID: escrowID, JobID: jobID, ClientID: clientID,
		AmountCents: 50000, Currency: "USD",
		Status: enums.PaymentStatusHeld,
	}
	svc := newTestService(t, repo, &stubGateway{})

	refunded, err := svc.Refund(context.Background(), clientID, jobID)
	if err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if refunded.Status != enums.PaymentStatusRefunded {
		t.Fatalf("expected refunded got %s", refunded.Status)
	}
}

func TestPendingProviderChargeStaysPending(t *testing.T) {
	t.Parallel()

	repo := newStubPaymentsRepo()
	clientID := uuid.New()
	job := seedJob(repo, clientID)
	svc := newTestService(t, repo, &stubGateway{status: "PENDING"})

	escrow, err := svc.CreateEscrow(context.Background(), CreateEscrowInput{
		JobID: job.ID, ClientID: clientID, SourceID: "cnon:card-nonce",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if escrow.Status != enums.PaymentStatusPending {
		t.Fatalf("expected pending got %s", escrow.Status)
	}
}
