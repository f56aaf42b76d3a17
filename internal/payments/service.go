package payments

import (
	"context"
	"strings"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/internal/analytics"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/square"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	sq "github.com/square/square-go-sdk"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// paymentGateway is the slice of the Square client the escrow flow needs.
type paymentGateway interface {
	CreatePayment(ctx context.Context, params square.PaymentCreateParams) (*sq.Payment, error)
	LocationID() string
}

// CreateEscrowInput funds the escrow for a job. AmountCents overrides the
// computed job total when provided.
type CreateEscrowInput struct {
	JobID       uuid.UUID `json:"job_id" validate:"required"`
	ClientID    uuid.UUID
	SourceID    string `json:"source_id" validate:"required"`
	AmountCents int64  `json:"amount_cents" validate:"omitempty,gt=0"`
	Currency    string `json:"currency"`
}

// Service exposes the escrow payment lifecycle.
type Service interface {
	CreateEscrow(ctx context.Context, input CreateEscrowInput) (*models.EscrowPayment, error)
	GetByJob(ctx context.Context, clientID, jobID uuid.UUID) (*models.EscrowPayment, error)
	Release(ctx context.Context, clientID, jobID uuid.UUID) (*models.EscrowPayment, error)
	Refund(ctx context.Context, clientID, jobID uuid.UUID) (*models.EscrowPayment, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	gateway   paymentGateway
	analytics analytics.Recorder
}

// NewService builds the payments service.
func NewService(repo Repository, tx txRunner, gateway paymentGateway, rec analytics.Recorder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if gateway == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment gateway required")
	}
	if rec == nil {
		rec = analytics.Noop{}
	}
	return &service{repo: repo, tx: tx, gateway: gateway, analytics: rec}, nil
}

// CreateEscrow charges the client through Square and records the escrow row.
// One escrow per job; a duplicate create is a conflict.
func (s *service) CreateEscrow(ctx context.Context, input CreateEscrowInput) (*models.EscrowPayment, error) {
	if input.JobID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id required")
	}
	if strings.TrimSpace(input.SourceID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment source required")
	}

	job, err := s.repo.FindJob(ctx, input.JobID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
	}
	if job.ClientID != input.ClientID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
	}
	if job.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "job is closed")
	}

	amount := input.AmountCents
	if amount <= 0 {
		amount = jobTotalCents(job)
	}
	if amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "escrow amount must be positive")
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = "USD"
	}

	payment, err := s.gateway.CreatePayment(ctx, square.PaymentCreateParams{
		AmountCents:    amount,
		Currency:       currency,
		LocationID:     s.gateway.LocationID(),
		SourceID:       input.SourceID,
		IdempotencyKey: "escrow-" + input.JobID.String(),
		Note:           "Escrow for job " + job.Title,
		ReferenceID:    input.JobID.String(),
	})
	if err != nil {
		return nil, err
	}

	escrow := &models.EscrowPayment{
		JobID:           input.JobID,
		ClientID:        input.ClientID,
		AmountCents:     amount,
		Currency:        currency,
		SquarePaymentID: payment.GetID(),
		Status:          escrowStatusFromSquare(payment.GetStatus()),
	}
	created, err := s.repo.CreateEscrow(ctx, escrow)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "escrow already funded for this job")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create escrow")
	}

	s.analytics.Record(ctx, "escrow_created", input.ClientID, created.ID, currency)
	return created, nil
}

func (s *service) GetByJob(ctx context.Context, clientID, jobID uuid.UUID) (*models.EscrowPayment, error) {
	escrow, err := s.repo.FindEscrowByJob(ctx, jobID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "escrow not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load escrow")
	}
	if escrow.ClientID != clientID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "escrow not found")
	}
	return escrow, nil
}

// Release pays the held funds out. Only held escrows release.
func (s *service) Release(ctx context.Context, clientID, jobID uuid.UUID) (*models.EscrowPayment, error) {
	return s.transition(ctx, clientID, jobID, enums.PaymentStatusHeld, enums.PaymentStatusReleased)
}

// Refund returns held funds to the client.
func (s *service) Refund(ctx context.Context, clientID, jobID uuid.UUID) (*models.EscrowPayment, error) {
	return s.transition(ctx, clientID, jobID, enums.PaymentStatusHeld, enums.PaymentStatusRefunded)
}

func (s *service) transition(ctx context.Context, clientID, jobID uuid.UUID, from, to enums.PaymentStatus) (*models.EscrowPayment, error) {
	var escrow *models.EscrowPayment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		loaded, err := repo.FindEscrowByJob(ctx, jobID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "escrow not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load escrow")
		}
		if loaded.ClientID != clientID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "escrow not found")
		}
		if loaded.Status != from {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "escrow is not in a releasable state").
				WithDetails(map[string]string{"status": string(loaded.Status)})
		}

		updates := map[string]any{"status": to}
		if to == enums.PaymentStatusReleased {
			now := time.Now().UTC()
			updates["released_at"] = now
			loaded.ReleasedAt = &now
		}
		if err := repo.UpdateEscrow(ctx, loaded.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update escrow")
		}
		loaded.Status = to
		escrow = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.analytics.Record(ctx, "escrow_"+string(to), clientID, escrow.ID, escrow.Currency)
	return escrow, nil
}

// jobTotalCents is the default escrow amount: hourly rate x shift hours x
// headcount, rounded to whole cents.
func jobTotalCents(job *models.Job) int64 {
	hours := decimal.NewFromFloat(job.EndTime.Sub(job.StartTime).Hours())
	if !hours.IsPositive() {
		return 0
	}
	total := job.HourlyRate.
		Mul(hours).
		Mul(decimal.NewFromInt(int64(job.AgentsNeeded))).
		Mul(decimal.NewFromInt(100))
	return total.Round(0).IntPart()
}

func escrowStatusFromSquare(status *string) enums.PaymentStatus {
	if status == nil {
		return enums.PaymentStatusPending
	}
	switch strings.ToUpper(*status) {
	case "COMPLETED", "APPROVED":
		return enums.PaymentStatusHeld
	case "FAILED", "CANCELED":
		return enums.PaymentStatusFailed
	default:
		return enums.PaymentStatusPending
	}
}
