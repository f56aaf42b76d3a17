package compliance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/internal/analytics"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// AddInput creates a compliance record for a user.
type AddInput struct {
	UserID      uuid.UUID  `json:"user_id" validate:"required"`
	Type        string     `json:"type" validate:"required"`
	DocumentURL *string    `json:"document_url" validate:"omitempty,url"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	Notes       *string    `json:"notes"`
}

// StatusUpdate moves one record to a new status. Part of a bulk review.
type StatusUpdate struct {
	RecordID uuid.UUID `json:"record_id" validate:"required"`
	Status   string    `json:"status" validate:"required"`
	Notes    *string   `json:"notes"`
}

// Service exposes compliance record operations. Status reviews are
// admin-only; the role gate lives in the HTTP layer.
type Service interface {
	Add(ctx context.Context, input AddInput) (*models.ComplianceRecord, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.ComplianceRecord, error)
	UpdateStatus(ctx context.Context, update StatusUpdate) (*models.ComplianceRecord, error)
	BulkUpdateStatus(ctx context.Context, updates []StatusUpdate) ([]models.ComplianceRecord, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	analytics analytics.Recorder
}

// NewService builds the compliance service.
func NewService(repo Repository, tx txRunner, rec analytics.Recorder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "compliance repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if rec == nil {
		rec = analytics.Noop{}
	}
	return &service{repo: repo, tx: tx, analytics: rec}, nil
}

func (s *service) Add(ctx context.Context, input AddInput) (*models.ComplianceRecord, error) {
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	recordType, err := enums.ParseComplianceType(strings.TrimSpace(input.Type))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid compliance type")
	}

	record := &models.ComplianceRecord{
		UserID:      input.UserID,
		Type:        recordType,
		Status:      enums.ComplianceStatusPending,
		DocumentURL: input.DocumentURL,
		ExpiryDate:  input.ExpiryDate,
		Notes:       input.Notes,
	}
	created, err := s.repo.CreateRecord(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create compliance record")
	}

	s.analytics.Record(ctx, "compliance_record_added", input.UserID, created.ID, string(recordType))
	return created, nil
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.ComplianceRecord, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	records, err := s.repo.ListRecords(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list compliance records")
	}
	return records, nil
}

func (s *service) UpdateStatus(ctx context.Context, update StatusUpdate) (*models.ComplianceRecord, error) {
	results, err := s.BulkUpdateStatus(ctx, []StatusUpdate{update})
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// BulkUpdateStatus applies a batch of status reviews atomically: every update
// lands or none do. Terminal background-check results are mirrored onto the
// agent profile inside the same transaction, so a rollback reverts both.
func (s *service) BulkUpdateStatus(ctx context.Context, updates []StatusUpdate) ([]models.ComplianceRecord, error) {
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no updates provided")
	}

	parsed := make([]enums.ComplianceStatus, len(updates))
	var invalid error
	for i, update := range updates {
		if update.RecordID == uuid.Nil {
			invalid = multierr.Append(invalid, fmt.Errorf("update %d: record id required", i))
			continue
		}
		status, err := enums.ParseComplianceStatus(strings.TrimSpace(update.Status))
		if err != nil {
			invalid = multierr.Append(invalid, fmt.Errorf("update %d: %w", i, err))
			continue
		}
		parsed[i] = status
	}
	if invalid != nil {
		problems := make([]string, 0, len(multierr.Errors(invalid)))
		for _, err := range multierr.Errors(invalid) {
			problems = append(problems, err.Error())
		}
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status updates").
			WithDetails(problems)
	}

	results := make([]models.ComplianceRecord, 0, len(updates))
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		results = results[:0]

		for i, update := range updates {
			record, err := repo.FindRecord(ctx, update.RecordID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return pkgerrors.New(pkgerrors.CodeNotFound, "compliance record not found").
						WithDetails(update.RecordID)
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load compliance record")
			}

			status := parsed[i]
			fields := map[string]any{"status": status}
			if update.Notes != nil {
				fields["notes"] = *update.Notes
			}
			if err := repo.UpdateRecord(ctx, record.ID, fields); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update compliance record")
			}

			if record.Type == enums.ComplianceTypeBackgroundCheck && status != enums.ComplianceStatusPending {
				if err := repo.SetAgentBackgroundCheck(ctx, record.UserID, status); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "propagate background check status")
				}
			}

			record.Status = status
			if update.Notes != nil {
				record.Notes = update.Notes
			}
			results = append(results, *record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, record := range results {
		s.analytics.Record(ctx, "compliance_status_updated", record.UserID, record.ID, string(record.Status))
	}
	return results, nil
}
