package users

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Profile bundles the user identity with its role-specific profile.
type Profile struct {
	User    *models.User `json:"user"`
	Profile any          `json:"profile,omitempty"`
}

// AgentProfileUpdate carries the mutable agent profile fields. Nil means
// leave unchanged.
type AgentProfileUpdate struct {
	Certifications     []string                  `json:"certifications"`
	HourlyRate         *decimal.Decimal          `json:"hourly_rate"`
	ExperienceYears    *int                      `json:"experience_years"`
	Location           *types.GeographyPoint     `json:"location"`
	AvailabilityStatus *enums.AvailabilityStatus `json:"availability_status"`
}

// Service exposes profile reads and updates.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpdateAgentProfile(ctx context.Context, userID uuid.UUID, update AgentProfileUpdate) error
	Deactivate(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds the users service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	result := &Profile{User: user}
	if accessor, accErr := AccessorForRole(user.Role); accErr == nil {
		profile, err := accessor.Fetch(ctx, s.repo, userID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load role profile")
		}
		if err == nil {
			result.Profile = profile
		}
	}
	return result, nil
}

func (s *service) UpdateAgentProfile(ctx context.Context, userID uuid.UUID, update AgentProfileUpdate) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	updates := map[string]any{}
	if update.Certifications != nil {
		updates["certifications"] = pq.StringArray(update.Certifications)
	}
	if update.HourlyRate != nil {
		if update.HourlyRate.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "hourly rate cannot be negative")
		}
		updates["hourly_rate"] = *update.HourlyRate
	}
	if update.ExperienceYears != nil {
		if *update.ExperienceYears < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "experience years cannot be negative")
		}
		updates["experience_years"] = *update.ExperienceYears
	}
	if update.Location != nil {
		updates["location"] = update.Location
	}
	if update.AvailabilityStatus != nil {
		if !update.AvailabilityStatus.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, "invalid availability status")
		}
		updates["availability_status"] = *update.AvailabilityStatus
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.repo.UpdateAgentProfile(ctx, userID, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update agent profile")
	}
	return nil
}

func (s *service) Deactivate(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if err := s.repo.UpdateUser(ctx, userID, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate user")
	}
	return nil
}
