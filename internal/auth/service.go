package auth

import (
	"context"
	"strings"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/internal/users"
	pkgauth "github.com/Rushington-dev/staffshield-pro-backend/pkg/auth"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/config"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// sessionStore issues and revokes refresh tokens.
type sessionStore interface {
	Issue(ctx context.Context, userID uuid.UUID) (string, error)
	Rotate(ctx context.Context, token string) (uuid.UUID, string, error)
	Revoke(ctx context.Context, token string) error
}

// Service exposes registration and session management.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, input LoginInput) (*Session, error)
	Refresh(ctx context.Context, refreshToken string) (*Session, error)
	Logout(ctx context.Context, refreshToken string) error
}

type service struct {
	repo     users.Repository
	tx       txRunner
	sessions sessionStore
	jwt      config.JWTConfig
	password config.PasswordConfig
	now      func() time.Time
}

// NewService builds the auth service.
func NewService(repo users.Repository, tx txRunner, sessions sessionStore, jwt config.JWTConfig, password config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "users repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session store required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		sessions: sessions,
		jwt:      jwt,
		password: password,
		now:      time.Now,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	role, err := enums.ParseUserRole(strings.TrimSpace(input.Role))
	if err != nil || role == enums.UserRoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	hash, err := security.HashPassword(input.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "hash password")
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         role,
		IsActive:     true,
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		user.Phone = &phone
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateUser(ctx, user); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		if err := s.createRoleProfile(ctx, repo, user.ID, role, input); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.issueSession(ctx, user)
}

func (s *service) createRoleProfile(ctx context.Context, repo users.Repository, userID uuid.UUID, role enums.UserRole, input RegisterInput) error {
	switch role {
	case enums.UserRoleAgent:
		rate := decimal.Zero
		if input.HourlyRate != nil {
			if input.HourlyRate.IsNegative() {
				return pkgerrors.New(pkgerrors.CodeValidation, "hourly rate cannot be negative")
			}
			rate = *input.HourlyRate
		}
		profile := &models.AgentProfile{
			UserID:                userID,
			Certifications:        pq.StringArray(input.Certifications),
			ExperienceYears:       input.ExperienceYears,
			HourlyRate:            rate,
			AvailabilityStatus:    enums.AvailabilityStatusOffline,
			BackgroundCheckStatus: enums.ComplianceStatusPending,
		}
		if err := repo.CreateAgentProfile(ctx, profile); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create agent profile")
		}
	case enums.UserRolePPO:
		name := strings.TrimSpace(input.CompanyName)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "company name required for ppo")
		}
		profile := &models.PpoProfile{UserID: userID, CompanyName: name}
		if license := strings.TrimSpace(input.LicenseNumber); license != "" {
			profile.LicenseNumber = &license
		}
		if err := repo.CreatePpoProfile(ctx, profile); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ppo profile")
		}
	case enums.UserRoleClient:
		profile := &models.ClientProfile{UserID: userID}
		if name := strings.TrimSpace(input.CompanyName); name != "" {
			profile.CompanyName = &name
		}
		if err := repo.CreateClientProfile(ctx, profile); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create client profile")
		}
	}
	return nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := s.repo.FindUserByEmail(ctx, input.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account deactivated")
	}

	now := s.now()
	if err := s.repo.UpdateUser(ctx, user.ID, map[string]any{"last_login_at": now}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record login")
	}
	user.LastLoginAt = &now

	return s.issueSession(ctx, user)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "refresh token required")
	}

	userID, next, err := s.sessions.Rotate(ctx, refreshToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}

	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account deactivated")
	}

	access, err := s.mintAccess(user)
	if err != nil {
		return nil, err
	}
	return &Session{AccessToken: access, RefreshToken: next, User: user}, nil
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, refreshToken); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) issueSession(ctx context.Context, user *models.User) (*Session, error) {
	access, err := s.mintAccess(user)
	if err != nil {
		return nil, err
	}

	refresh, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "issue refresh token")
	}

	return &Session{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func (s *service) mintAccess(user *models.User) (string, error) {
	token, err := pkgauth.MintAccessToken(s.jwt, s.now(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return token, nil
}
