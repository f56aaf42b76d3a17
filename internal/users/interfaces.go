package users

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for users and their role profiles.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, updates map[string]any) error

	CreateAgentProfile(ctx context.Context, profile *models.AgentProfile) error
	CreatePpoProfile(ctx context.Context, profile *models.PpoProfile) error
	CreateClientProfile(ctx context.Context, profile *models.ClientProfile) error

	FindAgentProfileByUser(ctx context.Context, userID uuid.UUID) (*models.AgentProfile, error)
	FindPpoProfileByUser(ctx context.Context, userID uuid.UUID) (*models.PpoProfile, error)
	FindClientProfileByUser(ctx context.Context, userID uuid.UUID) (*models.ClientProfile, error)

	UpdateAgentProfile(ctx context.Context, userID uuid.UUID, updates map[string]any) error
	UpdatePpoProfile(ctx context.Context, userID uuid.UUID, updates map[string]any) error
	UpdateClientProfile(ctx context.Context, userID uuid.UUID, updates map[string]any) error
}
