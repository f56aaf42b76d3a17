package fleet

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for fleet vehicles and their
// assignments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateVehicle(ctx context.Context, vehicle *models.FleetVehicle) (*models.FleetVehicle, error)
	FindVehicle(ctx context.Context, vehicleID uuid.UUID) (*models.FleetVehicle, error)
	ListVehicles(ctx context.Context, ppoID uuid.UUID, page pagination.Page) ([]models.FleetVehicle, int64, error)
	UpdateVehicle(ctx context.Context, vehicleID uuid.UUID, updates map[string]any) error

	// ClaimVehicle flips a vehicle from available to assigned and reports
	// whether the claim won. A false return with nil error means another
	// writer got there first, or the vehicle is not available.
	ClaimVehicle(ctx context.Context, vehicleID uuid.UUID) (bool, error)
	ReleaseVehicle(ctx context.Context, vehicleID uuid.UUID, status enums.VehicleStatus) error

	CreateAssignment(ctx context.Context, assignment *models.VehicleAssignment) (*models.VehicleAssignment, error)
	FindOpenAssignment(ctx context.Context, vehicleID uuid.UUID) (*models.VehicleAssignment, error)
	CloseAssignment(ctx context.Context, assignmentID uuid.UUID, updates map[string]any) error
}
