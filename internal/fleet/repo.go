package fleet

import (
	"context"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a fleet repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateVehicle(ctx context.Context, vehicle *models.FleetVehicle) (*models.FleetVehicle, error) {
	if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (r *repository) FindVehicle(ctx context.Context, vehicleID uuid.UUID) (*models.FleetVehicle, error) {
	var vehicle models.FleetVehicle
	err := r.db.WithContext(ctx).
		Where("id = ?", vehicleID).
		First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *repository) ListVehicles(ctx context.Context, ppoID uuid.UUID, page pagination.Page) ([]models.FleetVehicle, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.FleetVehicle{}).
		Where("ppo_id = ?", ppoID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []models.FleetVehicle
	err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&vehicles).Error
	if err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

func (r *repository) UpdateVehicle(ctx context.Context, vehicleID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.FleetVehicle{}).
		Where("id = ?", vehicleID).
		Updates(updates).Error
}

// ClaimVehicle is a conditional update: the WHERE clause on status makes two
// concurrent claims race on the row, and exactly one sees RowsAffected == 1.
func (r *repository) ClaimVehicle(ctx context.Context, vehicleID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.FleetVehicle{}).
		Where("id = ? AND status = ?", vehicleID, enums.VehicleStatusAvailable).
		Update("status", enums.VehicleStatusAssigned)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *repository) ReleaseVehicle(ctx context.Context, vehicleID uuid.UUID, status enums.VehicleStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.FleetVehicle{}).
		Where("id = ?", vehicleID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *repository) CreateAssignment(ctx context.Context, assignment *models.VehicleAssignment) (*models.VehicleAssignment, error) {
	if err := r.db.WithContext(ctx).Create(assignment).Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

func (r *repository) FindOpenAssignment(ctx context.Context, vehicleID uuid.UUID) (*models.VehicleAssignment, error) {
	var assignment models.VehicleAssignment
	err := r.db.WithContext(ctx).
		Where("vehicle_id = ? AND returned_at IS NULL", vehicleID).
		Order("assigned_at DESC").
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *repository) CloseAssignment(ctx context.Context, assignmentID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.VehicleAssignment{}).
		Where("id = ?", assignmentID).
		Updates(updates).Error
}
