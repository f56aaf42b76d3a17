package models

import (
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/google/uuid"
)

// FleetVehicle belongs to a PPO company.
type FleetVehicle struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PpoID        uuid.UUID           `gorm:"column:ppo_id;type:uuid;not null;index"`
	Make         string              `gorm:"column:make;not null"`
	Model        string              `gorm:"column:model;not null"`
	Year         int                 `gorm:"column:year;not null"`
	LicensePlate string              `gorm:"column:license_plate;not null;uniqueIndex"`
	Status       enums.VehicleStatus `gorm:"column:status;type:vehicle_status;not null;default:'available'"`
	Mileage      *int                `gorm:"column:mileage"`
	FuelLevel    *int                `gorm:"column:fuel_level"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
