package fleet

import (
	"context"
	"strings"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/internal/analytics"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/realtime"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes fleet vehicle operations, scoped to the owning PPO.
type Service interface {
	AddVehicle(ctx context.Context, ppoID uuid.UUID, input AddVehicleInput) (*models.FleetVehicle, error)
	ListVehicles(ctx context.Context, ppoID uuid.UUID, page pagination.Page) (*List, error)
	AssignVehicle(ctx context.Context, input AssignInput) (*models.VehicleAssignment, error)
	ReturnVehicle(ctx context.Context, input ReturnInput) (*models.VehicleAssignment, error)
	SetVehicleStatus(ctx context.Context, ppoID, vehicleID uuid.UUID, status enums.VehicleStatus) (*models.FleetVehicle, error)
}

type service struct {
	repo      Repository
	tx        txRunner
	realtime  realtime.Publisher
	analytics analytics.Recorder
}

// NewService builds the fleet service.
func NewService(repo Repository, tx txRunner, rt realtime.Publisher, rec analytics.Recorder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "fleet repository required")
	}
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	if rt == nil {
		rt = realtime.Noop{}
	}
	if rec == nil {
		rec = analytics.Noop{}
	}
	return &service{repo: repo, tx: tx, realtime: rt, analytics: rec}, nil
}

func (s *service) AddVehicle(ctx context.Context, ppoID uuid.UUID, input AddVehicleInput) (*models.FleetVehicle, error) {
	if ppoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	plate := strings.ToUpper(strings.TrimSpace(input.LicensePlate))
	if plate == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "license plate required")
	}

	vehicle := &models.FleetVehicle{
		PpoID:        ppoID,
		Make:         strings.TrimSpace(input.Make),
		Model:        strings.TrimSpace(input.Model),
		Year:         input.Year,
		LicensePlate: plate,
		Status:       enums.VehicleStatusAvailable,
		Mileage:      input.Mileage,
		FuelLevel:    input.FuelLevel,
	}

	created, err := s.repo.CreateVehicle(ctx, vehicle)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "license plate already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vehicle")
	}

	s.analytics.Record(ctx, "vehicle_added", ppoID, created.ID, plate)
	return created, nil
}

func (s *service) ListVehicles(ctx context.Context, ppoID uuid.UUID, page pagination.Page) (*List, error) {
	if ppoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	vehicles, total, err := s.repo.ListVehicles(ctx, ppoID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vehicles")
	}
	return &List{Vehicles: vehicles, Total: total}, nil
}

// AssignVehicle claims the vehicle and opens an assignment in one
// transaction. The claim is a conditional status update, so two concurrent
// assignments of the same vehicle resolve to one winner and one conflict.
func (s *service) AssignVehicle(ctx context.Context, input AssignInput) (*models.VehicleAssignment, error) {
	if input.VehicleID == uuid.Nil || input.JobID == uuid.Nil || input.AgentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle, job, and agent ids required")
	}

	var assignment *models.VehicleAssignment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		vehicle, err := repo.FindVehicle(ctx, input.VehicleID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
		}
		if vehicle.PpoID != input.PpoID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}

		claimed, err := repo.ClaimVehicle(ctx, input.VehicleID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "claim vehicle")
		}
		if !claimed {
			return pkgerrors.New(pkgerrors.CodeConflict, "vehicle is not available")
		}

		assignment, err = repo.CreateAssignment(ctx, &models.VehicleAssignment{
			VehicleID:    input.VehicleID,
			JobID:        input.JobID,
			AgentID:      input.AgentID,
			StartMileage: input.StartMileage,
			StartFuel:    input.StartFuel,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vehicle assignment")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitVehicleStatus(ctx, input.VehicleID, enums.VehicleStatusAssigned)
	s.analytics.Record(ctx, "vehicle_assigned", input.PpoID, input.VehicleID, input.AgentID.String())
	return assignment, nil
}

// ReturnVehicle closes the vehicle's open assignment. The owning PPO or the
// agent holding the vehicle may return it.
func (s *service) ReturnVehicle(ctx context.Context, input ReturnInput) (*models.VehicleAssignment, error) {
	if input.VehicleID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vehicle id required")
	}
	if input.CallerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var closed *models.VehicleAssignment
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		vehicle, err := repo.FindVehicle(ctx, input.VehicleID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
		}

		assignment, err := repo.FindOpenAssignment(ctx, input.VehicleID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "vehicle has no open assignment")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle assignment")
		}
		if input.CallerID != vehicle.PpoID && input.CallerID != assignment.AgentID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}

		now := time.Now().UTC()
		updates := map[string]any{"returned_at": now}
		if input.EndMileage != nil {
			updates["end_mileage"] = *input.EndMileage
		}
		if input.EndFuel != nil {
			updates["end_fuel"] = *input.EndFuel
		}
		if err := repo.CloseAssignment(ctx, assignment.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close vehicle assignment")
		}

		vehicleUpdates := map[string]any{"status": enums.VehicleStatusAvailable}
		if input.EndMileage != nil {
			vehicleUpdates["mileage"] = *input.EndMileage
		}
		if input.EndFuel != nil {
			vehicleUpdates["fuel_level"] = *input.EndFuel
		}
		if err := repo.UpdateVehicle(ctx, input.VehicleID, vehicleUpdates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle")
		}

		assignment.ReturnedAt = &now
		assignment.EndMileage = input.EndMileage
		assignment.EndFuel = input.EndFuel
		closed = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.emitVehicleStatus(ctx, input.VehicleID, enums.VehicleStatusAvailable)
	return closed, nil
}

// SetVehicleStatus moves a vehicle in or out of maintenance/retired. A vehicle
// with an open assignment cannot be moved; return it first.
func (s *service) SetVehicleStatus(ctx context.Context, ppoID, vehicleID uuid.UUID, status enums.VehicleStatus) (*models.FleetVehicle, error) {
	if !status.IsValid() || status == enums.VehicleStatusAssigned {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vehicle status")
	}

	vehicle, err := s.repo.FindVehicle(ctx, vehicleID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}
	if vehicle.PpoID != ppoID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
	}
	if vehicle.Status == enums.VehicleStatusAssigned {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "vehicle is currently assigned")
	}

	if err := s.repo.ReleaseVehicle(ctx, vehicleID, status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vehicle status")
	}
	vehicle.Status = status

	s.emitVehicleStatus(ctx, vehicleID, status)
	return vehicle, nil
}

func (s *service) emitVehicleStatus(ctx context.Context, vehicleID uuid.UUID, status enums.VehicleStatus) {
	s.realtime.Emit(ctx, realtime.Event{
		Type: realtime.EventVehicleStatusUpdate,
		Room: realtime.VehicleRoom(vehicleID),
		Payload: realtime.VehicleStatusPayload{
			VehicleID: vehicleID,
			NewStatus: status,
		},
	})
}
