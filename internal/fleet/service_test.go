package fleet

import (
	"context"
	"testing"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubFleetRepo struct {
	vehicles    map[uuid.UUID]*models.FleetVehicle
	assignments map[uuid.UUID]*models.VehicleAssignment
	createErr   error
}

func newStubFleetRepo() *stubFleetRepo {
	return &stubFleetRepo{
		vehicles:    map[uuid.UUID]*models.FleetVehicle{},
		assignments: map[uuid.UUID]*models.VehicleAssignment{},
	}
}

func (s *stubFleetRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubFleetRepo) CreateVehicle(ctx context.Context, vehicle *models.FleetVehicle) (*models.FleetVehicle, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if vehicle.ID == uuid.Nil {
		vehicle.ID = uuid.New()
	}
	s.vehicles[vehicle.ID] = vehicle
	return vehicle, nil
}

func (s *stubFleetRepo) FindVehicle(ctx context.Context, vehicleID uuid.UUID) (*models.FleetVehicle, error) {
	vehicle, ok := s.vehicles[vehicleID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return vehicle, nil
}

func (s *stubFleetRepo) ListVehicles(ctx context.Context, ppoID uuid.UUID, page pagination.Page) ([]models.FleetVehicle, int64, error) {
	var out []models.FleetVehicle
	for _, vehicle := range s.vehicles {
		if vehicle.PpoID == ppoID {
			out = append(out, *vehicle)
		}
	}
	return out, int64(len(out)), nil
}

func (s *stubFleetRepo) UpdateVehicle(ctx context.Context, vehicleID uuid.UUID, updates map[string]any) error {
	vehicle := s.vehicles[vehicleID]
	if status, ok := updates["status"].(enums.VehicleStatus); ok {
		vehicle.Status = status
	}
	if mileage, ok := updates["mileage"].(int); ok {
		vehicle.Mileage = &mileage
	}
	if fuel, ok := updates["fuel_level"].(int); ok {
		vehicle.FuelLevel = &fuel
	}
	return nil
}

func (s *stubFleetRepo) ClaimVehicle(ctx context.Context, vehicleID uuid.UUID) (bool, error) {
	vehicle, ok := s.vehicles[vehicleID]
	if !ok || vehicle.Status != enums.VehicleStatusAvailable {
		return false, nil
	}
	vehicle.Status = enums.VehicleStatusAssigned
	return true, nil
}

func (s *stubFleetRepo) ReleaseVehicle(ctx context.Context, vehicleID uuid.UUID, status enums.VehicleStatus) error {
	s.vehicles[vehicleID].Status = status
	return nil
}

func (s *stubFleetRepo) CreateAssignment(ctx context.Context, assignment *models.VehicleAssignment) (*models.VehicleAssignment, error) {
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	s.assignments[assignment.ID] = assignment
	return assignment, nil
}

func (s *stubFleetRepo) FindOpenAssignment(ctx context.Context, vehicleID uuid.UUID) (*models.VehicleAssignment, error) {
	for _, assignment := range s.assignments {
		if assignment.VehicleID == vehicleID && assignment.ReturnedAt == nil {
			return assignment, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubFleetRepo) CloseAssignment(ctx context.Context, assignmentID uuid.UUID, updates map[string]any) error {
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, nil, nil)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func seedVehicle(repo *stubFleetRepo, ppoID uuid.UUID, status enums.VehicleStatus) *models.FleetVehicle {
	vehicle := &models.FleetVehicle{
		ID:           uuid.New(),
		PpoID:        ppoID,
		Make:         "Ford",
		Model:        "Explorer",
		Year:         2022,
		LicensePlate: "7ABC123",
		Status:       status,
	}
	repo.vehicles[vehicle.ID] = vehicle
	return vehicle
}

func TestAssignVehicle(t *testing.T) {
	t.Parallel()

	repo := newStubFleetRepo()
	ppoID := uuid.New()
	vehicle := seedVehicle(repo, ppoID, enums.VehicleStatusAvailable)
	svc := newTestService(t, repo)

	assignment, err := svc.AssignVehicle(context.Background(), AssignInput{
		VehicleID: vehicle.ID, PpoID: ppoID, JobID: uuid.New(), AgentID: uuid.New(),
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if assignment.VehicleID != vehicle.ID {
		t.Fatal("assignment not linked to the vehicle")
	}
	if vehicle.Status != enums.VehicleStatusAssigned {
		t.Fatalf("expected vehicle assigned got %s", vehicle.Status)
	}
}

func TestAssignVehicleAlreadyClaimed(t *testing.T) {
	t.Parallel()

	repo := newStubFleetRepo()
	ppoID := uuid.New()
	vehicle := seedVehicle(repo, ppoID, enums.VehicleStatusAssigned)
	svc := newTestService(t, repo)

	_, err := svc.AssignVehicle(context.Background(), AssignInput{
		VehicleID: vehicle.ID, PpoID: ppoID, JobID: uuid.New(), AgentID: uuid.New(),
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict when the vehicle is taken, got %v", err)
	}
	if len(repo.assignments) != 0 {
		t.Fatal("no assignment row may exist after a lost claim")
	}
}

func TestAssignVehicleWrongPpoLooksLikeMissingVehicle(t *testing.T) {
	t.Parallel()

	repo := newStubFleetRepo()
	vehicle := seedVehicle(repo, uuid.New(), enums.VehicleStatusAvailable)
	svc := newTestService(t, repo)

	_, err := svc.AssignVehicle(context.Background(), AssignInput{
		VehicleID: vehicle.ID, PpoID: uuid.New(), JobID: uuid.New(), AgentID: uuid.New(),
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("ownership failure must read as not-found, got %v", err)
	}
}

func TestReturnVehicleByAssignedAgent(t *testing.T) {
	t.Parallel()

	repo := newStubFleetRepo()
	ppoID := uuid.New()
	agentID := uuid.New()
	vehicle := seedVehicle(repo, ppoID, enums.VehicleStatusAssigned)
	assignmentID := uuid.New()
	repo.assignments[assignmentID] = &models.VehicleAssignment{
		ID:        assignmentID,
		VehicleID: vehicle.ID,
		JobID:     uuid.New(),
		AgentID:   agentID,
	}
	svc := newTestService(t, repo)

	endMileage := 42150
	closed, err := svc.ReturnVehicle(context.Background(), ReturnInput{
		VehicleID: vehicle.ID, CallerID: agentID, EndMileage: &endMileage,
	})
	if err != nil {
		t.Fatalf("return failed: %v", err)
	}
	if closed.ReturnedAt == nil {
		t.Fatal("expected returned_at to be set")
	}
	if vehicle.Status != enums.VehicleStatusAvailable {
		t.Fatalf("expected vehicle available got %s", vehicle.Status)
	}
	if vehicle.Mileage == nil || *vehicle.Mileage != endMileage {
		t.Fatal("expected vehicle mileage updated from the return")
	}
}

func TestReturnVehicleRejectsStranger(t *testing.T) {
	t.Parallel()

	repo := newStubFleetRepo()
	vehicle := seedVehicle(repo, uuid.New(), enums.VehicleStatusAssigned)
	assignmentID := uuid.New()
	repo.assignments[assignmentID] = &models.VehicleAssignment{
		ID:        assignmentID,
		VehicleID: vehicle.ID,
		JobID:     uuid.New(),
		AgentID:   uuid.New(),
	}
	svc := newTestService(t, repo)

	_, err := svc.ReturnVehicle(context.Background(), ReturnInput{
		VehicleID: vehicle.ID, CallerID: uuid.New(),
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for an unrelated caller, got %v", err)
	}
}

func TestReturnVehicleWithoutOpenAssignment(t *testing.T) {
	t.Parallel()

	repo := newStubFleetRepo()
	ppoID := uuid.New()
	vehicle := seedVehicle(repo, ppoID, enums.VehicleStatusAvailable)
	svc := newTestService(t, repo)

	_, err := svc.ReturnVehicle(context.Background(), ReturnInput{
		VehicleID: vehicle.ID, CallerID: ppoID,
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}
}

func TestSetVehicleStatusBlockedWhileAssigned(t *testing.T) {
	t.Parallel()

	repo := newStubFleetRepo()
	ppoID := uuid.New()
	vehicle := seedVehicle(repo, ppoID, enums.VehicleStatusAssigned)
	svc := newTestService(t, repo)

	_, err := svc.SetVehicleStatus(context.Background(), ppoID, vehicle.ID, enums.VehicleStatusMaintenance)
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}
}

func TestAddVehicleDuplicatePlate(t *testing.T) {
	t.Parallel()

	repo := newStubFleetRepo()
	repo.createErr = errDuplicatePlate{}
	svc := newTestService(t, repo)

	_, err := svc.AddVehicle(context.Background(), uuid.New(), AddVehicleInput{
		Make: "Ford", Model: "Explorer", Year: 2022, LicensePlate: "7abc123",
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate plate got %v", err)
	}
}

type errDuplicatePlate struct{}

func (errDuplicatePlate) Error() string {
	return `duplicate key value violates unique constraint "idx_fleet_vehicles_license_plate"`
}
