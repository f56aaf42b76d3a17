package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubJobsRepo struct {
	jobs        map[uuid.UUID]*models.Job
	assignments map[uuid.UUID]*models.JobAssignment
	roles       map[uuid.UUID]enums.UserRole
	jobUpdates  map[string]any
	interest    []uuid.UUID
}

func newStubJobsRepo() *stubJobsRepo {
	return &stubJobsRepo{
		jobs:        map[uuid.UUID]*models.Job{},
		assignments: map[uuid.UUID]*models.JobAssignment{},
		roles:       map[uuid.UUID]enums.UserRole{},
	}
}

func (s *stubJobsRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubJobsRepo) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	s.jobs[job.ID] = job
	return job, nil
}

func (s *stubJobsRepo) FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *job
	copied.Assignments = nil
	for _, assignment := range s.assignments {
		if assignment.JobID == jobID {
			copied.Assignments = append(copied.Assignments, *assignment)
		}
	}
	return &copied, nil
}

func (s *stubJobsRepo) ListJobs(ctx context.Context, page pagination.Page, filters Filters) ([]models.Job, int64, error) {
	var out []models.Job
	for _, job := range s.jobs {
		if filters.Status != nil && job.Status != *filters.Status {
			continue
		}
		if filters.ClientID != nil && job.ClientID != *filters.ClientID {
			continue
		}
		if filters.PpoID != nil && (job.PpoID == nil || *job.PpoID != *filters.PpoID) {
			continue
		}
		out = append(out, *job)
	}
	return out, int64(len(out)), nil
}

func (s *stubJobsRepo) UpdateJob(ctx context.Context, jobID uuid.UUID, updates map[string]any) error {
	s.jobUpdates = updates
	job := s.jobs[jobID]
	if status, ok := updates["status"].(enums.JobStatus); ok {
		job.Status = status
	}
	if ppoID, ok := updates["ppo_id"].(uuid.UUID); ok {
		job.PpoID = &ppoID
	}
	return nil
}

func (s *stubJobsRepo) FindUserRole(ctx context.Context, userID uuid.UUID) (enums.UserRole, error) {
	role, ok := s.roles[userID]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return role, nil
}

func (s *stubJobsRepo) DeleteAssignmentsForJob(ctx context.Context, jobID uuid.UUID) error {
	for id, assignment := range s.assignments {
		if assignment.JobID == jobID {
			delete(s.assignments, id)
		}
	}
	return nil
}

func (s *stubJobsRepo) CreateAssignments(ctx context.Context, assignments []models.JobAssignment) error {
	for i := range assignments {
		assignment := assignments[i]
		if assignment.ID == uuid.Nil {
			assignment.ID = uuid.New()
		}
		s.assignments[assignment.ID] = &assignment
	}
	return nil
}

func (s *stubJobsRepo) FindAssignment(ctx context.Context, jobID, agentID uuid.UUID) (*models.JobAssignment, error) {
	for _, assignment := range s.assignments {
		if assignment.JobID == jobID && assignment.AgentID == agentID {
			return assignment, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubJobsRepo) UpdateAssignmentStatus(ctx context.Context, assignmentID uuid.UUID, status enums.AssignmentStatus) error {
	if assignment, ok := s.assignments[assignmentID]; ok {
		assignment.Status = status
	}
	return nil
}

func (s *stubJobsRepo) CountLiveAssignments(ctx context.Context, jobID uuid.UUID) (int64, error) {
	var count int64
	for _, assignment := range s.assignments {
		if assignment.JobID == jobID && assignment.Status.CountsTowardCapacity() {
			count++
		}
	}
	return count, nil
}

func (s *stubJobsRepo) UpsertInterest(ctx context.Context, jobID, agentID uuid.UUID) error {
	for _, assignment := range s.assignments {
		if assignment.JobID == jobID && assignment.AgentID == agentID {
			return nil
		}
	}
	s.interest = append(s.interest, agentID)
	id := uuid.New()
	s.assignments[id] = &models.JobAssignment{
		ID:      id,
		JobID:   jobID,
		AgentID: agentID,
		Status:  enums.AssignmentStatusInterested,
	}
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc
}

func seedJob(repo *stubJobsRepo, mutate func(*models.Job)) *models.Job {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	job := &models.Job{
		ID:           uuid.New(),
		ClientID:     uuid.New(),
		Title:        "Warehouse watch",
		StartTime:    start,
		EndTime:      start.Add(8 * time.Hour),
		HourlyRate:   decimal.NewFromInt(90),
		AgentsNeeded: 2,
		Urgency:      enums.JobUrgencyNormal,
		Status:       enums.JobStatusOpen,
	}
	if mutate != nil {
		mutate(job)
	}
	repo.jobs[job.ID] = job
	return job
}

func TestAssignAgentsReplacesRoster(t *testing.T) {
	t.Parallel()

	repo := newStubJobsRepo()
	ppoID := uuid.New()
	job := seedJob(repo, func(j *models.Job) {
		j.PpoID = &ppoID
		j.Status = enums.JobStatusAssigned
	})
	svc := newTestService(t, repo)

	agentA, agentB, agentC := uuid.New(), uuid.New(), uuid.New()

	if _, err := svc.AssignAgents(context.Background(), AssignAgentsInput{
		JobID: job.ID, PpoID: ppoID, AgentIDs: []uuid.UUID{agentA, agentB},
	}); err != nil {
		t.Fatalf("first assignment failed: %v", err)
	}
	if len(repo.assignments) != 2 {
		t.Fatalf("expected 2 rows got %d", len(repo.assignments))
	}

	if _, err := svc.AssignAgents(context.Background(), AssignAgentsInput{
		JobID: job.ID, PpoID: ppoID, AgentIDs: []uuid.UUID{agentC},
	}); err != nil {
		t.Fatalf("re-assignment failed: %v", err)
	}

	if len(repo.assignments) != 1 {
		t.Fatalf("expected the replace to leave 1 row, got %d", len(repo.assignments))
	}
	for _, assignment := range repo.assignments {
		if assignment.AgentID != agentC {
			t.Fatalf("expected only agent C, found %s", assignment.AgentID)
		}
		if assignment.Status != enums.AssignmentStatusAssigned {
			t.Fatalf("expected assigned status got %s", assignment.Status)
		}
	}
	if repo.jobs[job.ID].Status != enums.JobStatusInProgress {
		t.Fatalf("expected job in_progress got %s", repo.jobs[job.ID].Status)
	}
}

func TestAssignAgentsCapacityExceeded(t *testing.T) {
	t.Parallel()

	repo := newStubJobsRepo()
	ppoID := uuid.New()
	job := seedJob(repo, func(j *models.Job) {
		j.PpoID = &ppoID
		j.AgentsNeeded = 1
		j.Status = enums.JobStatusAssigned
	})
	svc := newTestService(t, repo)

	_, err := svc.AssignAgents(context.Background(), AssignAgentsInput{
		JobID: job.ID, PpoID: ppoID, AgentIDs: []uuid.UUID{uuid.New(), uuid.New()},
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
	if len(repo.assignments) != 0 {
		t.Fatal("no rows may be written on a rejected assignment")
	}
}

func TestAssignAgentsWrongPpoLooksLikeMissingJob(t *testing.T) {
	t.Parallel()

	repo := newStubJobsRepo()
	ppoID := uuid.New()
	job := seedJob(repo, func(j *models.Job) {
		j.PpoID = &ppoID
		j.Status = enums.JobStatusAssigned
	})
	svc := newTestService(t, repo)

	_, err := svc.AssignAgents(context.Background(), AssignAgentsInput{
		JobID: job.ID, PpoID: uuid.New(), AgentIDs: []uuid.UUID{uuid.New()},
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("ownership failure must read as not-found, got %v", err)
	}
}

func TestAssignPPO(t *testing.T) {
	t.Parallel()

	repo := newStubJobsRepo()
	job := seedJob(repo, nil)
	ppoID := uuid.New()
	repo.roles[ppoID] = enums.UserRolePPO
	svc := newTestService(t, repo)

	updated, err := svc.AssignPPO(context.Background(), AssignPPOInput{
		JobID: job.ID, ClientID: job.ClientID, PpoID: ppoID,
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if updated.Status != enums.JobStatusAssigned {
		t.Fatalf("expected assigned got %s", updated.Status)
	}
	if updated.PpoID == nil || *updated.PpoID != ppoID {
		t.Fatal("expected ppo recorded on job")
	}
}

func TestAssignPPORejectsNonPpoTarget(t *testing.T) {
	t.Parallel()

	repo := newStubJobsRepo()
	job := seedJob(repo, nil)
	agentID := uuid.New()
	repo.roles[agentID] = enums.UserRoleAgent
	svc := newTestService(t, repo)

	_, err := svc.AssignPPO(context.Background(), AssignPPOInput{
		JobID: job.ID, ClientID: job.ClientID, PpoID: agentID,
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found for wrong-role target got %v", err)
	}
}

func TestAssignPPORequiresOpenJob(t *testing.T) {
	t.Parallel()

	repo := newStubJobsRepo()
	job := seedJob(repo, func(j *models.Job) { j.Status = enums.JobStatusInProgress })
	ppoID := uuid.New()
	repo.roles[ppoID] = enums.UserRolePPO
	svc := newTestService(t, repo)

	_, err := svc.AssignPPO(context.Background(), AssignPPOInput{
		JobID: job.ID, ClientID: job.ClientID, PpoID: ppoID,
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	t.Parallel()

	repo := newStubJobsRepo()
	job := seedJob(repo, func(j *models.Job) { j.Status = enums.JobStatusInProgress })
	svc := newTestService(t, repo)
	caller := Caller{UserID: job.ClientID, Role: enums.UserRoleClient}

	if _, err := svc.UpdateStatus(context.Background(), caller, job.ID, enums.JobStatusCompleted); err != nil {
		t.Fatalf("forward transition failed: %v", err)
	}

	_, err := svc.UpdateStatus(context.Background(), caller, job.ID, enums.JobStatusOpen)
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on backward transition got %v", err)
	}
}

func TestUpdateStatusCancelFromAnyNonTerminal(t *testing.T) {
	t.Parallel()

	repo := newStubJobsRepo()
	job := seedJob(repo, func(j *models.Job) { j.Status = enums.JobStatusInProgress })
	svc := newTestService(t, repo)
	caller := Caller{UserID: job.ClientID, Role: enums.UserRoleClient}

	if _, err := svc.UpdateStatus(context.Background(), caller, job.ID, enums.JobStatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	_, err := svc.UpdateStatus(context.Background(), caller, job.ID, enums.JobStatusInProgress)
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("cancelled is terminal, got %v", err)
	}
}

func TestRespondAcceptAndDecline(t *testing.T) {
	t.Parallel()

	repo := newStubJobsRepo()
	job := seedJob(repo, nil)
	agentID := uuid.New()
	assignmentID := uuid.New()
	repo.assignments[assignmentID] = &models.JobAssignment{
		ID:      assignmentID,
		JobID:   job.ID,
		AgentID: agentID,
		Status:  enums.AssignmentStatusAssigned,
	}
	svc := newTestService(t, repo)

	updated, err := svc.Respond(context.Background(), RespondInput{JobID: job.ID, AgentID: agentID, Accept: true})
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if updated.Status != enums.AssignmentStatusAccepted {
		t.Fatalf("expected accepted got %s", updated.Status)
	}

	// A second response is rejected: the assignment is no longer pending.
	_, err = svc.Respond(context.Background(), RespondInput{JobID: job.ID, AgentID: agentID, Accept: false})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}
}

func TestExpressInterestRequiresOpenJob(t *testing.T) {
	t.Parallel()

	repo := newStubJobsRepo()
	job := seedJob(repo, func(j *models.Job) { j.Status = enums.JobStatusCompleted })
	svc := newTestService(t, repo)

	err := svc.ExpressInterest(context.Background(), job.ID, uuid.New())
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict got %v", err)
	}
}

func TestCreateValidatesWindow(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubJobsRepo())
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	_, err := svc.Create(context.Background(), uuid.New(), CreateInput{
		Title:        "Bad window",
		StartTime:    start,
		EndTime:      start,
		HourlyRate:   decimal.NewFromInt(50),
		AgentsNeeded: 1,
	})
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}
