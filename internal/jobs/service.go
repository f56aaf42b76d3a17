package jobs

import (
	"context"
	"strings"

	"github.com/Rushington-dev/staffshield-pro-backend/internal/analytics"
	"github.com/Rushington-dev/staffshield-pro-backend/internal/realtime"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/metrics"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Caller identifies the authenticated requester.
type Caller struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// Service exposes the job lifecycle operations.
type Service interface {
	Create(ctx context.Context, clientID uuid.UUID, input CreateInput) (*models.Job, error)
	List(ctx context.Context, caller Caller, page pagination.Page, status *enums.JobStatus) (*List, error)
	Get(ctx context.Context, caller Caller, jobID uuid.UUID) (*models.Job, error)
	AssignPPO(ctx context.Context, input AssignPPOInput) (*models.Job, error)
	AssignAgents(ctx context.Context, input AssignAgentsInput) (*models.Job, error)
	UpdateStatus(ctx context.Context, caller Caller, jobID uuid.UUID, target enums.JobStatus) (*models.Job, error)
	Respond(ctx context.Context, input RespondInput) (*models.JobAssignment, error)
	ExpressInterest(ctx context.Context, jobID, agentID uuid.UUID) error
}

type service struct {
	repo      Repository
	tx        txRunner
	realtime  realtime.Publisher
	metrics   *metrics.MarketplaceMetrics
	analytics analytics.Recorder
}

// NewService builds the jobs service.
func NewService(repo Repository, tx txRunner, rt realtime.Publisher, m *metrics.MarketplaceMetrics, rec analytics.Recorder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "jobs repository required")
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
	return &service{repo: repo, tx: tx, realtime: rt, metrics: m, analytics: rec}, nil
}

func (s *service) Create(ctx context.Context, clientID uuid.UUID, input CreateInput) (*models.Job, error) {
	if clientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title required")
	}
	if !input.EndTime.After(input.StartTime) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end time must be after start time")
	}
	if input.AgentsNeeded < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agents needed must be at least 1")
	}
	if input.HourlyRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hourly rate cannot be negative")
	}

	urgency := enums.JobUrgencyNormal
	if raw := strings.TrimSpace(input.Urgency); raw != "" {
		parsed, err := enums.ParseJobUrgency(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid urgency")
		}
		urgency = parsed
	}

	job := &models.Job{
		ClientID:               clientID,
		Title:                  strings.TrimSpace(input.Title),
		Location:               input.Location,
		StartTime:              input.StartTime,
		EndTime:                input.EndTime,
		RequiredCertifications: pq.StringArray(input.RequiredCertifications),
		HourlyRate:             input.HourlyRate,
		AgentsNeeded:           input.AgentsNeeded,
		Urgency:                urgency,
		Status:                 enums.JobStatusOpen,
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		job.Description = &desc
	}
	if addr := strings.TrimSpace(input.Address); addr != "" {
		job.Address = &addr
	}

	created, err := s.repo.CreateJob(ctx, job)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create job")
	}

	s.analytics.Record(ctx, "job_created", clientID, created.ID, string(urgency))
	return created, nil
}

func (s *service) List(ctx context.Context, caller Caller, page pagination.Page, status *enums.JobStatus) (*List, error) {
	filters := Filters{Status: status}
	switch caller.Role {
	case enums.UserRoleClient:
		filters.ClientID = &caller.UserID
	case enums.UserRolePPO:
		filters.PpoID = &caller.UserID
	case enums.UserRoleAgent:
		// Agents browse the open market.
		if filters.Status == nil {
			open := enums.JobStatusOpen
			filters.Status = &open
		}
	case enums.UserRoleAdmin:
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "role cannot list jobs")
	}

	jobs, total, err := s.repo.ListJobs(ctx, page, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list jobs")
	}
	return &List{Jobs: jobs, Total: total}, nil
}

func (s *service) Get(ctx context.Context, caller Caller, jobID uuid.UUID) (*models.Job, error) {
	job, err := s.loadJob(ctx, s.repo, jobID)
	if err != nil {
		return nil, err
	}
	if !s.canView(caller, job) {
		// Absence and lack of ownership are indistinguishable to the caller.
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
	}
	return job, nil
}

func (s *service) AssignPPO(ctx context.Context, input AssignPPOInput) (*models.Job, error) {
	if input.JobID == uuid.Nil || input.PpoID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id and ppo id required")
	}

	var job *models.Job
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		loaded, err := s.loadJob(ctx, repo, input.JobID)
		if err != nil {
			return err
		}
		if loaded.ClientID != input.ClientID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		if loaded.Status != enums.JobStatusOpen {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "job is not open")
		}

		role, err := repo.FindUserRole(ctx, input.PpoID)
		if err != nil || role != enums.UserRolePPO {
			return pkgerrors.New(pkgerrors.CodeNotFound, "ppo not found")
		}

		updates := map[string]any{
			"ppo_id": input.PpoID,
			"status": enums.JobStatusAssigned,
		}
		if err := repo.UpdateJob(ctx, input.JobID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign ppo")
		}

		loaded.PpoID = &input.PpoID
		loaded.Status = enums.JobStatusAssigned
		job = loaded
		return nil
	})
	if err != nil {
		s.metrics.IncAssignment("ppo", "failure")
		return nil, err
	}

	s.metrics.IncAssignment("ppo", "success")
	s.metrics.IncJobTransition(string(enums.JobStatusAssigned))
	s.emitJobStatus(ctx, job.ID, enums.JobStatusAssigned)
	s.analytics.Record(ctx, "ppo_assigned", input.ClientID, job.ID, input.PpoID.String())
	return job, nil
}

func (s *service) AssignAgents(ctx context.Context, input AssignAgentsInput) (*models.Job, error) {
	if input.JobID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id required")
	}
	if len(input.AgentIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent list required")
	}
	if hasDuplicates(input.AgentIDs) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate agent ids")
	}

	var job *models.Job
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		loaded, err := s.loadJob(ctx, repo, input.JobID)
		if err != nil {
			return err
		}
		if loaded.PpoID == nil || *loaded.PpoID != input.PpoID {
			return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		if loaded.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "job already finished")
		}
		if len(input.AgentIDs) > loaded.AgentsNeeded {
			return pkgerrors.New(pkgerrors.CodeValidation, "agent list exceeds agents needed").
				WithDetails(map[string]any{"agents_needed": loaded.AgentsNeeded})
		}

		// Destructive replace: the new roster fully supersedes the old one.
		if err := repo.DeleteAssignmentsForJob(ctx, input.JobID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear assignments")
		}

		assignments := make([]models.JobAssignment, 0, len(input.AgentIDs))
		for _, agentID := range input.AgentIDs {
			assignments = append(assignments, models.JobAssignment{
				JobID:   input.JobID,
				AgentID: agentID,
				Status:  enums.AssignmentStatusAssigned,
			})
		}
		if err := repo.CreateAssignments(ctx, assignments); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create assignments")
		}

		if err := repo.UpdateJob(ctx, input.JobID, map[string]any{"status": enums.JobStatusInProgress}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update job status")
		}

		loaded.Status = enums.JobStatusInProgress
		loaded.Assignments = assignments
		job = loaded
		return nil
	})
	if err != nil {
		s.metrics.IncAssignment("agents", "failure")
		return nil, err
	}

	s.metrics.IncAssignment("agents", "success")
	s.metrics.IncJobTransition(string(enums.JobStatusInProgress))
	s.emitJobStatus(ctx, job.ID, enums.JobStatusInProgress)
	s.analytics.Record(ctx, "agents_assigned", input.PpoID, job.ID, "")
	return job, nil
}

func (s *service) UpdateStatus(ctx context.Context, caller Caller, jobID uuid.UUID, target enums.JobStatus) (*models.Job, error) {
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid job status")
	}

	var job *models.Job
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		loaded, err := s.loadJob(ctx, repo, jobID)
		if err != nil {
			return err
		}
		if !s.canManage(caller, loaded) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		if !loaded.Status.CanTransitionTo(target) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition disallowed").
				WithDetails(map[string]any{"from": loaded.Status, "to": target})
		}

		if err := repo.UpdateJob(ctx, jobID, map[string]any{"status": target}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update job status")
		}

		loaded.Status = target
		job = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncJobTransition(string(target))
	s.emitJobStatus(ctx, job.ID, target)
	s.analytics.Record(ctx, "job_status_changed", caller.UserID, job.ID, string(target))
	return job, nil
}

func (s *service) Respond(ctx context.Context, input RespondInput) (*models.JobAssignment, error) {
	if input.JobID == uuid.Nil || input.AgentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id and agent id required")
	}

	assignment, err := s.repo.FindAssignment(ctx, input.JobID, input.AgentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assignment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load assignment")
	}
	if assignment.Status != enums.AssignmentStatusAssigned {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "assignment is not awaiting a response")
	}

	target := enums.AssignmentStatusDeclined
	if input.Accept {
		target = enums.AssignmentStatusAccepted
	}
	if err := s.repo.UpdateAssignmentStatus(ctx, assignment.ID, target); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update assignment")
	}
	assignment.Status = target

	s.analytics.Record(ctx, "assignment_response", input.AgentID, input.JobID, string(target))
	return assignment, nil
}

func (s *service) ExpressInterest(ctx context.Context, jobID, agentID uuid.UUID) error {
	if jobID == uuid.Nil || agentID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "job id and agent id required")
	}

	job, err := s.loadJob(ctx, s.repo, jobID)
	if err != nil {
		return err
	}
	if job.Status != enums.JobStatusOpen {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "job is not open")
	}

	if err := s.repo.UpsertInterest(ctx, jobID, agentID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record interest")
	}

	s.analytics.Record(ctx, "interest_expressed", agentID, jobID, "")
	return nil
}

func (s *service) loadJob(ctx context.Context, repo Repository, jobID uuid.UUID) (*models.Job, error) {
	if jobID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id required")
	}
	job, err := repo.FindJob(ctx, jobID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
	}
	return job, nil
}

func (s *service) canView(caller Caller, job *models.Job) bool {
	switch caller.Role {
	case enums.UserRoleAdmin:
		return true
	case enums.UserRoleClient:
		return job.ClientID == caller.UserID
	case enums.UserRolePPO:
		return job.PpoID != nil && *job.PpoID == caller.UserID
	case enums.UserRoleAgent:
		if job.Status == enums.JobStatusOpen {
			return true
		}
		for _, assignment := range job.Assignments {
			if assignment.AgentID == caller.UserID && assignment.Status.StillLinked() {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (s *service) canManage(caller Caller, job *models.Job) bool {
	switch caller.Role {
	case enums.UserRoleAdmin:
		return true
	case enums.UserRoleClient:
		return job.ClientID == caller.UserID
	case enums.UserRolePPO:
		return job.PpoID != nil && *job.PpoID == caller.UserID
	default:
		return false
	}
}

func (s *service) emitJobStatus(ctx context.Context, jobID uuid.UUID, status enums.JobStatus) {
	s.realtime.Emit(ctx, realtime.Event{
		Type: realtime.EventJobStatusUpdate,
		Room: realtime.JobRoom(jobID),
		Payload: realtime.JobStatusPayload{
			JobID:     jobID,
			NewStatus: status,
		},
	})
}

func hasDuplicates(ids []uuid.UUID) bool {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
