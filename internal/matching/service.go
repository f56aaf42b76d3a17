package matching

import (
	"context"
	"sort"
	"time"

	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the two matching directions.
type Service interface {
	// FindAgentsForJob returns scored agent candidates for the job, best first.
	FindAgentsForJob(ctx context.Context, jobID uuid.UUID) ([]AgentMatch, error)
	// FindJobsForAgent returns scored open jobs for the agent, best first.
	FindJobsForAgent(ctx context.Context, agentUserID uuid.UUID) ([]JobMatch, error)
}

type service struct {
	repo    Repository
	metrics *metrics.MarketplaceMetrics
}

// NewService builds the matching service.
func NewService(repo Repository, m *metrics.MarketplaceMetrics) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "matching repository required")
	}
	return &service{repo: repo, metrics: m}, nil
}

func (s *service) FindAgentsForJob(ctx context.Context, jobID uuid.UUID) ([]AgentMatch, error) {
	if jobID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "job id required")
	}
	started := time.Now()

	job, err := s.repo.FindJob(ctx, jobID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "job not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load job")
	}

	candidates, err := s.repo.ListCandidateAgents(ctx, jobID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list candidate agents")
	}

	agentIDs := make([]uuid.UUID, 0, len(candidates))
	for _, agent := range candidates {
		agentIDs = append(agentIDs, agent.UserID)
	}
	bookings, err := s.repo.ListBookingsForAgents(ctx, agentIDs, jobID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent bookings")
	}

	matches := make([]AgentMatch, 0, len(candidates))
	for i := range candidates {
		agent := candidates[i]
		if !IsAvailable(job.StartTime, job.EndTime, bookings[agent.UserID]) {
			continue
		}
		score := ScoreAgentForJob(job, &agent)
		matches = append(matches, AgentMatch{
			Agent:   agent,
			Score:   score.Total,
			Reasons: score.Reasons,
		})
	}

	// Stable sort keeps the repository's created_at order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	s.metrics.ObserveMatch("agents_for_job", time.Since(started), len(matches))
	return matches, nil
}

func (s *service) FindJobsForAgent(ctx context.Context, agentUserID uuid.UUID) ([]JobMatch, error) {
	if agentUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "agent id required")
	}
	started := time.Now()

	agent, err := s.repo.FindAgentProfileByUser(ctx, agentUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "agent profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent profile")
	}

	jobs, err := s.repo.ListOpenJobs(ctx, agentUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list open jobs")
	}

	bookings, err := s.repo.ListBookings(ctx, agentUserID, uuid.Nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load agent bookings")
	}

	matches := make([]JobMatch, 0, len(jobs))
	for i := range jobs {
		job := jobs[i]
		if !IsAvailable(job.StartTime, job.EndTime, bookings) {
			continue
		}
		score := ScoreJobForAgent(agent, &job)
		matches = append(matches, JobMatch{
			Job:     job,
			Score:   score.Total,
			Reasons: score.Reasons,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	s.metrics.ObserveMatch("jobs_for_agent", time.Since(started), len(matches))
	return matches, nil
}
