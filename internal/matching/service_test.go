package matching

import (
	"context"
	"testing"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubMatchingRepo struct {
	job        *models.Job
	agent      *models.AgentProfile
	candidates []models.AgentProfile
	openJobs   []models.Job
	bookings   map[uuid.UUID][]Booking
}

func (s *stubMatchingRepo) FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	if s.job == nil || s.job.ID != jobID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.job, nil
}

func (s *stubMatchingRepo) FindAgentProfileByUser(ctx context.Context, userID uuid.UUID) (*models.AgentProfile, error) {
	if s.agent == nil || s.agent.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.agent, nil
}

func (s *stubMatchingRepo) ListCandidateAgents(ctx context.Context, jobID uuid.UUID) ([]models.AgentProfile, error) {
	return s.candidates, nil
}

func (s *stubMatchingRepo) ListOpenJobs(ctx context.Context, agentUserID uuid.UUID) ([]models.Job, error) {
	return s.openJobs, nil
}

func (s *stubMatchingRepo) ListBookings(ctx context.Context, agentUserID, excludeJobID uuid.UUID) ([]Booking, error) {
	return s.bookings[agentUserID], nil
}

func (s *stubMatchingRepo) ListBookingsForAgents(ctx context.Context, agentUserIDs []uuid.UUID, excludeJobID uuid.UUID) (map[uuid.UUID][]Booking, error) {
	return s.bookings, nil
}

func TestFindAgentsForJobFiltersConflicts(t *testing.T) {
	t.Parallel()

	jobID := uuid.New()
	freeAgent := uuid.New()
	busyAgent := uuid.New()

	start := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	job := testJob(func(j *models.Job) {
		j.ID = jobID
		j.StartTime = start
		j.EndTime = start.Add(2 * time.Hour)
	})

	repo := &stubMatchingRepo{
		job: job,
		candidates: []models.AgentProfile{
			*testAgent(func(a *models.AgentProfile) { a.UserID = freeAgent }),
			*testAgent(func(a *models.AgentProfile) { a.UserID = busyAgent }),
		},
		bookings: map[uuid.UUID][]Booking{
			// 10:00-14:00 overlaps the job's 13:00-15:00 window.
			busyAgent: {{Start: start.Add(-3 * time.Hour), End: start.Add(time.Hour)}},
		},
	}

	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	matches, err := svc.FindAgentsForJob(context.Background(), jobID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one candidate got %d", len(matches))
	}
	if matches[0].Agent.UserID != freeAgent {
		t.Fatalf("expected free agent, got %s", matches[0].Agent.UserID)
	}
}

func TestFindAgentsForJobTouchingWindowNotExcluded(t *testing.T) {
	t.Parallel()

	jobID := uuid.New()
	agentID := uuid.New()

	start := time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)
	job := testJob(func(j *models.Job) {
		j.ID = jobID
		j.StartTime = start
		j.EndTime = start.Add(2 * time.Hour)
	})

	repo := &stubMatchingRepo{
		job: job,
		candidates: []models.AgentProfile{
			*testAgent(func(a *models.AgentProfile) { a.UserID = agentID }),
		},
		bookings: map[uuid.UUID][]Booking{
			// Booking ends exactly when the job starts.
			agentID: {{Start: start.Add(-4 * time.Hour), End: start}},
		},
	}

	svc, _ := NewService(repo, nil)
	matches, err := svc.FindAgentsForJob(context.Background(), jobID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("touching booking must not exclude the agent, got %d matches", len(matches))
	}
}

func TestFindAgentsForJobSortsByScore(t *testing.T) {
	t.Parallel()

	jobID := uuid.New()
	weak := uuid.New()
	strong := uuid.New()

	repo := &stubMatchingRepo{
		job: testJob(func(j *models.Job) { j.ID = jobID }),
		candidates: []models.AgentProfile{
			// Listed first but scores lower: no cert overlap, pricier.
			*testAgent(func(a *models.AgentProfile) {
				a.UserID = weak
				a.Certifications = []string{"Firearms"}
				a.HourlyRate = decimal.NewFromInt(300)
				a.ExperienceYears = 0
			}),
			*testAgent(func(a *models.AgentProfile) { a.UserID = strong }),
		},
	}

	svc, _ := NewService(repo, nil)
	matches, err := svc.FindAgentsForJob(context.Background(), jobID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected two candidates got %d", len(matches))
	}
	if matches[0].Agent.UserID != strong {
		t.Fatal("expected the higher-scoring agent first")
	}
	if matches[0].Score <= matches[1].Score {
		t.Fatalf("expected descending scores got %v then %v", matches[0].Score, matches[1].Score)
	}
}

func TestFindAgentsForJobNotFound(t *testing.T) {
	t.Parallel()

	svc, _ := NewService(&stubMatchingRepo{}, nil)
	_, err := svc.FindAgentsForJob(context.Background(), uuid.New())
	domainErr := pkgerrors.As(err)
	if domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error got %v", err)
	}
}

func TestFindJobsForAgentFiltersAndSorts(t *testing.T) {
	t.Parallel()

	agentID := uuid.New()
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	conflicting := testJob(func(j *models.Job) {
		j.ID = uuid.New()
		j.StartTime = start
		j.EndTime = start.Add(4 * time.Hour)
	})
	open := testJob(func(j *models.Job) {
		j.ID = uuid.New()
		j.StartTime = start.Add(6 * time.Hour)
		j.EndTime = start.Add(10 * time.Hour)
	})

	repo := &stubMatchingRepo{
		agent:    testAgent(func(a *models.AgentProfile) { a.UserID = agentID }),
		openJobs: []models.Job{*conflicting, *open},
		bookings: map[uuid.UUID][]Booking{
			agentID: {{Start: start.Add(2 * time.Hour), End: start.Add(5 * time.Hour)}},
		},
	}

	svc, _ := NewService(repo, nil)
	matches, err := svc.FindJobsForAgent(context.Background(), agentID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one job got %d", len(matches))
	}
	if matches[0].Job.ID != open.ID {
		t.Fatal("expected the conflict-free job")
	}
}
