package matching

import (
	"context"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/google/uuid"
)

// Repository defines the candidate-pool reads the matcher needs.
type Repository interface {
	// FindJob loads the job with its assignments preloaded.
	FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	// FindAgentProfileByUser loads the agent profile for the given user.
	FindAgentProfileByUser(ctx context.Context, userID uuid.UUID) (*models.AgentProfile, error)
	// ListCandidateAgents returns agent profiles not already linked to the job
	// by a live assignment, in stable created_at order.
	ListCandidateAgents(ctx context.Context, jobID uuid.UUID) ([]models.AgentProfile, error)
	// ListOpenJobs returns open jobs the agent is not already linked to, in
	// stable created_at order.
	ListOpenJobs(ctx context.Context, agentUserID uuid.UUID) ([]models.Job, error)
	// ListBookings returns the windows of jobs the agent is assigned to or has
	// accepted, excluding the given job.
	ListBookings(ctx context.Context, agentUserID, excludeJobID uuid.UUID) ([]Booking, error)
	// ListBookingsForAgents batch-loads calendar holds for many agents at once.
	ListBookingsForAgents(ctx context.Context, agentUserIDs []uuid.UUID, excludeJobID uuid.UUID) (map[uuid.UUID][]Booking, error)
}

// WindowedBooking pairs an agent with one of its holds; used by the batch read.
type WindowedBooking struct {
	AgentID uuid.UUID `gorm:"column:agent_id"`
	Start   time.Time `gorm:"column:start_time"`
	End     time.Time `gorm:"column:end_time"`
}
