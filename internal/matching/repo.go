package matching

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a matching repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Preload("Assignments").
		Where("id = ?", jobID).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) FindAgentProfileByUser(ctx context.Context, userID uuid.UUID) (*models.AgentProfile, error) {
	var profile models.AgentProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) ListCandidateAgents(ctx context.Context, jobID uuid.UUID) ([]models.AgentProfile, error) {
	var profiles []models.AgentProfile
	err := r.db.WithContext(ctx).
		Where(`user_id NOT IN (
			SELECT agent_id FROM job_assignments
			WHERE job_id = ? AND status NOT IN ?
		)`, jobID, deadAssignmentStatuses()).
		Order("created_at ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *repository) ListOpenJobs(ctx context.Context, agentUserID uuid.UUID) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.JobStatusOpen).
		Where(`id NOT IN (
			SELECT job_id FROM job_assignments
			WHERE agent_id = ? AND status NOT IN ?
		)`, agentUserID, deadAssignmentStatuses()).
		Order("created_at ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *repository) ListBookings(ctx context.Context, agentUserID, excludeJobID uuid.UUID) ([]Booking, error) {
	var rows []WindowedBooking
	query := r.db.WithContext(ctx).
		Table("job_assignments").
		Select("job_assignments.agent_id AS agent_id, jobs.start_time AS start_time, jobs.end_time AS end_time").
		Joins("JOIN jobs ON jobs.id = job_assignments.job_id").
		Where("job_assignments.agent_id = ?", agentUserID).
		Where("job_assignments.status IN ?", blockingAssignmentStatuses())
	if excludeJobID != uuid.Nil {
		query = query.Where("job_assignments.job_id <> ?", excludeJobID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	bookings := make([]Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, Booking{Start: row.Start, End: row.End})
	}
	return bookings, nil
}

func (r *repository) ListBookingsForAgents(ctx context.Context, agentUserIDs []uuid.UUID, excludeJobID uuid.UUID) (map[uuid.UUID][]Booking, error) {
	result := make(map[uuid.UUID][]Booking, len(agentUserIDs))
	if len(agentUserIDs) == 0 {
		return result, nil
	}

	var rows []WindowedBooking
	query := r.db.WithContext(ctx).
		Table("job_assignments").
		Select("job_assignments.agent_id AS agent_id, jobs.start_time AS start_time, jobs.end_time AS end_time").
		Joins("JOIN jobs ON jobs.id = job_assignments.job_id").
		Where("job_assignments.agent_id IN ?", agentUserIDs).
		Where("job_assignments.status IN ?", blockingAssignmentStatuses())
	if excludeJobID != uuid.Nil {
		query = query.Where("job_assignments.job_id <> ?", excludeJobID)
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.AgentID] = append(result[row.AgentID], Booking{Start: row.Start, End: row.End})
	}
	return result, nil
}

func blockingAssignmentStatuses() []enums.AssignmentStatus {
	return []enums.AssignmentStatus{
		enums.AssignmentStatusAssigned,
		enums.AssignmentStatusAccepted,
	}
}

func deadAssignmentStatuses() []enums.AssignmentStatus {
	return []enums.AssignmentStatus{
		enums.AssignmentStatusDeclined,
		enums.AssignmentStatusNoShow,
	}
}
