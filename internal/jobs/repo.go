package jobs

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a jobs repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateJob(ctx context.Context, job *models.Job) (*models.Job, error) {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
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

func (r *repository) ListJobs(ctx context.Context, page pagination.Page, filters Filters) ([]models.Job, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Job{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.ClientID != nil {
		query = query.Where("client_id = ?", *filters.ClientID)
	}
	if filters.PpoID != nil {
		query = query.Where("ppo_id = ?", *filters.PpoID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	err := query.
		Preload("Assignments").
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *repository) UpdateJob(ctx context.Context, jobID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", jobID).
		Updates(updates).Error
}

func (r *repository) FindUserRole(ctx context.Context, userID uuid.UUID) (enums.UserRole, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Select("role").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (r *repository) DeleteAssignmentsForJob(ctx context.Context, jobID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Delete(&models.JobAssignment{}).Error
}

func (r *repository) CreateAssignments(ctx context.Context, assignments []models.JobAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&assignments).Error
}

func (r *repository) FindAssignment(ctx context.Context, jobID, agentID uuid.UUID) (*models.JobAssignment, error) {
	var assignment models.JobAssignment
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND agent_id = ?", jobID, agentID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *repository) UpdateAssignmentStatus(ctx context.Context, assignmentID uuid.UUID, status enums.AssignmentStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.JobAssignment{}).
		Where("id = ?", assignmentID).
		Update("status", status).Error
}

func (r *repository) CountLiveAssignments(ctx context.Context, jobID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.JobAssignment{}).
		Where("job_id = ? AND status <> ?", jobID, enums.AssignmentStatusDeclined).
		Count(&count).Error
	return count, err
}

func (r *repository) UpsertInterest(ctx context.Context, jobID, agentID uuid.UUID) error {
	assignment := models.JobAssignment{
		JobID:   jobID,
		AgentID: agentID,
		Status:  enums.AssignmentStatusInterested,
	}
	// A declined/no-show row is never revived; the conflict clause only fires
	// on the (job, agent) unique key and leaves existing rows untouched.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "job_id"}, {Name: "agent_id"}},
			DoNothing: true,
		}).
		Create(&assignment).Error
}
