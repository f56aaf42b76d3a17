package jobs

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for jobs and their assignments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateJob(ctx context.Context, job *models.Job) (*models.Job, error)
	FindJob(ctx context.Context, jobID uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context, page pagination.Page, filters Filters) ([]models.Job, int64, error)
	UpdateJob(ctx context.Context, jobID uuid.UUID, updates map[string]any) error

	FindUserRole(ctx context.Context, userID uuid.UUID) (enums.UserRole, error)

	DeleteAssignmentsForJob(ctx context.Context, jobID uuid.UUID) error
	CreateAssignments(ctx context.Context, assignments []models.JobAssignment) error
	FindAssignment(ctx context.Context, jobID, agentID uuid.UUID) (*models.JobAssignment, error)
	UpdateAssignmentStatus(ctx context.Context, assignmentID uuid.UUID, status enums.AssignmentStatus) error
	CountLiveAssignments(ctx context.Context, jobID uuid.UUID) (int64, error)
	UpsertInterest(ctx context.Context, jobID, agentID uuid.UUID) error
}
