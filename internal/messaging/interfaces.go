package messaging

import (
	"context"
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is one thread: a distinct counterpart, further split by job
// scope, projected down to the latest message and the unread backlog.
type Conversation struct {
	CounterpartID uuid.UUID         `gorm:"column:counterpart_id" json:"counterpart_id"`
	JobID         *uuid.UUID        `gorm:"column:job_id" json:"job_id,omitempty"`
	LastContent   string            `gorm:"column:last_content" json:"last_content"`
	LastType      enums.MessageType `gorm:"column:last_type" json:"last_type"`
	LastAt        time.Time         `gorm:"column:last_at" json:"last_at"`
	UnreadCount   int64             `gorm:"column:unread_count" json:"unread_count"`
}

// Repository defines persistence operations for messages.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateMessage(ctx context.Context, message *models.Message) (*models.Message, error)
	FindMessage(ctx context.Context, messageID uuid.UUID) (*models.Message, error)
	ListThread(ctx context.Context, userID, counterpartID uuid.UUID, jobID *uuid.UUID, page pagination.Page) ([]models.Message, int64, error)
	SearchMessages(ctx context.Context, userID uuid.UUID, query string, page pagination.Page) ([]models.Message, int64, error)
	DeleteMessage(ctx context.Context, messageID uuid.UUID) error
	MarkThreadRead(ctx context.Context, userID, counterpartID uuid.UUID, jobID *uuid.UUID) (int64, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]Conversation, error)
}
