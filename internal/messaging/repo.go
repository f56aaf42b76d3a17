package messaging

import (
	"context"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a messaging repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateMessage(ctx context.Context, message *models.Message) (*models.Message, error) {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

func (r *repository) FindMessage(ctx context.Context, messageID uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).
		Where("id = ?", messageID).
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *repository) ListThread(ctx context.Context, userID, counterpartID uuid.UUID, jobID *uuid.UUID, page pagination.Page) ([]models.Message, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, counterpartID, counterpartID, userID)
	if jobID != nil {
		query = query.Where("job_id = ?", *jobID)
	} else {
		query = query.Where("job_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := query.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *repository) SearchMessages(ctx context.Context, userID uuid.UUID, query string, page pagination.Page) ([]models.Message, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("(sender_id = ? OR recipient_id = ?)", userID, userID).
		Where("content ILIKE ?", "%"+query+"%")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := base.
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *repository) DeleteMessage(ctx context.Context, messageID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", messageID).
		Delete(&models.Message{}).Error
}

func (r *repository) MarkThreadRead(ctx context.Context, userID, counterpartID uuid.UUID, jobID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = false", userID, counterpartID)
	if jobID != nil {
		query = query.Where("job_id = ?", *jobID)
	} else {
		query = query.Where("job_id IS NULL")
	}
	result := query.Update("is_read", true)
	return result.RowsAffected, result.Error
}

// ListConversations folds the user's messages into one row per
// (counterpart, job scope) pair: latest message projection plus the count of
// unread messages from that counterpart, most recent activity first.
func (r *repository) ListConversations(ctx context.Context, userID uuid.UUID) ([]Conversation, error) {
	var conversations []Conversation
	err := r.db.WithContext(ctx).Raw(`
		WITH threads AS (
			SELECT
				CASE WHEN sender_id = @user THEN recipient_id ELSE sender_id END AS counterpart_id,
				job_id,
				content,
				message_type,
				created_at,
				(recipient_id = @user AND NOT is_read)::int AS unread,
				ROW_NUMBER() OVER (
					PARTITION BY
						CASE WHEN sender_id = @user THEN recipient_id ELSE sender_id END,
						job_id
					ORDER BY created_at DESC
				) AS rn
			FROM messages
			WHERE sender_id = @user OR recipient_id = @user
		)
		SELECT
			t.counterpart_id,
			t.job_id,
			t.content      AS last_content,
			t.message_type AS last_type,
			t.created_at   AS last_at,
			u.unread_count
		FROM threads t
		JOIN (
			SELECT counterpart_id, job_id, SUM(unread) AS unread_count
			FROM threads
			GROUP BY counterpart_id, job_id
		) u ON u.counterpart_id = t.counterpart_id
		   AND u.job_id IS NOT DISTINCT FROM t.job_id
		WHERE t.rn = 1
		ORDER BY t.created_at DESC`,
		map[string]any{"user": userID},
	).Scan(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}
