package models

import (
	"time"

	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	"github.com/google/uuid"
)

// Message is a directed sender-to-recipient message, optionally scoped to a
// job. Messages are the only hard-deletable entity (by sender).
type Message struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SenderID    uuid.UUID         `gorm:"column:sender_id;type:uuid;not null;index"`
	RecipientID uuid.UUID         `gorm:"column:recipient_id;type:uuid;not null;index"`
	JobID       *uuid.UUID        `gorm:"column:job_id;type:uuid;index"`
	Content     string            `gorm:"column:content;not null"`
	MessageType enums.MessageType `gorm:"column:message_type;type:message_type;not null;default:'text'"`
	IsRead      bool              `gorm:"column:is_read;not null;default:false"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}
