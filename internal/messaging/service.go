package messaging

import (
	"context"
	"strings"

	"github.com/Rushington-dev/staffshield-pro-backend/internal/realtime"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/db/models"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/enums"
	pkgerrors "github.com/Rushington-dev/staffshield-pro-backend/pkg/errors"
	"github.com/Rushington-dev/staffshield-pro-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SendInput creates a message from the authenticated sender.
type SendInput struct {
	SenderID    uuid.UUID
	RecipientID uuid.UUID  `json:"recipient_id" validate:"required"`
	JobID       *uuid.UUID `json:"job_id"`
	Content     string     `json:"content" validate:"required,max=4000"`
	MessageType string     `json:"message_type"`
}

// ThreadInput identifies a conversation thread for listing or mark-read.
type ThreadInput struct {
	UserID        uuid.UUID
	CounterpartID uuid.UUID
	JobID         *uuid.UUID
}

// Thread is a paginated slice of one conversation.
type Thread struct {
	Messages []models.Message `json:"messages"`
	Total    int64            `json:"total"`
}

// Service exposes messaging operations.
type Service interface {
	Send(ctx context.Context, input SendInput) (*models.Message, error)
	ListThread(ctx context.Context, input ThreadInput, page pagination.Page) (*Thread, error)
	Search(ctx context.Context, userID uuid.UUID, query string, page pagination.Page) (*Thread, error)
	Delete(ctx context.Context, senderID, messageID uuid.UUID) error
	MarkRead(ctx context.Context, input ThreadInput) (int64, error)
	Conversations(ctx context.Context, userID uuid.UUID) ([]Conversation, error)
}

type service struct {
	repo     Repository
	realtime realtime.Publisher
}

// NewService builds the messaging service.
func NewService(repo Repository, rt realtime.Publisher) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "messaging repository required")
	}
	if rt == nil {
		rt = realtime.Noop{}
	}
	return &service{repo: repo, realtime: rt}, nil
}

func (s *service) Send(ctx context.Context, input SendInput) (*models.Message, error) {
	if input.SenderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.RecipientID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient required")
	}
	if input.SenderID == input.RecipientID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot message yourself")
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "content required")
	}

	messageType := enums.MessageTypeText
	if raw := strings.TrimSpace(input.MessageType); raw != "" {
		parsed, err := enums.ParseMessageType(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid message type")
		}
		messageType = parsed
	}

	created, err := s.repo.CreateMessage(ctx, &models.Message{
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		JobID:       input.JobID,
		Content:     content,
		MessageType: messageType,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create message")
	}

	s.realtime.Emit(ctx, realtime.Event{
		Type: realtime.EventNewMessage,
		Room: realtime.UserRoom(input.RecipientID),
		Payload: realtime.NewMessagePayload{
			MessageID:   created.ID,
			SenderID:    created.SenderID,
			RecipientID: created.RecipientID,
			JobID:       created.JobID,
		},
	})
	return created, nil
}

func (s *service) ListThread(ctx context.Context, input ThreadInput, page pagination.Page) (*Thread, error) {
	if input.UserID == uuid.Nil || input.CounterpartID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user and counterpart ids required")
	}
	messages, total, err := s.repo.ListThread(ctx, input.UserID, input.CounterpartID, input.JobID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list thread")
	}
	return &Thread{Messages: messages, Total: total}, nil
}

func (s *service) Search(ctx context.Context, userID uuid.UUID, query string, page pagination.Page) (*Thread, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query required")
	}
	messages, total, err := s.repo.SearchMessages(ctx, userID, query, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search messages")
	}
	return &Thread{Messages: messages, Total: total}, nil
}

// Delete removes a message permanently. Only the sender may delete, and a
// foreign message reads as missing.
func (s *service) Delete(ctx context.Context, senderID, messageID uuid.UUID) error {
	message, err := s.repo.FindMessage(ctx, messageID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load message")
	}
	if message.SenderID != senderID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "message not found")
	}
	if err := s.repo.DeleteMessage(ctx, messageID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete message")
	}
	return nil
}

func (s *service) MarkRead(ctx context.Context, input ThreadInput) (int64, error) {
	if input.UserID == uuid.Nil || input.CounterpartID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user and counterpart ids required")
	}
	marked, err := s.repo.MarkThreadRead(ctx, input.UserID, input.CounterpartID, input.JobID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark thread read")
	}
	return marked, nil
}

func (s *service) Conversations(ctx context.Context, userID uuid.UUID) ([]Conversation, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	conversations, err := s.repo.ListConversations(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list conversations")
	}
	return conversations, nil
}
