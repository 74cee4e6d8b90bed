// internal/service/message/message.go
package message

import (
	"context"
	"errors"
	"strings"

	"realty-service/internal/domain/message"
	xerrors "realty-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// Publisher pushes inbox changes to connected admins.
type Publisher interface {
	PublishNewMessage(m *message.Message)
	PublishMessageDeleted(id int64)
}

type MessageService struct {
	repo      message.Repository
	publisher Publisher
	logger    *zap.Logger
}

// NewMessageService builds the service. publisher may be nil.
func NewMessageService(repo message.Repository, publisher Publisher, logger *zap.Logger) *MessageService {
	return &MessageService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create stores a visitor inquiry and notifies connected admins.
func (s *MessageService) Create(ctx context.Context, req *message.CreateRequest) (*message.Message, error) {
	m := &message.Message{
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Message:    strings.TrimSpace(req.Message),
		PropertyID: req.PropertyID,
	}
	if m.Name == "" || m.Email == "" || m.Message == "" {
		return nil, xerrors.ErrInvalidInput
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("failed to store message", zap.Error(err))
		return nil, xerrors.Unavailable(err, "failed to store message")
	}

	s.logger.Info("message received", zap.Int64("message_id", m.ID))
	if s.publisher != nil {
		s.publisher.PublishNewMessage(m)
	}
	return m, nil
}

func (s *MessageService) List(ctx context.Context, limit int) ([]*message.Message, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	messages, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, xerrors.Unavailable(err, "failed to list messages")
	}
	return messages, nil
}

func (s *MessageService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			return err
		}
		return xerrors.Unavailable(err, "failed to delete message")
	}

	s.logger.Info("message deleted", zap.Int64("message_id", id))
	if s.publisher != nil {
		s.publisher.PublishMessageDeleted(id)
	}
	return nil
}
