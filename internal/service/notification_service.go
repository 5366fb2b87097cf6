package service

import (
	"context"
	"log/slog"

	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/sparkhub"
	"github.com/sparkhub/sparkhub-cli/internal/domain/session"
	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// NotificationService keeps the session's unread badge in sync with the
// inbox operations.
type NotificationService struct {
	client  *sparkhub.Client
	session *session.Store
	state   StatePersister
	logger  *slog.Logger
}

// NewNotificationService wires a NotificationService.
func NewNotificationService(client *sparkhub.Client, sess *session.Store, state StatePersister, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		client:  client,
		session: sess,
		state:   state,
		logger:  logger,
	}
}

// SyncUnread refreshes the unread badge from the backend.
func (s *NotificationService) SyncUnread(ctx context.Context) (int, error) {
	out, err := s.client.UnreadCount(ctx)
	if err != nil {
		return s.session.UnreadCount(), err
	}
	s.session.SetUnreadCount(out.Count)
	if err := s.state.Save(s.session.Snapshot()); err != nil {
		s.logger.Warn("unread badge not persisted", "error", err)
	}
	return out.Count, nil
}

// List returns one inbox page.
func (s *NotificationService) List(ctx context.Context, params api.NotificationListParams) (api.NotificationPage, error) {
	return s.client.ListNotifications(ctx, params)
}

// MarkRead marks one notification read. The badge decrements only when
// the entry was actually unread.
func (s *NotificationService) MarkRead(ctx context.Context, id int64, wasUnread bool) error {
	if err := s.client.MarkNotificationRead(ctx, id); err != nil {
		return err
	}
	if wasUnread {
		s.session.DecrementUnreadCount()
		if err := s.state.Save(s.session.Snapshot()); err != nil {
			s.logger.Warn("unread badge not persisted", "error", err)
		}
	}
	return nil
}

// MarkAllRead marks the whole inbox read and zeroes the badge.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	if err := s.client.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}
	s.session.SetUnreadCount(0)
	if err := s.state.Save(s.session.Snapshot()); err != nil {
		s.logger.Warn("unread badge not persisted", "error", err)
	}
	return nil
}
