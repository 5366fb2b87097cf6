package service

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/sparkhub"
	"github.com/sparkhub/sparkhub-cli/internal/domain/session"
	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// ProfileService handles account maintenance: email, password, avatar.
type ProfileService struct {
	client   *sparkhub.Client
	session  *session.Store
	state    StatePersister
	validate *validator.Validate
	logger   *slog.Logger
}

// NewProfileService wires a ProfileService.
func NewProfileService(client *sparkhub.Client, sess *session.Store, state StatePersister, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		client:   client,
		session:  sess,
		state:    state,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// UpdateEmail changes the account email.
func (s *ProfileService) UpdateEmail(ctx context.Context, email string) error {
	req := api.UpdateEmailRequest{Email: email}
	if err := s.validate.Struct(req); err != nil {
		return errInvalidEmail
	}
	return s.client.UpdateEmail(ctx, req)
}

// UpdatePassword changes the account password. The backend revokes the
// current token on success, so the local session is cleared too and the
// user logs in again with the new password.
func (s *ProfileService) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	req := api.UpdatePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := s.validate.Struct(req); err != nil {
		return errInvalidPassword
	}
	if err := s.client.UpdatePassword(ctx, req); err != nil {
		return err
	}
	s.session.Logout()
	return s.state.Save(s.session.Snapshot())
}

// UpdateAvatar sets the avatar URL and refreshes the cached profile.
func (s *ProfileService) UpdateAvatar(ctx context.Context, avatarURL string) (*api.User, error) {
	req := api.UpdateAvatarRequest{AvatarURL: avatarURL}
	if err := s.validate.Struct(req); err != nil {
		return nil, errInvalidAvatar
	}
	user, err := s.client.UpdateAvatar(ctx, req)
	if err != nil {
		return nil, err
	}
	s.session.SetAvatar(user.Avatar)
	if err := s.state.Save(s.session.Snapshot()); err != nil {
		return nil, err
	}
	return s.session.User(), nil
}
