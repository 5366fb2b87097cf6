// Package service provides the application services tying the API client,
// the session store, and session persistence together. Commands call
// services; services never render output.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/sparkhub"
	"github.com/sparkhub/sparkhub-cli/internal/domain/session"
	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// StatePersister persists session snapshots. The file state store
// satisfies this.
type StatePersister interface {
	Save(st session.State) error
	Reset() error
}

// AuthService handles login, logout, and registration. Every session
// transition it makes is persisted immediately, so a crash between
// commands never leaves the file and memory out of sync.
type AuthService struct {
	client   *sparkhub.Client
	session  *session.Store
	state    StatePersister
	validate *validator.Validate
	logger   *slog.Logger
}

// NewAuthService wires an AuthService.
func NewAuthService(client *sparkhub.Client, sess *session.Store, state StatePersister, logger *slog.Logger) *AuthService {
	return &AuthService{
		client:   client,
		session:  sess,
		state:    state,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Login authenticates and installs the returned token and profile as the
// active session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*api.User, error) {
	req := api.LoginRequest{Username: username, Password: password}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("username and password are required")
	}

	out, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	s.session.Login(out.Token, out.User)
	if err := s.state.Save(s.session.Snapshot()); err != nil {
		return nil, fmt.Errorf("session saved in memory only: %w", err)
	}
	s.logger.Info("logged in", "username", out.User.Username)
	return s.session.User(), nil
}

// Logout clears the session. The server-side logout is best effort: the
// local session is cleared even when the backend call fails, because a
// stale local token is worse than a stale server session.
func (s *AuthService) Logout(ctx context.Context) error {
	if s.session.IsAuthenticated() {
		if err := s.client.Logout(ctx); err != nil {
			s.logger.Warn("server-side logout failed", "error", err)
		}
	}
	s.session.Logout()
	return s.state.Save(s.session.Snapshot())
}

// Register creates a new account. The caller logs in separately.
func (s *AuthService) Register(ctx context.Context, req api.RegisterRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return formatRegisterError(err)
	}
	return s.client.Register(ctx, req)
}

func formatRegisterError(err error) error {
	var verrs validator.ValidationErrors
	if !asValidationErrors(err, &verrs) {
		return err
	}
	for _, e := range verrs {
		switch e.Field() {
		case "Username":
			return fmt.Errorf("username must be 3-32 characters")
		case "Password":
			return fmt.Errorf("password must be at least 6 characters")
		case "Email":
			return fmt.Errorf("a valid email address is required")
		}
	}
	return err
}
