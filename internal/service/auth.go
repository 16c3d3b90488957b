// Package service provides the business logic between the HTTP handlers and
// the rental API gateway: authentication with redirect continuity, catalogue
// browsing, and the reservation wizard lifecycle.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/carrentapp/carrent/internal/models"
	"github.com/carrentapp/carrent/internal/session"
)

// AuthGateway defines the authentication calls required from the rental API.
type AuthGateway interface {
	// SignIn exchanges credentials for the user's identity.
	SignIn(ctx context.Context, req models.SignInRequest) (*models.User, error)
	// SignUp registers a new account and returns the created identity.
	SignUp(ctx context.Context, req models.SignUpRequest) (*models.User, error)
}

// AuthService signs users in and out, delegating credential checks to the
// backend and session continuity to the bridge.
type AuthService struct {
	gw     AuthGateway
	bridge *session.Bridge
	log    *zap.Logger
}

// NewAuthService constructs an AuthService.
func NewAuthService(gw AuthGateway, bridge *session.Bridge, log *zap.Logger) *AuthService {
	return &AuthService{gw: gw, bridge: bridge, log: log}
}

// SignIn authenticates against the backend, persists the session, applies
// the "stay signed in" preference and returns the destination to navigate
// to: a stashed pending redirect if one exists, the role default otherwise.
func (s *AuthService) SignIn(ctx context.Context, sid string, req models.SignInRequest, remember bool) (string, error) {
	user, err := s.gw.SignIn(ctx, req)
	if err != nil {
		return "", err
	}

	s.bridge.RememberEmail(sid, req.Email, remember)
	dest := s.bridge.AuthenticationSucceeded(sid, *user)
	s.log.Info("user signed in",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.String("destination", dest))
	return dest, nil
}

// SignUp registers the account and signs it in, with the same redirect
// continuity as SignIn.
func (s *AuthService) SignUp(ctx context.Context, sid string, req models.SignUpRequest) (string, error) {
	user, err := s.gw.SignUp(ctx, req)
	if err != nil {
		return "", err
	}

	dest := s.bridge.AuthenticationSucceeded(sid, *user)
	s.log.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)))
	return dest, nil
}

// SignOut drops the session's identity.
func (s *AuthService) SignOut(sid string) {
	s.bridge.SignOut(sid)
}
