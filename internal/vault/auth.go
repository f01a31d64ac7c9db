package vault

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/ghost-vault/internal/db"
	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

// SignInRequest carries the identity asserted by the sign-in provider
type SignInRequest struct {
	Email       string `json:"email" binding:"required"`
	DisplayName string `json:"display_name"`
	RealName    string `json:"real_name"`
	PhotoURL    string `json:"photo_url"`
}

// NameGenerator produces ghost names for new users
type NameGenerator interface {
	Generate() string
}

type AuthService struct {
	store  db.Store
	names  NameGenerator
	ttl    time.Duration
	logger *logrus.Logger
	now    Clock
}

func NewAuthService(store db.Store, names NameGenerator, ttl time.Duration, logger *logrus.Logger, clock Clock) *AuthService {
	if clock == nil {
		clock = systemClock
	}
	return &AuthService{store: store, names: names, ttl: ttl, logger: logger, now: clock}
}

// SignIn creates the user on first sign-in and issues a new session
func (s *AuthService) SignIn(ctx context.Context, req SignInRequest) (*models.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("a valid email is required", nil)
	}

	now := s.now()
	user, err := s.store.GetUserByEmail(ctx, email)
	if apperrors.IsNotFound(err) {
		displayName := strings.TrimSpace(req.DisplayName)
		if displayName == "" {
			displayName = strings.SplitN(email, "@", 2)[0]
		}
		user = &models.User{
			ID:          uuid.NewString(),
			Email:       email,
			DisplayName: displayName,
			RealName:    strings.TrimSpace(req.RealName),
			PhotoURL:    strings.TrimSpace(req.PhotoURL),
			GhostName:   s.names.Generate(),
			CreatedAt:   now,
		}
		if err := s.store.CreateUser(ctx, user); err != nil {
			return nil, err
		}
		s.logger.WithFields(logrus.Fields{
			"user_id":    user.ID,
			"ghost_name": user.GhostName,
		}).Info("New ghost registered")
	} else if err != nil {
		return nil, err
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
		User:      user,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Resolve returns the live session for token
func (s *AuthService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorizedError("missing session token", nil)
	}

	session, err := s.store.GetSession(ctx, token)
	if apperrors.IsNotFound(err) {
		return nil, apperrors.NewUnauthorizedError("invalid session token", nil)
	}
	if err != nil {
		return nil, err
	}

	if session.Expired(s.now()) {
		if err := s.store.DeleteSession(ctx, token); err != nil && !apperrors.IsNotFound(err) {
			s.logger.WithError(err).Warn("Failed to remove expired session")
		}
		return nil, apperrors.NewUnauthorizedError("session expired", nil)
	}

	return session, nil
}

// SignOut ends the session. Unknown tokens are ignored.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	err := s.store.DeleteSession(ctx, token)
	if err != nil && !apperrors.IsNotFound(err) {
		return err
	}
	return nil
}

// PurgeExpired removes sessions that have expired
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.DeleteExpiredSessions(ctx, s.now())
}
