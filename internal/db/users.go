package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

func (s *SQLStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.exec(ctx, `
		INSERT INTO users (id, email, display_name, real_name, photo_url, ghost_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.DisplayName, user.RealName, user.PhotoURL, user.GhostName,
		timeValue(user.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *SQLStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", email)
}

func (s *SQLStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	var (
		u         models.User
		createdAt nullTime
	)

	err := s.queryRow(ctx, `
		SELECT id, email, display_name, real_name, photo_url, ghost_name, created_at
		FROM users WHERE `+column+` = ?`, value).
		Scan(&u.ID, &u.Email, &u.DisplayName, &u.RealName, &u.PhotoURL, &u.GhostName, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewResourceNotFoundError("user", value)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	u.CreatedAt = createdAt.Time
	return &u, nil
}

func (s *SQLStore) CreateSession(ctx context.Context, session *models.Session) error {
	_, err := s.exec(ctx, `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		session.Token, session.UserID, timeValue(session.CreatedAt), timeValue(session.ExpiresAt))
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a session together with its user
func (s *SQLStore) GetSession(ctx context.Context, token string) (*models.Session, error) {
	var (
		session              models.Session
		user                 models.User
		createdAt, expiresAt nullTime
		userCreatedAt        nullTime
	)

	err := s.queryRow(ctx, `
		SELECT s.token, s.user_id, s.created_at, s.expires_at,
			u.id, u.email, u.display_name, u.real_name, u.photo_url, u.ghost_name, u.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = ?`, token).
		Scan(&session.Token, &session.UserID, &createdAt, &expiresAt,
			&user.ID, &user.Email, &user.DisplayName, &user.RealName, &user.PhotoURL, &user.GhostName, &userCreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewResourceNotFoundError("session", "")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session.CreatedAt = createdAt.Time
	session.ExpiresAt = expiresAt.Time
	user.CreatedAt = userCreatedAt.Time
	session.User = &user
	return &session, nil
}

func (s *SQLStore) DeleteSession(ctx context.Context, token string) error {
	result, err := s.exec(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return requireAffected(result, "session", "")
}

// DeleteExpiredSessions removes sessions that expired before now
func (s *SQLStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.exec(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return result.RowsAffected()
}
