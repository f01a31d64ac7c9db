package models

import "time"

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	RealName    string    `json:"real_name,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	GhostName   string    `json:"ghost_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Session is an authenticated sign-in. It travels with the request; there is
// no process-wide current user.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	User *User `json:"user,omitempty"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
