package api

import (
	"time"

	_ "github.com/Kamar-Folarin/ghost-vault/docs"
	"github.com/Kamar-Folarin/ghost-vault/internal/health"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
	"github.com/Kamar-Folarin/ghost-vault/internal/vault"
)

// ProjectView is a project with its countdown and age rendered for display
// @Description A ghosted project as shown in the vault
// @swagger:model ProjectView
type ProjectView struct {
	*models.Project
	// Dead Man's Switch countdown
	TimeUntilExpiry string `json:"time_until_expiry" example:"5 months"`
	// How long ago the project was ghosted
	GhostAge string `json:"ghost_age" example:"3 months old"`
	// CSS colour of the health bar
	HealthColor string `json:"health_color" example:"hsl(120, 100%, 50%)"`
	// Whether the switch has fired and the project can be haunted
	IsExpired bool `json:"is_expired" example:"false"`
}

func newProjectView(p *models.Project, now time.Time) ProjectView {
	return ProjectView{
		Project:         p,
		TimeUntilExpiry: health.TimeUntilExpiry(p.ExpiryDate, now),
		GhostAge:        health.AgeSince(p.CreatedAt, now),
		HealthColor:     health.Color(p.TotalScore()),
		IsExpired:       p.IsExpired(now),
	}
}

// ProjectListResponse represents a page of projects
// @Description A filtered and sorted listing of projects
// @swagger:model ProjectListResponse
type ProjectListResponse struct {
	Projects []ProjectView `json:"projects"`
	// Number of projects in this page
	Count int `json:"count" example:"12"`
}

// FeedEvent is the payload of a "projects" server-sent event
// @swagger:model FeedEvent
type FeedEvent struct {
	// Fingerprint of the listing
	Version  string        `json:"version" example:"9f86d081884c7d65"`
	TakenAt  time.Time     `json:"taken_at" example:"2025-06-15T00:00:00Z"`
	Projects []ProjectView `json:"projects"`
}

// SessionResponse is returned on sign in
// @Description A bearer session token and the signed-in user
// @swagger:model SessionResponse
type SessionResponse struct {
	// Bearer token for the Authorization header
	Token     string       `json:"token" example:"7b0e5c1e-8a43-4a5f-9c1e-2f1f3c9d8e11"`
	ExpiresAt time.Time    `json:"expires_at" example:"2025-06-22T00:00:00Z"`
	User      *models.User `json:"user"`
}

// CheckInRequest is the optional body of a check-in
// @swagger:model CheckInRequest
type CheckInRequest struct {
	Note string `json:"note" example:"Still alive, fixing the build"`
}

// ScoreRequest asks for a health preview of a repository
// @swagger:model ScoreRequest
type ScoreRequest struct {
	// GitHub repository URL
	URL string `json:"url" binding:"required" example:"https://github.com/owner/repo"`
	// Scoring policy, detailed or submission
	Policy string `json:"policy" example:"detailed"`
}

// ScoreResponse is a health preview
// @Description Facts gathered for a repository and the resulting score
// @swagger:model ScoreResponse
type ScoreResponse struct {
	vault.ScoreReport
	HealthColor string `json:"health_color" example:"hsl(90, 100%, 45%)"`
}

// ErrorResponse represents an API error
// @Description Error response from the API
// @swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// @example Failed to process request
	Error string `json:"error" example:"Failed to process request"`
}
