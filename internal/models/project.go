package models

import (
	"time"

	"github.com/Kamar-Folarin/ghost-vault/internal/health"
)

type ProjectStatus string

const (
	ProjectAvailable ProjectStatus = "available"
	ProjectHaunted   ProjectStatus = "haunted"
	ProjectExpired   ProjectStatus = "expired"
)

// DeadManSwitchOptions are the accepted check-in windows in months.
var DeadManSwitchOptions = []int{3, 6, 12}

// ValidDeadManSwitch reports whether months is one of DeadManSwitchOptions.
func ValidDeadManSwitch(months int) bool {
	for _, m := range DeadManSwitchOptions {
		if m == months {
			return true
		}
	}
	return false
}

type Project struct {
	BaseModel
	Title               string              `json:"title"`
	Description         string              `json:"description"`
	RepoURL             string              `json:"repo_url"`
	RepoFullName        string              `json:"repo_full_name"`
	GhostLog            string              `json:"ghost_log"`
	OwnerID             string              `json:"owner_id"`
	OwnerGhostName      string              `json:"owner_ghost_name"`
	CreatorID           string              `json:"creator_id"`
	CreatorGhostName    string              `json:"creator_ghost_name"`
	HealthScore         *health.HealthScore `json:"health_score,omitempty"`
	Status              ProjectStatus       `json:"status"`
	ParentID            string              `json:"parent_id,omitempty"`
	Generation          int                 `json:"generation"`
	DeadManSwitchMonths int                 `json:"dead_man_switch_months"`
	ExpiryDate          time.Time           `json:"expiry_date"`
	LastCheckIn         time.Time           `json:"last_check_in"`
	RepoInfo            RepoInfo            `json:"repo_info"`
	Haunters            []Haunter           `json:"haunters"`
}

// RepoInfo is the repository summary captured at submission time
type RepoInfo struct {
	Owner       string   `json:"owner"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	OpenIssues  int      `json:"open_issues"`
	Language    string   `json:"language"`
	Languages   []string `json:"languages"`
}

type Haunter struct {
	GhostName string    `json:"ghost_name"`
	UserID    string    `json:"user_id"`
	HauntedAt time.Time `json:"haunted_at"`
}

// IsExpired reports whether the dead man's switch has fired at now.
func (p *Project) IsExpired(now time.Time) bool {
	if p.Status == ProjectExpired {
		return true
	}
	return !p.ExpiryDate.IsZero() && !now.Before(p.ExpiryDate)
}

// TotalScore returns the snapshot total, or zero when the project was never scored.
func (p *Project) TotalScore() int {
	if p.HealthScore == nil {
		return 0
	}
	return p.HealthScore.Total
}

// ProjectFilter narrows and orders a project listing
type ProjectFilter struct {
	Search    string
	Status    string
	SortField string
	Ascending bool
	Limit     int
	Offset    int
}

const (
	FilterAll       = "all"
	FilterAvailable = "available"
	FilterExpired   = "expired"

	SortHealth = "health"
	SortAge    = "age"
	SortStars  = "stars"
	SortExpiry = "expiry"
)

// CheckIn is one entry of a project's ghost log
type CheckIn struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
