package models

import "time"

type PlatformStats struct {
	TotalProjects      int     `json:"total_projects"`
	ExpiredProjects    int     `json:"expired_projects"`
	AvailableProjects  int     `json:"available_projects"`
	HauntedProjects    int     `json:"haunted_projects"`
	TotalHaunters      int     `json:"total_haunters"`
	AverageHealthScore float64 `json:"average_health_score"`
}

// SweepStatus describes the most recent expiry sweep
type SweepStatus struct {
	StartTime time.Time `json:"start_time"`
	LastRunAt time.Time `json:"last_run_at"`
	Expired   int       `json:"expired"`
	Rescored  int       `json:"rescored"`
	Errors    []string  `json:"errors,omitempty"`
	IsRunning bool      `json:"is_running"`
}
