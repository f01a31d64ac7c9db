package db

import (
	"context"
	"math"
	"time"

	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

// GetStats summarizes the vault at now
func (s *SQLStore) GetStats(ctx context.Context, now time.Time) (*models.PlatformStats, error) {
	projects, err := s.ListProjects(ctx, models.ProjectFilter{}, now)
	if err != nil {
		return nil, err
	}
	return ComputeStats(projects, now), nil
}

// ComputeStats derives platform stats from a project listing
func ComputeStats(projects []*models.Project, now time.Time) *models.PlatformStats {
	stats := &models.PlatformStats{TotalProjects: len(projects)}

	scored, sum := 0, 0
	for _, p := range projects {
		switch {
		case p.IsExpired(now):
			stats.ExpiredProjects++
		case p.Status == models.ProjectHaunted:
			stats.HauntedProjects++
			stats.AvailableProjects++
		default:
			stats.AvailableProjects++
		}
		stats.TotalHaunters += len(p.Haunters)

		if p.HealthScore != nil {
			scored++
			sum += p.HealthScore.Total
		}
	}

	if scored > 0 {
		stats.AverageHealthScore = math.Round(float64(sum)/float64(scored)*10) / 10
	}
	return stats
}
