package db

import (
	"sort"
	"strings"
	"time"

	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

// FilterProjects applies search, status, ordering and paging. Without
// Ascending the order is: healthiest, newest, most starred, soonest expiry.
func FilterProjects(projects []*models.Project, filter models.ProjectFilter, now time.Time) []*models.Project {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]*models.Project, 0, len(projects))
	for _, p := range projects {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if !matchesStatus(p, filter.Status, now) {
			continue
		}
		out = append(out, p)
	}

	sortField := filter.SortField
	if sortField == "" {
		sortField = models.SortHealth
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := compareProjects(out[i], out[j], sortField)
		if filter.Ascending {
			c = -c
		}
		return c < 0
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []*models.Project{}
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out
}

func matchesSearch(p *models.Project, search string) bool {
	if strings.Contains(strings.ToLower(p.Title), search) ||
		strings.Contains(strings.ToLower(p.Description), search) {
		return true
	}
	for _, lang := range p.RepoInfo.Languages {
		if strings.Contains(strings.ToLower(lang), search) {
			return true
		}
	}
	return false
}

func matchesStatus(p *models.Project, status string, now time.Time) bool {
	switch status {
	case models.FilterExpired:
		return p.IsExpired(now)
	case models.FilterAvailable:
		return !p.IsExpired(now)
	default:
		return true
	}
}

// compareProjects returns a negative number when a sorts before b in the
// default (descending) order.
func compareProjects(a, b *models.Project, field string) int {
	switch field {
	case models.SortAge:
		return compareTime(b.CreatedAt, a.CreatedAt)
	case models.SortStars:
		return b.RepoInfo.Stars - a.RepoInfo.Stars
	case models.SortExpiry:
		return compareTime(a.ExpiryDate, b.ExpiryDate)
	default:
		return b.TotalScore() - a.TotalScore()
	}
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}
