package health

import (
	"fmt"
	"time"
)

const (
	// PolicyDetailed names the 35/25/20/20 scoring policy.
	PolicyDetailed = "detailed"
	// PolicySubmission names the 30/30/40 scoring policy used when a project is submitted.
	PolicySubmission = "submission"
)

const (
	MaxDocumentation = 35
	MaxStructure     = 25
	MaxFreshness     = 20
	MaxStability     = 20

	monthLength = 30 * 24 * time.Hour
)

// Policy turns RepoFacts into a HealthScore. Implementations must be pure.
type Policy interface {
	Name() string
	Score(facts RepoFacts, now time.Time) HealthScore
}

// PolicyByName returns the named policy.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case PolicyDetailed, "":
		return DetailedPolicy{}, nil
	case PolicySubmission:
		return SubmissionPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown scoring policy %q", name)
	}
}

// Calculate scores facts with the detailed policy.
func Calculate(facts RepoFacts, now time.Time) HealthScore {
	return DetailedPolicy{}.Score(facts, now)
}

// DetailedPolicy weights documentation 35, structure 25, freshness 20 and stability 20.
type DetailedPolicy struct{}

func (DetailedPolicy) Name() string { return PolicyDetailed }

func (DetailedPolicy) Score(facts RepoFacts, now time.Time) HealthScore {
	documentation := scoreDocumentation(facts)
	structure := 0
	if facts.HasDependencyFile {
		structure = MaxStructure
	}
	freshness := scoreFreshness(MonthsSince(facts.LastCommitDate, now))
	stability := 0
	if facts.HasTestsFolder || facts.HasGithubWorkflows {
		stability = MaxStability
	}

	total := documentation + structure + freshness + stability
	return HealthScore{
		Documentation: documentation,
		Structure:     structure,
		Freshness:     freshness,
		Stability:     stability,
		Total:         total,
		Grade:         GradeFor(total),
		Status:        StatusFor(total, freshness),
		Policy:        PolicyDetailed,
		ComputedAt:    now,
	}
}

// Tiers are exclusive; the first matching one wins.
func scoreDocumentation(facts RepoFacts) int {
	if !facts.HasReadme {
		return 0
	}
	points := 20
	switch {
	case facts.ReadmeWordCount > 500:
		points += 15
	case facts.ReadmeWordCount > 200:
		points += 8
	case facts.ReadmeWordCount > 50:
		points += 3
	}
	return points
}

func scoreFreshness(monthsAgo float64) int {
	switch {
	case monthsAgo < 6:
		return 20
	case monthsAgo < 12:
		return 10
	default:
		return 0
	}
}

// MonthsSince returns the elapsed time between t and now in 30-day months.
func MonthsSince(t, now time.Time) float64 {
	if t.IsZero() {
		t = Epoch
	}
	return float64(now.Sub(t)) / float64(monthLength)
}

// GradeFor maps a total score to its letter grade.
func GradeFor(total int) Grade {
	switch {
	case total >= 90:
		return GradeS
	case total >= 75:
		return GradeA
	case total >= 60:
		return GradeB
	case total >= 45:
		return GradeC
	case total >= 30:
		return GradeD
	default:
		return GradeF
	}
}

// StatusFor maps a total score to its status label. Below 40 a stale
// repository (no freshness points) is an Ancient Relic rather than Ghosted.
func StatusFor(total, freshness int) Status {
	switch {
	case total >= 80:
		return StatusThriving
	case total >= 60:
		return StatusStable
	case total >= 40:
		return StatusFading
	case freshness == 0:
		return StatusAncientRelic
	default:
		return StatusGhosted
	}
}

// Color returns the CSS colour used to paint a health bar for score.
func Color(score int) string {
	switch {
	case score >= 80:
		return "hsl(120, 100%, 50%)"
	case score >= 60:
		return "hsl(90, 100%, 45%)"
	case score >= 40:
		return "hsl(45, 100%, 50%)"
	case score >= 20:
		return "hsl(20, 100%, 50%)"
	default:
		return "hsl(0, 100%, 50%)"
	}
}
