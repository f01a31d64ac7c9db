package health

import "time"

const (
	maxSubmissionDocumentation = 30
	maxSubmissionStructure     = 30
	maxSubmissionActivity      = 40
)

// SubmissionPolicy is the simplified score assigned when a project is first
// ghosted: documentation 30, structure 30 and activity 40, each with half
// credit at the midpoint. Structure ignores the wider manifest set of
// DetailedPolicy: only a primary manifest earns full credit.
//
// The activity points are reported in HealthScore.Freshness and Stability is
// always zero, so its sub-scores are not comparable with DetailedPolicy.
type SubmissionPolicy struct{}

func (SubmissionPolicy) Name() string { return PolicySubmission }

func (SubmissionPolicy) Score(facts RepoFacts, now time.Time) HealthScore {
	documentation := 0
	switch {
	case facts.ReadmeLength > 500:
		documentation = maxSubmissionDocumentation
	case facts.ReadmeLength > 250:
		documentation = maxSubmissionDocumentation / 2
	}

	structure := 0
	switch {
	case facts.HasPrimaryManifest:
		structure = maxSubmissionStructure
	case facts.HasProjectFile:
		structure = maxSubmissionStructure / 2
	}

	activity := 0
	if facts.HasKnownCommit() {
		months := calendarMonthsBetween(facts.LastCommitDate, now)
		switch {
		case months < 6:
			activity = maxSubmissionActivity
		case months < 12:
			activity = maxSubmissionActivity / 2
		default:
			activity = 10
		}
	}

	total := min(documentation+structure+activity, 100)
	return HealthScore{
		Documentation: documentation,
		Structure:     structure,
		Freshness:     activity,
		Total:         total,
		Grade:         GradeFor(total),
		Status:        StatusFor(total, activity),
		Policy:        PolicySubmission,
		ComputedAt:    now,
	}
}

func calendarMonthsBetween(from, to time.Time) int {
	from, to = from.UTC(), to.UTC()
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
}
