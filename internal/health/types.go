// Package health computes the vitality score of a ghosted project from a small
// set of repository facts, and renders the countdown/age labels shown next to it.
//
// Everything in this package is pure: callers pass the current time explicitly
// and nothing here performs I/O.
package health

import "time"

// Epoch is the commit date assumed when the last commit is unknown. It forces
// the maximum staleness.
var Epoch = time.Unix(0, 0).UTC()

// RepoFacts is the normalized description of a repository consumed by a Policy.
type RepoFacts struct {
	HasReadme          bool      `json:"has_readme"`
	ReadmeWordCount    int       `json:"readme_word_count"`
	HasDependencyFile  bool      `json:"has_dependency_file"`
	LastCommitDate     time.Time `json:"last_commit_date"`
	HasTestsFolder     bool      `json:"has_tests_folder"`
	HasGithubWorkflows bool      `json:"has_github_workflows"`
	FileCount          int       `json:"file_count"`

	// Only the submission policy reads these.
	ReadmeLength       int  `json:"readme_length"`
	HasPrimaryManifest bool `json:"has_primary_manifest"`
	HasProjectFile     bool `json:"has_project_file"`
}

// HasKnownCommit reports whether LastCommitDate carries a real commit date.
func (f RepoFacts) HasKnownCommit() bool {
	return !f.LastCommitDate.IsZero() && !f.LastCommitDate.Equal(Epoch)
}

// Grade is the letter grade derived from a total score.
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Status is the label derived from the total score and freshness.
type Status string

const (
	StatusThriving     Status = "Thriving"
	StatusStable       Status = "Stable"
	StatusFading       Status = "Fading"
	StatusGhosted      Status = "Ghosted"
	StatusAncientRelic Status = "Ancient Relic"
)

// HealthScore is an immutable snapshot of a scoring run.
type HealthScore struct {
	Documentation int       `json:"documentation"`
	Structure     int       `json:"structure"`
	Freshness     int       `json:"freshness"`
	Stability     int       `json:"stability"`
	Total         int       `json:"total"`
	Grade         Grade     `json:"grade"`
	Status        Status    `json:"status"`
	Policy        string    `json:"policy"`
	ComputedAt    time.Time `json:"computed_at"`
}
