// Package metadata turns the raw description of a repository, as gathered from
// the hosting API, into the health.RepoFacts consumed by the scorer.
package metadata

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/Kamar-Folarin/ghost-vault/internal/health"
)

var (
	// ErrNotFound means the repository does not exist (or is private and
	// reported as missing by the host).
	ErrNotFound = errors.New("repository not found or is private")
	// ErrInaccessible means the host refused access to the repository.
	ErrInaccessible = errors.New("repository is inaccessible")
)

// Access describes whether the upstream repository could be read.
type Access string

const (
	AccessAvailable    Access = "available"
	AccessNotFound     Access = "not_found"
	AccessInaccessible Access = "inaccessible"
)

// DependencyManifests are the root files that count as a dependency manifest.
// The first four are the baseline set; the rest extend it to other ecosystems.
var DependencyManifests = []string{
	"package.json",
	"requirements.txt",
	"pom.xml",
	"go.mod",
	"Cargo.toml",
	"pyproject.toml",
	"Gemfile",
	"composer.json",
	"build.gradle",
}

// PrimaryManifests earn full structure credit under the submission policy.
var PrimaryManifests = []string{"package.json", "requirements.txt"}

// ProjectFiles earn half structure credit under the submission policy.
var ProjectFiles = []string{
	"setup.py",
	"pom.xml",
	"build.gradle",
	"Cargo.toml",
	"Gemfile",
	"composer.json",
}

var testDirs = []string{"tests", "test", "__tests__"}

const (
	ciDir        = ".github"
	workflowsDir = "workflows"
)

// RawRepository is everything fetched from the hosting API for one repository.
type RawRepository struct {
	Owner             string         `json:"owner"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Language          string         `json:"language"`
	Languages         map[string]int `json:"languages"`
	LastCommitDate    string         `json:"last_commit_date"`
	LastCommitMessage string         `json:"last_commit_message"`
	HasReadme         bool           `json:"has_readme"`
	ReadmeText        string         `json:"readme_content"`
	RootEntries       []string       `json:"files"`
	// CIEntries lists the .github directory; nil when it was not fetched.
	CIEntries  []string `json:"ci_entries,omitempty"`
	Stars      int      `json:"stars"`
	Forks      int      `json:"forks"`
	OpenIssues int      `json:"open_issues"`
	Access     Access   `json:"access"`
}

// HasRootEntry reports whether name is present at the repository root.
func (r *RawRepository) HasRootEntry(name string) bool {
	return containsExact(r.RootEntries, name)
}

// NeedsCIListing reports whether the .github directory exists and its listing
// is still required to decide HasGithubWorkflows.
func (r *RawRepository) NeedsCIListing() bool {
	return r.HasRootEntry(ciDir)
}

// Normalize derives RepoFacts from raw. Unreadable repositories yield
// ErrNotFound or ErrInaccessible, never degraded facts.
func Normalize(raw *RawRepository) (health.RepoFacts, error) {
	if raw == nil {
		return health.RepoFacts{}, ErrNotFound
	}
	switch raw.Access {
	case AccessNotFound:
		return health.RepoFacts{}, ErrNotFound
	case AccessInaccessible:
		return health.RepoFacts{}, ErrInaccessible
	}

	facts := health.RepoFacts{
		HasReadme:          raw.HasReadme,
		HasDependencyFile:  containsAny(raw.RootEntries, DependencyManifests),
		LastCommitDate:     ParseCommitDate(raw.LastCommitDate),
		HasTestsFolder:     hasTestsFolder(raw.RootEntries),
		HasGithubWorkflows: raw.HasRootEntry(ciDir) && containsExact(raw.CIEntries, workflowsDir),
		FileCount:          len(raw.RootEntries),
		HasPrimaryManifest: containsAny(raw.RootEntries, PrimaryManifests),
		HasProjectFile:     containsAny(raw.RootEntries, ProjectFiles),
	}
	if raw.HasReadme {
		facts.ReadmeWordCount = WordCount(raw.ReadmeText)
		facts.ReadmeLength = len(raw.ReadmeText)
	}
	return facts, nil
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// DecodeReadme decodes the base64 README payload returned by the contents API.
// Undecodable content yields an empty string.
func DecodeReadme(encoded string) string {
	cleaned := strings.NewReplacer("\n", "", "\r", "").Replace(encoded)
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return ""
	}
	return string(data)
}

// ParseCommitDate parses an RFC3339 commit timestamp, falling back to the epoch.
func ParseCommitDate(value string) time.Time {
	if value == "" {
		return health.Epoch
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return health.Epoch
	}
	return t
}

func hasTestsFolder(entries []string) bool {
	for _, e := range entries {
		for _, dir := range testDirs {
			if strings.EqualFold(e, dir) {
				return true
			}
		}
	}
	return false
}

func containsAny(entries, names []string) bool {
	for _, n := range names {
		if containsExact(entries, n) {
			return true
		}
	}
	return false
}

func containsExact(entries []string, name string) bool {
	for _, e := range entries {
		if e == name {
			return true
		}
	}
	return false
}
