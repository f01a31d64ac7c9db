package metadata

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/ghost-vault/internal/health"
)

func TestNormalize_FullRepository(t *testing.T) {
	raw := &RawRepository{
		Name:           "study-buddy",
		HasReadme:      true,
		ReadmeText:     "# Study Buddy\n\nA  tool\tfor   students.\n",
		RootEntries:    []string{"README.md", "package.json", "src", "Tests", ".github"},
		CIEntries:      []string{"ISSUE_TEMPLATE", "workflows"},
		LastCommitDate: "2025-03-01T10:00:00Z",
		Access:         AccessAvailable,
	}

	facts, err := Normalize(raw)
	require.NoError(t, err)

	assert.True(t, facts.HasReadme)
	assert.Equal(t, 7, facts.ReadmeWordCount)
	assert.Equal(t, len(raw.ReadmeText), facts.ReadmeLength)
	assert.True(t, facts.HasDependencyFile)
	assert.True(t, facts.HasTestsFolder)
	assert.True(t, facts.HasGithubWorkflows)
	assert.Equal(t, 5, facts.FileCount)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), facts.LastCommitDate.UTC())
}

func TestNormalize_DependencyManifests(t *testing.T) {
	for _, manifest := range []string{"package.json", "requirements.txt", "pom.xml", "go.mod", "Cargo.toml"} {
		facts, err := Normalize(&RawRepository{RootEntries: []string{manifest}})
		require.NoError(t, err)
		assert.True(t, facts.HasDependencyFile, manifest)
	}

	facts, err := Normalize(&RawRepository{RootEntries: []string{"setup.py", "main.py"}})
	require.NoError(t, err)
	assert.False(t, facts.HasDependencyFile)
	assert.True(t, facts.HasProjectFile)

	facts, err = Normalize(&RawRepository{RootEntries: []string{"Package.JSON"}})
	require.NoError(t, err)
	assert.False(t, facts.HasDependencyFile, "manifest names are matched exactly")
}

func TestNormalize_SubmissionStructure(t *testing.T) {
	tests := []struct {
		entry string
		want  int
	}{
		{"package.json", 30},
		{"requirements.txt", 30},
		{"setup.py", 15},
		{"pom.xml", 15},
		{"build.gradle", 15},
		{"Cargo.toml", 15},
		{"Gemfile", 15},
		{"composer.json", 15},
		{"go.mod", 0},
		{"pyproject.toml", 0},
		{"main.py", 0},
	}

	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			facts, err := Normalize(&RawRepository{RootEntries: []string{tt.entry}, Access: AccessAvailable})
			require.NoError(t, err)
			assert.Equal(t, tt.want, health.SubmissionPolicy{}.Score(facts, now).Structure)
		})
	}
}

func TestNormalize_SubmissionPartialCredit(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	raw := &RawRepository{
		HasReadme:      true,
		ReadmeText:     strings.Repeat("ghost ", 60),
		RootEntries:    []string{"README.md", "pom.xml", "src"},
		LastCommitDate: "2024-10-01T00:00:00Z",
		Access:         AccessAvailable,
	}

	facts, err := Normalize(raw)
	require.NoError(t, err)
	score := health.SubmissionPolicy{}.Score(facts, now)

	assert.Equal(t, 15, score.Documentation)
	assert.Equal(t, 15, score.Structure)
	assert.Equal(t, 20, score.Freshness)
	assert.Equal(t, 50, score.Total)
	assert.Equal(t, 25, health.DetailedPolicy{}.Score(facts, now).Structure)
}

func TestNormalize_TestsFolder(t *testing.T) {
	for _, dir := range []string{"tests", "test", "__tests__", "TESTS", "Test"} {
		facts, err := Normalize(&RawRepository{RootEntries: []string{dir}})
		require.NoError(t, err)
		assert.True(t, facts.HasTestsFolder, dir)
	}

	facts, err := Normalize(&RawRepository{RootEntries: []string{"testing", "spec"}})
	require.NoError(t, err)
	assert.False(t, facts.HasTestsFolder)
}

func TestNormalize_WorkflowsNeedBothLevels(t *testing.T) {
	tests := []struct {
		name string
		raw  RawRepository
		want bool
	}{
		{"ci dir with workflows", RawRepository{RootEntries: []string{".github"}, CIEntries: []string{"workflows"}}, true},
		{"ci dir without workflows", RawRepository{RootEntries: []string{".github"}, CIEntries: []string{"CODEOWNERS"}}, false},
		{"ci dir not listed", RawRepository{RootEntries: []string{".github"}}, false},
		{"workflows without ci dir", RawRepository{RootEntries: []string{"src"}, CIEntries: []string{"workflows"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts, err := Normalize(&tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, facts.HasGithubWorkflows)
		})
	}
}

func TestNormalize_NoReadmeHasZeroWords(t *testing.T) {
	facts, err := Normalize(&RawRepository{HasReadme: false, ReadmeText: "leftover text"})
	require.NoError(t, err)
	assert.Equal(t, 0, facts.ReadmeWordCount)
	assert.Equal(t, 0, facts.ReadmeLength)
}

func TestNormalize_UnknownCommitIsEpoch(t *testing.T) {
	facts, err := Normalize(&RawRepository{})
	require.NoError(t, err)
	assert.True(t, facts.LastCommitDate.Equal(health.Epoch))

	facts, err = Normalize(&RawRepository{LastCommitDate: "yesterday"})
	require.NoError(t, err)
	assert.True(t, facts.LastCommitDate.Equal(health.Epoch))
}

func TestNormalize_AccessErrors(t *testing.T) {
	_, err := Normalize(&RawRepository{Access: AccessNotFound})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = Normalize(&RawRepository{Access: AccessInaccessible})
	assert.True(t, errors.Is(err, ErrInaccessible))

	_, err = Normalize(nil)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t "))
	assert.Equal(t, 3, WordCount("  one two\n\nthree  "))
}

func TestDecodeReadme(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("hello ghost world"))
	wrapped := encoded[:8] + "\n" + encoded[8:] + "\n"

	assert.Equal(t, "hello ghost world", DecodeReadme(wrapped))
	assert.Equal(t, "", DecodeReadme("%%%not-base64%%%"))
}
