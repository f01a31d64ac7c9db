package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/ghost-vault/internal/health"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	DisableColor()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestHealthBar(t *testing.T) {
	DisableColor()

	tests := []struct {
		score int
		want  string
	}{
		{score: 0, want: "░░░░░░░░░░"},
		{score: 55, want: "█████░░░░░"},
		{score: 100, want: "██████████"},
		{score: 140, want: "██████████"},
		{score: -5, want: "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HealthBar(tt.score, 10), "score %d", tt.score)
	}
}

func TestMessages(t *testing.T) {
	ui, out, errOut := newTestUI()

	ui.Info("checking %s", "ghost/relic")
	ui.Success("done")
	ui.Warning("slow")
	ui.Error("failed")

	assert.Contains(t, out.String(), "checking ghost/relic")
	assert.Contains(t, out.String(), "done")
	assert.Contains(t, errOut.String(), "slow")
	assert.Contains(t, errOut.String(), "failed")
}

func TestScore(t *testing.T) {
	ui, out, _ := newTestUI()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	facts := health.RepoFacts{
		HasReadme:         true,
		ReadmeWordCount:   320,
		HasDependencyFile: true,
		LastCommitDate:    now.AddDate(0, -2, 0),
		HasTestsFolder:    true,
		FileCount:         12,
	}
	score := health.Calculate(facts, now)

	ui.Score("ghost/relic", facts, score, now)

	text := out.String()
	assert.Contains(t, text, "ghost/relic")
	assert.Contains(t, text, "93/100")
	assert.Contains(t, text, "Freshness")
	assert.Contains(t, text, "Stability")
	assert.Contains(t, text, "2025-04-15")
	assert.Contains(t, text, "detailed")
}

func TestScoreSubmissionCategories(t *testing.T) {
	ui, out, _ := newTestUI()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	ui.Score("ghost/relic", health.RepoFacts{}, health.SubmissionPolicy{}.Score(health.RepoFacts{}, now), now)

	text := out.String()
	assert.Contains(t, text, "Activity")
	assert.NotContains(t, text, "Stability")
	assert.Contains(t, text, "unknown")
}

func TestProjects(t *testing.T) {
	ui, out, _ := newTestUI()
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	projects := []*models.Project{
		{
			RepoFullName:   "ghost/relic",
			OwnerGhostName: "Misty-Scholar-7",
			Status:         models.ProjectAvailable,
			ExpiryDate:     now.AddDate(0, 0, 10),
			HealthScore:    &health.HealthScore{Total: 70, Grade: health.GradeB},
		},
		{
			RepoFullName: "ghost/crypt",
			Status:       models.ProjectAvailable,
			ExpiryDate:   now.AddDate(0, 0, -1),
		},
	}

	ui.Projects(projects, now)

	var relic, crypt string
	for _, line := range strings.Split(out.String(), "\n") {
		switch {
		case strings.Contains(line, "ghost/relic"):
			relic = line
		case strings.Contains(line, "ghost/crypt"):
			crypt = line
		}
	}
	assert.Contains(t, relic, "Misty-Scholar-7")
	assert.Contains(t, relic, "available")
	assert.Contains(t, relic, "70")
	assert.Contains(t, crypt, "expired")
	assert.Contains(t, crypt, "EXPIRED")
}

func TestJSON(t *testing.T) {
	ui, out, _ := newTestUI()

	require.NoError(t, ui.JSON(map[string]int{"total": 42}))

	assert.Equal(t, "{\n  \"total\": 42\n}\n", out.String())
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
