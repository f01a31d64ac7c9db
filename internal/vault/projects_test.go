package vault

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/health"
	"github.com/Kamar-Folarin/ghost-vault/internal/metadata"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

func TestProjectService_Submit(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn(t, "ada@example.com")

	project := env.submit(t, owner, "ghost", "relic", 6)

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "ghost/relic", project.RepoFullName)
	assert.Equal(t, "https://github.com/ghost/relic", project.RepoURL)
	assert.Equal(t, owner.UserID, project.OwnerID)
	assert.Equal(t, owner.User.GhostName, project.OwnerGhostName)
	assert.Equal(t, owner.UserID, project.CreatorID)
	assert.Equal(t, models.ProjectAvailable, project.Status)
	assert.Equal(t, 1, project.Generation)
	assert.Equal(t, time.Date(2025, 12, 15, 12, 0, 0, 0, time.UTC), project.ExpiryDate)
	assert.Equal(t, []string{"Python", "Shell"}, project.RepoInfo.Languages)

	require.NotNil(t, project.HealthScore)
	assert.Equal(t, health.PolicySubmission, project.HealthScore.Policy)
	// README over 500 characters, requirements.txt, commit a month ago.
	assert.Equal(t, 100, project.HealthScore.Total)

	stored, err := env.projects.Get(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, project.Title, stored.Title)
}

func TestProjectService_Submit_Validation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn(t, "ada@example.com")
	ctx := context.Background()

	tests := []struct {
		name string
		req  SubmitRequest
	}{
		{"missing title", SubmitRequest{GithubURL: "https://github.com/a/b", DeadManSwitchMonths: 3}},
		{"missing url", SubmitRequest{Title: "x", DeadManSwitchMonths: 3}},
		{"not github", SubmitRequest{Title: "x", GithubURL: "https://gitlab.com/a/b", DeadManSwitchMonths: 3}},
		{"bad switch", SubmitRequest{Title: "x", GithubURL: "https://github.com/a/b", DeadManSwitchMonths: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.projects.Submit(ctx, owner, tt.req)
			assert.True(t, apperrors.IsInvalidInput(err), "got %v", err)
		})
	}

	_, err := env.projects.Submit(ctx, nil, SubmitRequest{Title: "x", GithubURL: "https://github.com/a/b", DeadManSwitchMonths: 3})
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestProjectService_Submit_RepositoryErrors(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn(t, "ada@example.com")
	ctx := context.Background()

	_, err := env.projects.Submit(ctx, owner, SubmitRequest{
		Title: "missing", GithubURL: "https://github.com/ghost/missing", DeadManSwitchMonths: 3,
	})
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, errors.Is(err, metadata.ErrNotFound))

	env.fetcher.fail("ghost/secret", apperrors.NewInaccessibleError("nope", metadata.ErrInaccessible))
	_, err = env.projects.Submit(ctx, owner, SubmitRequest{
		Title: "secret", GithubURL: "https://github.com/ghost/secret", DeadManSwitchMonths: 3,
	})
	assert.True(t, apperrors.IsInaccessible(err))
}

func TestProjectService_Submit_DuplicateRepository(t *testing.T) {
	env := newTestEnv(t)
	owner := env.signIn(t, "ada@example.com")
	env.submit(t, owner, "ghost", "relic", 3)

	_, err := env.projects.Submit(context.Background(), owner, SubmitRequest{
		Title: "again", GithubURL: "git@github.com:ghost/relic.git", DeadManSwitchMonths: 3,
	})
	assert.True(t, apperrors.IsConflict(err))
}

func TestProjectService_CheckIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "ada@example.com")
	stranger := env.signIn(t, "bob@example.com")
	project := env.submit(t, owner, "ghost", "relic", 3)

	_, err := env.projects.CheckIn(ctx, stranger, project.ID, "hi")
	assert.True(t, apperrors.IsForbidden(err))

	env.clock.Advance(30 * 24 * time.Hour)
	updated, err := env.projects.CheckIn(ctx, owner, project.ID, "still here")
	require.NoError(t, err)
	assert.Equal(t, env.clock.Now().AddDate(0, 3, 0), updated.ExpiryDate)
	assert.Equal(t, env.clock.Now(), updated.LastCheckIn)

	log, err := env.projects.CheckIns(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, "still here", log[0].Note)

	// Past the switch the owner can no longer check in.
	env.clock.Advance(100 * 24 * time.Hour)
	_, err = env.projects.CheckIn(ctx, owner, project.ID, "too late")
	assert.True(t, apperrors.IsConflict(err))
}

func TestProjectService_Haunt(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "ada@example.com")
	haunter := env.signIn(t, "bob@example.com")
	project := env.submit(t, owner, "ghost", "relic", 3)

	_, err := env.projects.Haunt(ctx, haunter, project.ID)
	assert.True(t, apperrors.IsConflict(err), "not expired yet")

	env.clock.Advance(100 * 24 * time.Hour)

	_, err = env.projects.Haunt(ctx, owner, project.ID)
	assert.True(t, apperrors.IsForbidden(err))

	haunted, err := env.projects.Haunt(ctx, haunter, project.ID)
	require.NoError(t, err)
	assert.Equal(t, haunter.UserID, haunted.OwnerID)
	assert.Equal(t, haunter.User.GhostName, haunted.OwnerGhostName)
	assert.Equal(t, models.ProjectHaunted, haunted.Status)
	assert.Equal(t, 2, haunted.Generation)
	assert.Equal(t, env.clock.Now().AddDate(0, 3, 0), haunted.ExpiryDate)
	require.Len(t, haunted.Haunters, 1)
	assert.Equal(t, haunter.UserID, haunted.Haunters[0].UserID)

	// The new owner can check in; the previous one cannot.
	_, err = env.projects.CheckIn(ctx, owner, project.ID, "")
	assert.True(t, apperrors.IsForbidden(err))
	_, err = env.projects.CheckIn(ctx, haunter, project.ID, "")
	assert.NoError(t, err)

	lineage, err := env.projects.Lineage(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, lineage, 2)
	assert.True(t, lineage[0].IsOriginal)
	assert.Equal(t, owner.User.GhostName, lineage[0].GhostName)
	assert.Equal(t, haunter.User.GhostName, lineage[1].GhostName)
	assert.Equal(t, 2, lineage[1].Generation)
}

func TestProjectService_Delete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "ada@example.com")
	stranger := env.signIn(t, "bob@example.com")
	project := env.submit(t, owner, "ghost", "relic", 3)

	assert.True(t, apperrors.IsForbidden(env.projects.Delete(ctx, stranger, project.ID)))
	require.NoError(t, env.projects.Delete(ctx, owner, project.ID))

	_, err := env.projects.Get(ctx, project.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestProjectService_Rescore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "ada@example.com")
	project := env.submit(t, owner, "ghost", "relic", 6)

	raw := healthyRepo("ghost", "relic")
	raw.Stars = 99
	env.fetcher.add(raw)

	rescored, err := env.projects.Rescore(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, health.PolicyDetailed, rescored.HealthScore.Policy)
	assert.Equal(t, 99, rescored.RepoInfo.Stars)
	// 20+15 documentation, 25 structure, 20 freshness, 20 stability.
	assert.Equal(t, 100, rescored.HealthScore.Total)
}

func TestProjectService_ListValidatesFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.projects.List(ctx, models.ProjectFilter{Status: "zombie"})
	assert.True(t, apperrors.IsInvalidInput(err))

	_, err = env.projects.List(ctx, models.ProjectFilter{SortField: "name"})
	assert.True(t, apperrors.IsInvalidInput(err))

	projects, err := env.projects.List(ctx, models.ProjectFilter{Status: models.FilterAll})
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestProjectService_ScoreURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.fetcher.add(healthyRepo("ghost", "relic"))

	report, err := env.projects.ScoreURL(ctx, "https://github.com/ghost/relic", "detailed")
	require.NoError(t, err)
	assert.Equal(t, "ghost/relic", report.RepoFullName)
	assert.Equal(t, health.Calculate(report.Facts, testNow), report.Score)

	_, err = env.projects.ScoreURL(ctx, "https://github.com/ghost/relic", "vibes")
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestProjectService_Stats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.signIn(t, "ada@example.com")
	env.submit(t, owner, "ghost", "one", 3)
	env.submit(t, owner, "ghost", "two", 12)

	env.clock.Advance(120 * 24 * time.Hour)

	stats, err := env.projects.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 1, stats.ExpiredProjects)
	assert.Equal(t, 1, stats.AvailableProjects)
}
