package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
	"github.com/Kamar-Folarin/ghost-vault/internal/output"
	"github.com/Kamar-Folarin/ghost-vault/internal/vault"
)

type fakeAuth struct {
	signedIn []string
}

func (f *fakeAuth) SignIn(ctx context.Context, req vault.SignInRequest) (*models.Session, error) {
	f.signedIn = append(f.signedIn, req.Email)
	return &models.Session{Token: "token-" + req.Email, UserID: req.Email}, nil
}

type fakeSubmitter struct {
	existing  map[string]bool
	submitted []vault.SubmitRequest
	owners    []string
}

func (f *fakeSubmitter) Submit(ctx context.Context, session *models.Session, req vault.SubmitRequest) (*models.Project, error) {
	if f.existing[req.GithubURL] {
		return nil, apperrors.NewConflictError("already in the vault", nil)
	}
	f.submitted = append(f.submitted, req)
	f.owners = append(f.owners, session.UserID)
	return &models.Project{Title: req.Title}, nil
}

func quietUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	output.DisableColor()
	out := &bytes.Buffer{}
	previous := ui
	ui = &output.UI{Out: out, ErrOut: out}
	t.Cleanup(func() { ui = previous })
	return out
}

func TestLoadSeed(t *testing.T) {
	seed, err := LoadSeed(filepath.Join("testdata", "seed.yaml"))
	require.NoError(t, err)

	require.Len(t, seed.Users, 2)
	require.Len(t, seed.Projects, 2)
	assert.Equal(t, "Bea Shee", seed.Users[1].RealName)
	assert.Equal(t, 3, seed.Projects[0].DeadManSwitchMonths)
	assert.Equal(t, defaultSwitchMonths, seed.Projects[1].DeadManSwitchMonths)
}

func TestLoadSeedValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown owner",
			content: "users:\n  - email: a@example.com\nprojects:\n  - owner: b@example.com\n    title: x\n    github_url: https://github.com/a/b\n",
			wantErr: "is not listed under users",
		},
		{
			name:    "missing email",
			content: "users:\n  - display_name: nobody\n",
			wantErr: "has no email",
		},
		{
			name:    "missing url",
			content: "users:\n  - email: a@example.com\nprojects:\n  - owner: a@example.com\n    title: x\n",
			wantErr: "title and github_url are required",
		},
		{
			name:    "not yaml",
			content: "users: [",
			wantErr: "failed to parse seed file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadSeed(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSeedMissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestApplySeed(t *testing.T) {
	out := quietUI(t)
	seed, err := LoadSeed(filepath.Join("testdata", "seed.yaml"))
	require.NoError(t, err)

	auth := &fakeAuth{}
	projects := &fakeSubmitter{existing: map[string]bool{"https://github.com/ghost/crypt": true}}

	result, err := applySeed(context.Background(), seed, auth, projects)
	require.NoError(t, err)

	assert.Equal(t, SeedResult{Users: 2, Projects: 1, Skipped: 1}, result)
	assert.Equal(t, []string{"casper@example.com", "Banshee@Example.com"}, auth.signedIn)
	require.Len(t, projects.submitted, 1)
	assert.Equal(t, "Haunted Relic", projects.submitted[0].Title)
	assert.Equal(t, []string{"casper@example.com"}, projects.owners)
	assert.Contains(t, out.String(), "already in the vault")
}

type failingSubmitter struct{}

func (failingSubmitter) Submit(ctx context.Context, session *models.Session, req vault.SubmitRequest) (*models.Project, error) {
	return nil, apperrors.NewNotFoundError("repository not found or is private", nil)
}

func TestApplySeedStopsOnError(t *testing.T) {
	quietUI(t)
	seed, err := LoadSeed(filepath.Join("testdata", "seed.yaml"))
	require.NoError(t, err)

	_, err = applySeed(context.Background(), seed, &fakeAuth{}, failingSubmitter{})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRetry(t *testing.T) {
	calls := 0
	err := retry(3, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return errors.New("database is starting up")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	err = retry(3, time.Millisecond, func() error {
		calls++
		return errors.New("still down")
	})
	assert.EqualError(t, err, "still down")
	assert.Equal(t, 3, calls)
}

func TestNewLogger(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, newLogger("DEBUG").GetLevel())
	assert.Equal(t, logrus.InfoLevel, newLogger("chatty").GetLevel())
}

func TestVersionCommand(t *testing.T) {
	buf := &bytes.Buffer{}
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2025-06-15"
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "ghostvault 1.2.3 (commit abc123, built 2025-06-15)\n", buf.String())
}
