package vault

import (
	"bytes"
	"context"
	"math/rand"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/ghost-vault/internal/db"
	"github.com/Kamar-Folarin/ghost-vault/internal/ghostname"
	"github.com/Kamar-Folarin/ghost-vault/internal/health"
	"github.com/Kamar-Folarin/ghost-vault/internal/metadata"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
	"github.com/Kamar-Folarin/ghost-vault/pkg/utils"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fakeFetcher struct {
	mu    sync.Mutex
	repos map[string]*metadata.RawRepository
	errs  map[string]error
	calls int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		repos: map[string]*metadata.RawRepository{},
		errs:  map[string]error{},
	}
}

func (f *fakeFetcher) add(raw *metadata.RawRepository) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repos[raw.Owner+"/"+raw.Name] = raw
}

func (f *fakeFetcher) fail(fullName string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[fullName] = err
}

func (f *fakeFetcher) FetchByURL(ctx context.Context, repoURL string) (*metadata.RawRepository, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	owner, name, err := utils.ParseGitHubURL(repoURL)
	if err != nil {
		return nil, err
	}
	if err, ok := f.errs[owner+"/"+name]; ok {
		return nil, err
	}
	raw, ok := f.repos[owner+"/"+name]
	if !ok {
		return &metadata.RawRepository{Owner: owner, Name: name, Access: metadata.AccessNotFound}, nil
	}
	copied := *raw
	return &copied, nil
}

func healthyRepo(owner, name string) *metadata.RawRepository {
	readme := ""
	for i := 0; i < 300; i++ {
		readme += "spooky words "
	}
	return &metadata.RawRepository{
		Owner:          owner,
		Name:           name,
		Description:    "A project that deserves a second life",
		Language:       "Python",
		Languages:      map[string]int{"Python": 900, "Shell": 100},
		LastCommitDate: testNow.AddDate(0, -1, 0).Format(time.RFC3339),
		HasReadme:      true,
		ReadmeText:     readme,
		RootEntries:    []string{"README.md", "requirements.txt", "tests"},
		Stars:          12,
		Access:         metadata.AccessAvailable,
	}
}

type testEnv struct {
	store    *db.SQLStore
	fetcher  *fakeFetcher
	clock    *fakeClock
	projects *ProjectService
	apps     *ApplicationService
	auth     *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := db.NewSQLiteStore(filepath.Join(t.TempDir(), "vault.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))

	clock := &fakeClock{t: testNow}
	fetcher := newFakeFetcher()
	names := ghostname.NewGeneratorWithRand(rand.New(rand.NewSource(1)))

	return &testEnv{
		store:    store,
		fetcher:  fetcher,
		clock:    clock,
		projects: NewProjectService(store, fetcher, health.SubmissionPolicy{}, logger, WithProjectClock(clock.Now)),
		apps:     NewApplicationService(store, logger, clock.Now),
		auth:     NewAuthService(store, names, 24*time.Hour, logger, clock.Now),
	}
}

func (e *testEnv) signIn(t *testing.T, email string) *models.Session {
	t.Helper()
	session, err := e.auth.SignIn(context.Background(), SignInRequest{Email: email, DisplayName: email})
	require.NoError(t, err)
	return session
}

func (e *testEnv) submit(t *testing.T, session *models.Session, owner, name string, months int) *models.Project {
	t.Helper()
	e.fetcher.add(healthyRepo(owner, name))
	project, err := e.projects.Submit(context.Background(), session, SubmitRequest{
		Title:               name,
		GithubURL:           "https://github.com/" + owner + "/" + name,
		GhostLog:            "life happened",
		DeadManSwitchMonths: months,
	})
	require.NoError(t, err)
	return project
}
