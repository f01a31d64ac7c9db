package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/ghost-vault/internal/config"
	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/metadata"
)

func setupTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(bytes.NewBuffer(nil))

	cfg := config.DefaultGitHubConfig()
	cfg.Token = "test-token"
	cfg.APIBaseURL = server.URL

	client, err := NewClient(cfg, logger, WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))
	require.NoError(t, err)
	return client
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func repoMux(readme string, rootEntries []string, ciEntries []string) *http.ServeMux {
	mux := subResourceMux(readme, rootEntries, ciEntries)
	mux.HandleFunc("/repos/ghost/relic", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{
			"name": "relic",
			"owner": {"login": "ghost"},
			"description": "A forgotten side project",
			"language": "Go",
			"stargazers_count": 42,
			"forks_count": 7,
			"open_issues_count": 3
		}`)
	})
	return mux
}

// subResourceMux serves everything except the repository itself.
func subResourceMux(readme string, rootEntries []string, ciEntries []string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/ghost/relic/languages", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"Go": 12000, "Shell": 300}`)
	})
	mux.HandleFunc("/repos/ghost/relic/commits", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{
			"sha": "abc123",
			"commit": {
				"message": "final commit before the semester ended",
				"committer": {"date": "2025-03-01T10:00:00Z"}
			}
		}]`)
	})
	mux.HandleFunc("/repos/ghost/relic/readme", func(w http.ResponseWriter, r *http.Request) {
		if readme == "" {
			writeJSON(w, http.StatusNotFound, `{"message": "Not Found"}`)
			return
		}
		encoded := base64.StdEncoding.EncodeToString([]byte(readme))
		// GitHub wraps the payload every 60 characters.
		var wrapped strings.Builder
		for i := 0; i < len(encoded); i += 60 {
			end := min(i+60, len(encoded))
			wrapped.WriteString(encoded[i:end])
			wrapped.WriteString(`\n`)
		}
		writeJSON(w, http.StatusOK, fmt.Sprintf(`{"type": "file", "encoding": "base64", "content": "%s"}`, wrapped.String()))
	})
	mux.HandleFunc("/repos/ghost/relic/contents/", func(w http.ResponseWriter, r *http.Request) {
		entries := rootEntries
		if strings.HasSuffix(r.URL.Path, "/.github") {
			if ciEntries == nil {
				writeJSON(w, http.StatusNotFound, `{"message": "Not Found"}`)
				return
			}
			entries = ciEntries
		}
		items := make([]string, len(entries))
		for i, e := range entries {
			items[i] = fmt.Sprintf(`{"name": %q, "type": "dir"}`, e)
		}
		writeJSON(w, http.StatusOK, "["+strings.Join(items, ",")+"]")
	})
	return mux
}

func TestClient_Fetch(t *testing.T) {
	readme := strings.Repeat("haunted words here ", 40)
	client := setupTestClient(t, repoMux(readme, []string{"README.md", "go.mod", "tests", ".github"}, []string{"workflows"}))

	raw, err := client.Fetch(context.Background(), "ghost", "relic")
	require.NoError(t, err)

	assert.Equal(t, "ghost", raw.Owner)
	assert.Equal(t, "relic", raw.Name)
	assert.Equal(t, "A forgotten side project", raw.Description)
	assert.Equal(t, 42, raw.Stars)
	assert.Equal(t, 7, raw.Forks)
	assert.Equal(t, 3, raw.OpenIssues)
	assert.Equal(t, map[string]int{"Go": 12000, "Shell": 300}, raw.Languages)
	assert.Equal(t, "2025-03-01T10:00:00Z", raw.LastCommitDate)
	assert.Equal(t, "final commit before the semester ended", raw.LastCommitMessage)
	assert.True(t, raw.HasReadme)
	assert.Equal(t, readme, raw.ReadmeText)
	assert.Equal(t, []string{"README.md", "go.mod", "tests", ".github"}, raw.RootEntries)
	assert.Equal(t, []string{"workflows"}, raw.CIEntries)
	assert.Equal(t, metadata.AccessAvailable, raw.Access)

	facts, err := metadata.Normalize(raw)
	require.NoError(t, err)
	assert.True(t, facts.HasDependencyFile)
	assert.True(t, facts.HasTestsFolder)
	assert.True(t, facts.HasGithubWorkflows)
	assert.Equal(t, 120, facts.ReadmeWordCount)
}

func TestClient_Fetch_SkipsCIListingWithoutGithubDir(t *testing.T) {
	var ciRequests atomic.Int32
	mux := repoMux("", []string{"main.py"}, []string{"workflows"})
	mux.HandleFunc("/repos/ghost/relic/contents/.github", func(w http.ResponseWriter, r *http.Request) {
		ciRequests.Add(1)
		writeJSON(w, http.StatusOK, `[]`)
	})
	client := setupTestClient(t, mux)

	raw, err := client.Fetch(context.Background(), "ghost", "relic")
	require.NoError(t, err)
	assert.False(t, raw.HasReadme)
	assert.Nil(t, raw.CIEntries)
	assert.Equal(t, int32(0), ciRequests.Load())
}

func TestClient_Fetch_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/ghost/missing", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message": "Not Found"}`)
	})
	client := setupTestClient(t, mux)

	_, err := client.Fetch(context.Background(), "ghost", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, metadata.ErrNotFound))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClient_Fetch_Inaccessible(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/ghost/secret", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"message": "Resource not accessible"}`)
	})
	client := setupTestClient(t, mux)

	_, err := client.Fetch(context.Background(), "ghost", "secret")
	require.Error(t, err)
	assert.True(t, errors.Is(err, metadata.ErrInaccessible))
	assert.True(t, apperrors.IsInaccessible(err))
}

func TestClient_Fetch_RateLimited(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/ghost/relic", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Limit", "60")
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", fmt.Sprint(time.Now().Add(time.Hour).Unix()))
		writeJSON(w, http.StatusForbidden, `{"message": "API rate limit exceeded"}`)
	})
	client := setupTestClient(t, mux)

	_, err := client.Fetch(context.Background(), "ghost", "relic")
	require.Error(t, err)
	assert.True(t, apperrors.IsRateLimit(err))
}

func TestClient_Fetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	mux := subResourceMux("", []string{"README.md"}, nil)
	mux.HandleFunc("/repos/ghost/relic", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeJSON(w, http.StatusBadGateway, `{"message": "bad gateway"}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"name": "relic", "owner": {"login": "ghost"}}`)
	})
	client := setupTestClient(t, mux)

	raw, err := client.Fetch(context.Background(), "ghost", "relic")
	require.NoError(t, err)
	assert.Equal(t, "relic", raw.Name)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_Fetch_ServerErrorsExhaustRetries(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/ghost/relic", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusInternalServerError, `{"message": "boom"}`)
	})
	client := setupTestClient(t, mux)

	_, err := client.Fetch(context.Background(), "ghost", "relic")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInternal, apperrors.TypeOf(err))
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_FetchByURL(t *testing.T) {
	client := setupTestClient(t, repoMux("", []string{"package.json"}, nil))

	raw, err := client.FetchByURL(context.Background(), "git@github.com:ghost/relic.git")
	require.NoError(t, err)
	assert.Equal(t, []string{"package.json"}, raw.RootEntries)

	_, err = client.FetchByURL(context.Background(), "https://gitlab.com/ghost/relic")
	assert.True(t, apperrors.IsInvalidInput(err))
}
