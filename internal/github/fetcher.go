package github

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/metadata"
	"github.com/Kamar-Folarin/ghost-vault/pkg/utils"
)

const ciDir = ".github"

// FetchByURL parses a GitHub URL and fetches the repository it names
func (c *Client) FetchByURL(ctx context.Context, repoURL string) (*metadata.RawRepository, error) {
	owner, name, err := utils.ParseGitHubURL(repoURL)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid GitHub repository URL", err)
	}
	return c.Fetch(ctx, owner, name)
}

// Fetch gathers everything the normalizer needs about owner/name. Failing to
// read the repository itself is an error; every other sub-resource is
// optional and degrades to empty.
func (c *Client) Fetch(ctx context.Context, owner, name string) (*metadata.RawRepository, error) {
	if owner == "" || name == "" {
		return nil, apperrors.NewValidationError("owner and name cannot be empty", nil)
	}

	log := c.logger.WithFields(logrus.Fields{"owner": owner, "repo": name})

	var repo *github.Repository
	err := c.withRetry(ctx, "get repository", func() (*github.Response, error) {
		var resp *github.Response
		var err error
		repo, resp, err = c.gh.Repositories.Get(ctx, owner, name)
		return resp, err
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, classifyRepoError(owner, name, err)
	}

	raw := &metadata.RawRepository{
		Owner:       repo.GetOwner().GetLogin(),
		Name:        repo.GetName(),
		Description: repo.GetDescription(),
		Language:    repo.GetLanguage(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		OpenIssues:  repo.GetOpenIssuesCount(),
		Access:      metadata.AccessAvailable,
	}
	if raw.Owner == "" {
		raw.Owner = owner
	}
	if raw.Name == "" {
		raw.Name = name
	}

	// Each goroutine writes only its own fields of raw.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		languages, err := c.languages(gctx, owner, name)
		if err != nil {
			log.Warnf("Failed to fetch languages: %v", err)
		}
		raw.Languages = languages
		return nil
	})

	g.Go(func() error {
		date, message, err := c.lastCommit(gctx, owner, name)
		if err != nil {
			log.Warnf("Failed to fetch last commit: %v", err)
		}
		raw.LastCommitDate, raw.LastCommitMessage = date, message
		return nil
	})

	g.Go(func() error {
		text, ok, err := c.readme(gctx, owner, name)
		if err != nil {
			log.Debugf("No readable README: %v", err)
		}
		raw.ReadmeText, raw.HasReadme = text, ok
		return nil
	})

	g.Go(func() error {
		entries, err := c.listDir(gctx, owner, name, "")
		if err != nil {
			log.Warnf("Failed to list repository root: %v", err)
		}
		raw.RootEntries = entries
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The CI directory listing is only needed when .github exists.
	if raw.NeedsCIListing() {
		entries, err := c.listDir(ctx, owner, name, ciDir)
		if err != nil {
			log.Warnf("Failed to list %s: %v", ciDir, err)
			entries = []string{}
		}
		raw.CIEntries = entries
	}

	log.WithFields(logrus.Fields{
		"files":     len(raw.RootEntries),
		"languages": len(raw.Languages),
		"readme":    raw.HasReadme,
	}).Debug("Fetched repository metadata")

	return raw, nil
}

func (c *Client) languages(ctx context.Context, owner, name string) (map[string]int, error) {
	var languages map[string]int
	err := c.withRetry(ctx, "list languages", func() (*github.Response, error) {
		var resp *github.Response
		var err error
		languages, resp, err = c.gh.Repositories.ListLanguages(ctx, owner, name)
		return resp, err
	})
	if err != nil || languages == nil {
		return map[string]int{}, err
	}
	return languages, nil
}

// lastCommit returns the committer date of the newest commit as RFC 3339.
// Empty repositories yield an empty date.
func (c *Client) lastCommit(ctx context.Context, owner, name string) (string, string, error) {
	var commits []*github.RepositoryCommit
	err := c.withRetry(ctx, "list commits", func() (*github.Response, error) {
		var resp *github.Response
		var err error
		commits, resp, err = c.gh.Repositories.ListCommits(ctx, owner, name, &github.CommitsListOptions{
			ListOptions: github.ListOptions{PerPage: 1},
		})
		return resp, err
	})
	if err != nil {
		if isStatus(err, http.StatusConflict) {
			return "", "", nil
		}
		return "", "", err
	}
	if len(commits) == 0 {
		return "", "", nil
	}

	commit := commits[0].GetCommit()
	date := commit.GetCommitter().GetDate()
	if date.IsZero() {
		date = commit.GetAuthor().GetDate()
	}
	if date.IsZero() {
		return "", commit.GetMessage(), nil
	}
	return date.UTC().Format(time.RFC3339), commit.GetMessage(), nil
}

func (c *Client) readme(ctx context.Context, owner, name string) (string, bool, error) {
	var content *github.RepositoryContent
	err := c.withRetry(ctx, "get readme", func() (*github.Response, error) {
		var resp *github.Response
		var err error
		content, resp, err = c.gh.Repositories.GetReadme(ctx, owner, name, nil)
		return resp, err
	})
	if err != nil || content == nil {
		return "", false, err
	}

	if content.GetEncoding() == "base64" && content.Content != nil {
		return metadata.DecodeReadme(*content.Content), true, nil
	}
	text, err := content.GetContent()
	if err != nil {
		return "", true, err
	}
	return text, true, nil
}

func (c *Client) listDir(ctx context.Context, owner, name, path string) ([]string, error) {
	var entries []*github.RepositoryContent
	err := c.withRetry(ctx, "list contents", func() (*github.Response, error) {
		var resp *github.Response
		var err error
		_, entries, resp, err = c.gh.Repositories.GetContents(ctx, owner, name, path, nil)
		return resp, err
	})
	if err != nil {
		return []string{}, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.GetName())
	}
	return names, nil
}
