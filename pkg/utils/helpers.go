package utils

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseGitHubURL extracts owner and repository name from a GitHub URL.
// Both https (https://github.com/owner/repo) and ssh (git@github.com:owner/repo.git)
// forms are accepted; a trailing .git and any extra path segments are ignored.
func ParseGitHubURL(repoURL string) (owner, repo string, err error) {
	repoURL = strings.TrimSpace(repoURL)
	if strings.HasPrefix(repoURL, "git@") {
		host, path, ok := strings.Cut(strings.TrimPrefix(repoURL, "git@"), ":")
		if !ok || host != "github.com" {
			return "", "", fmt.Errorf("invalid GitHub repository URL")
		}
		repoURL = "https://github.com/" + path
	}

	u, err := url.Parse(repoURL)
	if err != nil {
		return "", "", err
	}
	if u.Host != "" && u.Host != "github.com" && u.Host != "www.github.com" {
		return "", "", fmt.Errorf("only GitHub repositories are supported")
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GitHub repository URL")
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// CanonicalGitHubURL returns the https form of a repository URL.
func CanonicalGitHubURL(repoURL string) (string, error) {
	owner, repo, err := ParseGitHubURL(repoURL)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://github.com/%s/%s", owner, repo), nil
}

func IsValidGitHubURL(repoURL string) bool {
	_, _, err := ParseGitHubURL(repoURL)
	return err == nil
}
