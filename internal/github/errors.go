package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v60/github"

	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/metadata"
)

// GitHubError is an unexpected API failure that has no domain meaning
type GitHubError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GitHubError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("GitHub API error (status %d): %s: %v", e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *GitHubError) Unwrap() error {
	return e.Err
}

// classifyRepoError maps a failure to read the repository itself onto the
// application error types. Sub-resource failures are not classified.
func classifyRepoError(owner, name string, err error) error {
	full := owner + "/" + name

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return apperrors.NewRateLimitError(rateErr.Rate.Reset.Time, rateErr.Rate.Limit, rateErr.Rate.Remaining)
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		reset := time.Now()
		if abuseErr.RetryAfter != nil {
			reset = reset.Add(*abuseErr.RetryAfter)
		}
		return apperrors.NewRateLimitError(reset, 0, 0)
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		switch errResp.Response.StatusCode {
		case http.StatusNotFound:
			return apperrors.NewNotFoundError(
				fmt.Sprintf("repository %s not found or is private", full), metadata.ErrNotFound)
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.NewInaccessibleError(
				fmt.Sprintf("repository %s is inaccessible", full), metadata.ErrInaccessible)
		default:
			return apperrors.NewInternalError(
				fmt.Sprintf("failed to fetch repository %s", full),
				&GitHubError{StatusCode: errResp.Response.StatusCode, Message: errResp.Message, Err: err})
		}
	}

	return apperrors.NewInternalError(fmt.Sprintf("failed to fetch repository %s", full), err)
}

func isStatus(err error, status int) bool {
	var errResp *github.ErrorResponse
	return errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == status
}
