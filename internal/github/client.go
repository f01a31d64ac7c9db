package github

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v60/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/Kamar-Folarin/ghost-vault/internal/config"
)

// Client wraps the GitHub REST API with retry and error classification.
type Client struct {
	gh     *github.Client
	logger *logrus.Logger
	// Backoff configuration
	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	multiplier     float64
}

// ClientOption allows configuring the GitHub client
type ClientOption func(*Client)

// WithRetryConfig configures retry behavior
func WithRetryConfig(maxRetries int, initialBackoff, maxBackoff time.Duration) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.initialBackoff = initialBackoff
		c.maxBackoff = maxBackoff
	}
}

// NewClient creates a GitHub client from configuration. An empty token gives
// an anonymous client.
func NewClient(cfg *config.GitHubConfig, logger *logrus.Logger, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		cfg = config.DefaultGitHubConfig()
	}

	var httpClient *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = 30 * time.Second

	gh := github.NewClient(httpClient)
	if cfg.APIBaseURL != "" {
		base := cfg.APIBaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API base URL %q: %w", cfg.APIBaseURL, err)
		}
		gh.BaseURL = u
	}

	multiplier := cfg.Retry.RetryMultiplier
	if multiplier <= 1 {
		multiplier = 2
	}

	client := &Client{
		gh:             gh,
		logger:         logger,
		maxRetries:     cfg.Retry.MaxRetries,
		initialBackoff: cfg.Retry.InitialBackoff,
		maxBackoff:     cfg.Retry.MaxBackoff,
		multiplier:     multiplier,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.maxRetries < 1 {
		client.maxRetries = 1
	}

	return client, nil
}

// withRetry runs call with exponential backoff. Only transport failures and
// server errors are retried; everything else is classified and returned.
func (c *Client) withRetry(ctx context.Context, op string, call func() (*github.Response, error)) error {
	var lastErr error
	backoff := c.initialBackoff

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		resp, err := call()
		if err == nil {
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		lastErr = err
		if !retryable(resp, err) {
			return err
		}

		c.logger.WithFields(logrus.Fields{
			"operation": op,
			"attempt":   attempt + 1,
		}).Warnf("GitHub request failed: %v", err)

		if attempt == c.maxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = time.Duration(math.Min(float64(backoff)*c.multiplier, float64(c.maxBackoff)))
	}

	return fmt.Errorf("max retries exceeded for %s: %w", op, lastErr)
}

func retryable(resp *github.Response, err error) bool {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return false
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Response != nil && errResp.Response.StatusCode >= http.StatusInternalServerError
	}

	if resp != nil && resp.Response != nil {
		return resp.StatusCode >= http.StatusInternalServerError
	}
	return true
}
