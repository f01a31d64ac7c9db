package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// GitHubConfig is the "github" section of the configuration
type GitHubConfig struct {
	Token      string      `mapstructure:"token"`
	APIBaseURL string      `mapstructure:"api_base_url"`
	Retry      RetryConfig `mapstructure:",squash"`
}

// RetryConfig controls the backoff applied to failed or rate limited GitHub
// requests. Its keys sit directly under "github".
type RetryConfig struct {
	MaxRetries      int           `mapstructure:"max_retries"`
	InitialBackoff  time.Duration `mapstructure:"initial_backoff"`
	MaxBackoff      time.Duration `mapstructure:"max_backoff"`
	RetryMultiplier float64       `mapstructure:"retry_multiplier"`
}

// DefaultGitHubConfig talks to the public API anonymously
func DefaultGitHubConfig() *GitHubConfig {
	return &GitHubConfig{
		APIBaseURL: "https://api.github.com/",
		Retry: RetryConfig{
			MaxRetries:      3,
			InitialBackoff:  time.Second,
			MaxBackoff:      time.Minute,
			RetryMultiplier: 2.0,
		},
	}
}

func setGitHubDefaults(v *viper.Viper) {
	d := DefaultGitHubConfig()
	v.SetDefault("github.token", "")
	v.SetDefault("github.api_base_url", d.APIBaseURL)
	v.SetDefault("github.max_retries", d.Retry.MaxRetries)
	v.SetDefault("github.initial_backoff", d.Retry.InitialBackoff)
	v.SetDefault("github.max_backoff", d.Retry.MaxBackoff)
	v.SetDefault("github.retry_multiplier", d.Retry.RetryMultiplier)
}

// Validate checks the GitHub section
func (c *GitHubConfig) Validate() error {
	if c.APIBaseURL != "" {
		if u, err := url.Parse(c.APIBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("github.api_base_url %q is not an absolute URL", c.APIBaseURL)
		}
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("github.max_retries must not be negative")
	}
	if c.Retry.MaxBackoff < c.Retry.InitialBackoff {
		return fmt.Errorf("github.max_backoff must be at least github.initial_backoff")
	}
	return nil
}
