package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port               string
	LogLevel           string
	DBDriver           string
	DBConnectionString string
	DBPath             string
	SubmissionPolicy   string
	SessionTTL         time.Duration
	FeedPollInterval   time.Duration
	GitHub             *GitHubConfig
	Sweep              *SweepConfig
}

// Load reads and validates the configuration.
func Load(configFile string) (*Config, error) {
	cfg, err := Read(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads configuration from an optional .env file, the environment
// (GHOST_ prefix, dots become underscores) and an optional YAML config file.
// Commands that never touch the database use it to skip validation.
func Read(configFile string) (*Config, error) {
	// A missing .env file is fine; real deployments use the environment.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("GHOST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Unprefixed names kept for compatibility with existing deployments.
	_ = v.BindEnv("port", "GHOST_PORT", "PORT")
	_ = v.BindEnv("db.connection_string", "GHOST_DB_CONNECTION_STRING", "DB_CONNECTION_STRING")
	_ = v.BindEnv("github.token", "GHOST_GITHUB_TOKEN", "GITHUB_TOKEN")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var sections struct {
		GitHub GitHubConfig `mapstructure:"github"`
	}
	if err := v.Unmarshal(&sections); err != nil {
		return nil, fmt.Errorf("failed to decode github config: %w", err)
	}

	sweep := DefaultSweepConfig()
	sweep.Interval = v.GetDuration("sweep.interval")
	sweep.RescoreAfter = v.GetDuration("sweep.rescore_after")
	sweep.BatchConfig.Size = v.GetInt("sweep.batch_size")
	sweep.BatchConfig.Workers = v.GetInt("sweep.workers")

	cfg := &Config{
		Port:               v.GetString("port"),
		LogLevel:           v.GetString("log_level"),
		DBDriver:           v.GetString("db.driver"),
		DBConnectionString: v.GetString("db.connection_string"),
		DBPath:             v.GetString("db.path"),
		SubmissionPolicy:   v.GetString("scoring.submission_policy"),
		SessionTTL:         v.GetDuration("session_ttl"),
		FeedPollInterval:   v.GetDuration("feed.poll_interval"),
		GitHub:             &sections.GitHub,
		Sweep:              sweep,
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	sweep := DefaultSweepConfig()

	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.connection_string", "")
	v.SetDefault("db.path", "ghost-vault.db")
	v.SetDefault("scoring.submission_policy", "submission")
	v.SetDefault("session_ttl", 7*24*time.Hour)
	v.SetDefault("feed.poll_interval", 5*time.Second)
	setGitHubDefaults(v)
	v.SetDefault("sweep.interval", sweep.Interval)
	v.SetDefault("sweep.rescore_after", sweep.RescoreAfter)
	v.SetDefault("sweep.batch_size", sweep.BatchConfig.Size)
	v.SetDefault("sweep.workers", sweep.BatchConfig.Workers)
}

// Validate checks the minimum required configuration
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBConnectionString == "" {
			return fmt.Errorf("DB_CONNECTION_STRING must be set when using the postgres driver")
		}
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db.path must be set when using the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if c.GitHub == nil {
		return nil
	}
	return c.GitHub.Validate()
}

// DSN returns the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == DriverSQLite {
		return c.DBPath
	}
	return c.DBConnectionString
}
