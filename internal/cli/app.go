package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/ghost-vault/internal/config"
	"github.com/Kamar-Folarin/ghost-vault/internal/db"
	"github.com/Kamar-Folarin/ghost-vault/internal/ghostname"
	"github.com/Kamar-Folarin/ghost-vault/internal/github"
	"github.com/Kamar-Folarin/ghost-vault/internal/health"
	"github.com/Kamar-Folarin/ghost-vault/internal/sweeper"
	"github.com/Kamar-Folarin/ghost-vault/internal/vault"
)

const (
	migrateAttempts = 3
	migrateDelay    = 5 * time.Second
)

// app holds the services shared by the commands
type app struct {
	cfg          *config.Config
	logger       *logrus.Logger
	store        *db.SQLStore
	projects     *vault.ProjectService
	applications *vault.ApplicationService
	auth         *vault.AuthService
	sweeper      *sweeper.Sweeper
}

// newApp opens the store, runs migrations and builds the services.
func newApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*app, error) {
	policy, err := health.PolicyByName(cfg.SubmissionPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid scoring.submission_policy: %w", err)
	}

	client, err := github.NewClient(cfg.GitHub, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	store, err := db.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := retry(migrateAttempts, migrateDelay, func() error {
		err := store.Migrate(ctx)
		if err != nil {
			logger.WithError(err).Warn("Migration attempt failed")
		}
		return err
	}); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to run migrations after retries: %w", err)
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
	}
	a.projects = vault.NewProjectService(store, client, policy, logger)
	a.applications = vault.NewApplicationService(store, logger, nil)
	a.auth = vault.NewAuthService(store, ghostname.NewGenerator(), cfg.SessionTTL, logger, nil)
	a.sweeper = sweeper.New(store, a.projects, cfg.Sweep, logger, sweeper.WithSessionPurger(a.auth))
	return a, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// loadApp reads the validated configuration and builds the app
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return newApp(ctx, cfg, newLogger(cfg.LogLevel))
}

// retry retries a function up to a certain number of attempts with a delay between attempts
func retry(attempts int, sleep time.Duration, fn func() error) error {
	if err := fn(); err != nil {
		if attempts--; attempts > 0 {
			time.Sleep(sleep)
			return retry(attempts, sleep, fn)
		}
		return err
	}
	return nil
}
