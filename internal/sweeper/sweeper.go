// Package sweeper fires dead man's switches and keeps health snapshots fresh.
package sweeper

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/ghost-vault/internal/batch"
	"github.com/Kamar-Folarin/ghost-vault/internal/config"
	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

// Store is the subset of db.Store the sweeper needs
type Store interface {
	ListProjects(ctx context.Context, filter models.ProjectFilter, now time.Time) ([]*models.Project, error)
	UpdateProject(ctx context.Context, project *models.Project) error
}

// Rescorer refreshes one project's health snapshot
type Rescorer interface {
	Rescore(ctx context.Context, id string) (*models.Project, error)
}

// SessionPurger removes expired sessions
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type Sweeper struct {
	store     Store
	rescorer  Rescorer
	purger    SessionPurger
	processor *batch.Processor[string]
	config    *config.SweepConfig
	logger    *logrus.Logger
	now       func() time.Time

	mu     sync.RWMutex
	status models.SweepStatus
}

// Option configures a Sweeper
type Option func(*Sweeper)

// WithClock overrides the sweeper clock
func WithClock(now func() time.Time) Option {
	return func(s *Sweeper) {
		s.now = now
	}
}

// WithSessionPurger also clears expired sessions on every run
func WithSessionPurger(p SessionPurger) Option {
	return func(s *Sweeper) {
		s.purger = p
	}
}

func New(store Store, rescorer Rescorer, cfg *config.SweepConfig, logger *logrus.Logger, opts ...Option) *Sweeper {
	if cfg == nil {
		cfg = config.DefaultSweepConfig()
	}
	s := &Sweeper{
		store:     store,
		rescorer:  rescorer,
		processor: batch.NewProcessor[string](cfg.BatchConfig),
		config:    cfg,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs a sweep immediately and then on every interval until ctx is done.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.WithField("interval", s.config.Interval.String()).Info("Starting expiry sweeper")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.WithError(err).Error("Sweep failed")
		}

		select {
		case <-ctx.Done():
			s.logger.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce marks overdue projects expired and rescores stale snapshots.
// Per-project failures are recorded in the status, not returned.
func (s *Sweeper) RunOnce(ctx context.Context) (models.SweepStatus, error) {
	now := s.now()

	s.mu.Lock()
	if s.status.IsRunning {
		s.mu.Unlock()
		return s.Status(), apperrors.NewConflictError("a sweep is already running", nil)
	}
	s.status = models.SweepStatus{StartTime: now, IsRunning: true}
	s.mu.Unlock()

	err := s.sweep(ctx, now)

	s.mu.Lock()
	s.status.IsRunning = false
	s.status.LastRunAt = s.now()
	s.mu.Unlock()

	status := s.Status()
	if err != nil {
		return status, err
	}

	s.logger.WithFields(logrus.Fields{
		"expired":  status.Expired,
		"rescored": status.Rescored,
		"errors":   len(status.Errors),
	}).Info("Sweep completed")

	return status, nil
}

func (s *Sweeper) sweep(ctx context.Context, now time.Time) error {
	projects, err := s.store.ListProjects(ctx, models.ProjectFilter{}, now)
	if err != nil {
		s.recordError(err)
		return fmt.Errorf("failed to list projects: %w", err)
	}

	expired := 0
	var stale []string
	cutoff := now.Add(-s.config.RescoreAfter)

	for _, p := range projects {
		if p.Status != models.ProjectExpired && p.IsExpired(now) {
			p.Status = models.ProjectExpired
			p.Touch(now)
			if err := s.store.UpdateProject(ctx, p); err != nil {
				s.recordError(fmt.Errorf("expire %s: %w", p.ID, err))
				continue
			}
			expired++
			s.logger.WithFields(logrus.Fields{
				"project_id": p.ID,
				"repo":       p.RepoFullName,
			}).Info("Dead man's switch expired")
		}

		if s.config.RescoreAfter > 0 && (p.HealthScore == nil || p.HealthScore.ComputedAt.Before(cutoff)) {
			stale = append(stale, p.ID)
		}
	}

	s.mu.Lock()
	s.status.Expired = expired
	s.mu.Unlock()

	var rescored atomic.Int64
	err = s.processor.ProcessItems(ctx, stale, func(ctx context.Context, ids []string) error {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := s.rescorer.Rescore(ctx, id); err != nil {
				s.recordError(fmt.Errorf("rescore %s: %w", id, err))
				continue
			}
			rescored.Add(1)
		}
		return nil
	})

	s.mu.Lock()
	s.status.Rescored = int(rescored.Load())
	s.mu.Unlock()

	if err != nil {
		return err
	}

	if s.purger != nil {
		if n, err := s.purger.PurgeExpired(ctx); err != nil {
			s.recordError(fmt.Errorf("purge sessions: %w", err))
		} else if n > 0 {
			s.logger.WithField("count", n).Debug("Purged expired sessions")
		}
	}

	return nil
}

// Status returns a copy of the latest sweep status
func (s *Sweeper) Status() models.SweepStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := s.status
	status.Errors = append([]string(nil), s.status.Errors...)
	return status
}

func (s *Sweeper) recordError(err error) {
	s.logger.WithError(err).Warn("Sweep error")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Errors = append(s.status.Errors, err.Error())
}
