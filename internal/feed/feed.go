// Package feed publishes the project listing as a stream of snapshots.
package feed

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"iter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

// Snapshot is the project listing at one point in time
type Snapshot struct {
	Projects []*models.Project `json:"projects"`
	Version  string            `json:"version"`
	TakenAt  time.Time         `json:"taken_at"`
}

// Source yields snapshots. Each call to Snapshots starts a fresh sequence.
type Source interface {
	Snapshots(ctx context.Context) iter.Seq2[Snapshot, error]
}

// Lister loads the current project listing
type Lister interface {
	ListProjects(ctx context.Context, filter models.ProjectFilter, now time.Time) ([]*models.Project, error)
}

// PollingSource polls a Lister and yields only when the listing changes.
type PollingSource struct {
	lister   Lister
	filter   models.ProjectFilter
	interval time.Duration
	logger   *logrus.Logger
	now      func() time.Time
}

func NewPollingSource(lister Lister, filter models.ProjectFilter, interval time.Duration, logger *logrus.Logger) *PollingSource {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PollingSource{
		lister:   lister,
		filter:   filter,
		interval: interval,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Snapshots yields the current listing immediately, then every change seen
// on later polls. Poll errors are yielded and polling continues; the
// sequence ends when ctx is done or the consumer stops.
func (s *PollingSource) Snapshots(ctx context.Context) iter.Seq2[Snapshot, error] {
	return func(yield func(Snapshot, error) bool) {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		lastVersion := ""
		for {
			now := s.now()
			projects, err := s.lister.ListProjects(ctx, s.filter, now)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				s.logger.WithError(err).Warn("Project feed poll failed")
				if !yield(Snapshot{}, err) {
					return
				}
			} else if version := Fingerprint(projects); version != lastVersion {
				lastVersion = version
				if !yield(Snapshot{Projects: projects, Version: version, TakenAt: now}, nil) {
					return
				}
			}

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}
}

// Fingerprint hashes the listing content; equal listings share a fingerprint.
func Fingerprint(projects []*models.Project) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range projects {
		// Encoding a project cannot fail: it holds only plain data.
		_ = enc.Encode(p)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
