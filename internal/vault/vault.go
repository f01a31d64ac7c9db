// Package vault implements the Ghost Vault use cases: submitting projects
// behind a dead man's switch, checking in, haunting expired projects and
// applying to revive them.
package vault

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/Kamar-Folarin/ghost-vault/internal/metadata"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
)

// Fetcher loads raw repository metadata from the hosting service.
type Fetcher interface {
	FetchByURL(ctx context.Context, repoURL string) (*metadata.RawRepository, error)
}

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

type sessionKey struct{}

// WithSession returns a context carrying the caller's session.
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFrom returns the session stored by WithSession, or nil.
func SessionFrom(ctx context.Context) *models.Session {
	session, _ := ctx.Value(sessionKey{}).(*models.Session)
	return session
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
)

// newULID returns a lexically sortable ID for t.
func newULID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
