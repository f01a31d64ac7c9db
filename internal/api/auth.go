package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/shaj13/go-guardian/v2/auth/strategies/token"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
	"github.com/sirupsen/logrus"

	apperrors "github.com/Kamar-Folarin/ghost-vault/internal/errors"
	"github.com/Kamar-Folarin/ghost-vault/internal/models"
	"github.com/Kamar-Folarin/ghost-vault/internal/vault"
)

const (
	sessionCacheSize = 1000
	sessionCacheTTL  = 5 * time.Minute
)

// sessionUser is the guardian identity of a resolved session
type sessionUser struct {
	*auth.DefaultUser
	session *models.Session
}

// Authenticator is a guardian strategy resolving "Authorization: Bearer <token>"
// headers into vault sessions. Resolved sessions are cached for a few minutes.
type Authenticator struct {
	service AuthService
	parser  token.Parser
	cache   libcache.Cache
	now     func() time.Time
	logger  *logrus.Logger
}

var _ auth.Strategy = (*Authenticator)(nil)

func NewAuthenticator(service AuthService, logger *logrus.Logger) *Authenticator {
	cache := libcache.LRU.New(sessionCacheSize)
	cache.SetTTL(sessionCacheTTL)
	cache.RegisterOnExpired(func(key, _ interface{}) {
		cache.Delete(key)
	})

	return &Authenticator{
		service: service,
		parser:  token.AuthorizationParser("Bearer"),
		cache:   cache,
		now:     time.Now,
		logger:  logger,
	}
}

// Authenticate implements auth.Strategy
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (auth.Info, error) {
	raw, err := a.parser.Token(r)
	if err != nil || raw == "" {
		return nil, apperrors.NewUnauthorizedError("missing session token", err)
	}

	if cached, ok := a.cache.Load(raw); ok {
		if user, ok := cached.(*sessionUser); ok && !user.session.Expired(a.now()) {
			return user, nil
		}
		a.cache.Delete(raw)
	}

	session, err := a.service.Resolve(ctx, raw)
	if err != nil {
		return nil, err
	}
	if session.User == nil {
		return nil, apperrors.NewUnauthorizedError("session has no user", nil)
	}

	user := &sessionUser{
		DefaultUser: auth.NewDefaultUser(session.User.GhostName, session.UserID, []string{}, auth.Extensions{}),
		session:     session,
	}
	a.cache.Store(raw, user)
	return user, nil
}

// Forget drops a cached session, typically after sign-out.
func (a *Authenticator) Forget(raw string) {
	a.cache.Delete(raw)
}

// Middleware rejects unauthenticated requests and stores the session in the
// request context for the handlers.
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		info, err := a.Authenticate(c.Request.Context(), c.Request)
		if err != nil {
			if !apperrors.IsUnauthorized(err) {
				a.logger.WithError(err).WithField("path", c.FullPath()).Error("Session lookup failed")
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
				return
			}
			a.logger.WithError(err).WithField("path", c.FullPath()).Debug("Authorization failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: apperrors.MessageOf(err)})
			return
		}

		user, ok := info.(*sessionUser)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: fmt.Sprintf("unexpected identity %T", info)})
			return
		}

		r := auth.RequestWithUser(info, c.Request)
		c.Request = r.WithContext(vault.WithSession(r.Context(), user.session))
		c.Next()
	}
}
