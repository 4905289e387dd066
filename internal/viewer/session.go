package viewer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
	pkgredis "github.com/harborline/storefront-backend/pkg/redis"
)

const defaultSessionTTL = time.Hour

// Session is the server-side viewer state for one client. The open flag
// gates key routing: keys arriving while closed are ignored, which is the
// server-side equivalent of detaching the keyboard listener.
type Session struct {
	ViewerID   string    `json:"viewer_id"`
	ProductID  uuid.UUID `json:"product_id"`
	SelectedID uuid.UUID `json:"selected_id"`
	Open       bool      `json:"open"`
	OpenedAt   time.Time `json:"opened_at"`
}

// sessionRedis defines the redis operations the session store relies on.
type sessionRedis interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	ViewerSessionKey(viewerID string) string
}

// SessionStore persists viewer sessions in redis with a sliding TTL.
type SessionStore struct {
	redis sessionRedis
	ttl   time.Duration
}

// NewSessionStore builds a session store bound to the given redis client.
func NewSessionStore(redis sessionRedis, ttl time.Duration) (*SessionStore, error) {
	if redis == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "redis client is required")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{redis: redis, ttl: ttl}, nil
}

// Save writes the session, refreshing its TTL.
func (s *SessionStore) Save(ctx context.Context, session Session) error {
	if session.ViewerID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "viewer id is required")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal viewer session")
	}
	key := s.redis.ViewerSessionKey(session.ViewerID)
	if err := s.redis.Set(ctx, key, string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store viewer session")
	}
	return nil
}

// Load returns the session for a viewer, or a closed zero session if none
// exists yet. A missing session is not an error; it just means closed.
func (s *SessionStore) Load(ctx context.Context, viewerID string) (Session, error) {
	if viewerID == "" {
		return Session{}, pkgerrors.New(pkgerrors.CodeValidation, "viewer id is required")
	}
	raw, err := s.redis.Get(ctx, s.redis.ViewerSessionKey(viewerID))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return Session{ViewerID: viewerID}, nil
		}
		return Session{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load viewer session")
	}
	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return Session{ViewerID: viewerID}, nil
	}
	return session, nil
}

// Delete drops the session outright.
func (s *SessionStore) Delete(ctx context.Context, viewerID string) error {
	if viewerID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "viewer id is required")
	}
	if err := s.redis.Del(ctx, s.redis.ViewerSessionKey(viewerID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete viewer session")
	}
	return nil
}
