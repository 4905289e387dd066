package optimistic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/harborline/storefront-backend/pkg/errors"
)

const defaultPatchTTL = 5 * time.Minute

// overlayStore defines the redis operations the patch store relies on.
type overlayStore interface {
	HSet(ctx context.Context, key, field, value string, ttl time.Duration) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Del(ctx context.Context, keys ...string) error
	OverlayKey(cartID string) string
}

// Store keeps per-line patches in a redis hash keyed by cart. The hash
// carries a TTL so abandoned overlays expire on their own if a settle
// never arrives.
type Store struct {
	redis    overlayStore
	ttl      time.Duration
	notifier *Notifier
}

// NewStore builds a patch store bound to the given redis client.
func NewStore(redis overlayStore, ttl time.Duration, notifier *Notifier) (*Store, error) {
	if redis == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "redis client is required")
	}
	if notifier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notifier is required")
	}
	if ttl <= 0 {
		ttl = defaultPatchTTL
	}
	return &Store{redis: redis, ttl: ttl, notifier: notifier}, nil
}

// Apply records a patch for one line, replacing any patch already present
// for that line, and notifies subscribers that the cart's merged view changed.
func (s *Store) Apply(ctx context.Context, cartID, lineID uuid.UUID, patch LinePatch) error {
	if cartID == uuid.Nil || lineID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id and line id are required")
	}
	if !patch.Action.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid patch action %q", patch.Action))
	}
	if patch.AppliedAt.IsZero() {
		patch.AppliedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(patch)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal line patch")
	}
	key := s.redis.OverlayKey(cartID.String())
	if err := s.redis.HSet(ctx, key, lineID.String(), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store line patch")
	}
	s.notifier.Notify(cartID)
	return nil
}

// Snapshot loads every live patch for a cart. Fields that fail to decode are
// skipped rather than poisoning the whole overlay.
func (s *Store) Snapshot(ctx context.Context, cartID uuid.UUID) (Overlay, error) {
	if cartID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	raw, err := s.redis.HGetAll(ctx, s.redis.OverlayKey(cartID.String()))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load overlay")
	}
	overlay := make(Overlay, len(raw))
	for field, value := range raw {
		lineID, err := uuid.Parse(field)
		if err != nil {
			continue
		}
		var patch LinePatch
		if err := json.Unmarshal([]byte(value), &patch); err != nil {
			continue
		}
		overlay[lineID] = patch
	}
	return overlay, nil
}

// Clear drops the patches for the given lines once their mutation settled,
// regardless of whether it settled with success or failure.
func (s *Store) Clear(ctx context.Context, cartID uuid.UUID, lineIDs ...uuid.UUID) error {
	if cartID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	if len(lineIDs) == 0 {
		return nil
	}
	fields := make([]string, 0, len(lineIDs))
	for _, id := range lineIDs {
		fields = append(fields, id.String())
	}
	key := s.redis.OverlayKey(cartID.String())
	if err := s.redis.HDel(ctx, key, fields...); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear line patches")
	}
	s.notifier.Notify(cartID)
	return nil
}

// ClearAll drops the entire overlay for a cart.
func (s *Store) ClearAll(ctx context.Context, cartID uuid.UUID) error {
	if cartID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}
	if err := s.redis.Del(ctx, s.redis.OverlayKey(cartID.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear overlay")
	}
	s.notifier.Notify(cartID)
	return nil
}
