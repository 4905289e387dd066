package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/harborline/storefront-backend/pkg/config"
)

func TestOptionsFromConfigRequiresTarget(t *testing.T) {
	if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
		t.Fatalf("expected error when url and address are both empty")
	}
}

func TestOptionsFromConfigAddress(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", DB: 2, PoolSize: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6379" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 2 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
	if opts.PoolSize != 5 {
		t.Fatalf("unexpected pool size %d", opts.PoolSize)
	}
}

func TestOptionsFromConfigURL(t *testing.T) {
	opts, err := optionsFromConfig(config.RedisConfig{URL: "redis://:secret@localhost:6380/3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Addr != "localhost:6380" {
		t.Fatalf("unexpected addr %q", opts.Addr)
	}
	if opts.DB != 3 {
		t.Fatalf("unexpected db %d", opts.DB)
	}
}

func TestKeyBuilders(t *testing.T) {
	c := &Client{}
	if got := c.OverlayKey("cart-1"); got != "sf:overlay:cart-1" {
		t.Fatalf("unexpected overlay key %q", got)
	}
	if got := c.PendingKey("cart-1"); got != "sf:pending:cart-1" {
		t.Fatalf("unexpected pending key %q", got)
	}
	if got := c.ViewerSessionKey("v-9"); got != "sf:viewer_session:v-9" {
		t.Fatalf("unexpected session key %q", got)
	}
	if got := c.NewsletterPendingKey("User@Example.com"); got != "sf:newsletter:pending:user@example.com" {
		t.Fatalf("unexpected newsletter key %q", got)
	}
	if got := c.RateLimitKey("newsletter:ip:1.2.3.4"); got != "sf:rate_limit:newsletter:ip:1.2.3.4" {
		t.Fatalf("unexpected rate limit key %q", got)
	}
}

type fakeWindowStore struct {
	cmdable
	counts map[string]int64
}

func (f *fakeWindowStore) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeWindowStore) Expire(context.Context, string, time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func TestFixedWindowAllow(t *testing.T) {
	store := &fakeWindowStore{counts: map[string]int64{}}
	c := &Client{store: store}
	ctx := context.Background()

	for i := int64(1); i <= 2; i++ {
		allowed, count, err := c.FixedWindowAllow(ctx, "newsletter:ip:1.2.3.4", 2, time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed || count != i {
			t.Fatalf("attempt %d: allowed=%v count=%d", i, allowed, count)
		}
	}

	allowed, count, err := c.FixedWindowAllow(ctx, "newsletter:ip:1.2.3.4", 2, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if allowed || count != 3 {
		t.Fatalf("over limit: allowed=%v count=%d", allowed, count)
	}

	if _, ok := store.counts["sf:rate_limit:newsletter:ip:1.2.3.4"]; !ok {
		t.Fatalf("counter key not namespaced: %v", store.counts)
	}
}
