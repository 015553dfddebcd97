package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/think41/catalog/internal/config"
)

func TestDisabledRedisIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if Enabled() || Client() != nil {
		t.Fatalf("want redis disabled")
	}
	lock, ok, err := TryLock(context.Background(), "migration", time.Minute)
	if err != nil || !ok || lock != nil {
		t.Fatalf("want no-op lock, got %v %v %v", lock, ok, err)
	}
	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release of nil lock should be a no-op: %v", err)
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	redisPrefix = "catalog"
	if got := BuildKey(" lock:x "); got != "catalog:lock:x" {
		t.Fatalf("want catalog:lock:x got %s", got)
	}
	if got := BuildKey(""); got != "catalog" {
		t.Fatalf("want bare prefix got %s", got)
	}
}
