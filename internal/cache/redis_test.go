package cache

import (
	"context"
	"testing"
	"time"

	"github.com/bangmod-market/internal/config"
	"github.com/bangmod-market/internal/models"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis failed: %v", err)
	}
	ctx := context.Background()
	if Enabled() || Client() != nil {
		t.Fatalf("cache should be disabled")
	}
	if err := SetUserAuthState(ctx, &UserAuthState{UserID: 1}); err != nil {
		t.Fatalf("set should be noop: %v", err)
	}
	state, hit, err := GetUserAuthState(ctx, 1)
	if err != nil || hit || state != nil {
		t.Fatalf("get should miss: %v %v %v", state, hit, err)
	}
	if _, hit, _ := GetStorageList(ctx); hit {
		t.Fatalf("storage list should miss")
	}
	count, ttl, err := IncrWindow(ctx, "login:x", 60)
	if err != nil || count != 0 || ttl != 0 {
		t.Fatalf("window counter should be noop: %d %d %v", count, ttl, err)
	}
}

func TestBuildUserAuthState(t *testing.T) {
	invalidBefore := time.Unix(1700000000, 0)
	state := BuildUserAuthState(&models.User{
		ID:                 9,
		Role:               "seller",
		IsActive:           true,
		TokenVersion:       3,
		TokenInvalidBefore: &invalidBefore,
	})
	if state.UserID != 9 || state.Role != "seller" || !state.IsActive || state.TokenVersion != 3 {
		t.Fatalf("unexpected state: %+v", state)
	}
	if state.TokenInvalidBefore != 1700000000 {
		t.Fatalf("unexpected invalid before: %d", state.TokenInvalidBefore)
	}
	if BuildUserAuthState(nil) != nil {
		t.Fatalf("nil user should produce nil state")
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	if got := buildKey(" auth:user:1 "); got != redisPrefix+":auth:user:1" {
		t.Fatalf("unexpected key %s", got)
	}
	if got := buildKey(""); got != redisPrefix {
		t.Fatalf("unexpected empty key %s", got)
	}
}
