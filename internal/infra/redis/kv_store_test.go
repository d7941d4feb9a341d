package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"kwikquiz/internal/store"
)

func TestKVStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewKVStore(client, 0)

	if _, err := kv.Get(ctx, "accounts"); !errors.Is(err, store.ErrKeyNotFound) {
		t.Fatalf("expected key-not-found, got %v", err)
	}

	if err := kv.Set(ctx, "accounts", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("kwikquiz:accounts") {
		t.Fatalf("expected prefixed redis key to be set")
	}
	value, err := kv.Get(ctx, "accounts")
	if err != nil || value != `[]` {
		t.Fatalf("get: value=%q err=%v", value, err)
	}

	if err := kv.Delete(ctx, "accounts"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("kwikquiz:accounts") {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestKVStoreTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	kv := NewKVStore(client, time.Minute)

	if err := kv.Set(context.Background(), "results", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if mr.TTL("kwikquiz:results") != time.Minute {
		t.Fatalf("expected ttl to be applied, got %v", mr.TTL("kwikquiz:results"))
	}
}
