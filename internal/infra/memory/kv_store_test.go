package memory

import (
	"context"
	"errors"
	"testing"

	"kwikquiz/internal/store"
)

func TestKVStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewKVStore()

	if _, err := kv.Get(ctx, "quizzes"); !errors.Is(err, store.ErrKeyNotFound) {
		t.Fatalf("expected key-not-found, got %v", err)
	}

	if err := kv.Set(ctx, "quizzes", `[{"id":"1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := kv.Get(ctx, "quizzes")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != `[{"id":"1"}]` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := kv.Delete(ctx, "quizzes"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "quizzes"); !errors.Is(err, store.ErrKeyNotFound) {
		t.Fatalf("expected key-not-found after delete, got %v", err)
	}
}
