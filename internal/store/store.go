// Package store defines the persistence provider contract: an opaque durable
// mapping from string keys to string blobs. Components serialize whole
// collections as JSON under reserved keys and write them back after every
// mutation.
package store

import (
	"context"
	"errors"
)

// Reserved keys. Each holds one JSON blob owned by a single component.
const (
	KeyAccounts    = "accounts"
	KeyQuizzes     = "quizzes"
	KeyResults     = "results"
	KeyCurrentUser = "session.currentUser"
)

// ErrKeyNotFound is returned by Get when the key has never been written.
// Components treat it as an empty collection, not a failure.
var ErrKeyNotFound = errors.New("key not found")

// Store abstracts how blobs are persisted (in-memory, Redis, Postgres).
// Any error other than ErrKeyNotFound is a persistence failure and
// propagates to the caller unchanged.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
