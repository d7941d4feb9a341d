package app_test

import (
	"context"
	"errors"
	"testing"

	"kwikquiz/internal/app"
	"kwikquiz/internal/domain"
	"kwikquiz/internal/infra/memory"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	dir := app.NewAccountDirectory(memory.NewKVStore())

	acct, err := dir.Register(ctx, "alice", "a@x.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if acct.ID == "" || acct.Username != "alice" || acct.Email != "a@x.com" {
		t.Fatalf("unexpected account %+v", acct)
	}

	authed, err := dir.Authenticate(ctx, "a@x.com", "pw")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != acct.ID {
		t.Fatalf("expected same account, got %+v", authed)
	}

	if _, err := dir.Authenticate(ctx, "a@x.com", "wrong"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account-not-found for bad secret, got %v", err)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	ctx := context.Background()
	dir := app.NewAccountDirectory(memory.NewKVStore())

	if _, err := dir.Register(ctx, "alice", "a@x.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := dir.Register(ctx, "alice", "b@y.com", "pw2"); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected duplicate username, got %v", err)
	}
	if _, err := dir.Register(ctx, "bob", "a@x.com", "pw3"); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected duplicate email, got %v", err)
	}
}

func TestRegisterDurableBeforeReturn(t *testing.T) {
	ctx := context.Background()
	st := memory.NewKVStore()

	if _, err := app.NewAccountDirectory(st).Register(ctx, "alice", "a@x.com", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// A fresh directory over the same store must see the row.
	if _, err := app.NewAccountDirectory(st).Authenticate(ctx, "a@x.com", "pw"); err != nil {
		t.Fatalf("expected persisted account, got %v", err)
	}
}

func TestCurrentUserLifecycle(t *testing.T) {
	ctx := context.Background()
	dir := app.NewAccountDirectory(memory.NewKVStore())

	if _, err := dir.CurrentUser(ctx); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected nobody logged in, got %v", err)
	}

	acct, err := dir.Register(ctx, "alice", "a@x.com", "pw")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := dir.SaveCurrentUser(ctx, acct); err != nil {
		t.Fatalf("save current user: %v", err)
	}

	current, err := dir.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if current.ID != acct.ID {
		t.Fatalf("expected %+v, got %+v", acct, current)
	}

	if err := dir.ClearCurrentUser(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := dir.CurrentUser(ctx); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected logged out, got %v", err)
	}
}
