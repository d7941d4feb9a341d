package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"kwikquiz/internal/domain"
	"kwikquiz/internal/store"
)

// accountRecord is the persisted row shape of the users table. The password
// never leaves this package.
type accountRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountDirectory owns the accounts collection and the logged-in session
// marker. Credentials are compared as plain text, matching the source system;
// see DESIGN.md for why that weakness is kept rather than fixed.
type AccountDirectory struct {
	store    store.Store
	accounts *collection[accountRecord]
	newID    func() string
}

func NewAccountDirectory(st store.Store) *AccountDirectory {
	return &AccountDirectory{
		store:    st,
		accounts: newCollection[accountRecord](st, store.KeyAccounts),
		newID:    uuid.NewString,
	}
}

// Register creates an account after checking username and email uniqueness.
// The write is durable before the account is returned.
func (d *AccountDirectory) Register(ctx context.Context, username, email, secret string) (domain.Account, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return domain.Account{}, fmt.Errorf("%w: username must not be empty", domain.ErrValidation)
	}
	if email == "" {
		return domain.Account{}, fmt.Errorf("%w: email must not be empty", domain.ErrValidation)
	}
	if secret == "" {
		return domain.Account{}, fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
	}

	records, err := d.accounts.load(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	for _, rec := range records {
		if rec.Username == username {
			return domain.Account{}, domain.ErrDuplicateUsername
		}
		if rec.Email == email {
			return domain.Account{}, domain.ErrDuplicateEmail
		}
	}

	rec := accountRecord{
		ID:       d.newID(),
		Username: username,
		Email:    email,
		Password: secret,
	}
	updated := append(append([]accountRecord(nil), records...), rec)
	if err := d.accounts.save(ctx, updated); err != nil {
		return domain.Account{}, err
	}
	return domain.Account{ID: rec.ID, Username: rec.Username, Email: rec.Email}, nil
}

// Authenticate looks up an account by exact email and secret match.
// A miss is ErrAccountNotFound, a normal outcome the caller branches on.
func (d *AccountDirectory) Authenticate(ctx context.Context, email, secret string) (domain.Account, error) {
	records, err := d.accounts.load(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	for _, rec := range records {
		if rec.Email == email && rec.Password == secret {
			return domain.Account{ID: rec.ID, Username: rec.Username, Email: rec.Email}, nil
		}
	}
	return domain.Account{}, domain.ErrAccountNotFound
}

// SaveCurrentUser marks acct as the logged-in user for subsequent runs.
func (d *AccountDirectory) SaveCurrentUser(ctx context.Context, acct domain.Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("encode current user: %w", err)
	}
	if err := d.store.Set(ctx, store.KeyCurrentUser, string(data)); err != nil {
		return fmt.Errorf("save current user: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in account, or ErrAccountNotFound when
// nobody is logged in.
func (d *AccountDirectory) CurrentUser(ctx context.Context) (domain.Account, error) {
	raw, err := d.store.Get(ctx, store.KeyCurrentUser)
	if errors.Is(err, store.ErrKeyNotFound) {
		return domain.Account{}, domain.ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("load current user: %w", err)
	}
	var acct domain.Account
	if err := json.Unmarshal([]byte(raw), &acct); err != nil {
		return domain.Account{}, fmt.Errorf("decode current user: %w", err)
	}
	return acct, nil
}

// ClearCurrentUser logs out.
func (d *AccountDirectory) ClearCurrentUser(ctx context.Context) error {
	return d.store.Delete(ctx, store.KeyCurrentUser)
}
