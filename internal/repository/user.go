package repository

import (
	"context"
	"errors"

	"storefront-identity/internal/domain"
)

var (
	// ErrUserNotFound is returned by lookups when no record matches the key.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by Create when the email is already registered.
	// The store's unique constraint is the arbiter under concurrent writers.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines persistence operations for User records.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// LinkFederatedID sets the federated identity on an existing record and
	// marks it federated. The link is write-once: a record whose federated id
	// is already set keeps its original value.
	LinkFederatedID(ctx context.Context, id int64, federatedID string) error
}
