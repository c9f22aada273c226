package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tomhaskel/profiled/internal/domain"
)

// AccountStore defines the interface for account persistence.
type AccountStore interface {
	// Create saves a new account to the store.
	// It handles domain validation and password hashing internally.
	// Returns ErrEmailExists if the email is already taken.
	// Returns validation errors from the domain Account if data is invalid.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by its unique ID.
	// Returns ErrAccountNotFound if the account does not exist.
	// The returned account contains the hashed password but never a plaintext one.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByEmail retrieves an account by its email address.
	// Returns ErrAccountNotFound if the account does not exist.
	// The returned account contains the hashed password but never a plaintext one.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}
