package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/tomhaskel/profiled/internal/domain"
	"github.com/tomhaskel/profiled/internal/store"
)

// MockAccountStore implements store.AccountStore for testing
type MockAccountStore struct {
	// Function fields for customizable behavior
	CreateFn     func(ctx context.Context, account *domain.Account) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.Account, error)

	// Data for default implementation, keyed by email
	Accounts      map[string]*domain.Account
	LastAccountID uuid.UUID
	CreateError   error
}

// NewMockAccountStore creates a new mock store with initialized defaults
func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{
		Accounts: make(map[string]*domain.Account),
	}
}

// Create implements the store.AccountStore interface
func (m *MockAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, account)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Accounts[account.Email]; exists {
		return store.ErrEmailExists
	}

	// Mirror the real store: the plaintext never survives Create.
	account.HashedPassword = "hashed:" + account.Password
	account.Password = ""

	m.Accounts[account.Email] = account
	m.LastAccountID = account.ID
	return nil
}

// GetByID implements the store.AccountStore interface
func (m *MockAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, account := range m.Accounts {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

// GetByEmail implements the store.AccountStore interface
func (m *MockAccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	account, exists := m.Accounts[email]
	if !exists {
		return nil, store.ErrAccountNotFound
	}
	return account, nil
}
