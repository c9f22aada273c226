package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tomhaskel/profiled/internal/domain"
	"github.com/tomhaskel/profiled/internal/platform/logger"
	"github.com/tomhaskel/profiled/internal/service/auth"
	"github.com/tomhaskel/profiled/internal/store"
)

// AccountStore implements the store.AccountStore interface
// using a PostgreSQL database as the storage backend.
type AccountStore struct {
	db         store.DBTX
	bcryptCost int
	logger     *slog.Logger
}

// NewAccountStore creates a new PostgreSQL implementation of the
// AccountStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller, and the bcrypt cost
// used when hashing passwords on create.
// If logger is nil, a default logger will be used.
func NewAccountStore(db store.DBTX, bcryptCost int, logger *slog.Logger) *AccountStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AccountStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     logger.With(slog.String("component", "account_store")),
	}
}

// Ensure AccountStore implements store.AccountStore interface
var _ store.AccountStore = (*AccountStore)(nil)

// Create implements store.AccountStore.Create
// It validates the account, hashes the plaintext password and inserts the
// row. Returns store.ErrEmailExists on a duplicate email.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("account validation failed during create",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return err
	}

	if account.Password != "" {
		hashed, err := auth.HashPassword(account.Password, s.bcryptCost)
		if err != nil {
			log.Error("failed to hash password",
				slog.String("error", err.Error()),
				slog.String("account_id", account.ID.String()))
			return err
		}
		account.HashedPassword = hashed
		account.Password = ""
	}

	query := `
		INSERT INTO accounts (id, name, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.Name,
		account.Email,
		account.HashedPassword,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("duplicate email during account creation",
				slog.String("account_id", account.ID.String()))
			return store.ErrEmailExists
		}

		log.Error("failed to create account",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return MapError(err)
	}

	log.Info("account created successfully",
		slog.String("account_id", account.ID.String()))
	return nil
}

// GetByID implements store.AccountStore.GetByID
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, hashed_password, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var account domain.Account
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.HashedPassword,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found", slog.String("account_id", id.String()))
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by ID",
			slog.String("error", err.Error()),
			slog.String("account_id", id.String()))
		return nil, MapError(err)
	}

	return &account, nil
}

// GetByEmail implements store.AccountStore.GetByEmail
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, email, hashed_password, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`

	var account domain.Account
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.HashedPassword,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found by email")
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by email",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return &account, nil
}
