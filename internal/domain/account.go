package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Account validation errors.
var (
	ErrEmptyAccountID      = errors.New("account ID cannot be empty")
	ErrEmptyName           = errors.New("name cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Password length bounds. The upper bound is bcrypt's practical limit.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// Account represents a registered account holder. The plaintext password is
// only populated transiently during registration; neither it nor the hash
// ever appears in JSON output.
type Account struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, used only until hashing
	HashedPassword string    `json:"-"` // Never expose the hash
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewAccount creates a new Account with the given name, email and password.
// It generates a new UUID for the account ID and sets the timestamps.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the account structure with the plaintext
// password. The store is responsible for hashing it before persistence.
func NewAccount(name, email, password string) (*Account, error) {
	account := &Account{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
// Returns an error if any field fails validation.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAccountID
	}

	if a.Name == "" {
		return ErrEmptyName
	}

	if a.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(a.Email) {
		return ErrInvalidEmail
	}

	if a.Password != "" {
		if len(a.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(a.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else {
		// Without a plaintext password the account must already carry a
		// hash (the case for records loaded from the store).
		if a.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	return nil
}

// validEmailFormat performs basic validation of email format: a single "@"
// with a non-empty local part and a dotted domain.
func validEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domain := email[atIndex+1:]
	if len(domain) < 3 { // minimum would be "a.b"
		return false
	}

	dotIndex := -1
	for i, char := range domain {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	return dotIndex > 0 && dotIndex < len(domain)-1
}
