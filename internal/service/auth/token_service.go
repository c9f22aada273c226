package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenService defines operations for managing signed session tokens.
type TokenService interface {
	// GenerateToken creates a signed token identifying the given account.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, accountID uuid.UUID, email string) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Verification is all-or-nothing: a malformed token, a bad
	// signature or an elapsed expiry all fail with an error and no partial
	// claims are returned.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the closed, structured identity carried by a session token.
// Every field is populated on decode; there is no untyped claim bag.
type Claims struct {
	// AccountID is the unique identifier of the account the token was issued for.
	AccountID uuid.UUID `json:"uid"`

	// Email is the account's email address at issuance time.
	Email string `json:"email"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
