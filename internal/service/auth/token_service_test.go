package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomhaskel/profiled/internal/config"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-signing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-signing"
)

func testAuthConfig(secret string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: 60,
	}
}

// newTestTokenService builds a service with a fixed clock for predictable
// expiry behavior.
func newTestTokenService(secret string, lifetime time.Duration, now func() time.Time) *hmacTokenService {
	return &hmacTokenService{
		signingKey:    []byte(secret),
		tokenLifetime: lifetime,
		timeFunc:      now,
		clockSkew:     0,
	}
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService(testAuthConfig("short"))
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	fixedTime := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := 24 * time.Hour
	accountID := uuid.New()
	email := "ann@example.com"

	svc := newTestTokenService(testSecret, lifetime, func() time.Time { return fixedTime })

	token, err := svc.GenerateToken(context.Background(), accountID, email)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, accountID.String(), claims.Subject)
	// Compare Unix timestamps to avoid timezone issues
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_Failures(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := time.Hour
	accountID := uuid.New()

	issuer := newTestTokenService(testSecret, lifetime, func() time.Time { return issuedAt })
	token, err := issuer.GenerateToken(context.Background(), accountID, "ann@example.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		secret  string
		wantErr error
	}{
		{
			name:    "expired token with valid signature",
			token:   token,
			now:     issuedAt.Add(lifetime + time.Minute),
			secret:  testSecret,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "wrong signing secret",
			token:   token,
			now:     issuedAt.Add(time.Minute),
			secret:  wrongSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed token",
			token:   "not-a-jwt",
			now:     issuedAt.Add(time.Minute),
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "tampered payload",
			token:   tamperPayload(token),
			now:     issuedAt.Add(time.Minute),
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty token",
			token:   "",
			now:     issuedAt.Add(time.Minute),
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			verifier := newTestTokenService(tt.secret, lifetime, func() time.Time { return tt.now })
			claims, err := verifier.ValidateToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestValidateToken_StillValidJustBeforeExpiry(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	lifetime := time.Hour
	accountID := uuid.New()

	issuer := newTestTokenService(testSecret, lifetime, func() time.Time { return issuedAt })
	token, err := issuer.GenerateToken(context.Background(), accountID, "ann@example.com")
	require.NoError(t, err)

	verifier := newTestTokenService(testSecret, lifetime, func() time.Time {
		return issuedAt.Add(lifetime - time.Second)
	})
	claims, err := verifier.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
}

// tamperPayload flips a character in the payload segment of a JWT so the
// signature no longer matches.
func tamperPayload(token string) string {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || len(parts[1]) == 0 {
		return token + "x"
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}
