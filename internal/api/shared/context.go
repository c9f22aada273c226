package shared

import (
	"context"

	"github.com/google/uuid"
	authsvc "github.com/tomhaskel/profiled/internal/service/auth"
)

// ContextKey is the key type for context values set by this package.
type ContextKey string

// Context keys for various values
const (
	// IdentityContextKey is the context key for the authenticated identity.
	IdentityContextKey ContextKey = "identity"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID adds a fresh trace ID to the context.
// This is useful for correlating logs and error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, uuid.NewString())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithIdentity returns a copy of the context carrying the authenticated
// identity. Only the auth middleware should call this.
func WithIdentity(ctx context.Context, claims *authsvc.Claims) context.Context {
	return context.WithValue(ctx, IdentityContextKey, claims)
}

// IdentityFromContext extracts the authenticated identity from the context.
// Returns the claims and a boolean indicating if they were found.
func IdentityFromContext(ctx context.Context) (*authsvc.Claims, bool) {
	claims, ok := ctx.Value(IdentityContextKey).(*authsvc.Claims)
	return claims, ok && claims != nil
}
