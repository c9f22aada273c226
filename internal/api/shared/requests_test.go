package shared

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid payload",
			body: `{"email":"ann@example.com","password":"password123"}`,
		},
		{
			name:    "malformed JSON",
			body:    `{"email":`,
			wantErr: "invalid request body",
		},
		{
			name:    "failing validation rule",
			body:    `{"email":"not-an-email","password":"password123"}`,
			wantErr: "validation failed",
		},
		{
			name:    "missing required field",
			body:    `{"email":"ann@example.com"}`,
			wantErr: "validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewBufferString(tt.body))

			var target decodeTarget
			err := DecodeJSON(req, &target)

			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "ann@example.com", target.Email)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
