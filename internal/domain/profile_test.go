package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomhaskel/profiled/internal/domain"
)

func TestNewProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		profileName string
		mobile      string
		address     string
		wantErr     error
	}{
		{
			name:        "valid profile",
			profileName: "Ann",
			mobile:      "1234567890",
			address:     "1 Main St",
			wantErr:     nil,
		},
		{
			name:        "missing name",
			profileName: "",
			mobile:      "1234567890",
			address:     "1 Main St",
			wantErr:     domain.ErrEmptyProfileName,
		},
		{
			name:        "missing mobile",
			profileName: "Ann",
			mobile:      "",
			address:     "1 Main St",
			wantErr:     domain.ErrEmptyMobile,
		},
		{
			name:        "missing address",
			profileName: "Ann",
			mobile:      "1234567890",
			address:     "",
			wantErr:     domain.ErrEmptyAddress,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			profile, err := domain.NewProfile(tt.profileName, tt.mobile, tt.address)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, profile)
				return
			}

			require.NoError(t, err)
			assert.False(t, profile.HasImage())
			assert.False(t, profile.CreatedAt.IsZero())
		})
	}
}

func TestProfile_AttachImage(t *testing.T) {
	t.Parallel()

	newProfile := func(t *testing.T) *domain.Profile {
		t.Helper()
		profile, err := domain.NewProfile("Ann", "1234567890", "1 Main St")
		require.NoError(t, err)
		return profile
	}

	t.Run("valid image", func(t *testing.T) {
		t.Parallel()

		profile := newProfile(t)
		require.NoError(t, profile.AttachImage([]byte{0x89, 'P', 'N', 'G'}, "image/png"))
		assert.True(t, profile.HasImage())
		assert.Equal(t, "image/png", profile.ImageContentType)
	})

	t.Run("non-image content type", func(t *testing.T) {
		t.Parallel()

		profile := newProfile(t)
		err := profile.AttachImage([]byte("hello"), "text/plain")
		assert.ErrorIs(t, err, domain.ErrInvalidImageType)
		assert.False(t, profile.HasImage())
	})

	t.Run("empty payload", func(t *testing.T) {
		t.Parallel()

		profile := newProfile(t)
		err := profile.AttachImage(nil, "image/png")
		assert.ErrorIs(t, err, domain.ErrEmptyImage)
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		profile := newProfile(t)
		err := profile.AttachImage([]byte{1, 2, 3}, "")
		assert.ErrorIs(t, err, domain.ErrMissingImageType)
	})

	t.Run("image is immutable once set", func(t *testing.T) {
		t.Parallel()

		profile := newProfile(t)
		require.NoError(t, profile.AttachImage([]byte{1, 2, 3}, "image/png"))

		err := profile.AttachImage([]byte{4, 5, 6}, "image/jpeg")
		assert.ErrorIs(t, err, domain.ErrImageAlreadySet)
		assert.Equal(t, []byte{1, 2, 3}, profile.Image)
		assert.Equal(t, "image/png", profile.ImageContentType)
	})
}

// Raw image bytes must never appear in serialized output; they are only
// served through the dedicated image endpoint.
func TestProfile_JSONExcludesImageBytes(t *testing.T) {
	t.Parallel()

	profile, err := domain.NewProfile("Ann", "1234567890", "1 Main St")
	require.NoError(t, err)
	require.NoError(t, profile.AttachImage([]byte("rawimagebytes"), "image/png"))

	data, err := json.Marshal(profile)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "rawimagebytes")
	assert.Contains(t, string(data), "image/png")
}
