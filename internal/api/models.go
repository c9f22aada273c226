package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/tomhaskel/profiled/internal/domain"
)

// Common request/response structures

// SignupRequest defines the payload for the account registration endpoint.
type SignupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AccountView is the client-facing projection of an account. The password
// hash never leaves the server, so the view lists its fields explicitly.
type AccountView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountView projects an account into its client-facing view.
func NewAccountView(account *domain.Account) AccountView {
	return AccountView{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	}
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Token   string      `json:"token"`
	Account AccountView `json:"account"`
}

// ProfileView is the client-facing projection of a profile record. Image
// bytes are served by the dedicated image endpoint; the view only reports
// whether an image exists.
type ProfileView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Address   string    `json:"address"`
	HasImage  bool      `json:"has_image"`
	CreatedAt time.Time `json:"created_at"`
}

// NewProfileView projects a profile into its client-facing view.
// Metadata reads carry the content type but never the bytes, so either
// signals a stored image.
func NewProfileView(profile *domain.Profile) ProfileView {
	return ProfileView{
		ID:        profile.ID,
		Name:      profile.Name,
		Mobile:    profile.Mobile,
		Address:   profile.Address,
		HasImage:  profile.HasImage() || profile.ImageContentType != "",
		CreatedAt: profile.CreatedAt,
	}
}

// NewProfileViews projects a slice of profiles, preserving order.
func NewProfileViews(profiles []*domain.Profile) []ProfileView {
	views := make([]ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, NewProfileView(p))
	}
	return views
}

// BulkProfileEntry is one record in a bulk-insert payload.
type BulkProfileEntry struct {
	Name    string `json:"name"    validate:"required"`
	Mobile  string `json:"mobile"  validate:"required"`
	Address string `json:"address" validate:"required"`
}
