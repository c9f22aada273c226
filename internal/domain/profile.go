package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile validation errors.
var (
	ErrEmptyProfileID   = errors.New("profile ID cannot be empty")
	ErrEmptyProfileName = errors.New("profile name cannot be empty")
	ErrEmptyMobile      = errors.New("mobile number cannot be empty")
	ErrEmptyAddress     = errors.New("address cannot be empty")
	ErrEmptyImage       = errors.New("image payload cannot be empty")
	ErrInvalidImageType = errors.New("content type must be an image type")
	ErrMissingImageType = errors.New("image content type cannot be empty")
)

// Profile is a stored contact record with an optional embedded image
// payload. The raw bytes never appear in JSON output; they are served only
// through the dedicated image endpoint.
type Profile struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Mobile           string    `json:"mobile"`
	Address          string    `json:"address"`
	Image            []byte    `json:"-"`
	ImageContentType string    `json:"image_content_type,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewProfile creates a new Profile with the given contact fields.
// It generates a new UUID and sets the creation timestamp.
// Returns an error if validation fails.
func NewProfile(name, mobile, address string) (*Profile, error) {
	profile := &Profile{
		ID:        uuid.New(),
		Name:      name,
		Mobile:    mobile,
		Address:   address,
		CreatedAt: time.Now().UTC(),
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// AttachImage sets the image payload and its declared content type.
// The payload is immutable: attaching to a profile that already carries an
// image returns ErrImageAlreadySet.
func (p *Profile) AttachImage(data []byte, contentType string) error {
	if p.HasImage() {
		return ErrImageAlreadySet
	}

	if len(data) == 0 {
		return ErrEmptyImage
	}

	if contentType == "" {
		return ErrMissingImageType
	}

	if !strings.HasPrefix(contentType, "image/") {
		return ErrInvalidImageType
	}

	p.Image = data
	p.ImageContentType = contentType
	return nil
}

// HasImage reports whether the profile carries an image payload.
func (p *Profile) HasImage() bool {
	return len(p.Image) > 0
}

// Validate checks if the Profile has valid data.
// All three contact fields are mandatory.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProfileID
	}

	if p.Name == "" {
		return ErrEmptyProfileName
	}

	if p.Mobile == "" {
		return ErrEmptyMobile
	}

	if p.Address == "" {
		return ErrEmptyAddress
	}

	return nil
}
