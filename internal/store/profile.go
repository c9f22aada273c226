package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tomhaskel/profiled/internal/domain"
)

// Sort directions accepted by ListOptions.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// ListOptions controls pagination and ordering of profile listings.
// A zero value lists everything in descending creation order.
type ListOptions struct {
	// Offset is the number of records to skip.
	Offset int

	// Limit caps the number of records returned; 0 means no cap.
	Limit int

	// SortField names the column to order by. Implementations accept only
	// a whitelisted set of fields and default to creation time.
	SortField string

	// SortOrder is SortAscending or SortDescending.
	SortOrder string
}

// SearchFilter selects profiles by field matches. Text fields match
// case-insensitive substrings; Mobile matches exactly. Empty fields are
// ignored; at least one must be set.
type SearchFilter struct {
	Name    string
	Address string
	Mobile  string
}

// IsZero reports whether no criteria are set.
func (f SearchFilter) IsZero() bool {
	return f.Name == "" && f.Address == "" && f.Mobile == ""
}

// ProfileStore defines the interface for profile persistence.
// Reads return metadata only; image bytes travel exclusively through
// GetImage.
type ProfileStore interface {
	// Create saves a new profile, including any attached image payload,
	// as a single atomic write.
	// Returns validation errors from the domain Profile if data is invalid.
	Create(ctx context.Context, profile *domain.Profile) error

	// CreateBatch saves multiple profiles in one transaction.
	// Returns ErrEmptyBatch when no profiles are given; on any failure the
	// whole batch is rolled back.
	CreateBatch(ctx context.Context, profiles []*domain.Profile) error

	// GetByID retrieves a profile's metadata by its unique ID.
	// The Image field of the returned profile is never populated.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// GetImage retrieves the raw image payload and its content type.
	// Returns ErrProfileNotFound if the profile does not exist and
	// ErrImageNotFound if it exists without an image payload.
	GetImage(ctx context.Context, id uuid.UUID) ([]byte, string, error)

	// List returns profile metadata ordered and paginated per opts.
	List(ctx context.Context, opts ListOptions) ([]*domain.Profile, error)

	// Search returns profile metadata matching the filter, newest first.
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Profile, error)
}
