package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/tomhaskel/profiled/internal/domain"
	"github.com/tomhaskel/profiled/internal/store"
)

// MockProfileStore implements store.ProfileStore for testing
type MockProfileStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, profile *domain.Profile) error
	CreateBatchFn func(ctx context.Context, profiles []*domain.Profile) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetImageFn    func(ctx context.Context, id uuid.UUID) ([]byte, string, error)
	ListFn        func(ctx context.Context, opts store.ListOptions) ([]*domain.Profile, error)
	SearchFn      func(ctx context.Context, filter store.SearchFilter) ([]*domain.Profile, error)

	// Data for default implementation
	Profiles    map[uuid.UUID]*domain.Profile
	CreateError error
}

// NewMockProfileStore creates a new mock store with initialized defaults
func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{
		Profiles: make(map[uuid.UUID]*domain.Profile),
	}
}

// Create implements the store.ProfileStore interface
func (m *MockProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, profile)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.Profiles[profile.ID] = profile
	return nil
}

// CreateBatch implements the store.ProfileStore interface
func (m *MockProfileStore) CreateBatch(ctx context.Context, profiles []*domain.Profile) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, profiles)
	}

	if len(profiles) == 0 {
		return store.ErrEmptyBatch
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	for _, profile := range profiles {
		m.Profiles[profile.ID] = profile
	}
	return nil
}

// GetByID implements the store.ProfileStore interface
func (m *MockProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	profile, exists := m.Profiles[id]
	if !exists {
		return nil, store.ErrProfileNotFound
	}

	// Reads return metadata only, matching the real store.
	metadata := *profile
	metadata.Image = nil
	return &metadata, nil
}

// GetImage implements the store.ProfileStore interface
func (m *MockProfileStore) GetImage(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	if m.GetImageFn != nil {
		return m.GetImageFn(ctx, id)
	}

	profile, exists := m.Profiles[id]
	if !exists {
		return nil, "", store.ErrProfileNotFound
	}
	if !profile.HasImage() {
		return nil, "", store.ErrImageNotFound
	}
	return profile.Image, profile.ImageContentType, nil
}

// List implements the store.ProfileStore interface. The default
// implementation sorts by creation time only and honors offset/limit.
func (m *MockProfileStore) List(ctx context.Context, opts store.ListOptions) ([]*domain.Profile, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, opts)
	}

	profiles := make([]*domain.Profile, 0, len(m.Profiles))
	for _, p := range m.Profiles {
		metadata := *p
		metadata.Image = nil
		profiles = append(profiles, &metadata)
	}

	ascending := opts.SortOrder == store.SortAscending
	sort.Slice(profiles, func(i, j int) bool {
		if ascending {
			return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
		}
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})

	if opts.Offset >= len(profiles) {
		return []*domain.Profile{}, nil
	}
	profiles = profiles[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(profiles) {
		profiles = profiles[:opts.Limit]
	}
	return profiles, nil
}

// Search implements the store.ProfileStore interface
func (m *MockProfileStore) Search(
	ctx context.Context,
	filter store.SearchFilter,
) (
	[]*domain.Profile,
	error,
) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, filter)
	}

	matches := make([]*domain.Profile, 0)
	for _, p := range m.Profiles {
		if filter.Mobile != "" && p.Mobile != filter.Mobile {
			continue
		}
		if filter.Name != "" && !containsFold(p.Name, filter.Name) {
			continue
		}
		if filter.Address != "" && !containsFold(p.Address, filter.Address) {
			continue
		}
		metadata := *p
		metadata.Image = nil
		matches = append(matches, &metadata)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

// containsFold reports whether substr occurs in s, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
