package postgres_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomhaskel/profiled/internal/domain"
	"github.com/tomhaskel/profiled/internal/platform/postgres"
	"github.com/tomhaskel/profiled/internal/store"
)

func mustNewProfile(t *testing.T, name string) *domain.Profile {
	t.Helper()
	profile, err := domain.NewProfile(name, "1234567890", "1 Main St")
	require.NoError(t, err)
	return profile
}

func TestProfileStore_CreateAndGet(t *testing.T) {
	cleanTables(t)
	ctx := testContext(t)
	profileStore := postgres.NewProfileStore(testDB, nil)

	profile := mustNewProfile(t, "Ann")
	require.NoError(t, profile.AttachImage([]byte{0x89, 'P', 'N', 'G'}, "image/png"))
	require.NoError(t, profileStore.Create(ctx, profile))

	found, err := profileStore.GetByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", found.Name)
	assert.Equal(t, "1234567890", found.Mobile)
	assert.Equal(t, "image/png", found.ImageContentType)
	// Metadata reads never carry the payload.
	assert.Nil(t, found.Image)

	_, err = profileStore.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestProfileStore_GetImage(t *testing.T) {
	cleanTables(t)
	ctx := testContext(t)
	profileStore := postgres.NewProfileStore(testDB, nil)

	withImage := mustNewProfile(t, "Ann")
	imageBytes := []byte{0x89, 'P', 'N', 'G', 1, 2, 3, 4}
	require.NoError(t, withImage.AttachImage(imageBytes, "image/png"))
	require.NoError(t, profileStore.Create(ctx, withImage))

	withoutImage := mustNewProfile(t, "Bob")
	require.NoError(t, profileStore.Create(ctx, withoutImage))

	data, contentType, err := profileStore.GetImage(ctx, withImage.ID)
	require.NoError(t, err)
	assert.Equal(t, imageBytes, data)
	assert.Equal(t, "image/png", contentType)

	_, _, err = profileStore.GetImage(ctx, withoutImage.ID)
	assert.ErrorIs(t, err, store.ErrImageNotFound)

	_, _, err = profileStore.GetImage(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrProfileNotFound)
}

func TestProfileStore_List_DescendingByCreation(t *testing.T) {
	cleanTables(t)
	ctx := testContext(t)
	profileStore := postgres.NewProfileStore(testDB, nil)

	base := time.Now().UTC().Truncate(time.Second)
	names := []string{"first", "second", "third"}
	for i, name := range names {
		profile := mustNewProfile(t, name)
		profile.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, profileStore.Create(ctx, profile))
	}

	listed, err := profileStore.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "third", listed[0].Name)
	assert.Equal(t, "second", listed[1].Name)
	assert.Equal(t, "first", listed[2].Name)
}

func TestProfileStore_List_PaginationAndSort(t *testing.T) {
	cleanTables(t)
	ctx := testContext(t)
	profileStore := postgres.NewProfileStore(testDB, nil)

	for _, name := range []string{"carol", "alice", "bob"} {
		require.NoError(t, profileStore.Create(ctx, mustNewProfile(t, name)))
	}

	listed, err := profileStore.List(ctx, store.ListOptions{
		SortField: "name",
		SortOrder: store.SortAscending,
		Limit:     2,
		Offset:    1,
	})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "bob", listed[0].Name)
	assert.Equal(t, "carol", listed[1].Name)
}

func TestProfileStore_Search(t *testing.T) {
	cleanTables(t)
	ctx := testContext(t)
	profileStore := postgres.NewProfileStore(testDB, nil)

	ann, err := domain.NewProfile("Ann Smith", "1112223333", "1 Main St")
	require.NoError(t, err)
	bob, err := domain.NewProfile("Bob Jones", "4445556666", "2 Oak Ave")
	require.NoError(t, err)
	require.NoError(t, profileStore.Create(ctx, ann))
	require.NoError(t, profileStore.Create(ctx, bob))

	// Case-insensitive substring on name.
	found, err := profileStore.Search(ctx, store.SearchFilter{Name: "smith"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ann.ID, found[0].ID)

	// Exact match on mobile.
	found, err = profileStore.Search(ctx, store.SearchFilter{Mobile: "4445556666"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, bob.ID, found[0].ID)

	// Partial mobile does not match.
	found, err = profileStore.Search(ctx, store.SearchFilter{Mobile: "444"})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestProfileStore_CreateBatch(t *testing.T) {
	cleanTables(t)
	ctx := testContext(t)
	profileStore := postgres.NewProfileStore(testDB, nil)

	profiles := []*domain.Profile{
		mustNewProfile(t, "Ann"),
		mustNewProfile(t, "Bob"),
		mustNewProfile(t, "Carol"),
	}
	require.NoError(t, profileStore.CreateBatch(ctx, profiles))

	listed, err := profileStore.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	assert.ErrorIs(t, profileStore.CreateBatch(ctx, nil), store.ErrEmptyBatch)
}

func TestProfileStore_CreateBatch_RollsBackOnFailure(t *testing.T) {
	cleanTables(t)
	ctx := testContext(t)
	profileStore := postgres.NewProfileStore(testDB, nil)

	existing := mustNewProfile(t, "Ann")
	require.NoError(t, profileStore.Create(ctx, existing))

	// Reusing an existing ID violates the primary key and must roll back
	// the whole batch.
	dup := mustNewProfile(t, "Dup")
	dup.ID = existing.ID
	batch := []*domain.Profile{mustNewProfile(t, "Bob"), dup}

	err := profileStore.CreateBatch(ctx, batch)
	require.Error(t, err)

	listed, err := profileStore.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
