package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tomhaskel/profiled/internal/domain"
	"github.com/tomhaskel/profiled/internal/platform/logger"
	"github.com/tomhaskel/profiled/internal/store"
)

// sortColumns whitelists the columns a listing may be ordered by.
// Anything else falls back to creation time.
var sortColumns = map[string]string{
	"name":       "name",
	"mobile":     "mobile",
	"created_at": "created_at",
}

// ProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend. Image payloads are
// stored inline in a bytea column so a profile and its image are written
// atomically in one insert.
type ProfileStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface. It accepts a database connection that should be
// initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewProfileStore(db *sql.DB, logger *slog.Logger) *ProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure ProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*ProfileStore)(nil)

const insertProfileQuery = `
	INSERT INTO profiles (id, name, mobile, address, image, image_content_type, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
`

// Create implements store.ProfileStore.Create
// Fields and image bytes land in a single row, so the write is atomic.
func (s *ProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	if err := execInsertProfile(ctx, s.db, profile); err != nil {
		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return MapError(err)
	}

	log.Info("profile created successfully",
		slog.String("profile_id", profile.ID.String()),
		slog.Bool("has_image", profile.HasImage()))
	return nil
}

// CreateBatch implements store.ProfileStore.CreateBatch
// All profiles are inserted in one transaction; a failure on any record
// rolls back the whole batch.
func (s *ProfileStore) CreateBatch(ctx context.Context, profiles []*domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(profiles) == 0 {
		return store.ErrEmptyBatch
	}

	for _, profile := range profiles {
		if err := profile.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, profile := range profiles {
			if err := execInsertProfile(ctx, tx, profile); err != nil {
				return MapError(err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to create profile batch",
			slog.String("error", err.Error()),
			slog.Int("batch_size", len(profiles)))
		return err
	}

	log.Info("profile batch created successfully",
		slog.Int("batch_size", len(profiles)))
	return nil
}

// execInsertProfile runs the profile insert on either a pool or a transaction.
func execInsertProfile(ctx context.Context, db store.DBTX, profile *domain.Profile) error {
	var image []byte
	var contentType sql.NullString
	if profile.HasImage() {
		image = profile.Image
		contentType = sql.NullString{String: profile.ImageContentType, Valid: true}
	}

	_, err := db.ExecContext(
		ctx,
		insertProfileQuery,
		profile.ID,
		profile.Name,
		profile.Mobile,
		profile.Address,
		image,
		contentType,
		profile.CreatedAt,
	)
	return err
}

// GetByID implements store.ProfileStore.GetByID
// The image payload itself is never loaded here, only its content type so
// callers can tell whether an image exists.
func (s *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, mobile, address, image_content_type, created_at
		FROM profiles
		WHERE id = $1
	`

	profile, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("profile_id", id.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile by ID",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return nil, MapError(err)
	}

	return profile, nil
}

// GetImage implements store.ProfileStore.GetImage
// Returns store.ErrProfileNotFound when the row is missing and
// store.ErrImageNotFound when the row exists with a NULL payload.
func (s *ProfileStore) GetImage(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT image, image_content_type
		FROM profiles
		WHERE id = $1
	`

	var image []byte
	var contentType sql.NullString
	err := s.db.QueryRowContext(ctx, query, id).Scan(&image, &contentType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found for image fetch",
				slog.String("profile_id", id.String()))
			return nil, "", store.ErrProfileNotFound
		}
		log.Error("failed to get profile image",
			slog.String("error", err.Error()),
			slog.String("profile_id", id.String()))
		return nil, "", MapError(err)
	}

	if len(image) == 0 || !contentType.Valid {
		log.Debug("profile has no image payload",
			slog.String("profile_id", id.String()))
		return nil, "", store.ErrImageNotFound
	}

	return image, contentType.String, nil
}

// List implements store.ProfileStore.List
func (s *ProfileStore) List(ctx context.Context, opts store.ListOptions) ([]*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	column, ok := sortColumns[opts.SortField]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if opts.SortOrder == store.SortAscending {
		direction = "ASC"
	}

	// column and direction come from whitelists above, never from input.
	query := fmt.Sprintf(`
		SELECT id, name, mobile, address, image_content_type, created_at
		FROM profiles
		ORDER BY %s %s
		OFFSET $1
	`, column, direction)

	args := []any{opts.Offset}
	if opts.Limit > 0 {
		query += " LIMIT $2"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list profiles", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectProfiles(rows)
}

// Search implements store.ProfileStore.Search
// Text fields match case-insensitive substrings, mobile matches exactly.
func (s *ProfileStore) Search(ctx context.Context, filter store.SearchFilter) ([]*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, mobile, address, image_content_type, created_at
		FROM profiles
		WHERE 1=1
	`
	var args []any

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.Address != "" {
		args = append(args, "%"+filter.Address+"%")
		query += fmt.Sprintf(" AND address ILIKE $%d", len(args))
	}
	if filter.Mobile != "" {
		args = append(args, filter.Mobile)
		query += fmt.Sprintf(" AND mobile = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to search profiles", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectProfiles(rows)
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProfile reads one metadata row. The bytea column is never selected.
func scanProfile(row rowScanner) (*domain.Profile, error) {
	var profile domain.Profile
	var contentType sql.NullString

	err := row.Scan(
		&profile.ID,
		&profile.Name,
		&profile.Mobile,
		&profile.Address,
		&contentType,
		&profile.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if contentType.Valid {
		profile.ImageContentType = contentType.String
	}
	return &profile, nil
}

// collectProfiles drains a result set of metadata rows.
func collectProfiles(rows *sql.Rows) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, MapError(err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return profiles, nil
}
