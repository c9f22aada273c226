package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomhaskel/profiled/internal/api/shared"
	"github.com/tomhaskel/profiled/internal/config"
	"github.com/tomhaskel/profiled/internal/domain"
	"github.com/tomhaskel/profiled/internal/store"
)

// listSortFields enumerates the sort values the listing endpoint accepts.
var listSortFields = map[string]bool{
	"name":       true,
	"mobile":     true,
	"created_at": true,
}

// ProfileHandler handles profile ingest, lookup, listing, search and bulk
// insert requests.
type ProfileHandler struct {
	profileStore store.ProfileStore
	uploadConfig config.UploadConfig
}

// NewProfileHandler creates a new ProfileHandler with the given dependencies.
func NewProfileHandler(profileStore store.ProfileStore, uploadConfig config.UploadConfig) *ProfileHandler {
	return &ProfileHandler{
		profileStore: profileStore,
		uploadConfig: uploadConfig,
	}
}

// Create handles POST /api/users: a multipart form with three required text
// fields and one image file, persisted as a single record.
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Bound the whole request body; the form overhead margin keeps a file of
	// exactly MaxBytes acceptable.
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadConfig.MaxBytes+formOverheadBytes)

	if err := r.ParseMultipartForm(h.uploadConfig.MaxBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	name := strings.TrimSpace(r.FormValue("name"))
	mobile := strings.TrimSpace(r.FormValue("mobile"))
	address := strings.TrimSpace(r.FormValue("address"))
	if name == "" || mobile == "" || address == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "name, mobile and address are required")
		return
	}

	file, header, err := h.formFile(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.uploadConfig.MaxBytes {
		shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		shared.RespondWithError(w, r, http.StatusUnsupportedMediaType, "Only image uploads are accepted")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, h.uploadConfig.MaxBytes+1))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}
	if int64(len(data)) > h.uploadConfig.MaxBytes {
		shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "File too large")
		return
	}
	if len(data) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No file uploaded")
		return
	}

	profile, err := domain.NewProfile(name, mobile, address)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid profile data: "+err.Error())
		return
	}
	if err := profile.AttachImage(data, contentType); err != nil {
		shared.RespondWithError(w, r, http.StatusUnsupportedMediaType, "Only image uploads are accepted")
		return
	}

	if err := h.profileStore.Create(r.Context(), profile); err != nil {
		slog.Error("failed to create profile", "error", err)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create profile", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, "Profile created", NewProfileView(profile))
}

// formOverheadBytes is slack for multipart boundaries and text fields so a
// payload of exactly the configured maximum still parses.
const formOverheadBytes = 64 * 1024

// formFile returns the uploaded file, accepting either "image" or "file" as
// the field name.
func (h *ProfileHandler) formFile(r *http.Request) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile("image")
	if err == nil {
		return file, header, nil
	}
	return r.FormFile("file")
}

// List handles GET /api/users with optional limit, offset, sort and order
// query parameters. Defaults to newest first.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	opts := store.ListOptions{
		SortField: "created_at",
		SortOrder: store.SortDescending,
	}

	query := r.URL.Query()
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		opts.Limit = limit
	}
	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid offset parameter")
			return
		}
		opts.Offset = offset
	}
	if raw := query.Get("sort"); raw != "" {
		if !listSortFields[raw] {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sort field")
			return
		}
		opts.SortField = raw
	}
	if raw := query.Get("order"); raw != "" {
		if raw != store.SortAscending && raw != store.SortDescending {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid order parameter")
			return
		}
		opts.SortOrder = raw
	}

	profiles, err := h.profileStore.List(r.Context(), opts)
	if err != nil {
		slog.Error("failed to list profiles", "error", err)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to list profiles", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "OK", NewProfileViews(profiles))
}

// Search handles GET /api/users/search. Name and address match substrings
// case-insensitively; mobile matches exactly. At least one criterion is
// required.
func (h *ProfileHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.SearchFilter{
		Name:    strings.TrimSpace(query.Get("name")),
		Address: strings.TrimSpace(query.Get("address")),
		Mobile:  strings.TrimSpace(query.Get("mobile")),
	}
	if filter.IsZero() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "At least one search criterion is required")
		return
	}

	profiles, err := h.profileStore.Search(r.Context(), filter)
	if err != nil {
		slog.Error("failed to search profiles", "error", err)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to search profiles", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "OK", NewProfileViews(profiles))
}

// BulkCreate handles POST /api/users/bulk: a JSON array of contact records
// inserted in a single transaction. Image payloads cannot be attached here.
func (h *ProfileHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var entries []BulkProfileEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Request body must be a JSON array", err)
		return
	}
	if len(entries) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Request body must be a non-empty array")
		return
	}

	profiles := make([]*domain.Profile, 0, len(entries))
	for _, entry := range entries {
		if err := shared.Validate(&entry); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request data", err)
			return
		}
		profile, err := domain.NewProfile(entry.Name, entry.Mobile, entry.Address)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid profile data: "+err.Error())
			return
		}
		profiles = append(profiles, profile)
	}

	if err := h.profileStore.CreateBatch(r.Context(), profiles); err != nil {
		status := MapErrorToStatusCode(err)
		if status == http.StatusInternalServerError {
			slog.Error("failed to bulk create profiles", "error", err, "count", len(profiles))
		}
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, "Profiles created", NewProfileViews(profiles))
}

// GetByID handles GET /api/users/{id}, returning metadata only.
func (h *ProfileHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Profile not found")
			return
		}
		slog.Error("failed to get profile", "error", err, "profile_id", id)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to get profile", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "OK", NewProfileView(profile))
}

// GetImage handles GET /api/users/{id}/image, streaming the stored bytes
// with their declared content type. A record without an image is a 404.
func (h *ProfileHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	data, contentType, err := h.profileStore.GetImage(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrImageNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound, "Image not found")
		case errors.Is(err, store.ErrProfileNotFound):
			shared.RespondWithError(w, r, http.StatusNotFound, "Profile not found")
		default:
			slog.Error("failed to get image", "error", err, "profile_id", id)
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to get image", err)
		}
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write image response", "error", err, "profile_id", id)
	}
}

// parseID extracts and validates the {id} path parameter. Malformed ids are
// a client error, never a server one.
func (h *ProfileHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
