package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomhaskel/profiled/internal/api/shared"
	"github.com/tomhaskel/profiled/internal/config"
	"github.com/tomhaskel/profiled/internal/mocks"
	"github.com/tomhaskel/profiled/internal/service/auth"
)

// newTestApplication builds an application with mock stores and a real HMAC
// token service so routes can be exercised end to end.
func newTestApplication(t *testing.T) (*application, *mocks.MockAccountStore, *mocks.MockProfileStore) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, LogLevel: "info", Env: "test"},
		Auth: config.AuthConfig{
			JWTSecret:            "test-secret-key-thats-long-enough-for-hmac",
			TokenLifetimeMinutes: 60,
		},
		Upload: config.UploadConfig{MaxBytes: 5 * 1024 * 1024},
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	require.NoError(t, err)

	accountStore := mocks.NewMockAccountStore()
	profileStore := mocks.NewMockProfileStore()

	app := &application{
		config:           cfg,
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		accountStore:     accountStore,
		profileStore:     profileStore,
		tokenService:     tokenService,
		passwordVerifier: &mocks.MockPasswordVerifier{ShouldSucceed: true},
	}
	return app, accountStore, profileStore
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) shared.Envelope {
	t.Helper()
	var envelope shared.Envelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope
}

func TestRouterUnknownRoute(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest("GET", "/no/such/route", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.False(t, envelope.Success)
	assert.Equal(t, "route not found", envelope.Message)
}

func TestRouterHealth(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	req := httptest.NewRequest("GET", "/health", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouterSignupThenMe(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	payload, err := json.Marshal(map[string]string{
		"name":     "Ann Example",
		"email":    "ann@example.com",
		"password": "password123",
	})
	require.NoError(t, err)

	signupReq := httptest.NewRequest("POST", "/signup", bytes.NewBuffer(payload))
	signupReq.Header.Set("Content-Type", "application/json")
	signupRecorder := httptest.NewRecorder()
	router.ServeHTTP(signupRecorder, signupReq)
	require.Equal(t, http.StatusCreated, signupRecorder.Code)

	envelope := decodeEnvelope(t, signupRecorder)
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	meReq := httptest.NewRequest("GET", "/me", nil)
	meReq.Header.Set("Authorization", "Bearer "+token)
	meRecorder := httptest.NewRecorder()
	router.ServeHTTP(meRecorder, meReq)

	require.Equal(t, http.StatusOK, meRecorder.Code)
	meEnvelope := decodeEnvelope(t, meRecorder)
	meData, ok := meEnvelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ann@example.com", meData["email"])
}

func TestRouterMeRequiresToken(t *testing.T) {
	t.Parallel()

	app, _, _ := newTestApplication(t)
	router := app.setupRouter()

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "No token provided", decodeEnvelope(t, recorder).Message)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "Invalid/Expired token", decodeEnvelope(t, recorder).Message)
	})
}
