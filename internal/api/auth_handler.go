package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tomhaskel/profiled/internal/api/shared"
	"github.com/tomhaskel/profiled/internal/domain"
	"github.com/tomhaskel/profiled/internal/service/auth"
	"github.com/tomhaskel/profiled/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	accountStore     store.AccountStore
	tokenService     auth.TokenService
	passwordVerifier auth.PasswordVerifier
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	accountStore store.AccountStore,
	tokenService auth.TokenService,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		accountStore:     accountStore,
		tokenService:     tokenService,
		passwordVerifier: passwordVerifier,
	}
}

// Signup handles the /signup endpoint.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	account, err := domain.NewAccount(req.Name, req.Email, req.Password)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid account data: "+err.Error())
		return
	}

	if err := h.accountStore.Create(r.Context(), account); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			shared.RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		slog.Error("failed to create account", "error", err, "email", req.Email)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	token, err := h.tokenService.GenerateToken(r.Context(), account.ID, account.Email)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "account_id", account.ID)
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, "Account created", AuthResponse{
		Token:   token,
		Account: NewAccountView(account),
	})
}

// Login handles the /login endpoint. Unknown emails and wrong passwords
// produce the same response so the endpoint cannot be used to probe for
// registered addresses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	account, err := h.accountStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		slog.Error("failed to get account by email", "error", err, "email", req.Email)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to authenticate", err)
		return
	}

	if err := h.passwordVerifier.Compare(account.HashedPassword, req.Password); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.tokenService.GenerateToken(r.Context(), account.ID, account.Email)
	if err != nil {
		slog.Error("failed to generate token", "error", err, "account_id", account.ID)
		shared.RespondWithErrorAndLog(
			w, r, http.StatusInternalServerError, "Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "Login successful", AuthResponse{
		Token:   token,
		Account: NewAccountView(account),
	})
}

// Me handles the /me endpoint. The identity comes from the validated token;
// the account is re-read so a token for a deleted account yields 404.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	account, err := h.accountStore.GetByID(r.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Account not found")
			return
		}
		slog.Error("failed to get account", "error", err, "account_id", claims.AccountID)
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to load account", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "OK", NewAccountView(account))
}
