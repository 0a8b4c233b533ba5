package handlers

import (
	"net/http"

	"github.com/isdelr/task-manager-be/internal/services"
	"github.com/rs/zerolog/log"
)

// TokenIssuer signs identity tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// UserHandler handles registration, login and the current-user lookup.
type UserHandler struct {
	service services.UserServiceProvider
	tokens  TokenIssuer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens TokenIssuer) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// CredentialsPayload defines the structure for registration and login requests.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Register handles new user registration and returns a token for the new account.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.service.CreateUser(r.Context(), payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		RespondError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user.ID)
}

// Login handles user authentication and token generation.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.service.VerifyCredentials(r.Context(), payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed authentication attempt")
		RespondError(w, r, err)
		return
	}

	h.respondWithToken(w, r, http.StatusOK, user.ID)
}

// GetMe retrieves the currently authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("User from token not found")
		RespondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, userID string) {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to generate token")
		RespondError(w, r, err)
		return
	}
	writeJSON(w, status, TokenResponse{Token: token})
}
