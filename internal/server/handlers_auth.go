package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hmkang/stockquery/internal/models"
	"github.com/hmkang/stockquery/internal/storage/badger"
)

// tokenIssuer identifies tokens minted by this service.
const tokenIssuer = "stockquery"

// registerRequest is the account creation payload.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleUsers creates a new user account.
func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req registerRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if req.Username == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "username is required", CodeValidation)
		return
	}
	if len(req.Password) < 8 {
		WriteErrorWithCode(w, http.StatusBadRequest, "password must be at least 8 characters", CodeValidation)
		return
	}

	store := s.app.Storage.InternalStore()

	if existing, err := store.GetUser(r.Context(), req.Username); err == nil && existing != nil {
		WriteErrorWithCode(w, http.StatusConflict, "username already taken", CodeValidation)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Password hashing failed")
		WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := store.SaveUser(r.Context(), user); err != nil {
		s.logger.Error().Err(err).Str("username", req.Username).Msg("User save failed")
		WriteError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	s.logger.Info().Str("username", req.Username).Msg("User created")

	WriteJSON(w, http.StatusCreated, user)
}

// tokenRequest is the credential payload for token issuance.
type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleToken verifies credentials and issues a signed access token.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req tokenRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		WriteErrorWithCode(w, http.StatusBadRequest, "username and password are required", CodeValidation)
		return
	}

	user, err := s.app.Storage.InternalStore().GetUser(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, badger.ErrUserNotFound) {
			WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error().Err(err).Msg("User lookup failed")
		WriteError(w, http.StatusInternalServerError, "failed to verify credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	expiry := s.app.Config.Auth.GetTokenExpiry()
	token, err := signAccessToken(user, []byte(s.app.Config.Auth.JWTSecret), expiry)
	if err != nil {
		s.logger.Error().Err(err).Msg("Token signing failed")
		WriteError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(expiry.Seconds()),
	})
}

// signAccessToken mints an HS256 JWT for the given user.
func signAccessToken(user *models.User, secret []byte, expiry time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   user.Username,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(expiry).Unix(),
		"jti":   uuid.New().String(),
		"iss":   tokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
