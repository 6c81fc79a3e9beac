package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ieplsoft/user-management/internal/jwt"
	"github.com/ieplsoft/user-management/internal/logger"
	"github.com/ieplsoft/user-management/internal/models"
	"github.com/ieplsoft/user-management/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Email
	// required: true
	// example: ada@x.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: Sup3r$ecret
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// Always true
	Success bool `json:"success"`
	// Session token, also set as an HTTP-only cookie
	// example: JWT_TOKEN
	Token string `json:"token"`
	// Sanitized user view for client-side display only. The cookie, not
	// this payload, is what the server trusts.
	UserData models.User `json:"userData"`
}

// NewLoginHandler returns an HTTP handler for user login. On success it sets
// the session cookie with a max-age matching the token lifetime and returns
// the token plus the sanitized user view in the body.
// @Summary User login
// @Description Authenticate a user, set the session cookie and return the token with the user profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.LoginResponse "Session token issued"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.ErrorResponse "Invalid credentials"
// @Failure 500 {object} handlers.ErrorResponse "Login failed"
// @Router /login [post]
func NewLoginHandler(svc Loginer, tokenTTL time.Duration, secureCookie bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		token, user, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			// One message for unknown email and wrong password.
			if errors.Is(err, services.ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			logger.Log.Errorw("login failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Login failed")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     jwt.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(tokenTTL.Seconds()),
			HttpOnly: true,
			Secure:   secureCookie,
			SameSite: http.SameSiteStrictMode,
		})

		writeJSON(w, http.StatusOK, LoginResponse{
			Success:  true,
			Token:    token,
			UserData: *user,
		})
	}
}
