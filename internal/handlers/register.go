package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ieplsoft/user-management/internal/logger"
	"github.com/ieplsoft/user-management/internal/services"
	"github.com/ieplsoft/user-management/internal/validation"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, name, email, phone, dateOfBirth, password string) (int64, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Display name
	// required: true
	// example: Ada
	Name string `json:"name" validate:"required"`

	// Email, unique per account
	// required: true
	// example: ada@x.com
	Email string `json:"email" validate:"required,email"`

	// Phone, 10 digits starting with 6-9
	// required: true
	// example: 9876543210
	Phone string `json:"phone" validate:"required,phone"`

	// Date of birth, YYYY-MM-DD, not in the future
	// required: true
	// example: 1990-01-01
	DateOfBirth string `json:"dateOfBirth" validate:"required,birthdate"`

	// Password
	// required: true
	// example: Sup3r$ecret
	Password string `json:"password" validate:"required"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Always true
	Success bool `json:"success"`
	// Id of the new user
	// example: 1
	UserID int64 `json:"userId"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with a unique email. The password is hashed before storing and never returned.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 200 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Email already registered / invalid request"
// @Failure 500 {object} handlers.ErrorResponse "Registration failed"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := validation.Validate(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		id, err := svc.Register(r.Context(), req.Name, req.Email, req.Phone, req.DateOfBirth, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrEmailAlreadyRegistered) {
				writeError(w, http.StatusBadRequest, "Email already registered")
				return
			}
			logger.Log.Errorw("registration failed", "err", err)
			writeError(w, http.StatusInternalServerError, "Registration failed")
			return
		}

		writeJSON(w, http.StatusOK, RegisterResponse{
			Success: true,
			UserID:  id,
		})
	}
}
