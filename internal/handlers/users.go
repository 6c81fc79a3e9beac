package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ieplsoft/user-management/internal/logger"
	"github.com/ieplsoft/user-management/internal/models"
	"github.com/ieplsoft/user-management/internal/services"
	"github.com/ieplsoft/user-management/internal/validation"
)

// UserLister defines the interface for listing users.
type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

// UserCreator defines the interface for adding users without credentials.
type UserCreator interface {
	Create(ctx context.Context, name, email, phone, dateOfBirth string) (int64, error)
}

// ListUsersResponse represents the user listing response
// swagger:model ListUsersResponse
type ListUsersResponse struct {
	// Always true
	Success bool `json:"success"`
	// All users, sanitized
	Users []models.User `json:"users"`
}

// CreateUserRequest represents the JSON body for adding a user
// swagger:model CreateUserRequest
type CreateUserRequest struct {
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
}

// CreateUserResponse represents a successful user creation response
// swagger:model CreateUserResponse
type CreateUserResponse struct {
	// Always true
	Success bool `json:"success"`
	// Id of the new user
	// example: 2
	UserID int64 `json:"userId"`
}

// NewListUsersHandler returns an HTTP handler that lists all users.
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ListUsersResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to fetch users"
// @Router /users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("failed to fetch users", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch users")
			return
		}

		writeJSON(w, http.StatusOK, ListUsersResponse{
			Success: true,
			Users:   users,
		})
	}
}

// NewCreateUserHandler returns an HTTP handler that adds a user record
// without credentials. Such accounts cannot log in.
// @Summary Add a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param createUserRequest body handlers.CreateUserRequest true "User to add"
// @Success 200 {object} handlers.CreateUserResponse
// @Failure 400 {object} handlers.ErrorResponse "Email already registered / invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ErrorResponse "Failed to add user"
// @Router /users [post]
func NewCreateUserHandler(svc UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := validation.Validate(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		id, err := svc.Create(r.Context(), req.Name, req.Email, req.Phone, req.DateOfBirth)
		if err != nil {
			if errors.Is(err, services.ErrEmailAlreadyRegistered) {
				writeError(w, http.StatusBadRequest, "Email already registered")
				return
			}
			logger.Log.Errorw("failed to add user", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to add user")
			return
		}

		writeJSON(w, http.StatusOK, CreateUserResponse{
			Success: true,
			UserID:  id,
		})
	}
}
