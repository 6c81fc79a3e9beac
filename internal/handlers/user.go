package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ieplsoft/user-management/internal/logger"
	"github.com/ieplsoft/user-management/internal/models"
	"github.com/ieplsoft/user-management/internal/services"
	"github.com/ieplsoft/user-management/internal/validation"
)

// UserGetter defines the interface for fetching a single user.
type UserGetter interface {
	Get(ctx context.Context, id int64) (*models.User, error)
}

// UserUpdater defines the interface for replacing a user's profile fields.
type UserUpdater interface {
	Update(ctx context.Context, id int64, name, email, phone, dateOfBirth string) error
}

// UserDeleter defines the interface for deleting a user.
type UserDeleter interface {
	Delete(ctx context.Context, id int64) error
}

// GetUserResponse represents a single-user fetch response
// swagger:model GetUserResponse
type GetUserResponse struct {
	// Always true
	Success bool `json:"success"`
	// The user, sanitized
	User models.User `json:"user"`
}

// UpdateUserRequest represents the JSON body for a profile update
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	// Display name
	// required: true
	Name string `json:"name" validate:"required"`

	// Email, unique per account
	// required: true
	Email string `json:"email" validate:"required,email"`

	// Phone, 10 digits starting with 6-9
	// required: true
	Phone string `json:"phone" validate:"required,phone"`

	// Date of birth, YYYY-MM-DD, not in the future
	// required: true
	DateOfBirth string `json:"dateOfBirth" validate:"required,birthdate"`
}

// OkResponse represents a bare success envelope
// swagger:model OkResponse
type OkResponse struct {
	// Always true
	Success bool `json:"success"`
}

func userIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// NewGetUserHandler returns an HTTP handler that fetches one user by id.
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} handlers.GetUserResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to fetch user"
// @Router /users/{id} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDFromRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user id")
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.Log.Errorw("failed to fetch user", "id", id, "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to fetch user")
			return
		}

		writeJSON(w, http.StatusOK, GetUserResponse{
			Success: true,
			User:    *user,
		})
	}
}

// NewUpdateUserHandler returns an HTTP handler that replaces a user's
// name, email, phone and date of birth. Passwords cannot be changed here.
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Param updateUserRequest body handlers.UpdateUserRequest true "New profile fields"
// @Success 200 {object} handlers.OkResponse
// @Failure 400 {object} handlers.ErrorResponse "Email already registered / invalid request"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to update user"
// @Router /users/{id} [put]
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDFromRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user id")
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := validation.Validate(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := svc.Update(r.Context(), id, req.Name, req.Email, req.Phone, req.DateOfBirth); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			case errors.Is(err, services.ErrEmailAlreadyRegistered):
				writeError(w, http.StatusBadRequest, "Email already registered")
			default:
				logger.Log.Errorw("failed to update user", "id", id, "err", err)
				writeError(w, http.StatusInternalServerError, "Failed to update user")
			}
			return
		}

		writeJSON(w, http.StatusOK, OkResponse{Success: true})
	}
}

// NewDeleteUserHandler returns an HTTP handler that deletes a user by id.
// @Summary Delete a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User id"
// @Success 200 {object} handlers.OkResponse
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to delete user"
// @Router /users/{id} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDFromRequest(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user id")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.Log.Errorw("failed to delete user", "id", id, "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to delete user")
			return
		}

		writeJSON(w, http.StatusOK, OkResponse{Success: true})
	}
}
