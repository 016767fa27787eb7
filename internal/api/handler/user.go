// internal/api/handler/user.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"user-directory/internal/api/types"
	"user-directory/internal/service"
	"user-directory/internal/util" // For custom errors
)

// UserHandler handles HTTP requests related to user directory operations.
type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		service: svc,
		logger:  logger,
	}
}

// Helper function to send JSON responses.
func (h *UserHandler) respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// Helper function to send error responses. NotFound, Conflict and validation
// failures are expected outcomes and are never logged as errors; anything
// else is an internal fault, logged with detail and surfaced generically.
func (h *UserHandler) respondWithError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = "Invalid input provided."
	case util.IsError(err, util.ErrDuplicateEntry):
		statusCode = http.StatusConflict
		message = "Username already exists."
	case util.IsError(err, util.ErrUserNotFound), util.IsError(err, util.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "User not found."
	case util.IsError(err, util.ErrInvalidPassword):
		statusCode = http.StatusUnauthorized
		message = "Invalid password."
	default:
		h.logger.Error("Unhandled service error", "error", err)
	}

	h.respondWithJSON(w, statusCode, map[string]string{"error": message})
}

// CreateUserRequest represents the request body for creating a user.
type CreateUserRequest struct {
	UserName string `json:"userName"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Language string `json:"language"`
	Culture  string `json:"culture"`
	Password string `json:"password"`
}

// UpdateUserRequest represents the request body for a partial update, matched
// by email. Optional fields are pointers: null or absent means "leave
// unchanged" (for mobile/language/culture an explicit empty string is a valid
// overwrite, while userName/fullName/password additionally require a
// non-empty value to apply).
type UpdateUserRequest struct {
	Email    string  `json:"email"`
	UserName *string `json:"userName"`
	FullName *string `json:"fullName"`
	Mobile   *string `json:"mobile"`
	Language *string `json:"language"`
	Culture  *string `json:"culture"`
	Password *string `json:"password"`
}

// ValidatePasswordRequest represents the request body for password validation.
type ValidatePasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUser handles the create user request.
// POST /Users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body."})
		return
	}

	user, err := h.service.Create(r.Context(), service.CreateUserInput{
		UserName: req.UserName,
		FullName: req.FullName,
		Email:    req.Email,
		Mobile:   req.Mobile,
		Language: req.Language,
		Culture:  req.Culture,
		Password: req.Password,
	})
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/Users/%d", user.ID))
	h.respondWithJSON(w, http.StatusCreated, types.NewUserResponse(user))
}

// GetUser handles the get user by ID request.
// GET /Users/{userID}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.NewUserResponse(user))
}

// ListUsers handles the list all users request.
// GET /Users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.NewUserResponseList(users))
}

// UpdateUser handles the partial update request, matched by email.
// PATCH /Users
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body."})
		return
	}

	user, err := h.service.Update(r.Context(), service.UpdateUserInput{
		Email:    req.Email,
		UserName: req.UserName,
		FullName: req.FullName,
		Mobile:   req.Mobile,
		Language: req.Language,
		Culture:  req.Culture,
		Password: req.Password,
	})
	if err != nil {
		if util.IsError(err, util.ErrUserNotFound) {
			h.respondWithJSON(w, http.StatusNotFound, map[string]string{"error": "User with the specified email not found."})
			return
		}
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, types.NewUserResponse(user))
}

// DeleteUser handles the delete user request.
// DELETE /Users/{userID}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondWithError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ValidatePassword handles the password validation request.
// POST /Users/validate
func (h *UserHandler) ValidatePassword(w http.ResponseWriter, r *http.Request) {
	var req ValidatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body."})
		return
	}

	if err := h.service.ValidatePassword(r.Context(), req.Email, req.Password); err != nil {
		h.respondWithError(w, err)
		return
	}

	h.respondWithJSON(w, http.StatusOK, map[string]string{"message": "Password is valid."})
}

func (h *UserHandler) parseUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.respondWithJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid user ID."})
		return 0, false
	}
	return id, true
}
