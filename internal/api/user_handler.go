package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/cardholder-api/internal/api/shared"
	"github.com/phrazzld/cardholder-api/internal/domain"
	"github.com/phrazzld/cardholder-api/internal/dto"
	"github.com/phrazzld/cardholder-api/internal/platform/logger"
	"github.com/phrazzld/cardholder-api/internal/service"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if userService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userService cannot be nil for UserHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for UserHandler")
	}

	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /users requests
// Supports name, surname, birthDate and active filters plus page, size and sort.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := parseUserFilter(q)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	page, err := parsePageRequest(q)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.userService.FindAll(r.Context(), filter, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetUser handles GET /users/{id} requests
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.FindDtoByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// GetUserByEmail handles GET /users/email/{email} requests
func (h *UserHandler) GetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		HandleAPIError(w, r, domain.NewValidationError("email", "is required", domain.ErrValidation), "")
		return
	}

	user, err := h.userService.FindDtoByEmail(r.Context(), email)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// CreateUser handles POST /users requests
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req dto.UserCreate
	if err := decodeAndValidate(r, &req); err != nil {
		log.Debug("invalid create user request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.Create(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, user)
}

// UpdateUser handles PUT /users/{id} requests
// Only the fields present in the body are changed.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req dto.UserUpdate
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.Update(r.Context(), id, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id} requests
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ActivateUser handles PATCH /users/{id}/activate requests
func (h *UserHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, true)
}

// DeactivateUser handles PATCH /users/{id}/deactivate requests
func (h *UserHandler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, false)
}

func (h *UserHandler) changeStatus(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userService.ChangeStatus(r.Context(), id, active)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to change user status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}
