package user

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appuser "userhub/internal/app/user"
	"userhub/internal/http/responses"
	"userhub/internal/logging"
)

type Handler struct {
	service appuser.Service
	logger  logging.Logger
}

func NewHandler(service appuser.Service, logger logging.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger.With("component", "user_http_handler"),
	}
}

// List GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err, "failed to list users")
		return
	}

	responses.WriteJSON(w, http.StatusOK, users)
}

// GetByID GET /users/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	dto, err := h.service.GetById(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "failed to get user", "id", id)
		return
	}

	responses.WriteJSON(w, http.StatusOK, dto)
}

// Create POST /users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := h.bindJSON(w, r)
	if !ok {
		return
	}

	dto, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, err, "failed to create user")
		return
	}

	responses.WriteJSON(w, http.StatusCreated, dto)
}

// Update PUT /users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}
	input, ok := h.bindJSON(w, r)
	if !ok {
		return
	}

	dto, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		h.writeServiceError(w, err, "failed to update user", "id", id)
		return
	}

	responses.WriteJSON(w, http.StatusOK, dto)
}

// Delete DELETE /users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	dto, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "failed to delete user", "id", id)
		return
	}

	responses.WriteJSON(w, http.StatusOK, DeleteResponse{
		Message: fmt.Sprintf("User deleted with ID: %d", id),
		User:    dto,
	})
}

// writeServiceError maps NotFound to 404 and everything else to 500,
// exposing the underlying message in both cases.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, msg string, args ...any) {
	if appuser.IsNotFound(err) {
		responses.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	h.logger.Error(msg, append(args, "error", err)...)
	responses.WriteError(w, http.StatusInternalServerError, err.Error())
}

func (h *Handler) bindJSON(w http.ResponseWriter, r *http.Request) (appuser.UserInput, bool) {
	var req UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("invalid user payload", "error", err)
		responses.WriteBadRequest(w, "invalid request body")
		return appuser.UserInput{}, false
	}
	return appuser.UserInput{Name: req.Name, Email: req.Email}, true
}

func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		responses.WriteBadRequest(w, "invalid user id")
		return 0, false
	}
	return id, true
}
