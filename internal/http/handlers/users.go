package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mpetrov/secureapp/internal/hash"
	"github.com/mpetrov/secureapp/internal/http/respond"
	"github.com/mpetrov/secureapp/internal/models"
	"github.com/mpetrov/secureapp/internal/models/dto"
	"github.com/mpetrov/secureapp/internal/storage"
)

const (
	defaultListSkip  = 0
	defaultListLimit = 10
)

// UserHandler owns the user CRUD and password-verification endpoints.
type UserHandler struct {
	store  storage.UserStore
	hasher *hash.Hasher
	log    zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(store storage.UserStore, hasher *hash.Hasher, log zerolog.Logger) *UserHandler {
	return &UserHandler{store: store, hasher: hasher, log: log}
}

// Register attaches user routes to the mux.
func (h *UserHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /users", h.handleCreate)
	mux.HandleFunc("GET /users", h.handleList)
	mux.HandleFunc("GET /users/{id}", h.handleGet)
	mux.HandleFunc("PUT /users/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /users/{id}", h.handleDelete)
	mux.HandleFunc("POST /verify-password", h.handleVerifyPassword)
}

func (h *UserHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.ValidationError(w, map[string]string{"body": "invalid JSON payload"})
		return
	}
	if fields := req.Validate(); fields != nil {
		respond.ValidationError(w, fields)
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("hash password")
		respond.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	created, err := h.store.CreateUser(r.Context(), user)
	if err != nil {
		h.writeStoreError(w, err, "User creation failed due to data conflict", "failed to create user")
		return
	}

	respond.JSON(w, http.StatusCreated, created)
}

func (h *UserHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err, "", "failed to fetch user")
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) handleList(w http.ResponseWriter, r *http.Request) {
	skip, ok := queryInt(w, r, "skip", defaultListSkip)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit", defaultListLimit)
	if !ok {
		return
	}

	users, err := h.store.ListUsers(r.Context(), skip, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("list users")
		respond.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	respond.JSON(w, http.StatusOK, users)
}

func (h *UserHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.ValidationError(w, map[string]string{"body": "invalid JSON payload"})
		return
	}
	if fields := req.Validate(); fields != nil {
		respond.ValidationError(w, fields)
		return
	}

	patch := storage.UserPatch{Username: req.Username, Email: req.Email}
	updated, err := h.store.UpdateUser(r.Context(), id, patch)
	if err != nil {
		h.writeStoreError(w, err, "Update failed due to data conflict", "failed to update user")
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *UserHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteUser(r.Context(), id); err != nil {
		h.writeStoreError(w, err, "", "failed to delete user")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) handleVerifyPassword(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	password := r.URL.Query().Get("password")

	user, err := h.store.FindByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "User not found")
			return
		}
		h.log.Error().Err(err).Msg("find user by username")
		respond.Error(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}
	if !h.hasher.Verify(password, user.PasswordHash) {
		respond.Error(w, http.StatusUnauthorized, "Invalid password")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"message": "Password verified successfully"})
}

// writeStoreError translates storage errors into responses. Conflicts carry
// a field-specific message when the store could classify the violated
// constraint; conflictFallback covers unclassified conflicts.
func (h *UserHandler) writeStoreError(w http.ResponseWriter, err error, conflictFallback, internalMessage string) {
	var conflict *storage.ConflictError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "User not found")
	case errors.As(err, &conflict):
		respond.Error(w, http.StatusConflict, conflictMessage(conflict, conflictFallback))
	default:
		h.log.Error().Err(err).Msg("user store error")
		respond.Error(w, http.StatusInternalServerError, internalMessage)
	}
}

func conflictMessage(conflict *storage.ConflictError, fallback string) string {
	switch conflict.Field {
	case storage.FieldUsername:
		return "Username already exists"
	case storage.FieldEmail:
		return "Email already exists"
	}
	return fallback
}

// parseID reads the {id} path segment. An unparseable id cannot reference any
// record, so it reports 404 rather than a validation failure.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respond.Error(w, http.StatusNotFound, "User not found")
		return uuid.UUID{}, false
	}
	return id, true
}

func queryInt(w http.ResponseWriter, r *http.Request, key string, def int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		respond.ValidationError(w, map[string]string{key: "must be a non-negative integer"})
		return 0, false
	}
	return val, true
}
