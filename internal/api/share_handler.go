package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/service"

	"github.com/go-chi/chi/v5"
)

// ShareHandler holds the dependencies for sharing-related HTTP handlers.
type ShareHandler struct {
	shares service.ShareService
}

// NewShareHandler creates a new ShareHandler with its dependencies.
func NewShareHandler(shares service.ShareService) *ShareHandler {
	return &ShareHandler{shares: shares}
}

// --- Request/Response Structs ---

type shareRequest struct {
	Email      string            `json:"email"`
	Permission domain.Permission `json:"permission"`
}

// Validate checks the fields of the shareRequest struct. An omitted
// permission defaults to view.
func (r *shareRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Permission == "" {
		r.Permission = domain.PermissionView
	}
	if !r.Permission.Valid() {
		return errors.New("permission must be view or edit")
	}
	return nil
}

type updatePermissionRequest struct {
	Permission domain.Permission `json:"permission"`
}

// --- Handlers ---

// Share handles POST /api/shares/{id}.
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError(err.Error()))
		return
	}

	share, err := h.shares.Share(r.Context(), ownerID, chi.URLParam(r, "id"), req.Email, req.Permission)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, share)
}

// ListGrants handles GET /api/shares/{id}.
func (h *ShareHandler) ListGrants(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	grants, err := h.shares.ListGrants(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if grants == nil {
		grants = []*domain.Grant{}
	}
	writeJSON(w, http.StatusOK, grants)
}

// UpdatePermission handles PATCH /api/shares/{id}/{granteeId}.
func (h *ShareHandler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	var req updatePermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Invalid request body"))
		return
	}

	share, err := h.shares.UpdatePermission(r.Context(), ownerID, chi.URLParam(r, "id"), chi.URLParam(r, "granteeId"), req.Permission)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, share)
}

// Unshare handles DELETE /api/shares/{id}/{granteeId}.
func (h *ShareHandler) Unshare(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	if err := h.shares.Unshare(r.Context(), ownerID, chi.URLParam(r, "id"), chi.URLParam(r, "granteeId")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SharedWithMe handles GET /api/shares/shared-with-me.
func (h *ShareHandler) SharedWithMe(w http.ResponseWriter, r *http.Request) {
	principalID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	items, err := h.shares.ListSharedWithMe(r.Context(), principalID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []*domain.SharedNode{}
	}
	writeJSON(w, http.StatusOK, items)
}
