package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/service"

	"github.com/go-chi/chi/v5"
)

// maxUploadSize bounds multipart uploads.
const maxUploadSize = 1 << 30 // 1 GiB

// ItemHandler holds the dependencies for item-related HTTP handlers.
type ItemHandler struct {
	items service.ItemService
	views service.ViewService
}

// NewItemHandler creates a new ItemHandler with its dependencies.
func NewItemHandler(items service.ItemService, views service.ViewService) *ItemHandler {
	return &ItemHandler{items: items, views: views}
}

// --- Request/Response Structs with Validation ---

type createFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"`
}

// Validate checks the fields of the createFolderRequest struct.
func (r *createFolderRequest) Validate() error {
	if len(r.Name) < 1 || len(r.Name) > 256 {
		return errors.New("folder name must be between 1 and 256 characters")
	}
	return nil
}

type renameRequest struct {
	Name string `json:"name"`
}

func (r *renameRequest) Validate() error {
	if len(r.Name) < 1 || len(r.Name) > 256 {
		return errors.New("name must be between 1 and 256 characters")
	}
	return nil
}

type moveRequest struct {
	ParentID *string `json:"parentId"`
}

type bulkRequest struct {
	Action   string   `json:"action"`
	IDs      []string `json:"ids"`
	ParentID *string  `json:"parentId"` // Destination, for action "move".
}

// Validate checks the bulk action name and the id list.
func (r *bulkRequest) Validate() error {
	switch r.Action {
	case "star", "trash", "restore", "move", "delete":
	default:
		return fmt.Errorf("unknown bulk action %q", r.Action)
	}
	if len(r.IDs) == 0 {
		return errors.New("ids must not be empty")
	}
	return nil
}

// bulkResult reports the outcome of a bulk action per item. Bulk operations
// are independent per-item calls: partial failure is expected and surfaced,
// not rolled back.
type bulkResult struct {
	Succeeded []string          `json:"succeeded"`
	Failed    map[string]string `json:"failed,omitempty"`
}

// --- Handlers ---

// ListItems handles GET /api/items.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	query := parseListQuery(r)
	if !query.View.Valid() {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Unknown view"))
		return
	}

	if query.View == service.ViewShared {
		items, err := h.views.ListShared(r.Context(), ownerID, query)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if items == nil {
			items = []*domain.SharedNode{}
		}
		writeJSON(w, http.StatusOK, items)
		return
	}

	nodes, err := h.views.List(r.Context(), ownerID, query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	// If nothing is found, return an empty array instead of null.
	if nodes == nil {
		nodes = []*domain.Node{}
	}
	writeJSON(w, http.StatusOK, nodes)
}

// CreateFolder handles POST /api/items/folders.
func (h *ItemHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	var req createFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError(err.Error()))
		return
	}

	folder, err := h.items.CreateFolder(r.Context(), ownerID, req.Name, normalizeParent(req.ParentID))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, folder)
}

// UploadFile handles POST /api/items/upload (multipart form with a "file"
// part and an optional "parentId" field).
func (h *ItemHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	var parentID *string
	if v := r.FormValue("parentId"); v != "" {
		parentID = &v
	}

	node, err := h.items.UploadFile(r.Context(), ownerID, header.Filename, header.Header.Get("Content-Type"), parentID, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, node)
}

// DownloadFile handles GET /api/items/{id}/download.
func (h *ItemHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	content, node, err := h.items.DownloadFile(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer content.Close()

	if node.MimeType != "" {
		w.Header().Set("Content-Type", node.MimeType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", node.Name))
	io.Copy(w, content)
}

// Rename handles PATCH /api/items/{id}/rename.
func (h *ItemHandler) Rename(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError(err.Error()))
		return
	}

	node, err := h.items.Rename(r.Context(), ownerID, chi.URLParam(r, "id"), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// Move handles PATCH /api/items/{id}/move. A null parentId moves the item
// to the root of My Drive.
func (h *ItemHandler) Move(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Invalid request body"))
		return
	}

	node, err := h.items.Move(r.Context(), ownerID, chi.URLParam(r, "id"), normalizeParent(req.ParentID))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// ToggleStar handles PATCH /api/items/{id}/star.
func (h *ItemHandler) ToggleStar(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.items.ToggleStar)
}

// Trash handles PATCH /api/items/{id}/trash.
func (h *ItemHandler) Trash(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.items.Trash)
}

// Restore handles PATCH /api/items/{id}/restore.
func (h *ItemHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, h.items.Restore)
}

// PermanentlyDelete handles DELETE /api/items/{id}.
func (h *ItemHandler) PermanentlyDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	if err := h.items.PermanentlyDelete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Breadcrumbs handles GET /api/items/{id}/breadcrumbs.
func (h *ItemHandler) Breadcrumbs(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	chain, err := h.items.Breadcrumbs(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chain)
}

// Bulk handles POST /api/items/bulk. Each item is processed by an
// independent call; the response reports per-item success and failure.
func (h *ItemHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError("Invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, NewBadRequestError(err.Error()))
		return
	}

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = bulkResult{Succeeded: []string{}, Failed: map[string]string{}}
	)

	for _, id := range req.IDs {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			var err error
			switch req.Action {
			case "star":
				_, err = h.items.ToggleStar(r.Context(), ownerID, id)
			case "trash":
				_, err = h.items.Trash(r.Context(), ownerID, id)
			case "restore":
				_, err = h.items.Restore(r.Context(), ownerID, id)
			case "move":
				_, err = h.items.Move(r.Context(), ownerID, id, normalizeParent(req.ParentID))
			case "delete":
				err = h.items.PermanentlyDelete(r.Context(), ownerID, id)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[id] = FromServiceError(err).Code
			} else {
				result.Succeeded = append(result.Succeeded, id)
			}
		}(id)
	}
	wg.Wait()

	status := http.StatusOK
	if len(result.Failed) > 0 {
		status = http.StatusMultiStatus
	}
	writeJSON(w, status, result)
}

// --- Helpers ---

// mutate factors the single-item flag operations that share a signature.
func (h *ItemHandler) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, ownerID, nodeID string) (*domain.Node, error)) {
	ownerID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("User ID not found in token"))
		return
	}

	node, err := op(r.Context(), ownerID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func parseListQuery(r *http.Request) service.ListQuery {
	q := r.URL.Query()

	view := service.View(q.Get("view"))
	if view == "" {
		view = service.ViewMyDrive
	}

	var parentID *string
	if v := q.Get("parentId"); v != "" {
		parentID = &v
	}

	sortBy := service.SortKey(q.Get("sortBy"))
	switch sortBy {
	case service.SortByName, service.SortByDate, service.SortBySize:
	default:
		sortBy = service.SortByName
	}

	order := q.Get("order")
	if order != "desc" {
		order = "asc"
	}

	return service.ListQuery{
		View:     view,
		ParentID: parentID,
		Search:   q.Get("search"),
		SortBy:   sortBy,
		Order:    order,
	}
}

// normalizeParent maps an empty id to the root reference.
func normalizeParent(parentID *string) *string {
	if parentID == nil || *parentID == "" {
		return nil
	}
	return parentID
}

// writeServiceError translates and writes a service error response.
func writeServiceError(w http.ResponseWriter, err error) {
	apiErr := FromServiceError(err)
	writeJSON(w, apiErr.Status, apiErr)
}
