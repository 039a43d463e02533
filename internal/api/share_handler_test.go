package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Noorain464/GoogleDrive/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareEndpoints(t *testing.T) {
	srv := newTestServer(t)
	alice := register(t, srv, "alice@example.com")
	bob := register(t, srv, "bob@example.com")

	folder := createFolder(t, srv, alice, "Docs", nil)

	status, body := doJSON(t, srv, http.MethodPost, "/api/shares/"+folder.ID, alice,
		map[string]string{"email": "bob@example.com", "permission": "view"})
	require.Equal(t, http.StatusCreated, status, string(body))

	var share domain.Share
	require.NoError(t, json.Unmarshal(body, &share))
	assert.Equal(t, folder.ID, share.NodeID)
	assert.Equal(t, domain.PermissionView, share.Permission)

	t.Run("grantee sees the item", func(t *testing.T) {
		status, body := doJSON(t, srv, http.MethodGet, "/api/shares/shared-with-me", bob, nil)
		require.Equal(t, http.StatusOK, status)

		var items []domain.SharedNode
		require.NoError(t, json.Unmarshal(body, &items))
		require.Len(t, items, 1)
		assert.Equal(t, folder.ID, items[0].ID)
		assert.Equal(t, domain.PermissionView, items[0].Permission)
	})

	t.Run("owner lists grants", func(t *testing.T) {
		status, body := doJSON(t, srv, http.MethodGet, "/api/shares/"+folder.ID, alice, nil)
		require.Equal(t, http.StatusOK, status)

		var grants []domain.Grant
		require.NoError(t, json.Unmarshal(body, &grants))
		require.Len(t, grants, 1)
		assert.Equal(t, "bob@example.com", grants[0].GranteeEmail)
	})

	t.Run("permission update shows up for the grantee", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodPatch, "/api/shares/"+folder.ID+"/"+share.GranteeID, alice,
			map[string]string{"permission": "edit"})
		require.Equal(t, http.StatusOK, status)

		status, body := doJSON(t, srv, http.MethodGet, "/api/shares/shared-with-me", bob, nil)
		require.Equal(t, http.StatusOK, status)

		var items []domain.SharedNode
		require.NoError(t, json.Unmarshal(body, &items))
		require.Len(t, items, 1)
		assert.Equal(t, domain.PermissionEdit, items[0].Permission)
	})

	t.Run("unknown grantee email", func(t *testing.T) {
		status, body := doJSON(t, srv, http.MethodPost, "/api/shares/"+folder.ID, alice,
			map[string]string{"email": "nobody@example.com"})
		require.Equal(t, http.StatusNotFound, status)

		var apiErr APIError
		require.NoError(t, json.Unmarshal(body, &apiErr))
		assert.Equal(t, "grantee_not_found", apiErr.Code)
	})

	t.Run("grantee cannot manage grants", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodGet, "/api/shares/"+folder.ID, bob, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("unshare", func(t *testing.T) {
		status, _ := doJSON(t, srv, http.MethodDelete, "/api/shares/"+folder.ID+"/"+share.GranteeID, alice, nil)
		require.Equal(t, http.StatusNoContent, status)

		status, body := doJSON(t, srv, http.MethodGet, "/api/shares/shared-with-me", bob, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "[]\n", string(body))
	})
}
