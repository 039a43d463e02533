package service

import (
	"context"
	"testing"
	"time"

	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/store"
	"github.com/Noorain464/GoogleDrive/internal/store/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shareFixture struct {
	nodes  *memory.NodeStore
	users  *memory.UserStore
	shares ShareService
}

func newShareFixture(t *testing.T) *shareFixture {
	t.Helper()
	nodes := memory.NewNodeStore()
	users := memory.NewUserStore()
	shares := NewShareService(memory.NewShareStore(), nodes, users)
	return &shareFixture{nodes: nodes, users: users, shares: shares}
}

func seedUser(t *testing.T, users *memory.UserStore, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestShareUpsert(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	grantee := seedUser(t, f.users, "bob@example.com")
	docs := seedNode(t, f.nodes, domain.KindFolder, "Docs", nil)

	share, err := f.shares.Share(ctx, testOwner, docs.ID, "bob@example.com", domain.PermissionView)
	require.NoError(t, err)
	assert.Equal(t, grantee.ID, share.GranteeID)
	assert.Equal(t, domain.PermissionView, share.Permission)
	assert.Equal(t, domain.KindFolder, share.NodeKind)

	t.Run("re-share overwrites the permission", func(t *testing.T) {
		again, err := f.shares.Share(ctx, testOwner, docs.ID, "bob@example.com", domain.PermissionEdit)
		require.NoError(t, err)
		assert.Equal(t, domain.PermissionEdit, again.Permission)

		grants, err := f.shares.ListGrants(ctx, testOwner, docs.ID)
		require.NoError(t, err)
		require.Len(t, grants, 1, "upsert must not duplicate the grant")
		assert.Equal(t, domain.PermissionEdit, grants[0].Permission)
		assert.Equal(t, "bob@example.com", grants[0].GranteeEmail)
	})

	t.Run("unknown grantee email", func(t *testing.T) {
		_, err := f.shares.Share(ctx, testOwner, docs.ID, "nobody@example.com", domain.PermissionView)
		assert.ErrorIs(t, err, ErrGranteeNotFound)
	})

	t.Run("not the owner", func(t *testing.T) {
		_, err := f.shares.Share(ctx, grantee.ID, docs.ID, "bob@example.com", domain.PermissionView)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("invalid permission", func(t *testing.T) {
		_, err := f.shares.Share(ctx, testOwner, docs.ID, "bob@example.com", domain.Permission("admin"))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("sharing with the owner", func(t *testing.T) {
		owner := &domain.User{ID: testOwner, Email: "owner@example.com", CreatedAt: time.Now().UTC()}
		require.NoError(t, f.users.Create(ctx, owner))

		_, err := f.shares.Share(ctx, testOwner, docs.ID, "owner@example.com", domain.PermissionView)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUnshare(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	grantee := seedUser(t, f.users, "bob@example.com")
	docs := seedNode(t, f.nodes, domain.KindFolder, "Docs", nil)
	_, err := f.shares.Share(ctx, testOwner, docs.ID, "bob@example.com", domain.PermissionView)
	require.NoError(t, err)

	require.NoError(t, f.shares.Unshare(ctx, testOwner, docs.ID, grantee.ID))

	grants, err := f.shares.ListGrants(ctx, testOwner, docs.ID)
	require.NoError(t, err)
	assert.Empty(t, grants)

	t.Run("revoking an absent grant is a no-op", func(t *testing.T) {
		assert.NoError(t, f.shares.Unshare(ctx, testOwner, docs.ID, grantee.ID))
	})
}

func TestUpdatePermission(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	grantee := seedUser(t, f.users, "bob@example.com")
	docs := seedNode(t, f.nodes, domain.KindFolder, "Docs", nil)

	t.Run("without an existing grant", func(t *testing.T) {
		_, err := f.shares.UpdatePermission(ctx, testOwner, docs.ID, grantee.ID, domain.PermissionEdit)
		assert.ErrorIs(t, err, ErrGrantNotFound)
	})

	_, err := f.shares.Share(ctx, testOwner, docs.ID, "bob@example.com", domain.PermissionView)
	require.NoError(t, err)

	updated, err := f.shares.UpdatePermission(ctx, testOwner, docs.ID, grantee.ID, domain.PermissionEdit)
	require.NoError(t, err)
	assert.Equal(t, domain.PermissionEdit, updated.Permission)
}

func TestListSharedWithMe(t *testing.T) {
	// Owner shares "Docs" with the grantee at view: the grantee sees it with
	// permission=view; after an update to edit the next listing reflects it.
	f := newShareFixture(t)
	ctx := context.Background()

	grantee := seedUser(t, f.users, "bob@example.com")
	docs := seedNode(t, f.nodes, domain.KindFolder, "Docs", nil)
	_, err := f.shares.Share(ctx, testOwner, docs.ID, "bob@example.com", domain.PermissionView)
	require.NoError(t, err)

	items, err := f.shares.ListSharedWithMe(ctx, grantee.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, docs.ID, items[0].ID)
	assert.Equal(t, domain.PermissionView, items[0].Permission)

	_, err = f.shares.UpdatePermission(ctx, testOwner, docs.ID, grantee.ID, domain.PermissionEdit)
	require.NoError(t, err)

	items, err = f.shares.ListSharedWithMe(ctx, grantee.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.PermissionEdit, items[0].Permission)

	t.Run("dangling grants are skipped", func(t *testing.T) {
		require.NoError(t, f.nodes.Delete(ctx, testOwner, docs.ID))
		items, err := f.shares.ListSharedWithMe(ctx, grantee.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestCanMutate(t *testing.T) {
	f := newShareFixture(t)
	ctx := context.Background()

	viewer := seedUser(t, f.users, "viewer@example.com")
	editor := seedUser(t, f.users, "editor@example.com")
	docs := seedNode(t, f.nodes, domain.KindFolder, "Docs", nil)

	_, err := f.shares.Share(ctx, testOwner, docs.ID, "viewer@example.com", domain.PermissionView)
	require.NoError(t, err)
	_, err = f.shares.Share(ctx, testOwner, docs.ID, "editor@example.com", domain.PermissionEdit)
	require.NoError(t, err)

	tests := []struct {
		name   string
		caller string
		want   bool
	}{
		{name: "owner", caller: testOwner, want: true},
		{name: "edit grantee", caller: editor.ID, want: true},
		{name: "view grantee", caller: viewer.ID, want: false},
		{name: "stranger", caller: "nobody", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.shares.CanMutate(ctx, docs, tc.caller)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
