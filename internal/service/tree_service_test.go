package service

import (
	"context"
	"testing"
	"time"

	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/store/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOwner = "owner-1"

// seedNode inserts a node directly into the store, bypassing the service
// layer, for fixtures that need a specific shape.
func seedNode(t *testing.T, nodes *memory.NodeStore, kind domain.Kind, name string, parentID *string) *domain.Node {
	t.Helper()
	now := time.Now().UTC()
	node := &domain.Node{
		ID:        uuid.NewString(),
		Kind:      kind,
		Name:      name,
		OwnerID:   testOwner,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, nodes.Insert(context.Background(), node))
	return node
}

func TestPathTo(t *testing.T) {
	nodes := memory.NewNodeStore()
	tree := NewTreeService(nodes)
	ctx := context.Background()

	root := seedNode(t, nodes, domain.KindFolder, "root", nil)
	mid := seedNode(t, nodes, domain.KindFolder, "mid", &root.ID)
	leaf := seedNode(t, nodes, domain.KindFile, "leaf.txt", &mid.ID)

	chain, err := tree.PathTo(ctx, testOwner, leaf.ID)
	require.NoError(t, err)
	require.Len(t, chain, 3)
	assert.Equal(t, root.ID, chain[0].ID)
	assert.Equal(t, mid.ID, chain[1].ID)
	assert.Equal(t, leaf.ID, chain[2].ID)

	t.Run("unknown node", func(t *testing.T) {
		_, err := tree.PathTo(ctx, testOwner, "missing")
		assert.Error(t, err)
	})

	t.Run("cycle is detected defensively", func(t *testing.T) {
		// Force a corrupt parent chain directly in the store.
		a := seedNode(t, nodes, domain.KindFolder, "a", nil)
		b := seedNode(t, nodes, domain.KindFolder, "b", &a.ID)
		a.ParentID = &b.ID
		require.NoError(t, nodes.Update(ctx, a))

		_, err := tree.PathTo(ctx, testOwner, a.ID)
		assert.ErrorIs(t, err, ErrCycleDetected)
	})
}

func TestDescendantsOf(t *testing.T) {
	nodes := memory.NewNodeStore()
	tree := NewTreeService(nodes)
	ctx := context.Background()

	root := seedNode(t, nodes, domain.KindFolder, "root", nil)
	childFolder := seedNode(t, nodes, domain.KindFolder, "docs", &root.ID)
	grandChild := seedNode(t, nodes, domain.KindFile, "cv.pdf", &childFolder.ID)
	childFile := seedNode(t, nodes, domain.KindFile, "notes.txt", &root.ID)
	unrelated := seedNode(t, nodes, domain.KindFolder, "other", nil)

	descendants, err := tree.DescendantsOf(ctx, testOwner, root.ID)
	require.NoError(t, err)

	assert.Len(t, descendants, 3)
	assert.Contains(t, descendants, childFolder.ID)
	assert.Contains(t, descendants, grandChild.ID)
	assert.Contains(t, descendants, childFile.ID)
	assert.NotContains(t, descendants, root.ID)
	assert.NotContains(t, descendants, unrelated.ID)
}

func TestValidateMove(t *testing.T) {
	nodes := memory.NewNodeStore()
	tree := NewTreeService(nodes)
	ctx := context.Background()

	folderA := seedNode(t, nodes, domain.KindFolder, "A", nil)
	folderB := seedNode(t, nodes, domain.KindFolder, "B", &folderA.ID)
	file := seedNode(t, nodes, domain.KindFile, "f.txt", nil)
	trashedFolder := seedNode(t, nodes, domain.KindFolder, "old", nil)
	trashedFolder.Trashed = true
	require.NoError(t, nodes.Update(ctx, trashedFolder))

	tests := []struct {
		name        string
		node        *domain.Node
		destination *string
		wantReason  MoveReason
	}{
		{name: "to root is always fine", node: folderB, destination: nil},
		{name: "file into folder", node: file, destination: &folderB.ID},
		{name: "folder into itself", node: folderA, destination: &folderA.ID, wantReason: MoveReasonSelf},
		{name: "folder into its descendant", node: folderA, destination: &folderB.ID, wantReason: MoveReasonDescendant},
		{name: "into missing folder", node: file, destination: strPtr("missing"), wantReason: MoveReasonDestination},
		{name: "into trashed folder", node: file, destination: &trashedFolder.ID, wantReason: MoveReasonDestination},
		{name: "into a file", node: folderB, destination: &file.ID, wantReason: MoveReasonDestination},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tree.ValidateMove(ctx, tc.node, tc.destination)
			if tc.wantReason == "" {
				assert.NoError(t, err)
				return
			}
			var moveErr *InvalidMoveError
			require.ErrorAs(t, err, &moveErr)
			assert.Equal(t, tc.wantReason, moveErr.Reason)
			assert.ErrorIs(t, err, ErrInvalidMove)
		})
	}
}

func TestAncestorTrashed(t *testing.T) {
	nodes := memory.NewNodeStore()
	tree := NewTreeService(nodes)
	ctx := context.Background()

	top := seedNode(t, nodes, domain.KindFolder, "top", nil)
	mid := seedNode(t, nodes, domain.KindFolder, "mid", &top.ID)
	leaf := seedNode(t, nodes, domain.KindFolder, "leaf", &mid.ID)

	hidden, err := tree.AncestorTrashed(ctx, testOwner, &leaf.ID)
	require.NoError(t, err)
	assert.False(t, hidden)

	top.Trashed = true
	require.NoError(t, nodes.Update(ctx, top))

	hidden, err = tree.AncestorTrashed(ctx, testOwner, &leaf.ID)
	require.NoError(t, err)
	assert.True(t, hidden)

	t.Run("dangling parent hides the subtree", func(t *testing.T) {
		orphanParent := "gone"
		hidden, err := tree.AncestorTrashed(ctx, testOwner, &orphanParent)
		require.NoError(t, err)
		assert.True(t, hidden)
	})

	t.Run("root is never hidden", func(t *testing.T) {
		hidden, err := tree.AncestorTrashed(ctx, testOwner, nil)
		require.NoError(t, err)
		assert.False(t, hidden)
	})
}

func strPtr(s string) *string {
	return &s
}
