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

type viewFixture struct {
	nodes *memory.NodeStore
	views ViewService
}

func newViewFixture(t *testing.T) *viewFixture {
	t.Helper()
	nodes := memory.NewNodeStore()
	tree := NewTreeService(nodes)
	shares := NewShareService(memory.NewShareStore(), nodes, memory.NewUserStore())
	return &viewFixture{
		nodes: nodes,
		views: NewViewService(nodes, tree, shares),
	}
}

func trashNode(t *testing.T, nodes *memory.NodeStore, node *domain.Node) {
	t.Helper()
	node.Trashed = true
	require.NoError(t, nodes.Update(context.Background(), node))
}

func ids(nodes []*domain.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.ID)
	}
	return out
}

func names(nodes []*domain.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.Name)
	}
	return out
}

func TestViewExclusion(t *testing.T) {
	// An item is either in the trash view or in the browsable views, never
	// both.
	f := newViewFixture(t)
	ctx := context.Background()

	active := seedNode(t, f.nodes, domain.KindFile, "keep.txt", nil)
	binned := seedNode(t, f.nodes, domain.KindFile, "bin.txt", nil)
	trashNode(t, f.nodes, binned)

	drive, err := f.views.List(ctx, testOwner, ListQuery{View: ViewMyDrive})
	require.NoError(t, err)
	assert.Equal(t, []string{active.ID}, ids(drive))
	for _, node := range drive {
		assert.False(t, node.Trashed)
	}

	trash, err := f.views.List(ctx, testOwner, ListQuery{View: ViewTrash})
	require.NoError(t, err)
	assert.Equal(t, []string{binned.ID}, ids(trash))
	for _, node := range trash {
		assert.True(t, node.Trashed)
	}
}

func TestTrashedFolderHidesSubtree(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	folder := seedNode(t, f.nodes, domain.KindFolder, "Projects", nil)
	child := seedNode(t, f.nodes, domain.KindFile, "report.txt", strPtr(folder.ID))
	child.Starred = true
	require.NoError(t, f.nodes.Update(ctx, child))
	trashNode(t, f.nodes, folder)

	t.Run("browsing into the trashed folder", func(t *testing.T) {
		_, err := f.views.List(ctx, testOwner, ListQuery{View: ViewMyDrive, ParentID: strPtr(folder.ID)})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("child absent from recent and starred", func(t *testing.T) {
		recent, err := f.views.List(ctx, testOwner, ListQuery{View: ViewRecent})
		require.NoError(t, err)
		assert.NotContains(t, ids(recent), child.ID)

		starred, err := f.views.List(ctx, testOwner, ListQuery{View: ViewStarred})
		require.NoError(t, err)
		assert.Empty(t, starred)
	})

	t.Run("only the folder itself appears in trash", func(t *testing.T) {
		trash, err := f.views.List(ctx, testOwner, ListQuery{View: ViewTrash})
		require.NoError(t, err)
		assert.Equal(t, []string{folder.ID}, ids(trash))
	})

	t.Run("restore brings the subtree back", func(t *testing.T) {
		folder.Trashed = false
		require.NoError(t, f.nodes.Update(ctx, folder))

		listing, err := f.views.List(ctx, testOwner, ListQuery{View: ViewMyDrive, ParentID: strPtr(folder.ID)})
		require.NoError(t, err)
		assert.Equal(t, []string{child.ID}, ids(listing))
	})
}

func TestSearchFilter(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	seedNode(t, f.nodes, domain.KindFile, "Quarterly Report.pdf", nil)
	seedNode(t, f.nodes, domain.KindFile, "notes.txt", nil)
	seedNode(t, f.nodes, domain.KindFolder, "Reports", nil)

	listing, err := f.views.List(ctx, testOwner, ListQuery{View: ViewMyDrive, Search: "report"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Quarterly Report.pdf", "Reports"}, names(listing))

	t.Run("no match", func(t *testing.T) {
		listing, err := f.views.List(ctx, testOwner, ListQuery{View: ViewMyDrive, Search: "zzz"})
		require.NoError(t, err)
		assert.Empty(t, listing)
	})
}

func TestSortFoldersFirst(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	fileA := seedNode(t, f.nodes, domain.KindFile, "alpha.txt", nil)
	fileB := seedNode(t, f.nodes, domain.KindFile, "beta.txt", nil)
	folderZ := seedNode(t, f.nodes, domain.KindFolder, "Zulu", nil)
	folderA := seedNode(t, f.nodes, domain.KindFolder, "Alpha", nil)

	asc, err := f.views.List(ctx, testOwner, ListQuery{View: ViewMyDrive, SortBy: SortByName, Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{folderA.ID, folderZ.ID, fileA.ID, fileB.ID}, ids(asc))

	t.Run("desc flips the key but not the grouping", func(t *testing.T) {
		desc, err := f.views.List(ctx, testOwner, ListQuery{View: ViewMyDrive, SortBy: SortByName, Order: "desc"})
		require.NoError(t, err)
		assert.Equal(t, []string{folderZ.ID, folderA.ID, fileB.ID, fileA.ID}, ids(desc))
	})

	t.Run("by size", func(t *testing.T) {
		fileA.Size = 500
		require.NoError(t, f.nodes.Update(ctx, fileA))
		fileB.Size = 100
		require.NoError(t, f.nodes.Update(ctx, fileB))

		bySize, err := f.views.List(ctx, testOwner, ListQuery{View: ViewMyDrive, SortBy: SortBySize, Order: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{fileB.ID, fileA.ID}, ids(bySize)[2:])
	})
}

func TestRecentView(t *testing.T) {
	f := newViewFixture(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	var newest *domain.Node
	for i := 0; i < recentLimit+5; i++ {
		node := &domain.Node{
			ID:        uuid.NewString(),
			Kind:      domain.KindFile,
			Name:      "file",
			OwnerID:   testOwner,
			CreatedAt: base,
			UpdatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, f.nodes.Insert(ctx, node))
		newest = node
	}

	recent, err := f.views.List(ctx, testOwner, ListQuery{View: ViewRecent})
	require.NoError(t, err)
	require.Len(t, recent, recentLimit)
	assert.Equal(t, newest.ID, recent[0].ID, "most recently touched item leads")
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i-1].UpdatedAt.Before(recent[i].UpdatedAt))
	}
}

func TestUnknownView(t *testing.T) {
	f := newViewFixture(t)
	_, err := f.views.List(context.Background(), testOwner, ListQuery{View: View("everything")})
	assert.ErrorIs(t, err, ErrValidation)
}
