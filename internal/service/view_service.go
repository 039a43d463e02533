package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/store"
)

// View identifies one of the client-facing item listings.
type View string

const (
	ViewMyDrive View = "my-drive"
	ViewRecent  View = "recent"
	ViewStarred View = "starred"
	ViewTrash   View = "trash"
	ViewShared  View = "shared"
)

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	switch v {
	case ViewMyDrive, ViewRecent, ViewStarred, ViewTrash, ViewShared:
		return true
	}
	return false
}

// SortKey selects the field item listings are ordered by.
type SortKey string

const (
	SortByName SortKey = "name"
	SortByDate SortKey = "date"
	SortBySize SortKey = "size"
)

// ListQuery carries the listing parameters of a single request.
type ListQuery struct {
	View     View
	ParentID *string
	Search   string
	SortBy   SortKey
	Order    string // "asc" or "desc"
}

// recentLimit bounds the recent view.
const recentLimit = 20

// ViewService projects raw nodes into the listing a client requested:
// view filter, then search, then sort.
type ViewService interface {
	// List produces the my-drive, recent, starred and trash listings.
	List(ctx context.Context, ownerID string, query ListQuery) ([]*domain.Node, error)

	// ListShared produces the shared-with-me listing, with the same search
	// and sort treatment applied.
	ListShared(ctx context.Context, principalID string, query ListQuery) ([]*domain.SharedNode, error)
}

// viewService is the concrete implementation of the ViewService interface.
type viewService struct {
	nodeStore store.NodeStore
	tree      TreeService
	shares    ShareService
}

// NewViewService creates a new instance of the view service.
func NewViewService(nodeStore store.NodeStore, tree TreeService, shares ShareService) ViewService {
	return &viewService{
		nodeStore: nodeStore,
		tree:      tree,
		shares:    shares,
	}
}

// List dispatches on the requested view. Non-trash views never surface a
// node whose ancestor folder is trashed, even though the child's own flag
// is untouched in storage.
func (s *viewService) List(ctx context.Context, ownerID string, query ListQuery) ([]*domain.Node, error) {
	var (
		nodes []*domain.Node
		err   error
	)

	falseVal := false
	trueVal := true

	switch query.View {
	case ViewMyDrive:
		if query.ParentID != nil {
			hidden, herr := s.tree.AncestorTrashed(ctx, ownerID, query.ParentID)
			if herr != nil {
				return nil, herr
			}
			if hidden {
				return nil, store.ErrNotFound
			}
		}
		nodes, err = s.nodeStore.ListByParent(ctx, ownerID, query.ParentID, store.NodeFilter{Trashed: &falseVal}, store.ListOptions{})

	case ViewRecent:
		nodes, err = s.nodeStore.ListByOwner(ctx, ownerID, store.NodeFilter{Trashed: &falseVal}, store.ListOptions{
			SortBy:    "updatedAt",
			SortOrder: -1,
		})
		if err == nil {
			nodes, err = s.dropHiddenSubtrees(ctx, ownerID, nodes)
		}
		if err == nil && len(nodes) > recentLimit {
			nodes = nodes[:recentLimit]
		}

	case ViewStarred:
		nodes, err = s.nodeStore.ListByOwner(ctx, ownerID, store.NodeFilter{Starred: &trueVal, Trashed: &falseVal}, store.ListOptions{})
		if err == nil {
			nodes, err = s.dropHiddenSubtrees(ctx, ownerID, nodes)
		}

	case ViewTrash:
		// Flat listing: trashed items are not browsable by sub-folder.
		nodes, err = s.nodeStore.ListByOwner(ctx, ownerID, store.NodeFilter{Trashed: &trueVal}, store.ListOptions{})

	default:
		return nil, validationError(fmt.Sprintf("unknown view %q", query.View))
	}
	if err != nil {
		return nil, err
	}

	nodes = filterBySearch(nodes, query.Search)
	if query.View != ViewRecent {
		// Recent keeps its recency order regardless of the requested key.
		sortNodes(nodes, query.SortBy, query.Order)
	}
	return nodes, nil
}

// ListShared delegates to the sharing service, then applies search and sort.
func (s *viewService) ListShared(ctx context.Context, principalID string, query ListQuery) ([]*domain.SharedNode, error) {
	items, err := s.shares.ListSharedWithMe(ctx, principalID)
	if err != nil {
		return nil, err
	}

	if q := strings.ToLower(strings.TrimSpace(query.Search)); q != "" {
		filtered := items[:0]
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Name), q) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	sort.SliceStable(items, func(i, j int) bool {
		return nodeLess(&items[i].Node, &items[j].Node, query.SortBy, query.Order)
	})
	return items, nil
}

// dropHiddenSubtrees removes nodes nested under a trashed folder from flat
// listings. The node's own trashed flag was already filtered by the query.
func (s *viewService) dropHiddenSubtrees(ctx context.Context, ownerID string, nodes []*domain.Node) ([]*domain.Node, error) {
	visible := nodes[:0]
	for _, node := range nodes {
		hidden, err := s.tree.AncestorTrashed(ctx, ownerID, node.ParentID)
		if err != nil {
			return nil, err
		}
		if !hidden {
			visible = append(visible, node)
		}
	}
	return visible, nil
}

// filterBySearch applies the case-insensitive substring match on names,
// after the view filter.
func filterBySearch(nodes []*domain.Node, search string) []*domain.Node {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return nodes
	}
	filtered := nodes[:0]
	for _, node := range nodes {
		if strings.Contains(strings.ToLower(node.Name), q) {
			filtered = append(filtered, node)
		}
	}
	return filtered
}

// sortNodes orders a listing: folders always before files, then by the
// requested key. asc/desc flips the key comparison, never the folders-first
// rule.
func sortNodes(nodes []*domain.Node, key SortKey, order string) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodeLess(nodes[i], nodes[j], key, order)
	})
}

func nodeLess(a, b *domain.Node, key SortKey, order string) bool {
	if a.IsFolder() != b.IsFolder() {
		return a.IsFolder()
	}

	var cmp int
	switch key {
	case SortByDate:
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			cmp = -1
		case a.CreatedAt.After(b.CreatedAt):
			cmp = 1
		}
	case SortBySize:
		// Folders compare as size 0.
		switch {
		case a.Size < b.Size:
			cmp = -1
		case a.Size > b.Size:
			cmp = 1
		}
	default:
		cmp = strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}

	if order == "desc" {
		cmp = -cmp
	}
	return cmp < 0
}
