package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/store"
)

// NodeStore is an in-memory implementation of store.NodeStore, used for
// tests and for running the server without a database.
type NodeStore struct {
	mu    sync.RWMutex
	nodes map[string]*domain.Node
}

// NewNodeStore creates an empty in-memory node store.
func NewNodeStore() *NodeStore {
	return &NodeStore{nodes: make(map[string]*domain.Node)}
}

// Get finds a node by its ID, ensuring it belongs to the specified owner.
func (s *NodeStore) Get(ctx context.Context, ownerID, nodeID string) (*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node, ok := s.nodes[nodeID]
	if !ok || node.OwnerID != ownerID {
		return nil, store.ErrNotFound
	}
	cp := *node
	return &cp, nil
}

// ListByParent retrieves the direct children of a folder.
func (s *NodeStore) ListByParent(ctx context.Context, ownerID string, parentID *string, filter store.NodeFilter, opts store.ListOptions) ([]*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Node
	for _, node := range s.nodes {
		if node.OwnerID != ownerID || !sameParent(node.ParentID, parentID) {
			continue
		}
		if !matches(node, filter) {
			continue
		}
		cp := *node
		out = append(out, &cp)
	}
	return applyOptions(out, opts), nil
}

// ListByOwner retrieves nodes across the whole tree.
func (s *NodeStore) ListByOwner(ctx context.Context, ownerID string, filter store.NodeFilter, opts store.ListOptions) ([]*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Node
	for _, node := range s.nodes {
		if node.OwnerID != ownerID || !matches(node, filter) {
			continue
		}
		cp := *node
		out = append(out, &cp)
	}
	return applyOptions(out, opts), nil
}

// Insert stores a new node.
func (s *NodeStore) Insert(ctx context.Context, node *domain.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[node.ID]; ok {
		return store.ErrConflict
	}
	cp := *node
	s.nodes[node.ID] = &cp
	return nil
}

// Update replaces the stored node matching (owner, id).
func (s *NodeStore) Update(ctx context.Context, node *domain.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.nodes[node.ID]
	if !ok || existing.OwnerID != node.OwnerID {
		return store.ErrNotFound
	}
	cp := *node
	s.nodes[node.ID] = &cp
	return nil
}

// Delete removes the node matching (owner, id).
func (s *NodeStore) Delete(ctx context.Context, ownerID, nodeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.nodes[nodeID]
	if !ok || existing.OwnerID != ownerID {
		return store.ErrNotFound
	}
	delete(s.nodes, nodeID)
	return nil
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func matches(node *domain.Node, filter store.NodeFilter) bool {
	if filter.Kind != nil && node.Kind != *filter.Kind {
		return false
	}
	if filter.Starred != nil && node.Starred != *filter.Starred {
		return false
	}
	if filter.Trashed != nil && node.Trashed != *filter.Trashed {
		return false
	}
	return true
}

func applyOptions(nodes []*domain.Node, opts store.ListOptions) []*domain.Node {
	if opts.SortBy != "" {
		desc := opts.SortOrder < 0
		sort.SliceStable(nodes, func(i, j int) bool {
			less := lessBy(nodes[i], nodes[j], opts.SortBy)
			if desc {
				return !less && !equalBy(nodes[i], nodes[j], opts.SortBy)
			}
			return less
		})
	}
	if opts.Limit > 0 && int64(len(nodes)) > opts.Limit {
		nodes = nodes[:opts.Limit]
	}
	return nodes
}

func lessBy(a, b *domain.Node, key string) bool {
	switch key {
	case "name":
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	case "size":
		return a.Size < b.Size
	case "updatedAt":
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func equalBy(a, b *domain.Node, key string) bool {
	switch key {
	case "name":
		return strings.EqualFold(a.Name, b.Name)
	case "size":
		return a.Size == b.Size
	case "updatedAt":
		return a.UpdatedAt.Equal(b.UpdatedAt)
	default:
		return a.CreatedAt.Equal(b.CreatedAt)
	}
}
