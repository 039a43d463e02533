package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/store"
)

// TreeService defines the interface for folder-hierarchy integrity logic.
// It is the single place that walks parent references, so move validation,
// breadcrumbs and folder-picker exclusion all share one implementation.
type TreeService interface {
	// PathTo returns the chain of nodes from the root down to (and
	// including) the given node, for breadcrumb rendering.
	PathTo(ctx context.Context, ownerID, nodeID string) ([]*domain.Node, error)

	// DescendantsOf returns the ids of every node transitively nested under
	// the given folder.
	DescendantsOf(ctx context.Context, ownerID, folderID string) (map[string]struct{}, error)

	// ValidateMove checks that moving the node to the destination folder
	// (nil meaning the root) keeps the tree consistent. It returns an
	// *InvalidMoveError on rejection and performs no mutation.
	ValidateMove(ctx context.Context, node *domain.Node, destinationID *string) error

	// AncestorTrashed reports whether any folder above the given parent
	// reference (inclusive) is trashed. Listings use it to hide subtrees of
	// trashed folders without persisting the implied state.
	AncestorTrashed(ctx context.Context, ownerID string, parentID *string) (bool, error)
}

// treeService is the concrete implementation of the TreeService interface.
type treeService struct {
	nodeStore store.NodeStore
}

// NewTreeService creates a new instance of the tree service.
func NewTreeService(nodeStore store.NodeStore) TreeService {
	return &treeService{nodeStore: nodeStore}
}

// PathTo resolves parent references from the node up to the root, then
// reverses the chain. The visited set is a defensive check: if invariants
// hold a cycle can never appear, because every move is validated first.
func (s *treeService) PathTo(ctx context.Context, ownerID, nodeID string) ([]*domain.Node, error) {
	var chain []*domain.Node
	visited := make(map[string]struct{})

	current := &nodeID
	for current != nil {
		if _, ok := visited[*current]; ok {
			return nil, ErrCycleDetected
		}
		visited[*current] = struct{}{}

		node, err := s.nodeStore.Get(ctx, ownerID, *current)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve ancestor %q: %w", *current, err)
		}
		chain = append(chain, node)
		current = node.ParentID
	}

	// The chain was collected leaf-first; breadcrumbs read root-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// DescendantsOf walks the subtree breadth-first over ListByParent.
func (s *treeService) DescendantsOf(ctx context.Context, ownerID, folderID string) (map[string]struct{}, error) {
	descendants := make(map[string]struct{})
	queue := []string{folderID}

	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		children, err := s.nodeStore.ListByParent(ctx, ownerID, &parent, store.NodeFilter{}, store.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to list children of %q: %w", parent, err)
		}
		for _, child := range children {
			if _, ok := descendants[child.ID]; ok {
				continue
			}
			descendants[child.ID] = struct{}{}
			if child.IsFolder() {
				queue = append(queue, child.ID)
			}
		}
	}
	return descendants, nil
}

// ValidateMove rejects self-moves, moves of a folder into its own subtree,
// and destinations that are missing, trashed, or not folders.
func (s *treeService) ValidateMove(ctx context.Context, node *domain.Node, destinationID *string) error {
	if destinationID != nil {
		if *destinationID == node.ID {
			return &InvalidMoveError{Reason: MoveReasonSelf}
		}

		destination, err := s.nodeStore.Get(ctx, node.OwnerID, *destinationID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &InvalidMoveError{Reason: MoveReasonDestination}
			}
			return err
		}
		if !destination.IsFolder() || destination.Trashed {
			return &InvalidMoveError{Reason: MoveReasonDestination}
		}

		if node.IsFolder() {
			descendants, err := s.DescendantsOf(ctx, node.OwnerID, node.ID)
			if err != nil {
				return err
			}
			if _, ok := descendants[*destinationID]; ok {
				return &InvalidMoveError{Reason: MoveReasonDescendant}
			}
		}
	}
	return nil
}

// AncestorTrashed walks up from the given parent reference looking for a
// trashed folder. A dangling parent reference (shallow permanent delete of
// the ancestor) hides the subtree as well.
func (s *treeService) AncestorTrashed(ctx context.Context, ownerID string, parentID *string) (bool, error) {
	visited := make(map[string]struct{})

	current := parentID
	for current != nil {
		if _, ok := visited[*current]; ok {
			return false, ErrCycleDetected
		}
		visited[*current] = struct{}{}

		node, err := s.nodeStore.Get(ctx, ownerID, *current)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return true, nil
			}
			return false, err
		}
		if node.Trashed {
			return true, nil
		}
		current = node.ParentID
	}
	return false, nil
}
