package memory

import (
	"context"
	"sync"

	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/store"
)

type shareKey struct {
	nodeID    string
	granteeID string
}

// ShareStore is an in-memory implementation of store.ShareStore.
type ShareStore struct {
	mu     sync.RWMutex
	shares map[shareKey]*domain.Share
}

// NewShareStore creates an empty in-memory share store.
func NewShareStore() *ShareStore {
	return &ShareStore{shares: make(map[shareKey]*domain.Share)}
}

// GetByNodeAndGrantee finds the single grant for a (node, grantee) pair.
func (s *ShareStore) GetByNodeAndGrantee(ctx context.Context, nodeID, granteeID string) (*domain.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	share, ok := s.shares[shareKey{nodeID, granteeID}]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *share
	return &cp, nil
}

// ListByNode retrieves all grants on a node.
func (s *ShareStore) ListByNode(ctx context.Context, nodeID string) ([]*domain.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Share
	for _, share := range s.shares {
		if share.NodeID == nodeID {
			cp := *share
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ListByGrantee retrieves all grants received by a principal.
func (s *ShareStore) ListByGrantee(ctx context.Context, granteeID string) ([]*domain.Share, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.Share
	for _, share := range s.shares {
		if share.GranteeID == granteeID {
			cp := *share
			out = append(out, &cp)
		}
	}
	return out, nil
}

// Upsert inserts the grant, or overwrites the permission of the existing
// grant for the same (node, grantee) pair.
func (s *ShareStore) Upsert(ctx context.Context, share *domain.Share) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := shareKey{share.NodeID, share.GranteeID}
	if existing, ok := s.shares[key]; ok {
		existing.Permission = share.Permission
		existing.UpdatedAt = share.UpdatedAt
		*share = *existing
		return nil
	}
	cp := *share
	s.shares[key] = &cp
	return nil
}

// Delete removes the grant for a (node, grantee) pair.
func (s *ShareStore) Delete(ctx context.Context, nodeID, granteeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := shareKey{nodeID, granteeID}
	if _, ok := s.shares[key]; !ok {
		return store.ErrNotFound
	}
	delete(s.shares, key)
	return nil
}
