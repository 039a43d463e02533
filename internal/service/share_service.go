package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/store"

	"github.com/google/uuid"
)

// ShareService defines the interface for sharing business logic: granting,
// revoking and listing per-node access for other principals.
type ShareService interface {
	// Share grants the given permission on a node to the user behind
	// granteeEmail. Re-sharing an already shared node overwrites the
	// existing grant's permission.
	Share(ctx context.Context, ownerID, nodeID, granteeEmail string, permission domain.Permission) (*domain.Share, error)

	// Unshare revokes the grant for a grantee. Revoking an absent grant is
	// a no-op.
	Unshare(ctx context.Context, ownerID, nodeID, granteeID string) error

	// UpdatePermission changes the permission of an existing grant.
	UpdatePermission(ctx context.Context, ownerID, nodeID, granteeID string, permission domain.Permission) (*domain.Share, error)

	// ListGrants lists all grants on a node, with grantee emails resolved.
	ListGrants(ctx context.Context, ownerID, nodeID string) ([]*domain.Grant, error)

	// ListSharedWithMe lists every node shared with the principal, each
	// annotated with the granted permission. Grants whose node has since
	// been permanently deleted are skipped.
	ListSharedWithMe(ctx context.Context, principalID string) ([]*domain.SharedNode, error)

	// CanMutate is the single authorization policy for mutating a node: the
	// caller must be the owner or hold an edit grant. Call sites currently
	// reach it with owner-scoped lookups only, so flipping the edit path on
	// is a policy change here rather than a handler audit.
	CanMutate(ctx context.Context, node *domain.Node, callerID string) (bool, error)
}

// shareService is the concrete implementation of the ShareService interface.
type shareService struct {
	shareStore store.ShareStore
	nodeStore  store.NodeStore
	userStore  store.UserStore
}

// NewShareService creates a new instance of the share service.
func NewShareService(shareStore store.ShareStore, nodeStore store.NodeStore, userStore store.UserStore) ShareService {
	return &shareService{
		shareStore: shareStore,
		nodeStore:  nodeStore,
		userStore:  userStore,
	}
}

// Share resolves the grantee email, checks node ownership and upserts the
// grant. Ownership is enforced by the owner-scoped node lookup: a node that
// exists but is not the caller's is indistinguishable from a missing one.
func (s *shareService) Share(ctx context.Context, ownerID, nodeID, granteeEmail string, permission domain.Permission) (*domain.Share, error) {
	if !permission.Valid() {
		return nil, validationError("permission must be view or edit")
	}

	node, err := s.nodeStore.Get(ctx, ownerID, nodeID)
	if err != nil {
		return nil, err
	}

	grantee, err := s.userStore.FindByEmail(ctx, granteeEmail)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGranteeNotFound
		}
		return nil, fmt.Errorf("failed to resolve grantee: %w", err)
	}
	if grantee.ID == ownerID {
		return nil, validationError("cannot share an item with its owner")
	}

	now := time.Now().UTC()
	share := &domain.Share{
		ID:         uuid.NewString(),
		NodeID:     node.ID,
		NodeKind:   node.Kind,
		OwnerID:    ownerID,
		GranteeID:  grantee.ID,
		Permission: permission,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.shareStore.Upsert(ctx, share); err != nil {
		return nil, fmt.Errorf("failed to save share grant: %w", err)
	}
	return share, nil
}

// Unshare deletes the grant if present.
func (s *shareService) Unshare(ctx context.Context, ownerID, nodeID, granteeID string) error {
	if _, err := s.nodeStore.Get(ctx, ownerID, nodeID); err != nil {
		return err
	}

	err := s.shareStore.Delete(ctx, nodeID, granteeID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// UpdatePermission overwrites the permission of an existing grant.
func (s *shareService) UpdatePermission(ctx context.Context, ownerID, nodeID, granteeID string, permission domain.Permission) (*domain.Share, error) {
	if !permission.Valid() {
		return nil, validationError("permission must be view or edit")
	}
	if _, err := s.nodeStore.Get(ctx, ownerID, nodeID); err != nil {
		return nil, err
	}

	share, err := s.shareStore.GetByNodeAndGrantee(ctx, nodeID, granteeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGrantNotFound
		}
		return nil, err
	}

	share.Permission = permission
	share.UpdatedAt = time.Now().UTC()
	if err := s.shareStore.Upsert(ctx, share); err != nil {
		return nil, fmt.Errorf("failed to update share grant: %w", err)
	}
	return share, nil
}

// ListGrants lists the grants on a node for its owner, resolving grantee
// emails for display.
func (s *shareService) ListGrants(ctx context.Context, ownerID, nodeID string) ([]*domain.Grant, error) {
	if _, err := s.nodeStore.Get(ctx, ownerID, nodeID); err != nil {
		return nil, err
	}

	shares, err := s.shareStore.ListByNode(ctx, nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list share grants: %w", err)
	}

	grants := make([]*domain.Grant, 0, len(shares))
	for _, share := range shares {
		grant := &domain.Grant{
			GranteeID:  share.GranteeID,
			Permission: share.Permission,
		}
		if grantee, err := s.userStore.FindByID(ctx, share.GranteeID); err == nil {
			grant.GranteeEmail = grantee.Email
		}
		grants = append(grants, grant)
	}
	return grants, nil
}

// ListSharedWithMe resolves every grant received by the principal to its
// node. Dangling grants (node permanently deleted) are skipped silently;
// they are not proactively cleaned up.
func (s *shareService) ListSharedWithMe(ctx context.Context, principalID string) ([]*domain.SharedNode, error) {
	shares, err := s.shareStore.ListByGrantee(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received grants: %w", err)
	}

	items := make([]*domain.SharedNode, 0, len(shares))
	for _, share := range shares {
		node, err := s.nodeStore.Get(ctx, share.OwnerID, share.NodeID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, &domain.SharedNode{
			Node:       *node,
			Permission: share.Permission,
		})
	}
	return items, nil
}

// CanMutate implements the mutation policy: owner, or grantee with edit.
func (s *shareService) CanMutate(ctx context.Context, node *domain.Node, callerID string) (bool, error) {
	if node.OwnerID == callerID {
		return true, nil
	}

	share, err := s.shareStore.GetByNodeAndGrantee(ctx, node.ID, callerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return share.Permission == domain.PermissionEdit, nil
}
