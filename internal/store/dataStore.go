package store

import (
	"context"
	"errors"

	"github.com/Noorain464/GoogleDrive/internal/domain"
)

// Standard errors returned by the store layer. This allows the service layer
// to handle specific database errors without being coupled to the database
// implementation.
var (
	ErrNotFound = errors.New("requested item not found")
	ErrConflict = errors.New("item already exists")
)

// ListOptions contains options for listing items, such as sorting and pagination.
type ListOptions struct {
	SortBy    string
	SortOrder int // 1 for ascending, -1 for descending
	Limit     int64
}

// NodeFilter narrows a node listing. Nil fields are not applied.
type NodeFilter struct {
	Kind    *domain.Kind
	Starred *bool
	Trashed *bool
}

// NodeStore defines the interface for node (file and folder metadata) data
// operations. Every operation is scoped by owner: a node that exists but
// belongs to another owner is reported as ErrNotFound.
type NodeStore interface {
	// Get retrieves a single node by its ID. It returns store.ErrNotFound
	// if no node matches the (owner, id) pair.
	Get(ctx context.Context, ownerID, nodeID string) (*domain.Node, error)

	// ListByParent retrieves the direct children of a folder. A nil parentID
	// selects the owner's root items.
	ListByParent(ctx context.Context, ownerID string, parentID *string, filter NodeFilter, opts ListOptions) ([]*domain.Node, error)

	// ListByOwner retrieves nodes across the whole tree, for the flat views
	// (recent, starred, trash).
	ListByOwner(ctx context.Context, ownerID string, filter NodeFilter, opts ListOptions) ([]*domain.Node, error)

	// Insert stores a new node. The node's ID must already be assigned.
	Insert(ctx context.Context, node *domain.Node) error

	// Update replaces the stored node matching (owner, id). It returns
	// store.ErrNotFound if no such node exists.
	Update(ctx context.Context, node *domain.Node) error

	// Delete removes the node matching (owner, id). It returns
	// store.ErrNotFound if no such node exists.
	Delete(ctx context.Context, ownerID, nodeID string) error
}

// ShareStore defines the interface for share grant data operations.
type ShareStore interface {
	// GetByNodeAndGrantee retrieves the single grant for a (node, grantee)
	// pair. It returns store.ErrNotFound if no grant exists.
	GetByNodeAndGrantee(ctx context.Context, nodeID, granteeID string) (*domain.Share, error)

	// ListByNode retrieves all grants on a node.
	ListByNode(ctx context.Context, nodeID string) ([]*domain.Share, error)

	// ListByGrantee retrieves all grants where the given principal is the
	// recipient.
	ListByGrantee(ctx context.Context, granteeID string) ([]*domain.Share, error)

	// Upsert inserts the grant, or overwrites the permission of the existing
	// grant for the same (node, grantee) pair.
	Upsert(ctx context.Context, share *domain.Share) error

	// Delete removes the grant for a (node, grantee) pair. It returns
	// store.ErrNotFound if no grant exists.
	Delete(ctx context.Context, nodeID, granteeID string) error
}

// UserStore defines the interface for user data operations. Any struct that
// implements these methods can be used as a user database by the application.
type UserStore interface {
	// Create inserts a new user into the database.
	Create(ctx context.Context, user *domain.User) error

	// FindByEmail retrieves a user by their email address. It should return
	// store.ErrNotFound if no user is found.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindByID retrieves a user by their unique ID. It should return
	// store.ErrNotFound if no user is found.
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
