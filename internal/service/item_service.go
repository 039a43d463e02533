package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Noorain464/GoogleDrive/internal/blob"
	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ItemService defines the interface for item lifecycle business logic. Every
// mutation commits through the node store only after the relevant tree
// integrity check has passed, so a rejected request leaves no partial write.
type ItemService interface {
	CreateFolder(ctx context.Context, ownerID, name string, parentID *string) (*domain.Node, error)
	UploadFile(ctx context.Context, ownerID, name, mimeType string, parentID *string, source io.Reader) (*domain.Node, error)
	DownloadFile(ctx context.Context, ownerID, nodeID string) (io.ReadCloser, *domain.Node, error)
	Rename(ctx context.Context, ownerID, nodeID, newName string) (*domain.Node, error)
	Move(ctx context.Context, ownerID, nodeID string, destinationID *string) (*domain.Node, error)
	ToggleStar(ctx context.Context, ownerID, nodeID string) (*domain.Node, error)
	Trash(ctx context.Context, ownerID, nodeID string) (*domain.Node, error)
	Restore(ctx context.Context, ownerID, nodeID string) (*domain.Node, error)
	PermanentlyDelete(ctx context.Context, ownerID, nodeID string) error
	Breadcrumbs(ctx context.Context, ownerID, nodeID string) ([]*domain.Node, error)
}

// itemService is the concrete implementation of the ItemService interface.
type itemService struct {
	nodeStore store.NodeStore
	blobStore blob.Store
	tree      TreeService
	logger    zerolog.Logger
}

// NewItemService creates a new instance of the item service.
func NewItemService(nodeStore store.NodeStore, blobStore blob.Store, tree TreeService, logger zerolog.Logger) ItemService {
	return &itemService{
		nodeStore: nodeStore,
		blobStore: blobStore,
		tree:      tree,
		logger:    logger,
	}
}

// resolveParent checks that a non-nil parent reference points at an
// existing, non-trashed folder of the same owner. A trashed or missing
// parent is reported as not found: you cannot file something into it.
func (s *itemService) resolveParent(ctx context.Context, ownerID string, parentID *string) error {
	if parentID == nil {
		return nil
	}
	parent, err := s.nodeStore.Get(ctx, ownerID, *parentID)
	if err != nil {
		return fmt.Errorf("parent folder: %w", err)
	}
	if !parent.IsFolder() || parent.Trashed {
		return fmt.Errorf("parent folder: %w", store.ErrNotFound)
	}
	return nil
}

// CreateFolder handles the business logic for creating a new folder.
func (s *itemService) CreateFolder(ctx context.Context, ownerID, name string, parentID *string) (*domain.Node, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("folder name cannot be empty")
	}
	if err := s.resolveParent(ctx, ownerID, parentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	node := &domain.Node{
		ID:        uuid.NewString(),
		Kind:      domain.KindFolder,
		Name:      name,
		OwnerID:   ownerID,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.nodeStore.Insert(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to create folder in store: %w", err)
	}
	return node, nil
}

// UploadFile stores the file's bytes in the blob store and then records the
// metadata node. The reported size is whatever the blob store consumed.
func (s *itemService) UploadFile(ctx context.Context, ownerID, name, mimeType string, parentID *string, source io.Reader) (*domain.Node, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("file name cannot be empty")
	}
	if err := s.resolveParent(ctx, ownerID, parentID); err != nil {
		return nil, err
	}

	ref := uuid.NewString()
	size, err := s.blobStore.Put(ctx, ref, source)
	if err != nil {
		return nil, fmt.Errorf("failed to store file content: %w", err)
	}

	now := time.Now().UTC()
	node := &domain.Node{
		ID:         uuid.NewString(),
		Kind:       domain.KindFile,
		Name:       name,
		OwnerID:    ownerID,
		ParentID:   parentID,
		CreatedAt:  now,
		UpdatedAt:  now,
		MimeType:   mimeType,
		Size:       size,
		StorageRef: ref,
	}

	if err := s.nodeStore.Insert(ctx, node); err != nil {
		// The metadata row is the source of truth; drop the orphaned blob.
		if delErr := s.blobStore.Delete(ctx, ref); delErr != nil {
			s.logger.Warn().Err(delErr).Str("ref", ref).Msg("failed to clean up blob after insert failure")
		}
		return nil, fmt.Errorf("failed to create file in store: %w", err)
	}
	return node, nil
}

// DownloadFile opens the blob content for a file node.
func (s *itemService) DownloadFile(ctx context.Context, ownerID, nodeID string) (io.ReadCloser, *domain.Node, error) {
	node, err := s.nodeStore.Get(ctx, ownerID, nodeID)
	if err != nil {
		return nil, nil, err
	}
	if node.IsFolder() {
		return nil, nil, validationError("cannot download a folder")
	}

	rc, err := s.blobStore.Get(ctx, node.StorageRef)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			return nil, nil, store.ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open file content: %w", err)
	}
	return rc, node, nil
}

// Rename updates the node's display name. Renaming to the current name is
// accepted as a no-op.
func (s *itemService) Rename(ctx context.Context, ownerID, nodeID, newName string) (*domain.Node, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, validationError("name cannot be empty")
	}

	node, err := s.nodeStore.Get(ctx, ownerID, nodeID)
	if err != nil {
		return nil, err
	}
	if node.Name == newName {
		return node, nil
	}

	node.Name = newName
	node.UpdatedAt = time.Now().UTC()
	if err := s.nodeStore.Update(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to rename item: %w", err)
	}
	return node, nil
}

// Move re-parents the node after tree integrity validation. Moving to the
// current parent is accepted as a no-op.
func (s *itemService) Move(ctx context.Context, ownerID, nodeID string, destinationID *string) (*domain.Node, error) {
	node, err := s.nodeStore.Get(ctx, ownerID, nodeID)
	if err != nil {
		return nil, err
	}

	if sameParentRef(node.ParentID, destinationID) {
		return node, nil
	}

	if err := s.tree.ValidateMove(ctx, node, destinationID); err != nil {
		return nil, err
	}

	node.ParentID = destinationID
	node.UpdatedAt = time.Now().UTC()
	if err := s.nodeStore.Update(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to move item: %w", err)
	}
	return node, nil
}

// ToggleStar flips the starred flag. Each call toggles; idempotence is in
// effect only, not in call count.
func (s *itemService) ToggleStar(ctx context.Context, ownerID, nodeID string) (*domain.Node, error) {
	node, err := s.nodeStore.Get(ctx, ownerID, nodeID)
	if err != nil {
		return nil, err
	}

	node.Starred = !node.Starred
	node.UpdatedAt = time.Now().UTC()
	if err := s.nodeStore.Update(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to update star flag: %w", err)
	}
	return node, nil
}

// Trash soft-deletes the node. Children keep their own flags; listings hide
// the subtree by treating a trashed ancestor as trashed for display.
func (s *itemService) Trash(ctx context.Context, ownerID, nodeID string) (*domain.Node, error) {
	node, err := s.nodeStore.Get(ctx, ownerID, nodeID)
	if err != nil {
		return nil, err
	}
	if node.Trashed {
		return node, nil
	}

	node.Trashed = true
	node.UpdatedAt = time.Now().UTC()
	if err := s.nodeStore.Update(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to trash item: %w", err)
	}
	return node, nil
}

// Restore clears the trashed flag, but only when the direct parent is not
// itself trashed: restoring a child under an invisible parent is disallowed.
func (s *itemService) Restore(ctx context.Context, ownerID, nodeID string) (*domain.Node, error) {
	node, err := s.nodeStore.Get(ctx, ownerID, nodeID)
	if err != nil {
		return nil, err
	}
	if !node.Trashed {
		return nil, ErrNotInTrash
	}

	if node.ParentID != nil {
		parent, err := s.nodeStore.Get(ctx, ownerID, *node.ParentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrParentStillTrashed
			}
			return nil, err
		}
		if parent.Trashed {
			return nil, ErrParentStillTrashed
		}
	}

	node.Trashed = false
	node.UpdatedAt = time.Now().UTC()
	if err := s.nodeStore.Update(ctx, node); err != nil {
		return nil, fmt.Errorf("failed to restore item: %w", err)
	}
	return node, nil
}

// PermanentlyDelete removes the metadata row of a trashed node. For files
// the backing bytes are released best-effort first: a blob store failure is
// logged and does not block the metadata deletion. Folder deletion is
// shallow and does not cascade to children.
func (s *itemService) PermanentlyDelete(ctx context.Context, ownerID, nodeID string) error {
	node, err := s.nodeStore.Get(ctx, ownerID, nodeID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// An already-deleted node was by definition not in the trash,
			// so repeated deletes report the precondition, not absence.
			return ErrNotInTrash
		}
		return err
	}
	if !node.Trashed {
		return ErrNotInTrash
	}

	if node.Kind == domain.KindFile && node.StorageRef != "" {
		if err := s.blobStore.Delete(ctx, node.StorageRef); err != nil && !errors.Is(err, blob.ErrNotFound) {
			s.logger.Warn().Err(err).Str("node", node.ID).Str("ref", node.StorageRef).
				Msg("failed to release file content, metadata will be removed anyway")
		}
	}

	if err := s.nodeStore.Delete(ctx, ownerID, nodeID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// Breadcrumbs returns the ancestor chain for navigation display.
func (s *itemService) Breadcrumbs(ctx context.Context, ownerID, nodeID string) ([]*domain.Node, error) {
	return s.tree.PathTo(ctx, ownerID, nodeID)
}

func sameParentRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
