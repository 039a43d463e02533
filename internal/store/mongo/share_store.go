package mongo

import (
	"context"
	"errors"

	"github.com/Noorain464/GoogleDrive/internal/domain"
	"github.com/Noorain464/GoogleDrive/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const shareCollection = "shares"

// ShareStore is the MongoDB implementation of the store.ShareStore interface.
// Grants are unique per (node, grantee); a unique compound index on those
// fields is expected on the collection.
type ShareStore struct {
	db *mongo.Database
}

// NewShareStore creates a new ShareStore.
func NewShareStore(db *mongo.Database) *ShareStore {
	return &ShareStore{db: db}
}

// GetByNodeAndGrantee finds the single grant for a (node, grantee) pair.
func (s *ShareStore) GetByNodeAndGrantee(ctx context.Context, nodeID, granteeID string) (*domain.Share, error) {
	var share domain.Share
	filter := bson.M{
		"node":    nodeID,
		"grantee": granteeID,
	}

	err := s.db.Collection(shareCollection).FindOne(ctx, filter).Decode(&share)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &share, nil
}

// ListByNode retrieves all grants on a node.
func (s *ShareStore) ListByNode(ctx context.Context, nodeID string) ([]*domain.Share, error) {
	return s.find(ctx, bson.M{"node": nodeID})
}

// ListByGrantee retrieves all grants received by a principal.
func (s *ShareStore) ListByGrantee(ctx context.Context, granteeID string) ([]*domain.Share, error) {
	return s.find(ctx, bson.M{"grantee": granteeID})
}

// Upsert inserts the grant, or overwrites the existing grant for the same
// (node, grantee) pair.
func (s *ShareStore) Upsert(ctx context.Context, share *domain.Share) error {
	filter := bson.M{
		"node":    share.NodeID,
		"grantee": share.GranteeID,
	}
	update := bson.M{
		"$set": bson.M{
			"permission": share.Permission,
			"updatedAt":  share.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       share.ID,
			"node":      share.NodeID,
			"nodeKind":  share.NodeKind,
			"owner":     share.OwnerID,
			"grantee":   share.GranteeID,
			"createdAt": share.CreatedAt,
		},
	}

	_, err := s.db.Collection(shareCollection).UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	return err
}

// Delete removes the grant for a (node, grantee) pair.
func (s *ShareStore) Delete(ctx context.Context, nodeID, granteeID string) error {
	filter := bson.M{
		"node":    nodeID,
		"grantee": granteeID,
	}

	res, err := s.db.Collection(shareCollection).DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ShareStore) find(ctx context.Context, query bson.M) ([]*domain.Share, error) {
	cursor, err := s.db.Collection(shareCollection).Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shares []*domain.Share
	if err := cursor.All(ctx, &shares); err != nil {
		return nil, err
	}

	return shares, nil
}
