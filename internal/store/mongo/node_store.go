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

const nodeCollection = "nodes"

// NodeStore is the MongoDB implementation of the store.NodeStore interface.
// Folders and file metadata live in one collection, discriminated by the
// "kind" field.
type NodeStore struct {
	db *mongo.Database
}

// NewNodeStore creates a new NodeStore.
func NewNodeStore(db *mongo.Database) *NodeStore {
	return &NodeStore{db: db}
}

// Get finds a node by its ID, ensuring it belongs to the specified owner.
func (s *NodeStore) Get(ctx context.Context, ownerID, nodeID string) (*domain.Node, error) {
	var node domain.Node
	filter := bson.M{
		"_id":   nodeID,
		"owner": ownerID,
	}

	err := s.db.Collection(nodeCollection).FindOne(ctx, filter).Decode(&node)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &node, nil
}

// ListByParent retrieves the direct children of a folder. A nil parentID
// matches root-level nodes (stored with a null parent field).
func (s *NodeStore) ListByParent(ctx context.Context, ownerID string, parentID *string, filter store.NodeFilter, opts store.ListOptions) ([]*domain.Node, error) {
	query := bson.M{
		"owner":  ownerID,
		"parent": parentID,
	}
	applyNodeFilter(query, filter)

	return s.find(ctx, query, opts)
}

// ListByOwner retrieves nodes across the whole tree for the flat views.
func (s *NodeStore) ListByOwner(ctx context.Context, ownerID string, filter store.NodeFilter, opts store.ListOptions) ([]*domain.Node, error) {
	query := bson.M{"owner": ownerID}
	applyNodeFilter(query, filter)

	return s.find(ctx, query, opts)
}

// Insert stores a new node document. The caller assigns the ID.
func (s *NodeStore) Insert(ctx context.Context, node *domain.Node) error {
	_, err := s.db.Collection(nodeCollection).InsertOne(ctx, node)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return store.ErrConflict
		}
		return err
	}
	return nil
}

// Update replaces the stored node matching (owner, id).
func (s *NodeStore) Update(ctx context.Context, node *domain.Node) error {
	filter := bson.M{
		"_id":   node.ID,
		"owner": node.OwnerID,
	}

	res, err := s.db.Collection(nodeCollection).ReplaceOne(ctx, filter, node)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes the node matching (owner, id).
func (s *NodeStore) Delete(ctx context.Context, ownerID, nodeID string) error {
	filter := bson.M{
		"_id":   nodeID,
		"owner": ownerID,
	}

	res, err := s.db.Collection(nodeCollection).DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// find runs the assembled query with the sort and limit handling shared by
// both listing methods.
func (s *NodeStore) find(ctx context.Context, query bson.M, opts store.ListOptions) ([]*domain.Node, error) {
	findOptions := options.Find()
	if opts.SortBy != "" {
		findOptions.SetSort(bson.D{{Key: opts.SortBy, Value: opts.SortOrder}})
	}
	if opts.SortBy == "name" {
		// Case-insensitive ordering for display names.
		findOptions.SetCollation(&options.Collation{Locale: "en", Strength: 2})
	}
	if opts.Limit > 0 {
		findOptions.SetLimit(opts.Limit)
	}

	cursor, err := s.db.Collection(nodeCollection).Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var nodes []*domain.Node
	if err := cursor.All(ctx, &nodes); err != nil {
		return nil, err
	}

	return nodes, nil
}

func applyNodeFilter(query bson.M, filter store.NodeFilter) {
	if filter.Kind != nil {
		query["kind"] = *filter.Kind
	}
	if filter.Starred != nil {
		query["starred"] = *filter.Starred
	}
	if filter.Trashed != nil {
		if *filter.Trashed {
			query["trashed"] = true
		} else {
			// Absent field counts as not trashed.
			query["trashed"] = bson.M{"$ne": true}
		}
	}
}
