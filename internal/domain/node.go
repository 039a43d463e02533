package domain

import (
	"time"
)

// Kind discriminates the two node variants stored in the nodes collection.
type Kind string

const (
	KindFolder Kind = "folder"
	KindFile   Kind = "file"
)

// Valid reports whether k is one of the known node kinds.
func (k Kind) Valid() bool {
	return k == KindFolder || k == KindFile
}

// Node represents a single item in a user's drive: either a folder or a
// file's metadata. Both variants share the same tree fields so that move,
// trash and sharing logic is written once.
//
// ParentID is nil for items at the root of "My Drive". A non-nil ParentID
// always references a folder node owned by the same owner.
type Node struct {
	ID        string    `bson:"_id" json:"id"`
	Kind      Kind      `bson:"kind" json:"type"`
	Name      string    `bson:"name" json:"name"`
	OwnerID   string    `bson:"owner" json:"ownerId"`
	ParentID  *string   `bson:"parent" json:"parentId"`
	Starred   bool      `bson:"starred" json:"isStarred"`
	Trashed   bool      `bson:"trashed" json:"isTrashed"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`

	// File-only fields. Zero values for folders.
	MimeType   string `bson:"mimeType,omitempty" json:"mimeType,omitempty"`
	Size       int64  `bson:"size,omitempty" json:"size,omitempty"`
	StorageRef string `bson:"storageRef,omitempty" json:"-"`
}

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// SharedNode is a node annotated with the permission the viewing principal
// holds on it, as returned by the shared-with-me listing.
type SharedNode struct {
	Node
	Permission Permission `json:"permission"`
}
