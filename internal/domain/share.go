package domain

import (
	"time"
)

// Permission is the access level a share grant confers on a node.
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

// Valid reports whether p is one of the known permission values.
func (p Permission) Valid() bool {
	return p == PermissionView || p == PermissionEdit
}

// Share is a grant of access to a single node from its owner to another
// principal. At most one share exists per (NodeID, GranteeID) pair;
// re-sharing overwrites the permission of the existing grant.
type Share struct {
	ID         string     `bson:"_id" json:"id"`
	NodeID     string     `bson:"node" json:"nodeId"`
	NodeKind   Kind       `bson:"nodeKind" json:"nodeKind"`
	OwnerID    string     `bson:"owner" json:"ownerId"`
	GranteeID  string     `bson:"grantee" json:"granteeId"`
	Permission Permission `bson:"permission" json:"permission"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// Grant is the per-grantee view of a share as listed to the node's owner,
// with the grantee's email resolved for display.
type Grant struct {
	GranteeID    string     `json:"granteeId"`
	GranteeEmail string     `json:"granteeEmail"`
	Permission   Permission `json:"permission"`
}
