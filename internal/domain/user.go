package domain

import (
	"time"
)

// User is an account that owns a drive tree and can be the grantee of
// shares on other users' nodes.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PublicUser is the subset of User that is safe to return to clients.
type PublicUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ToPublic strips credential fields from the user for API responses.
func (u *User) ToPublic() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email}
}
