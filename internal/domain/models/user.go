package models

import "time"

// Auth types. Fixed at creation; a user never switches between them.
const (
	AuthTypeLocal    = "local"    // email/password registration
	AuthTypeExternal = "external" // verified through the identity broker
)

// Roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a platform account. PasswordHash is present only for
// locally-authenticated users and never leaves the server.
type User struct {
	UserID       string    `bson:"user_id" json:"user_id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	Picture      *string   `bson:"picture,omitempty" json:"picture"`
	PasswordHash *string   `bson:"password_hash,omitempty" json:"-"`
	Role         string    `bson:"role" json:"role"`
	AuthType     string    `bson:"auth_type" json:"auth_type"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
