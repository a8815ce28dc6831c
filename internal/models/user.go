package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the privilege level stored on a user record.
type Role string

const (
	RoleNone      Role = ""
	RoleAdmin     Role = "admin"
	RoleDemoAdmin Role = "demo-admin"
)

// IsAdmin reports whether r grants access to admin routes. Demo admins
// share every admin capability.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleDemoAdmin
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	PhotoURL  string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Role      Role               `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateUserRequest is sent by the client after a successful sign-in.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	PhotoURL string `json:"photoURL" binding:"omitempty,url"`
}

type TokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}
