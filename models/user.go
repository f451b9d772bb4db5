package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is the closed set of values the identity store may hold for a user.
// The zero value means the user has not been assigned a role yet.
type Role string

const (
	RoleUnset Role = ""
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
	RoleFraud Role = "fraud"
)

// ValidRole reports whether r is one of the assignable role values.
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin, RoleFraud:
		return true
	}
	return false
}

type User struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID string             `bson:"userId" json:"userId"`
	Name   string             `bson:"name,omitempty" json:"name,omitempty"`
	Email  string             `bson:"email,omitempty" json:"email,omitempty"`
	Role   Role               `bson:"role,omitempty" json:"role,omitempty"`
}
