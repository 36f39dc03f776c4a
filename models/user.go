// models/user.go
package models

import "time"

// User roles.
const (
	RoleAdmin = "admin"
	RoleHOD   = "hod"
)

// User is an admin or a head of department.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	Department   string    `bson:"department" json:"department"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	Approved     bool      `bson:"approved" json:"approved"`
	ProfilePic   string    `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Actor is the verified identity of the caller, as extracted from the access token.
type Actor struct {
	UserID     string
	Role       string
	Department string
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// UserRegistration is the payload for creating an admin or HOD account.
type UserRegistration struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
	Department string `json:"department"`
}

// UserUpdate holds optional profile or HOD edits; empty fields are ignored.
type UserUpdate struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	ProfilePic string `json:"profilePic"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	Name       string `json:"name"`
	Department string `json:"department"`
}
