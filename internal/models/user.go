package models

import (
	"time"
)

const (
	DefaultDisplayName = "Anonymous"
	DefaultPlace       = "Unknown"
)

// User is the profile record created once at sign-up. ID is issued by the
// identity provider; IsAdmin is fixed at creation from the admin allow-list.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	DisplayName  string    `bson:"display_name" json:"displayName"`
	Place        string    `bson:"place" json:"place"`
	IsAdmin      bool      `bson:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}

// RoleSnapshot is what every role-gated route sees after resolution.
type RoleSnapshot struct {
	UserID      string `json:"id"`
	DisplayName string `json:"displayName"`
	Place       string `json:"place"`
	IsAdmin     bool   `json:"isAdmin"`
}

// Home is the landing route for the role.
func (r RoleSnapshot) Home() string {
	if r.IsAdmin {
		return "/admin"
	}
	return "/dashboard"
}
