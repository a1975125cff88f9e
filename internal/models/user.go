// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// UserRole defines the access level of a user account.
type UserRole string

const (
	// RoleUser is the default role for self-registered authors.
	RoleUser UserRole = "user"
	// RoleAdmin grants full content management and moderation rights.
	RoleAdmin UserRole = "admin"
)

// SocialLinks holds the optional social profile URLs shown on author pages.
type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Linkedin  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Pinterest string `json:"pinterest"`
	Website   string `json:"website"`
}

// User represents an account on the Aurum platform.
type User struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Username    string      `gorm:"unique;not null" json:"username"`
	Email       string      `gorm:"unique;not null" json:"email"`
	Password    string      `gorm:"not null" json:"-"`
	Role        UserRole    `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Title       string      `gorm:"default:'Precious Metals Analyst'" json:"title"`
	SocialLinks SocialLinks `gorm:"serializer:json" json:"social_links"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID       uint
	Username string
	Role     UserRole
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// AsPrincipal converts a stored user into a request principal.
func (u *User) AsPrincipal() Principal {
	return Principal{ID: u.ID, Username: u.Username, Role: u.Role}
}
