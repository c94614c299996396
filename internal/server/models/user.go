// Package models defines the records persisted in the database and the small
// enums that travel with them.
package models

import "time"

// Role is the coarse permission class of a user. The set is closed: every
// user is exactly one of the roles below.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher:
		return true
	}
	return false
}

// User is a row of the users table. PasswordHash is a bcrypt digest and is
// never serialized.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
