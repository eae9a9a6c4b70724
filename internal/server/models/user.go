// Package models defines server-side data models persisted in the relational
// store and the combined profile view returned to clients.
package models

import "time"

// User is one row of the users table. PasswordHash holds a bcrypt hash and is
// never serialized.
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string `json:"-"`
	Phone        string
	CreatedAt    time.Time
}
