// Package models defines server-side data models shared by repositories and
// services.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and must never
// leave the server layer.
type User struct {
	ID           string
	Email        string
	Name         string
	Country      string
	PasswordHash []byte
	CreatedAt    time.Time
}
