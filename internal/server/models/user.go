// Package models defines server-side data models persisted in the database
// and the read models assembled from them.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID   string
	UserName string
}
