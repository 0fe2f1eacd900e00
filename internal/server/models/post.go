package models

import "time"

type Post struct {
	ID        string
	UserID    string
	Text      string
	CreatedAt time.Time

	// AuthorName is filled by queries that join users.
	AuthorName string
}

type Comment struct {
	ID        string
	PostID    string
	UserID    string
	Text      string
	CreatedAt time.Time

	AuthorName string
}
