package models

import "time"

// Post belongs to one Category and one author.
type Post struct {
	Base
	Title       string
	Content     string
	ImageURL    string
	ViewCount   int
	PublishDate time.Time
	CategoryID  int64
	UserID      int64
}
