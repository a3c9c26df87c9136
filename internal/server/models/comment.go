package models

import "time"

// Comment belongs to one Post. UserID is nil for anonymous comments and is
// cleared when the commenter is deleted.
type Comment struct {
	Base
	Text        string
	CommentDate time.Time
	PostID      int64
	UserID      *int64
}
