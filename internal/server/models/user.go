package models

// User is an author or commenter. Email and Username are unique among live
// users, compared case-insensitively.
type User struct {
	Base
	FirstName string
	LastName  string
	Email     string
	Username  string
	// PasswordHash holds the bcrypt hash once persisted. On Add and Update it
	// carries the submitted credential until the user manager hashes it.
	PasswordHash      string
	ProfilePictureURL string
}
