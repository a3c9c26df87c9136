package models

// Category groups posts. Name is unique among live categories.
type Category struct {
	Base
	Name        string
	Description string
}
