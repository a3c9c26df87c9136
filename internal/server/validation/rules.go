package validation

import "github.com/dmitrijs2005/blogcore/internal/server/models"

// Rule sets keyed by field name, in validator tag syntax. Fields are checked
// in declaration order and each field stops at its first failing tag.
var (
	BaseRules = map[string]string{
		"ID": "gte=0",
	}

	CategoryRules = map[string]string{
		"Name":        "required,min=3,max=100",
		"Description": "max=500",
	}

	UserRules = map[string]string{
		"FirstName":         "required,max=50",
		"LastName":          "required,max=50",
		"Email":             "required,email,max=100",
		"Username":          "required,min=4,max=50",
		"PasswordHash":      "required,min=6",
		"ProfilePictureURL": "max=500",
	}

	PostRules = map[string]string{
		"Title":       "required,min=5,max=200",
		"Content":     "required,min=20",
		"ImageURL":    "max=500",
		"ViewCount":   "gte=0",
		"PublishDate": "required",
		"CategoryID":  "required,gt=0",
		"UserID":      "required,gt=0",
	}

	CommentRules = map[string]string{
		"Text":        "required,min=5,max=1000",
		"CommentDate": "required",
		"PostID":      "required,gt=0",
		"UserID":      "omitempty,gt=0",
	}
)

type ruleSet struct {
	rules  map[string]string
	target any
}

var ruleSets = []ruleSet{
	{BaseRules, models.Base{}},
	{CategoryRules, models.Category{}},
	{UserRules, models.User{}},
	{PostRules, models.Post{}},
	{CommentRules, models.Comment{}},
}

// displayNames maps Go field names onto the names used in messages.
var displayNames = map[string]string{
	"ID":                "Id",
	"ImageURL":          "ImageUrl",
	"ProfilePictureURL": "ProfilePictureUrl",
	"CategoryID":        "CategoryId",
	"UserID":            "UserId",
	"PostID":            "PostId",
	"PasswordHash":      "Password",
}
