package managers

import (
	"database/sql"

	"github.com/dmitrijs2005/blogcore/internal/logging"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogcore/internal/server/validation"
)

// Options configure the manager set built by New.
type Options struct {
	Logger                       logging.Logger
	Validator                    *validation.Validator
	Hasher                       PasswordHasher
	BlockCategoryDeleteWithPosts bool
}

// Set is the full manager graph sharing one store handle.
type Set struct {
	Categories *CategoryManager
	Users      *UserManager
	Posts      *PostManager
	Comments   *CommentManager
}

// New wires the managers so that cross-entity checks go through the sibling
// managers. Nil options fall back to a no-op logger, the default rule sets
// and bcrypt at its default cost.
func New(db *sql.DB, rm repomanager.RepositoryManager, opts Options) *Set {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Validator == nil {
		opts.Validator = validation.New()
	}
	if opts.Hasher == nil {
		opts.Hasher = NewBcryptHasher(0)
	}

	categories := NewCategoryManager(db, rm, opts.Validator, opts.Logger, opts.BlockCategoryDeleteWithPosts)
	users := NewUserManager(db, rm, opts.Validator, opts.Logger, opts.Hasher)
	posts := NewPostManager(db, rm, opts.Validator, opts.Logger, categories, users)
	comments := NewCommentManager(db, rm, opts.Validator, opts.Logger, posts, users)

	return &Set{
		Categories: categories,
		Users:      users,
		Posts:      posts,
		Comments:   comments,
	}
}
