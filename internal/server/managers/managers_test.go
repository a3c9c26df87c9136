package managers

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/dbx/dbxtest"
	"github.com/dmitrijs2005/blogcore/internal/logging"
	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

type env struct {
	db   *sql.DB
	set  *Set
	logs *observer.ObservedLogs
}

func newEnv(t *testing.T, opts Options) *env {
	t.Helper()

	db := dbxtest.OpenSQLite(t)
	core, logs := observer.New(zapcore.DebugLevel)

	if opts.Logger == nil {
		opts.Logger = logging.NewZapLogger(zap.New(core).Sugar())
	}
	if opts.Hasher == nil {
		opts.Hasher = NewBcryptHasher(bcrypt.MinCost)
	}

	return &env{
		db:   db,
		set:  New(db, repomanager.NewSQLRepositoryManager(dbx.SQLite{}), opts),
		logs: logs,
	}
}

func (e *env) addCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	res, err := e.set.Categories.Add(context.Background(), c)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	return c
}

func (e *env) addUser(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "Secret123",
	}
	res, err := e.set.Users.Add(context.Background(), u)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	return u
}

func (e *env) addPost(t *testing.T, categoryID, userID int64) *models.Post {
	t.Helper()
	p := newPost(categoryID, userID)
	res, err := e.set.Posts.Add(context.Background(), p)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	return p
}

func (e *env) addComment(t *testing.T, postID int64, userID *int64) *models.Comment {
	t.Helper()
	c := &models.Comment{Text: "Nice post!", PostID: postID, UserID: userID}
	res, err := e.set.Comments.Add(context.Background(), c)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)
	return c
}

func newPost(categoryID, userID int64) *models.Post {
	return &models.Post{
		Title:      "Hello World!",
		Content:    strings.Repeat("c", 25),
		CategoryID: categoryID,
		UserID:     userID,
	}
}

// rawIsDeleted inspects the stored flag, bypassing live-row scoping.
func rawIsDeleted(t *testing.T, db *sql.DB, table string, id int64) bool {
	t.Helper()
	var deleted bool
	require.NoError(t, db.QueryRow(`SELECT is_deleted FROM `+table+` WHERE id = ?`, id).Scan(&deleted))
	return deleted
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
