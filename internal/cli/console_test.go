package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/blogcore/internal/dbx"
	"github.com/dmitrijs2005/blogcore/internal/dbx/dbxtest"
	"github.com/dmitrijs2005/blogcore/internal/server/managers"
	"github.com/dmitrijs2005/blogcore/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestManagers(t *testing.T) *managers.Set {
	t.Helper()
	db := dbxtest.OpenSQLite(t)
	return managers.New(db, repomanager.NewSQLRepositoryManager(dbx.SQLite{}), managers.Options{
		Hasher: managers.NewBcryptHasher(bcrypt.MinCost),
	})
}

func script(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

const registerAda = "register\nAda\nLovelace\nada@example.com\nadal\n\nSecret123"

func TestConsole_Session(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	m := newTestManagers(t)

	in := script(
		registerAda,
		"login", "adal", "Secret123",
		"addcategory", "Golang", "All things Go",
		"categories",
		"addpost", "Hello, world", "This post body is long enough.", "", "1", "",
		"posts",
		"posts 1",
		"addcomment 1", "Nice post indeed",
		"comments 1",
		"users",
		"exit",
	)
	var out bytes.Buffer
	c := NewConsole(m, strings.NewReader(in), &out)
	c.Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "User added successfully")
	assert.Contains(t, s, "Logged in as adal")
	assert.Contains(t, s, "blog (adal) > ")
	assert.Contains(t, s, "Category added successfully")
	assert.Contains(t, s, "All things Go")
	assert.Contains(t, s, "Post added successfully")
	assert.Contains(t, s, "Hello, world")
	assert.Contains(t, s, "Comment added successfully")
	assert.Contains(t, s, "Nice post indeed")
	assert.Contains(t, s, "ada@example.com")

	res, err := m.Comments.GetCommentsByPostID(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	require.NotNil(t, res.Data[0].UserID)
	assert.Equal(t, int64(1), *res.Data[0].UserID)
}

func TestConsole_Failures(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	m := newTestManagers(t)

	in := script(
		registerAda,
		"login", "adal", "wrong-password",
		"login", "nobody", "Secret123",
		"addpost",
		"addcategory", "Go", "",
		"posts 9",
		"comments 9",
		"delcategory 9",
		"delpost 9",
		"exit",
	)
	var out bytes.Buffer
	NewConsole(m, strings.NewReader(in), &out).Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Failed: Invalid password")
	assert.Contains(t, s, "Failed: User not found")
	assert.Contains(t, s, "Log in to publish posts")
	assert.Contains(t, s, "Failed: Name must be at least 3 characters long")
	assert.Contains(t, s, "Failed: Category with id 9 not found")
	assert.Contains(t, s, "Failed: Post with id 9 not found")
	assert.NotContains(t, s, "Logged in as")
}

func TestConsole_AnonymousCommentAndLogout(t *testing.T) {
	stubTerminal(t, false, nil, nil)
	m := newTestManagers(t)

	in := script(
		registerAda,
		"login", "adal", "Secret123",
		"addcategory", "Golang", "",
		"addpost", "Hello, world", "This post body is long enough.", "", "1", "",
		"logout",
		"addcomment 1", "Drive-by remark",
		"delpost 1",
		"posts",
		"exit",
	)
	var out bytes.Buffer
	NewConsole(m, strings.NewReader(in), &out).Run(context.Background())

	s := out.String()
	assert.Contains(t, s, "Logged out")
	assert.Contains(t, s, "Comment added successfully")
	assert.Contains(t, s, "Post deleted successfully")

	res, err := m.Comments.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Data)
}
