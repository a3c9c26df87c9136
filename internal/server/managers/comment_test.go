package managers

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentManager_AddAndList(t *testing.T) {
	e := newEnv(t, Options{})
	ctx := context.Background()
	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	e.set.Comments.now = fixedClock(at)

	c := e.addCategory(t, "News")
	u := e.addUser(t, "ada1")
	p := e.addPost(t, c.ID, u.ID)

	signed := e.addComment(t, p.ID, &u.ID)
	anon := e.addComment(t, p.ID, nil)
	assert.True(t, at.Equal(signed.CommentDate))
	assert.False(t, signed.IsDeleted)
	assert.Nil(t, signed.UpdatedDate)

	list, err := e.set.Comments.GetCommentsByPostID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, list.Success)
	require.Len(t, list.Data, 2)
	assert.Equal(t, signed.ID, list.Data[0].ID)
	assert.Equal(t, anon.ID, list.Data[1].ID)
	assert.Nil(t, list.Data[1].UserID)
}

func TestCommentManager_ReferentialGuards(t *testing.T) {
	e := newEnv(t, Options{})
	ctx := context.Background()

	c := e.addCategory(t, "News")
	u := e.addUser(t, "ada1")
	p := e.addPost(t, c.ID, u.ID)

	res, err := e.set.Comments.Add(ctx, &models.Comment{Text: "hello", PostID: 404})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Post with id 404 not found", res.Message)

	ghost := int64(404)
	res, err = e.set.Comments.Add(ctx, &models.Comment{Text: "hello", PostID: p.ID, UserID: &ghost})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "User with id 404 not found", res.Message)

	zero := int64(0)
	res, err = e.set.Comments.Add(ctx, &models.Comment{Text: "hello", PostID: p.ID, UserID: &zero})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "UserId must be greater than 0", res.Message)

	res, err = e.set.Comments.Add(ctx, &models.Comment{Text: "hey", PostID: p.ID})
	require.NoError(t, err)
	assert.False(t, res.Success)

	assert.Zero(t, countRows(t, e.db, "comments"))
}

func TestCommentManager_UpdateAndDelete(t *testing.T) {
	e := newEnv(t, Options{})
	ctx := context.Background()

	c := e.addCategory(t, "News")
	u := e.addUser(t, "ada1")
	p := e.addPost(t, c.ID, u.ID)
	cm := e.addComment(t, p.ID, nil)

	cm.Text = "Edited text"
	res, err := e.set.Comments.Update(ctx, cm)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	got, err := e.set.Comments.GetByID(ctx, cm.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited text", got.Data.Text)
	require.NotNil(t, got.Data.UpdatedDate)

	res, err = e.set.Comments.Delete(ctx, cm.ID)
	require.NoError(t, err)
	require.True(t, res.Success)
	assert.True(t, rawIsDeleted(t, e.db, "comments", cm.ID))

	res, err = e.set.Comments.Update(ctx, cm)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Comment with id 1 not found", res.Message)

	res, err = e.set.Comments.Delete(ctx, cm.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
}
