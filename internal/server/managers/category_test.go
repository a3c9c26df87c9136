package managers

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/blogcore/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestCategoryManager_AddStampsAndGets(t *testing.T) {
	e := newEnv(t, Options{})
	ctx := context.Background()

	c := e.addCategory(t, "Tech")
	assert.NotZero(t, c.ID)
	assert.False(t, c.IsDeleted)
	assert.False(t, c.CreatedDate.IsZero())
	assert.Nil(t, c.UpdatedDate)

	got, err := e.set.Categories.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, got.Success)
	assert.Equal(t, "Tech", got.Data.Name)
	assert.Nil(t, got.Data.UpdatedDate)

	got.Data.Description = "gadgets"
	res, err := e.set.Categories.Update(ctx, got.Data)
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	again, err := e.set.Categories.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, again.Data.UpdatedDate)
	assert.True(t, c.CreatedDate.Equal(again.Data.CreatedDate))
	assert.Equal(t, "gadgets", again.Data.Description)
}

func TestCategoryManager_NameUniqueAmongLive(t *testing.T) {
	e := newEnv(t, Options{})
	ctx := context.Background()

	first := e.addCategory(t, "Tech")

	res, err := e.set.Categories.Add(ctx, &models.Category{Name: "tech"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Category with name 'tech' already exists", res.Message)

	del, err := e.set.Categories.Delete(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, del.Success)

	res, err = e.set.Categories.Add(ctx, &models.Category{Name: "Tech"})
	require.NoError(t, err)
	assert.True(t, res.Success, res.Message)
}

func TestCategoryManager_NameCollisionFoldsUnicode(t *testing.T) {
	e := newEnv(t, Options{})
	ctx := context.Background()

	e.addCategory(t, "Ärger")

	res, err := e.set.Categories.Add(ctx, &models.Category{Name: "ärger"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Category with name 'ärger' already exists", res.Message)

	res, err = e.set.Categories.Add(ctx, &models.Category{Name: "ÉCOLE"})
	require.NoError(t, err)
	require.True(t, res.Success, res.Message)

	res, err = e.set.Categories.Add(ctx, &models.Category{Name: "école"})
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestCategoryManager_UpdateNameCollision(t *testing.T) {
	e := newEnv(t, Options{})
	ctx := context.Background()

	e.addCategory(t, "News")
	tech := e.addCategory(t, "Tech")

	tech.Name = "NEWS"
	res, err := e.set.Categories.Update(ctx, tech)
	require.NoError(t, err)
	assert.False(t, res.Success)

	tech.Name = "tech"
	res, err = e.set.Categories.Update(ctx, tech)
	require.NoError(t, err)
	assert.True(t, res.Success, "renaming to a different case of its own name is allowed")
}

func TestCategoryManager_UpdateMissing(t *testing.T) {
	e := newEnv(t, Options{})

	c := &models.Category{Name: "Ghost"}
	c.ID = 404
	res, err := e.set.Categories.Update(context.Background(), c)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Category with id 404 not found", res.Message)
}

func TestCategoryManager_ValidationReportsFirstViolation(t *testing.T) {
	e := newEnv(t, Options{})

	res, err := e.set.Categories.Add(context.Background(), &models.Category{Name: "ab"})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Name must be at least 3 characters long", res.Message)
	assert.Zero(t, countRows(t, e.db, "categories"))

	warns := e.logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warns, 1)
	assert.Equal(t, "add category rejected", warns[0].Message)
}

func TestCategoryManager_DeleteSoft(t *testing.T) {
	e := newEnv(t, Options{})
	ctx := context.Background()

	c := e.addCategory(t, "Tech")

	res, err := e.set.Categories.Delete(ctx, c.ID)
	require.NoError(t, err)
	require.True(t, res.Success)

	got, err := e.set.Categories.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, got.Success)
	assert.Nil(t, got.Data)

	all, err := e.set.Categories.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all.Data)

	assert.True(t, rawIsDeleted(t, e.db, "categories", c.ID))

	res, err = e.set.Categories.Delete(ctx, c.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "Category with id 1 not found", res.Message)
}

func TestCategoryManager_DeleteWithPosts(t *testing.T) {
	t.Run("allowed by default", func(t *testing.T) {
		e := newEnv(t, Options{})
		c := e.addCategory(t, "News")
		u := e.addUser(t, "ada1")
		p := e.addPost(t, c.ID, u.ID)

		res, err := e.set.Categories.Delete(context.Background(), c.ID)
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.False(t, rawIsDeleted(t, e.db, "posts", p.ID), "category delete never cascades")
	})

	t.Run("blocked when configured", func(t *testing.T) {
		e := newEnv(t, Options{BlockCategoryDeleteWithPosts: true})
		c := e.addCategory(t, "News")
		u := e.addUser(t, "ada1")
		e.addPost(t, c.ID, u.ID)

		res, err := e.set.Categories.Delete(context.Background(), c.ID)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "still has 1 posts")
		assert.False(t, rawIsDeleted(t, e.db, "categories", c.ID))
	})
}

func TestCategoryManager_GetAllIsStable(t *testing.T) {
	e := newEnv(t, Options{})
	ctx := context.Background()

	e.addCategory(t, "News")
	e.addCategory(t, "Tech")

	first, err := e.set.Categories.GetAll(ctx)
	require.NoError(t, err)
	second, err := e.set.Categories.GetAll(ctx)
	require.NoError(t, err)

	require.Len(t, first.Data, 2)
	assert.ElementsMatch(t, first.Data, second.Data)
}

func TestCategoryManager_StoreFailureIsFatal(t *testing.T) {
	e := newEnv(t, Options{})
	require.NoError(t, e.db.Close())

	_, err := e.set.Categories.GetAll(context.Background())
	assert.Error(t, err)

	_, err = e.set.Categories.Add(context.Background(), &models.Category{Name: "Tech"})
	assert.Error(t, err)

	errs := e.logs.FilterLevelExact(zapcore.ErrorLevel).All()
	assert.Len(t, errs, 2)
}
