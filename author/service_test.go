package author_test

import (
	"context"
	"errors"
	"testing"

	"github.com/marcelsud/bookstore-catalog/author"
	"github.com/marcelsud/bookstore-catalog/author/mocks"
	"github.com/marcelsud/bookstore-catalog/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		repo.On("Insert", ctx, author.Author{
			Name:      "Frank Herbert",
			Biography: "Wrote about sand",
		}).Return("a1b2", nil)

		a, err := service.Create(ctx, "Frank Herbert", "Wrote about sand")

		require.NoError(t, err)
		assert.Equal(t, "a1b2", a.ID)
		assert.Equal(t, "Frank Herbert", a.Name)
	})

	t.Run("empty biography is allowed", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		repo.On("Insert", ctx, author.Author{Name: "Ursula K. Le Guin"}).Return("c3d4", nil)

		_, err := service.Create(ctx, "Ursula K. Le Guin", "")
		require.NoError(t, err)
	})

	t.Run("missing name fails validation before the store is touched", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		_, err := service.Create(ctx, "", "bio")

		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.Validation))
		assert.Equal(t, "name is required", err.Error())
		repo.AssertNotCalled(t, "Insert")
	})

	t.Run("store failure wraps", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		repo.On("Insert", ctx, author.Author{Name: "X Y"}).Return("", errors.New("connection refused"))

		_, err := service.Create(ctx, "X Y", "")

		require.Error(t, err)
		assert.Equal(t, fault.Internal, fault.From(err).Kind)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns all authors", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		repo.On("SelectAll", ctx).Return([]author.Author{
			{ID: "1", Name: "A"},
			{ID: "2", Name: "B"},
		}, nil)

		all, err := service.List(ctx)

		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("empty collection is not an error", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		repo.On("SelectAll", ctx).Return([]author.Author{}, nil)

		all, err := service.List(ctx)

		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("not found passes through", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		repo.On("Select", ctx, "missing").Return(author.Author{}, fault.NewNotFound("Author"))

		_, err := service.Get(ctx, "missing")

		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.NotFound))
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	stored := author.Author{ID: "a1", Name: "Old Name", Biography: "old bio"}

	t.Run("overwrites only supplied fields", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		name := "New Name"
		repo.On("Select", ctx, "a1").Return(stored, nil)
		repo.On("Update", ctx, author.Author{ID: "a1", Name: "New Name", Biography: "old bio"}).Return(nil)

		updated, err := service.Update(ctx, "a1", author.UpdateInput{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, "old bio", updated.Biography)
	})

	t.Run("explicit empty biography is a real value", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		empty := ""
		repo.On("Select", ctx, "a1").Return(stored, nil)
		repo.On("Update", ctx, author.Author{ID: "a1", Name: "Old Name", Biography: ""}).Return(nil)

		updated, err := service.Update(ctx, "a1", author.UpdateInput{Biography: &empty})

		require.NoError(t, err)
		assert.Equal(t, "", updated.Biography)
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		empty := ""
		repo.On("Select", ctx, "a1").Return(stored, nil)

		_, err := service.Update(ctx, "a1", author.UpdateInput{Name: &empty})

		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.Validation))
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		repo.On("Select", ctx, "missing").Return(author.Author{}, fault.NewNotFound("Author"))

		_, err := service.Update(ctx, "missing", author.UpdateInput{})

		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.NotFound))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		repo.On("Delete", ctx, "a1").Return(nil)

		require.NoError(t, service.Delete(ctx, "a1"))
	})

	t.Run("deleting twice reports not found, not a crash", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		service := author.NewService(repo)

		repo.On("Delete", ctx, "a1").Return(nil).Once()
		repo.On("Delete", ctx, "a1").Return(fault.NewNotFound("Author")).Once()

		require.NoError(t, service.Delete(ctx, "a1"))
		err := service.Delete(ctx, "a1")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.NotFound))
	})
}
