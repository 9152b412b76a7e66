//go:build integration

package redis_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/marcelsud/bookstore-catalog/author"
	"github.com/marcelsud/bookstore-catalog/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Insert_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("insert assigns an id and indexes the record", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		id, err := repo.Insert(ctx, author.Author{Name: "Jorge Amado", Biography: "Bahia."})
		require.NoError(t, err)

		_, err = uuid.Parse(id)
		require.NoError(t, err, "assigned id should be a UUID")

		assert.True(t, KeyExists(t, redisContainer.Addr, "author:"+id))

		retrieved, err := repo.Select(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, retrieved.ID)
		assert.Equal(t, "Jorge Amado", retrieved.Name)
		assert.Equal(t, "Bahia.", retrieved.Biography)
	})
}

func TestRepository_Select_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("select missing author", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		_, err := repo.Select(ctx, uuid.New().String())
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.NotFound))
	})

	t.Run("select with malformed id", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		_, err := repo.Select(ctx, "not-a-uuid")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.MalformedID))
		assert.Equal(t, "Invalid id: not-a-uuid", err.Error())
	})
}

func TestRepository_SelectAll_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("list all authors", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		for _, name := range []string{"Clarice Lispector", "Ursula K. Le Guin", "Jorge Amado"} {
			_, err := repo.Insert(ctx, author.Author{Name: name})
			require.NoError(t, err)
		}

		all, err := repo.SelectAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}

func TestRepository_Update_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("update existing author", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		id, err := repo.Insert(ctx, author.Author{Name: "Clarice Lispector"})
		require.NoError(t, err)

		err = repo.Update(ctx, author.Author{ID: id, Name: "Clarice Lispector", Biography: "Novelist."})
		require.NoError(t, err)

		retrieved, err := repo.Select(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Novelist.", retrieved.Biography)
	})

	t.Run("update missing author", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		err := repo.Update(ctx, author.Author{ID: uuid.New().String(), Name: "Ghost"})
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.NotFound))
	})
}

func TestRepository_Delete_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("delete removes record and index entry", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		id, err := repo.Insert(ctx, author.Author{Name: "Jorge Amado"})
		require.NoError(t, err)

		err = repo.Delete(ctx, id)
		require.NoError(t, err)

		assert.False(t, KeyExists(t, redisContainer.Addr, "author:"+id))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("delete missing author", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		err := repo.Delete(ctx, uuid.New().String())
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.NotFound))
	})
}
