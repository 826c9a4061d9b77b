//go:build integration

package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blkart/senlin/receiver"
)

func sampleReceiver(id, name, project string) receiver.Receiver {
	now := time.Now().UTC().Truncate(time.Second)
	return receiver.Receiver{
		ID:        id,
		Name:      name,
		Type:      receiver.Webhook,
		ClusterID: "c1",
		Action:    "CLUSTER_SCALE_UP",
		Actor:     "trust-" + id,
		Params:    map[string]string{"count": "1"},
		Project:   project,
		Domain:    "d1",
		User:      "u1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRepository_Create_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("create and retrieve receiver", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		rec := sampleReceiver("r1", "scale-up-hook", "p1")

		require.NoError(t, repo.Create(ctx, rec))

		retrieved, err := repo.Get(ctx, rec.ID)
		require.NoError(t, err)

		assert.Equal(t, rec.ID, retrieved.ID)
		assert.Equal(t, rec.Name, retrieved.Name)
		assert.Equal(t, receiver.Webhook, retrieved.Type)
		assert.Equal(t, rec.ClusterID, retrieved.ClusterID)
		assert.Equal(t, rec.Action, retrieved.Action)
		assert.Equal(t, rec.Actor, retrieved.Actor)
		assert.Equal(t, "1", retrieved.Params["count"])
		assert.Equal(t, rec.Project, retrieved.Project)
		assert.Equal(t, rec.CreatedAt.Unix(), retrieved.CreatedAt.Unix())
	})

	t.Run("duplicate name in the same project is rejected", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		require.NoError(t, repo.Create(ctx, sampleReceiver("r1", "shared-name", "p1")))

		err := repo.Create(ctx, sampleReceiver("r2", "shared-name", "p1"))

		require.Error(t, err)
		assert.ErrorIs(t, err, receiver.ErrDuplicateName)
	})

	t.Run("same name in different projects is fine", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		require.NoError(t, repo.Create(ctx, sampleReceiver("r1", "shared-name", "p1")))
		require.NoError(t, repo.Create(ctx, sampleReceiver("r2", "shared-name", "p2")))
	})

	t.Run("indexes are written alongside the record", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		require.NoError(t, repo.Create(ctx, sampleReceiver("r1", "indexed", "p1")))

		assert.True(t, KeyExists(t, redisContainer.Addr, "receiver:r1"))
		assert.True(t, KeyExists(t, redisContainer.Addr, "receivers:project:p1"))
		assert.True(t, KeyExists(t, redisContainer.Addr, "receivers:all"))
		assert.Equal(t, "r1", HashField(t, redisContainer.Addr, "receivers:names:p1", "indexed"))
	})
}

func TestRepository_Get_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("get non-existent receiver", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		_, err := repo.Get(ctx, "non-existent-id")

		require.Error(t, err)
		assert.ErrorIs(t, err, receiver.ErrNotFound)
	})
}

func TestRepository_List_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("list is scoped by project", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		require.NoError(t, repo.Create(ctx, sampleReceiver("r1", "a-hook", "p1")))
		require.NoError(t, repo.Create(ctx, sampleReceiver("r2", "b-hook", "p1")))
		require.NoError(t, repo.Create(ctx, sampleReceiver("r3", "c-hook", "p2")))

		recs, err := repo.List(ctx, receiver.Filter{Project: "p1"})

		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("empty project filter lists everything", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		require.NoError(t, repo.Create(ctx, sampleReceiver("r1", "a-hook", "p1")))
		require.NoError(t, repo.Create(ctx, sampleReceiver("r2", "b-hook", "p2")))

		recs, err := repo.List(ctx, receiver.Filter{})

		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("filter by cluster and action", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		scaleDown := sampleReceiver("r2", "down-hook", "p1")
		scaleDown.Action = "CLUSTER_SCALE_DOWN"
		scaleDown.ClusterID = "c2"
		require.NoError(t, repo.Create(ctx, sampleReceiver("r1", "up-hook", "p1")))
		require.NoError(t, repo.Create(ctx, scaleDown))

		recs, err := repo.List(ctx, receiver.Filter{Project: "p1", Action: "CLUSTER_SCALE_DOWN"})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "r2", recs[0].ID)

		recs, err = repo.List(ctx, receiver.Filter{Project: "p1", ClusterID: "c1"})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "r1", recs[0].ID)
	})

	t.Run("marker pages through sorted names", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		for i := 1; i <= 5; i++ {
			rec := sampleReceiver(fmt.Sprintf("r%d", i), fmt.Sprintf("hook-%d", i), "p1")
			require.NoError(t, repo.Create(ctx, rec))
		}

		first, err := repo.List(ctx, receiver.Filter{Project: "p1", Sort: "name", Limit: 2})
		require.NoError(t, err)
		require.Len(t, first, 2)
		assert.Equal(t, "hook-1", first[0].Name)

		second, err := repo.List(ctx, receiver.Filter{
			Project: "p1", Sort: "name", Limit: 2, Marker: first[1].ID,
		})
		require.NoError(t, err)
		require.Len(t, second, 2)
		assert.Equal(t, "hook-3", second[0].Name)
	})
}

func TestRepository_Delete_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("delete removes record and indexes", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		require.NoError(t, repo.Create(ctx, sampleReceiver("r1", "doomed", "p1")))

		require.NoError(t, repo.Delete(ctx, "r1"))

		_, err := repo.Get(ctx, "r1")
		require.Error(t, err)
		assert.ErrorIs(t, err, receiver.ErrNotFound)
		assert.False(t, KeyExists(t, redisContainer.Addr, "receiver:r1"))
	})

	t.Run("delete frees the name for reuse", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		require.NoError(t, repo.Create(ctx, sampleReceiver("r1", "recycled", "p1")))
		require.NoError(t, repo.Delete(ctx, "r1"))

		require.NoError(t, repo.Create(ctx, sampleReceiver("r2", "recycled", "p1")))
	})

	t.Run("delete non-existent receiver", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		repo := CreateTestRepository(t, redisContainer.Addr)
		defer repo.Close(ctx)

		err := repo.Delete(ctx, "non-existent")

		require.Error(t, err)
		assert.ErrorIs(t, err, receiver.ErrNotFound)
	})
}
