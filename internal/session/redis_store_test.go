package session

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawitpro/palmstore/internal/models"
	"github.com/sawitpro/palmstore/internal/store"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisSnapshotStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSnapshotStore(client, ttl), mr
}

func TestRedisSnapshotStore_RoundTrip(t *testing.T) {
	rs, mr := newRedisStore(t, time.Hour)
	ctx := context.Background()

	created := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	state := store.Reduce(store.NewState(),
		store.AddToCartAction{Product: models.Product{ID: 6, Name: "Testing Kit", Price: 899.99, Category: models.CategoryTesting}},
		store.ToggleFavoriteAction{ProductID: 2},
	)
	snap := Snapshot{
		ID:        "0b8c7f5e-8d4a-4c55-9f55-3c2f0d6d2a11",
		CreatedAt: created,
		UpdatedAt: created.Add(time.Minute),
		State:     state,
		Transcript: []models.Message{
			{ID: "m1", Text: "hello", Sender: models.SenderUser, Timestamp: created},
		},
		Language: models.LanguageIndonesian,
	}

	require.NoError(t, rs.Save(ctx, snap))
	assert.True(t, mr.Exists(redisKey(snap.ID)))
	assert.Equal(t, time.Hour, mr.TTL(redisKey(snap.ID)))

	got, err := rs.Load(ctx, snap.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(created))
	assert.True(t, got.State.IsFavorite(2))
	require.Len(t, got.State.Cart, 1)
	assert.Equal(t, 1, got.State.Cart[0].Quantity)
	assert.Equal(t, "Testing Kit", got.State.Cart[0].Name)
	assert.Equal(t, models.LanguageIndonesian, got.Language)
	require.Len(t, got.Transcript, 1)
	assert.Equal(t, "hello", got.Transcript[0].Text)
}

func TestRedisSnapshotStore_Missing(t *testing.T) {
	rs, _ := newRedisStore(t, 0)

	_, err := rs.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSnapshotStore_Expiry(t *testing.T) {
	rs, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, rs.Save(ctx, Snapshot{ID: "s1", State: store.NewState()}))
	mr.FastForward(2 * time.Minute)

	_, err := rs.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisSnapshotStore_Delete(t *testing.T) {
	rs, mr := newRedisStore(t, 0)
	ctx := context.Background()

	require.NoError(t, rs.Save(ctx, Snapshot{ID: "s1", State: store.NewState()}))
	require.NoError(t, rs.Delete(ctx, "s1"))
	assert.False(t, mr.Exists(redisKey("s1")))
}

func TestRedisSnapshotStore_Corrupt(t *testing.T) {
	rs, mr := newRedisStore(t, 0)
	require.NoError(t, mr.Set(redisKey("bad"), "{not json"))

	_, err := rs.Load(context.Background(), "bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_WithRedis(t *testing.T) {
	rs, _ := newRedisStore(t, time.Hour)
	ctx := context.Background()

	reg, catalog := newTestRegistry(t, rs)
	sess, err := reg.Create(ctx)
	require.NoError(t, err)
	sess.Catalog.Dispatch(store.AddToCartAction{Product: catalog[2]})
	require.NoError(t, reg.Persist(ctx, sess))

	other, _ := newTestRegistry(t, rs)
	restored, err := other.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, restored.Catalog.State().CartCount())
}
