package kvstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupGormStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	store, err := NewGormStore(db)
	require.NoError(t, err)
	return store
}

func runStoreTests(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("read missing key returns nil", func(t *testing.T) {
		data, err := store.Read(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("write then read round trips", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "deals", []byte(`[{"id":"a"}]`)))

		data, err := store.Read(ctx, "deals")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"a"}]`, string(data))
	})

	t.Run("write replaces the whole collection", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "deals", []byte(`[{"id":"a"}]`)))
		require.NoError(t, store.Write(ctx, "deals", []byte(`[{"id":"b"}]`)))

		data, err := store.Read(ctx, "deals")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"b"}]`, string(data))
	})

	t.Run("increment is monotonic from one", func(t *testing.T) {
		for want := int64(1); want <= 5; want++ {
			got, err := store.Increment(ctx, "receipt-counter:2026")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("counters are independent per key", func(t *testing.T) {
		a, err := store.Increment(ctx, "receipt-counter:2027")
		require.NoError(t, err)
		b, err := store.Increment(ctx, "receipt-counter:2028")
		require.NoError(t, err)
		assert.Equal(t, int64(1), a)
		assert.Equal(t, int64(1), b)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, NewMemoryStore())
}

func TestGormStore(t *testing.T) {
	runStoreTests(t, setupGormStore(t))
}

func TestMemoryStore_ReadIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Write(ctx, "deals", []byte(`[1,2,3]`)))

	data, err := store.Read(ctx, "deals")
	require.NoError(t, err)
	data[0] = 'x'

	again, err := store.Read(ctx, "deals")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), again)
}

func TestGormStore_ManyCounters(t *testing.T) {
	ctx := context.Background()
	store := setupGormStore(t)

	for year := 2020; year < 2030; year++ {
		key := fmt.Sprintf("receipt-counter:%d", year)
		got, err := store.Increment(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got)
	}
}
