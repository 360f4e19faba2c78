package session

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	token, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.Set(ctx, "first-token"))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first-token", token)

	// only one credential at a time
	require.NoError(t, store.Set(ctx, "second-token"))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second-token", token)

	require.NoError(t, store.Clear(ctx))
	token, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	// clearing an empty store is fine
	require.NoError(t, store.Clear(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStore_ConcurrentReaders(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "shared"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := store.Get(ctx)
			assert.NoError(t, err)
			assert.Equal(t, "shared", token)
		}()
	}
	wg.Wait()
}

func TestMemorySessions_Isolated(t *testing.T) {
	ctx := context.Background()
	sessions := NewMemorySessions(time.Hour)

	require.NoError(t, sessions.ForSession("browser-a").Set(ctx, "token-a"))

	token, err := sessions.ForSession("browser-b").Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = sessions.ForSession("browser-a").Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-a", token)
}

func TestMemorySessions_Store(t *testing.T) {
	exerciseStore(t, NewMemorySessions(time.Hour).ForSession("browser-a"))
}

func TestMemorySessions_AnonymousReadsStoreNothing(t *testing.T) {
	ctx := context.Background()
	sessions := NewMemorySessions(time.Hour)

	for i := 0; i < 1000; i++ {
		token, err := sessions.ForSession(fmt.Sprintf("anon-%d", i)).Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	}
	assert.Zero(t, sessions.Len())

	store := sessions.ForSession("browser-a")
	require.NoError(t, store.Set(ctx, "token-a"))
	assert.Equal(t, 1, sessions.Len())

	require.NoError(t, store.Clear(ctx))
	assert.Zero(t, sessions.Len())
}

func TestMemorySessions_SlidingExpiry(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	sessions := NewMemorySessions(30 * time.Minute)
	sessions.now = func() time.Time { return clock }

	active := sessions.ForSession("active")
	idle := sessions.ForSession("idle")
	require.NoError(t, active.Set(ctx, "token-active"))
	require.NoError(t, idle.Set(ctx, "token-idle"))

	// reading slides the active session forward
	clock = clock.Add(20 * time.Minute)
	token, err := active.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-active", token)

	clock = clock.Add(20 * time.Minute)
	assert.Equal(t, 1, sessions.Len())

	token, err = idle.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	token, err = active.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-active", token)
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.db")
	ctx := context.Background()

	first, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "persisted-token"))
	require.NoError(t, first.Close())

	second, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	defer second.Close()

	token, err := second.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted-token", token)
}

func TestSQLiteStore_SetEmptyClears(t *testing.T) {
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "abc"))
	require.NoError(t, store.Set(ctx, ""))

	token, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestTokenKey(t *testing.T) {
	assert.Equal(t, "storefront:session:abc:user_token", tokenKey("abc"))
}
