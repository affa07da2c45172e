// Copyright (c) 2026 ClaimPoint. All rights reserved.

package credstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimpoint/claimpoint/internal/client/credstore"
)

func openTestStore(t *testing.T) *credstore.SQLiteStore {
	t.Helper()

	store, err := credstore.Open(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

/*
TestStore_EmptyByDefault verifies a fresh store holds nothing.
*/
func TestStore_EmptyByDefault(t *testing.T) {
	store := openTestStore(t)

	credentials, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, credentials.Present())
	assert.Empty(t, credentials.Token)
	assert.Empty(t, credentials.Role)
}

/*
TestStore_SetGetClear verifies the pair round-trips and clears as one unit.
*/
func TestStore_SetGetClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "tkn", "USER"))

	credentials, err := store.Get(ctx)
	require.NoError(t, err)
	assert.True(t, credentials.Present())
	assert.Equal(t, "tkn", credentials.Token)
	assert.Equal(t, "USER", credentials.Role)

	// Overwrites replace the whole pair.
	require.NoError(t, store.Set(ctx, "tkn2", "STAFF"))
	credentials, err = store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tkn2", credentials.Token)
	assert.Equal(t, "STAFF", credentials.Role)

	require.NoError(t, store.Clear(ctx))
	credentials, err = store.Get(ctx)
	require.NoError(t, err)
	assert.False(t, credentials.Present())

	// Clearing an empty store succeeds.
	require.NoError(t, store.Clear(ctx))
}

/*
TestStore_PersistsAcrossOpens verifies durability across process restarts.
*/
func TestStore_PersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := credstore.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "tkn", "ADMIN"))
	require.NoError(t, store.Close())

	reopened, err := credstore.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	credentials, err := reopened.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tkn", credentials.Token)
	assert.Equal(t, "ADMIN", credentials.Role)
}
