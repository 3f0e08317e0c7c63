package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/hosteltracker/internal/domain"
)

func openTestStore(t *testing.T, path, key string) *StateStore {
	t.Helper()
	store, err := Open(context.Background(), path, key)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStateStoreLoadMissing(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "state.db"), "default")

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestStateStoreSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "state.db"), "default")

	require.NoError(t, store.Save(ctx, []byte(`{"budget": 1}`)))
	require.NoError(t, store.Save(ctx, []byte(`{"budget": 2}`)))

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"budget": 2}`, string(data))

	rev, err := store.Revision(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rev)
}

func TestStateStoreReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := Open(ctx, path, "default")
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, []byte(`{"currency": "USD"}`)))
	require.NoError(t, first.Close())

	second := openTestStore(t, path, "default")
	data, err := second.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency": "USD"}`, string(data))
}

func TestStateStoreKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	a := openTestStore(t, path, "alice")
	require.NoError(t, a.Save(ctx, []byte(`{}`)))
	require.NoError(t, a.Close())

	b := openTestStore(t, path, "bob")
	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestStateStoreRoundTripsEncodedState(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, filepath.Join(t.TempDir(), "state.db"), "default")

	state := domain.DefaultState()
	state.Currency = "EUR"
	data, err := domain.EncodeState(state)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, data))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	decoded, err := domain.DecodeState(loaded, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "EUR", decoded.Currency)
	assert.Len(t, decoded.Categories, len(domain.DefaultCategories()))
}
