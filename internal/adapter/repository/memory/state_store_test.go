package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/hosteltracker/internal/domain"
)

func TestStateStore(t *testing.T) {
	ctx := context.Background()
	store := NewStateStore()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStateNotFound)

	doc := []byte(`{"budget": 5}`)
	require.NoError(t, store.Save(ctx, doc))

	// The store must not alias the caller's slice.
	doc[2] = 'X'

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"budget": 5}`, string(data))
}
