package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateRepository(t *testing.T) {
	repo := NewMemoryStateRepository()
	ctx := context.Background()

	value, err := repo.Get(ctx, 1, "missing")
	require.NoError(t, err)
	assert.Empty(t, value, "absent key reads as empty")

	require.NoError(t, repo.Set(ctx, 1, "isLogin", "true"))
	require.NoError(t, repo.Set(ctx, 1, "phoneNumber", "+77001234567"))
	require.NoError(t, repo.Set(ctx, 2, "isLogin", "true"))

	value, err = repo.Get(ctx, 1, "phoneNumber")
	require.NoError(t, err)
	assert.Equal(t, "+77001234567", value)

	require.NoError(t, repo.Delete(ctx, 1, "isLogin", "phoneNumber"))
	assert.Empty(t, repo.Keys(1))
	assert.Equal(t, []string{"isLogin"}, repo.Keys(2), "other users are untouched")
}
