package asset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "assets.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreAddListFind(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	added, err := s.Add(ctx, "corp-site", "domain", "example.com")
	require.NoError(t, err)
	assert.NotZero(t, added.ID)

	_, err = s.Add(ctx, "lab-net", "network", "10.0.0.0/8")
	require.NoError(t, err)

	assets, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 2)
	assert.Equal(t, "corp-site", assets[0].Name)

	found, err := s.Find(ctx, "lab-net")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.0/8", found.Value)

	values, err := s.Values(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "10.0.0.0/8"}, values)
}

func TestStoreValidation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "", "domain", "example.com")
	assert.ErrorIs(t, err, types.NewError(types.ASSET_INVALID, ""))

	_, err = s.Add(ctx, "x", "satellite", "example.com")
	assert.ErrorIs(t, err, types.NewError(types.ASSET_INVALID, ""))

	_, err = s.Add(ctx, "dup", "domain", "a.example.com")
	require.NoError(t, err)
	_, err = s.Add(ctx, "dup", "domain", "b.example.com")
	assert.ErrorIs(t, err, types.NewError(types.ASSET_QUERY_FAILED, ""))
}

func TestStoreRemove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Add(ctx, "gone-soon", "ip", "192.168.1.10")
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, "gone-soon"))
	assert.ErrorIs(t, s.Remove(ctx, "gone-soon"), types.NewError(types.ASSET_NOT_FOUND, ""))

	_, err = s.Find(ctx, "gone-soon")
	assert.ErrorIs(t, err, types.NewError(types.ASSET_NOT_FOUND, ""))
}
