package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

func TestBackend_LoadMissingFile(t *testing.T) {
	b := NewBackend(filepath.Join(t.TempDir(), "objects.db"))
	_, err := b.Load()
	assert.ErrorIs(t, err, types.ErrStoreNotFound)
}

func TestBackend_StoreAndLoadKeepOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objects.db")
	b := NewBackend(path)

	records := []types.StoredRecord{
		{Key: "User.b", Data: []byte(`{"id": "b"}`)},
		{Key: "City.a", Data: []byte(`{"id": "a"}`)},
		{Key: "User.c", Data: []byte(`{"id": "c"}`)},
	}
	require.NoError(t, b.Store(records))

	_, err := os.Stat(path)
	require.NoError(t, err, "database file created")

	got, err := b.Load()
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range records {
		assert.Equal(t, records[i].Key, got[i].Key)
		assert.JSONEq(t, string(records[i].Data), string(got[i].Data))
	}

	// A second store replaces every row.
	require.NoError(t, b.Store(records[1:2]))
	got, err = b.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "City.a", got[0].Key)
}

func TestBackend_StoreRejectsBadKeyAtomically(t *testing.T) {
	b := NewBackend(filepath.Join(t.TempDir(), "objects.db"))
	require.NoError(t, b.Store([]types.StoredRecord{{Key: "User.a", Data: []byte(`{}`)}}))

	err := b.Store([]types.StoredRecord{
		{Key: "User.b", Data: []byte(`{}`)},
		{Key: "nodot", Data: []byte(`{}`)},
	})
	assert.ErrorIs(t, err, types.ErrInvalidID)

	got, err := b.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "User.a", got[0].Key, "failed store rolled back")
}

func TestBackend_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objects.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not a sqlite database, just text padding it out"), 0o644))

	_, err := NewBackend(path).Load()
	assert.ErrorIs(t, err, types.ErrCorruptStore)
}

func TestBackend_TableFixpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "objects.db")
	reg := types.DefaultRegistry()

	tbl := storage.New(NewBackend(path), reg)
	u, err := tbl.Create(types.ClassUser)
	require.NoError(t, err)
	require.NoError(t, u.Set("email", types.StringValue("a@b.c")))
	p, err := tbl.Create(types.ClassPlace)
	require.NoError(t, err)
	require.NoError(t, p.Set("max_guest", types.IntValue(6)))
	require.NoError(t, tbl.Save())

	other := storage.New(NewBackend(path), reg)
	res, err := other.Reload()
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, 2, res.Loaded)
	assert.Equal(t, tbl.Keys(), other.Keys())

	got, err := other.Get(types.ClassPlace, p.ID)
	require.NoError(t, err)
	v, ok := got.Get("max_guest")
	require.True(t, ok)
	assert.Equal(t, types.IntValue(6), v)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
}
