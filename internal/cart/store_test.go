package cart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStore_LoadEmpty(t *testing.T) {
	store := NewStore(NewMemoryStorage(), zap.NewNop())

	items, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestStore_SaveLoad(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, zap.NewNop())

	want := []Item{
		{ID: "7", Slug: "it", Title: "It", Price: 449, Quantity: 2, Stock: 6},
		{ID: "1", Slug: "the-shining", Title: "The Shining", Price: 349, Quantity: 1, Stock: 8},
	}
	require.NoError(t, store.Save(want))

	raw, ok, err := storage.GetItem(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[
		{"id":"7","slug":"it","title":"It","price":449,"quantity":2,"stock":6},
		{"id":"1","slug":"the-shining","title":"The Shining","price":349,"quantity":1,"stock":8}
	]`, raw)

	// a fresh store reading the same storage sees the same cart
	got, err := NewStore(storage, zap.NewNop()).Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_LoadedItemsAreCopies(t *testing.T) {
	store := NewStore(NewMemoryStorage(), zap.NewNop())
	require.NoError(t, store.Save([]Item{{ID: "1", Quantity: 1, Stock: 2}}))

	items, err := store.Load()
	require.NoError(t, err)
	items[0].Quantity = 99

	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].Quantity)
}

func TestStore_SeesWritesFromOtherStores(t *testing.T) {
	storage := NewMemoryStorage()
	a := NewStore(storage, zap.NewNop())
	b := NewStore(storage, zap.NewNop())

	require.NoError(t, a.Save([]Item{{ID: "1", Quantity: 1, Stock: 2}}))
	_, err := b.Load()
	require.NoError(t, err)

	require.NoError(t, a.Save([]Item{{ID: "2", Quantity: 2, Stock: 2}}))
	items, err := b.Load()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
}

func TestStore_CorruptValueIsDiscarded(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"object", `{"id":"1"}`},
		{"string", `"hello"`},
		{"number", `42`},
		{"null", `null`},
		{"not json", `[{"id":`},
		{"array of wrong shape", `[1, 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			require.NoError(t, storage.SetItem(StorageKey, tt.raw))
			store := NewStore(storage, zap.NewNop())

			items, err := store.Load()
			require.NoError(t, err)
			assert.Empty(t, items)

			_, ok, err := storage.GetItem(StorageKey)
			require.NoError(t, err)
			assert.False(t, ok, "corrupt value should be removed")
		})
	}
}

func TestStore_Erase(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, zap.NewNop())
	require.NoError(t, store.Save([]Item{{ID: "1", Quantity: 1, Stock: 1}}))

	require.NoError(t, store.Erase())

	_, ok, _ := storage.GetItem(StorageKey)
	assert.False(t, ok)
	items, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cart.json")
	storage := NewFileStorage(path, zap.NewNop())

	_, ok, err := storage.GetItem(StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.SetItem(StorageKey, `[]`))
	require.NoError(t, storage.SetItem("other", "value"))

	v, ok, err := NewFileStorage(path, zap.NewNop()).GetItem(StorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, v)

	require.NoError(t, storage.RemoveItem(StorageKey))
	_, ok, err = storage.GetItem(StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	v, _, _ = storage.GetItem("other")
	assert.Equal(t, "value", v)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files should be left behind")
}

func TestFileStorage_CorruptFileReadsAsEmpty(t *testing.T) {
	for _, content := range []string{"garbage", `["not", "an", "object"]`, `{"cart": 7}`, "null"} {
		t.Run(content, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cart.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			logger := zap.NewNop()
			c := New(NewStore(NewFileStorage(path, logger), logger), NewNotifier(), logger)

			items, err := c.Items()
			require.NoError(t, err)
			assert.Empty(t, items)

			require.NoError(t, c.ClearCart())
			require.NoError(t, c.AddToCart(book("5", 279, 12)))

			reopened := New(NewStore(NewFileStorage(path, logger), logger), NewNotifier(), logger)
			total, err := reopened.Total()
			require.NoError(t, err)
			assert.Equal(t, int64(279), total)
		})
	}
}

func TestFileStorage_ReadError(t *testing.T) {
	dir := t.TempDir()

	_, _, err := NewFileStorage(dir, zap.NewNop()).GetItem(StorageKey)
	assert.Error(t, err)
}

func TestCartOverFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	logger := zap.NewNop()

	first := New(NewStore(NewFileStorage(path, logger), logger), NewNotifier(), logger)
	require.NoError(t, first.AddToCart(book("5", 279, 12)))
	require.NoError(t, first.AddToCart(book("5", 279, 12)))

	second := New(NewStore(NewFileStorage(path, logger), logger), NewNotifier(), logger)
	total, err := second.Total()
	require.NoError(t, err)
	assert.Equal(t, int64(558), total)
}
