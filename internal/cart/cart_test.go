package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCart(t *testing.T) (*Cart, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	logger := zap.NewNop()
	return New(NewStore(storage, logger), NewNotifier(), logger), storage
}

func book(id string, price int64, stock int) ItemInput {
	return ItemInput{ID: id, Slug: "book-" + id, Title: "Book " + id, Price: price, Stock: stock}
}

func mustItems(t *testing.T, c *Cart) []Item {
	t.Helper()
	items, err := c.Items()
	require.NoError(t, err)
	return items
}

func TestAddToCart_NewLineStartsAtOne(t *testing.T) {
	c, _ := newTestCart(t)

	require.NoError(t, c.AddToCart(book("1", 299, 5)))

	items := mustItems(t, c)
	require.Len(t, items, 1)
	assert.Equal(t, Item{ID: "1", Slug: "book-1", Title: "Book 1", Price: 299, Quantity: 1, Stock: 5}, items[0])
}

func TestAddToCart_SameIDIncrements(t *testing.T) {
	c, _ := newTestCart(t)

	require.NoError(t, c.AddToCart(book("1", 299, 5)))
	require.NoError(t, c.AddToCart(book("1", 299, 5)))

	items := mustItems(t, c)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddToCart_KeepsInsertionOrder(t *testing.T) {
	c, _ := newTestCart(t)

	require.NoError(t, c.AddToCart(book("3", 100, 5)))
	require.NoError(t, c.AddToCart(book("1", 100, 5)))
	require.NoError(t, c.AddToCart(book("2", 100, 5)))
	require.NoError(t, c.AddToCart(book("1", 100, 5)))

	var ids []string
	for _, item := range mustItems(t, c) {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"3", "1", "2"}, ids)
}

func TestAddToCart_StopsAtStoredStock(t *testing.T) {
	c, _ := newTestCart(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, c.AddToCart(book("1", 100, 2)))
	}
	assert.Equal(t, 2, mustItems(t, c)[0].Quantity)

	// the ceiling is the stock stored on the line, not the one passed in later
	require.NoError(t, c.AddToCart(book("1", 100, 10)))
	assert.Equal(t, 2, mustItems(t, c)[0].Quantity)
}

func TestStockCeilingHoldsForAnySequence(t *testing.T) {
	c, _ := newTestCart(t)
	const stock = 3

	ops := []func() error{
		func() error { return c.AddToCart(book("1", 50, stock)) },
		func() error { return c.UpdateQuantity("1", 7) },
		func() error { return c.AddToCart(book("1", 50, stock)) },
		func() error { return c.AddToCart(book("1", 50, stock)) },
		func() error { return c.UpdateQuantity("1", 3) },
		func() error { return c.AddToCart(book("1", 50, stock)) },
		func() error { return c.UpdateQuantity("1", 4) },
		func() error { return c.UpdateQuantity("1", 1) },
		func() error { return c.AddToCart(book("1", 50, stock)) },
	}
	for i, op := range ops {
		require.NoError(t, op())
		for _, item := range mustItems(t, c) {
			assert.LessOrEqual(t, item.Quantity, item.Stock, "after op %d", i)
			assert.GreaterOrEqual(t, item.Quantity, 1, "after op %d", i)
		}
	}
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     []Item
	}{
		{"within stock sets quantity", 4, []Item{{ID: "1", Slug: "book-1", Title: "Book 1", Price: 100, Quantity: 4, Stock: 4}}},
		{"above stock is rejected not clamped", 5, []Item{{ID: "1", Slug: "book-1", Title: "Book 1", Price: 100, Quantity: 1, Stock: 4}}},
		{"zero removes the line", 0, []Item{}},
		{"negative removes the line", -2, []Item{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCart(t)
			require.NoError(t, c.AddToCart(book("1", 100, 4)))

			require.NoError(t, c.UpdateQuantity("1", tt.quantity))
			assert.Equal(t, tt.want, mustItems(t, c))
		})
	}
}

func TestUpdateQuantity_UnknownIDIsNoop(t *testing.T) {
	c, _ := newTestCart(t)
	require.NoError(t, c.AddToCart(book("1", 100, 4)))

	notified := 0
	c.Notifier().Subscribe(func(string) { notified++ })

	require.NoError(t, c.UpdateQuantity("missing", 2))
	assert.Len(t, mustItems(t, c), 1)
	assert.Equal(t, 0, notified)
}

func TestRemoveFromCart_MissingIDLeavesCartUnchanged(t *testing.T) {
	c, _ := newTestCart(t)
	require.NoError(t, c.AddToCart(book("1", 100, 4)))
	require.NoError(t, c.AddToCart(book("2", 200, 4)))
	before := mustItems(t, c)

	notified := 0
	c.Notifier().Subscribe(func(string) { notified++ })

	require.NoError(t, c.RemoveFromCart("missing"))
	assert.Equal(t, before, mustItems(t, c))
	assert.Equal(t, 1, notified)
}

func TestRemoveFromCart(t *testing.T) {
	c, _ := newTestCart(t)
	require.NoError(t, c.AddToCart(book("1", 100, 4)))
	require.NoError(t, c.AddToCart(book("2", 200, 4)))

	require.NoError(t, c.RemoveFromCart("1"))

	items := mustItems(t, c)
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
}

func TestTotalAfterEveryMutation(t *testing.T) {
	c, _ := newTestCart(t)

	checkTotal := func() {
		t.Helper()
		items := mustItems(t, c)
		var want int64
		for _, item := range items {
			want += item.Price * int64(item.Quantity)
		}
		total, err := c.Total()
		require.NoError(t, err)
		assert.Equal(t, want, total)
	}

	require.NoError(t, c.AddToCart(book("1", 299, 5)))
	checkTotal()
	require.NoError(t, c.AddToCart(book("1", 299, 5)))
	checkTotal()
	require.NoError(t, c.AddToCart(book("2", 149, 5)))
	checkTotal()
	require.NoError(t, c.UpdateQuantity("2", 3))
	checkTotal()
	require.NoError(t, c.RemoveFromCart("1"))
	checkTotal()

	total, err := c.Total()
	require.NoError(t, err)
	assert.Equal(t, int64(447), total)

	count, err := c.ItemCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestClearCart(t *testing.T) {
	c, storage := newTestCart(t)
	require.NoError(t, c.AddToCart(book("1", 299, 5)))

	require.NoError(t, c.ClearCart())

	assert.Empty(t, mustItems(t, c))
	total, err := c.Total()
	require.NoError(t, err)
	assert.Zero(t, total)

	_, ok, _ := storage.GetItem(StorageKey)
	assert.False(t, ok, "clear should erase the storage key")
}

func TestEveryMutationNotifiesOnce(t *testing.T) {
	c, _ := newTestCart(t)
	var events []string
	c.Notifier().Subscribe(func(event string) { events = append(events, event) })

	require.NoError(t, c.AddToCart(book("1", 100, 1)))
	require.NoError(t, c.AddToCart(book("1", 100, 1))) // at stock, still written and notified
	require.NoError(t, c.UpdateQuantity("1", 1))
	require.NoError(t, c.UpdateQuantity("1", 9)) // rejected
	require.NoError(t, c.RemoveFromCart("1"))
	require.NoError(t, c.ClearCart())

	assert.Equal(t, []string{EventCartUpdated, EventCartUpdated, EventCartUpdated, EventCartUpdated, EventCartUpdated}, events)
}

func TestItemHelpers(t *testing.T) {
	item := Item{Price: 120, Quantity: 2, Stock: 2}
	assert.Equal(t, int64(240), item.LineTotal())
	assert.True(t, item.Available())
	assert.False(t, item.CanIncrement())

	stale := Item{Price: 120, Quantity: 2, Stock: 0}
	assert.False(t, stale.Available())
	assert.False(t, stale.CanIncrement())

	assert.True(t, Item{Quantity: 1, Stock: 3}.CanIncrement())
}
