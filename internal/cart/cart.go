// Package cart implements the storefront shopping cart: a list of lines
// persisted under one storage key, mutated with stock ceilings, with a
// change event after every mutation.
package cart

import (
	"time"

	"go.uber.org/zap"
)

// Cart owns the store and notifier. Every mutation reads the stored cart,
// changes it, writes it back and then notifies.
//
// Requests that would go over a line's stock are ignored rather than
// reported; callers read the cart again to see the result.
type Cart struct {
	store    *Store
	notifier *Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func New(store *Store, notifier *Notifier, logger *zap.Logger) *Cart {
	return &Cart{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Notifier returns the notifier observers subscribe to
func (c *Cart) Notifier() *Notifier {
	return c.notifier
}

// Items returns the current lines in insertion order
func (c *Cart) Items() ([]Item, error) {
	return c.store.Load()
}

// AddToCart adds one copy of a book. An existing line is incremented
// unless it is already at its stored stock, in which case nothing changes.
func (c *Cart) AddToCart(in ItemInput) error {
	items, err := c.store.Load()
	if err != nil {
		return err
	}

	if i := indexOf(items, in.ID); i >= 0 {
		if items[i].Quantity < items[i].Stock {
			items[i].Quantity++
		} else {
			c.logger.Debug("Add ignored, line at stock", zap.String("id", in.ID), zap.Int("stock", items[i].Stock))
		}
	} else {
		items = append(items, Item{
			ID:       in.ID,
			Slug:     in.Slug,
			Title:    in.Title,
			Price:    in.Price,
			Quantity: 1,
			Stock:    in.Stock,
		})
	}

	if err := c.store.Save(items); err != nil {
		return err
	}
	c.notifier.Notify()
	return nil
}

// UpdateQuantity sets the quantity of a line. Zero or less removes the
// line; more than the stored stock is ignored. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(id string, quantity int) error {
	items, err := c.store.Load()
	if err != nil {
		return err
	}

	i := indexOf(items, id)
	if i < 0 {
		return nil
	}
	if quantity <= 0 {
		return c.RemoveFromCart(id)
	}
	if quantity > items[i].Stock {
		c.logger.Debug("Quantity update ignored, above stock",
			zap.String("id", id),
			zap.Int("quantity", quantity),
			zap.Int("stock", items[i].Stock),
		)
		return nil
	}

	items[i].Quantity = quantity
	if err := c.store.Save(items); err != nil {
		return err
	}
	c.notifier.Notify()
	return nil
}

// RemoveFromCart drops the line with id. The cart is written back and
// observers notified even when no line matched.
func (c *Cart) RemoveFromCart(id string) error {
	items, err := c.store.Load()
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}

	if err := c.store.Save(kept); err != nil {
		return err
	}
	c.notifier.Notify()
	return nil
}

// ClearCart erases the stored cart
func (c *Cart) ClearCart() error {
	if err := c.store.Erase(); err != nil {
		return err
	}
	c.notifier.Notify()
	return nil
}

// Total is the sum of price times quantity over all lines
func (c *Cart) Total() (int64, error) {
	items, err := c.store.Load()
	if err != nil {
		return 0, err
	}
	return Total(items), nil
}

// ItemCount is the sum of quantities over all lines
func (c *Cart) ItemCount() (int, error) {
	items, err := c.store.Load()
	if err != nil {
		return 0, err
	}
	return ItemCount(items), nil
}

// Total sums the line totals of items
func Total(items []Item) int64 {
	var total int64
	for _, item := range items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount sums the quantities of items
func ItemCount(items []Item) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

func indexOf(items []Item, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
