package features

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"github.com/bookdragons/storefront/internal/cart"
)

type cartTestContext struct {
	storage *cart.MemoryStorage
	cart    *cart.Cart
	events  int
}

func (c *cartTestContext) reset() {
	logger := zap.NewNop()
	c.storage = cart.NewMemoryStorage()
	c.cart = cart.New(cart.NewStore(c.storage, logger), cart.NewNotifier(), logger)
	c.events = 0
	c.cart.Notifier().Subscribe(func(string) { c.events++ })
}

func (c *cartTestContext) anEmptyCart() error {
	return c.storage.RemoveItem(cart.StorageKey)
}

func (c *cartTestContext) iAddBook(id string, price int64, stock int) error {
	return c.cart.AddToCart(cart.ItemInput{ID: id, Slug: "book-" + id, Title: "Book " + id, Price: price, Stock: stock})
}

func (c *cartTestContext) iSetTheQuantity(id string, quantity int) error {
	return c.cart.UpdateQuantity(id, quantity)
}

func (c *cartTestContext) iRemoveBook(id string) error {
	return c.cart.RemoveFromCart(id)
}

func (c *cartTestContext) iClearTheCart() error {
	return c.cart.ClearCart()
}

func (c *cartTestContext) theStoredCartIs(raw string) error {
	return c.storage.SetItem(cart.StorageKey, strings.ReplaceAll(raw, `\"`, `"`))
}

func (c *cartTestContext) theCartHasLines(n int) error {
	items, err := c.cart.Items()
	if err != nil {
		return err
	}
	if len(items) != n {
		return fmt.Errorf("expected %d lines, got %d", n, len(items))
	}
	return nil
}

func (c *cartTestContext) lineHasQuantity(id string, quantity int) error {
	items, err := c.cart.Items()
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.ID == id {
			if item.Quantity != quantity {
				return fmt.Errorf("expected quantity %d for %s, got %d", quantity, id, item.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("no line for %s", id)
}

func (c *cartTestContext) theCartTotalIs(total int64) error {
	got, err := c.cart.Total()
	if err != nil {
		return err
	}
	if got != total {
		return fmt.Errorf("expected total %d, got %d", total, got)
	}
	return nil
}

func (c *cartTestContext) theItemCountIs(count int) error {
	got, err := c.cart.ItemCount()
	if err != nil {
		return err
	}
	if got != count {
		return fmt.Errorf("expected item count %d, got %d", count, got)
	}
	return nil
}

func (c *cartTestContext) changeEventsWereAnnounced(n int) error {
	if c.events != n {
		return fmt.Errorf("expected %d change events, got %d", n, c.events)
	}
	return nil
}

func (c *cartTestContext) theStorageKeyIsAbsent() error {
	_, ok, err := c.storage.GetItem(cart.StorageKey)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("expected %s to be absent", cart.StorageKey)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^the stored cart is "(.*)"$`, tc.theStoredCartIs)
	ctx.Step(`^I add book "([^"]*)" priced (\d+) with stock (\d+)$`, tc.iAddBook)
	ctx.Step(`^I set the quantity of "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantity)
	ctx.Step(`^I remove book "([^"]*)"$`, tc.iRemoveBook)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)

	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^line "([^"]*)" has quantity (\d+)$`, tc.lineHasQuantity)
	ctx.Step(`^the cart total is (\d+)$`, tc.theCartTotalIs)
	ctx.Step(`^the item count is (\d+)$`, tc.theItemCountIs)
	ctx.Step(`^(\d+) change events were announced$`, tc.changeEventsWereAnnounced)
	ctx.Step(`^the storage key is absent$`, tc.theStorageKeyIsAbsent)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
