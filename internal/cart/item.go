package cart

// Item is one cart line. Title, price and stock are snapshots taken when
// the book was first added.
type Item struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Stock    int    `json:"stock"`
}

// ItemInput is what AddToCart takes: an item without a quantity
type ItemInput struct {
	ID    string
	Slug  string
	Title string
	Price int64
	Stock int
}

// LineTotal is price times quantity
func (i Item) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Available reports whether the line can be bought as it stands
func (i Item) Available() bool {
	return i.Stock > 0 && i.Quantity <= i.Stock
}

// CanIncrement reports whether one more copy fits under the stock snapshot
func (i Item) CanIncrement() bool {
	return i.Quantity < i.Stock
}
