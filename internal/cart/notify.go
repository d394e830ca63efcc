package cart

// EventCartUpdated is the event name observers are notified with
const EventCartUpdated = "cart-updated"

// Listener is called with the event name. Listeners reload the cart
// themselves; no data is passed along.
type Listener func(event string)

type subscription struct {
	id int
	fn Listener
}

// Notifier dispatches change events to subscribed listeners synchronously,
// in subscription order. Listeners subscribed after an event never see it.
type Notifier struct {
	nextID int
	subs   []subscription
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn and returns a function that removes it again.
// Calling the returned function more than once is harmless.
func (n *Notifier) Subscribe(fn Listener) (unsubscribe func()) {
	n.nextID++
	id := n.nextID
	n.subs = append(n.subs, subscription{id: id, fn: fn})

	return func() {
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every current listener once
func (n *Notifier) Notify() {
	subs := append([]subscription(nil), n.subs...)
	for _, s := range subs {
		s.fn(EventCartUpdated)
	}
}

// Len returns the number of subscribed listeners
func (n *Notifier) Len() int {
	return len(n.subs)
}
