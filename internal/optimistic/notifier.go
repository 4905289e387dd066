package optimistic

import (
	"sync"

	"github.com/google/uuid"
)

// Subscriber receives the id of a cart whose merged view may have changed.
// Callbacks run synchronously on the mutating goroutine and must not block.
type Subscriber func(cartID uuid.UUID)

// Notifier fans cart-change events out to registered subscribers. It is the
// single reconciliation signal: views rebuild from authoritative state plus
// the overlay whenever it fires, instead of tracking individual mutations.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]Subscriber
}

// NewNotifier builds an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]Subscriber)}
}

// Subscribe registers a callback and returns a function that removes it.
func (n *Notifier) Subscribe(fn Subscriber) func() {
	if fn == nil {
		return func() {}
	}
	n.mu.Lock()
	id := n.next
	n.next++
	n.subs[id] = fn
	n.mu.Unlock()
	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

// Notify invokes every subscriber with the changed cart id.
func (n *Notifier) Notify(cartID uuid.UUID) {
	n.mu.Lock()
	subs := make([]Subscriber, 0, len(n.subs))
	for _, fn := range n.subs {
		subs = append(subs, fn)
	}
	n.mu.Unlock()
	for _, fn := range subs {
		fn(cartID)
	}
}
