package book

import (
	"iter"
	"sync"
	"sync/atomic"

	"stockengine/internal/obs"
)

// Config wires optional collaborators into an OrderBook.
type Config struct {
	Metrics   *obs.Metrics
	Listeners []Listener
}

// OrderBook is a singly linked list of live orders, newest at head.
//
// Insertions are compare-and-swap on head. All structural changes, head
// or interior, run under mu so an unlink never races another unlink or
// an insertion. Scans are lock-free and skip filled nodes still in the
// chain.
type OrderBook struct {
	head atomic.Pointer[Order]
	mu   sync.Mutex

	metrics   *obs.Metrics
	listeners []Listener
}

// New creates an empty book.
func New(cfg Config) *OrderBook {
	return &OrderBook{
		metrics:   cfg.Metrics,
		listeners: cfg.Listeners,
	}
}

// compareAndSwapHead replaces head with new only if it still equals old.
func (b *OrderBook) compareAndSwapHead(old, new *Order) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.head.Load() != old {
		return false
	}
	b.head.Store(new)
	return true
}

// Insert prepends o, retrying until its compare-and-swap wins.
// o must not already belong to a book.
func (b *OrderBook) Insert(o *Order) {
	for {
		old := b.head.Load()
		o.next.Store(old)
		if b.compareAndSwapHead(old, o) {
			break
		}
		b.metrics.IncCASRetry()
	}
	b.metrics.IncInsert()
	for _, l := range b.listeners {
		l.OrderAdded(o)
	}
}

// unlink removes o from the list. pred is a hint for o's predecessor and
// may be stale; it is verified under mu and recomputed when wrong.
func (b *OrderBook) unlink(o, pred *Order) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if o.unlinked.Load() {
		return false
	}
	next := o.next.Load()
	if b.head.Load() == o {
		b.head.Store(next)
		o.unlinked.Store(true)
		return true
	}
	if pred == nil || pred.unlinked.Load() || pred.next.Load() != o {
		pred = nil
		for cur := b.head.Load(); cur != nil; cur = cur.next.Load() {
			if cur.next.Load() == o {
				pred = cur
				break
			}
		}
	}
	if pred == nil {
		return false
	}
	// o keeps its next link so readers parked on it still reach the tail.
	pred.next.Store(next)
	o.unlinked.Store(true)
	return true
}

// Snapshot returns the live orders from newest to oldest.
func (b *OrderBook) Snapshot() []*Order {
	out := make([]*Order, 0, 64)
	for o := range b.Live() {
		out = append(out, o)
	}
	return out
}

// Live iterates the orders with quantity left, newest first.
func (b *OrderBook) Live() iter.Seq[*Order] {
	return func(yield func(*Order) bool) {
		for cur := b.head.Load(); cur != nil; cur = cur.next.Load() {
			if cur.Filled() {
				continue
			}
			if !yield(cur) {
				return
			}
		}
	}
}

// Orders returns every reachable node, filled ones included.
func (b *OrderBook) Orders() []*Order {
	var out []*Order
	for cur := b.head.Load(); cur != nil; cur = cur.next.Load() {
		out = append(out, cur)
	}
	return out
}

// Len counts the live orders.
func (b *OrderBook) Len() int {
	n := 0
	for range b.Live() {
		n++
	}
	return n
}

// Reset empties the book. It is not safe while workers are running.
func (b *OrderBook) Reset() {
	b.head.Store(nil)
}
