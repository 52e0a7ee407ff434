package book

import (
	"fmt"
	"sync"
	"sync/atomic"

	"stockengine/internal/model/enum"
)

var orderSeq atomic.Uint64

// Order is one resting or incoming request. Side, instrument and price
// never change; the remaining quantity only decreases, under mu.
type Order struct {
	seq          uint64
	side         enum.Side
	instrumentID int64
	price        int64

	mu        sync.Mutex
	remaining atomic.Int64
	next      atomic.Pointer[Order]
	unlinked  atomic.Bool
}

// NewOrder builds an order. Quantities below 1 are raised to 1.
func NewOrder(side enum.Side, instrumentID, quantity, price int64) *Order {
	o := &Order{
		seq:          orderSeq.Add(1),
		side:         side,
		instrumentID: instrumentID,
		price:        price,
	}
	o.remaining.Store(max(1, quantity))
	return o
}

func (o *Order) Seq() uint64         { return o.seq }
func (o *Order) Side() enum.Side     { return o.side }
func (o *Order) InstrumentID() int64 { return o.instrumentID }
func (o *Order) Price() int64        { return o.price }
func (o *Order) Remaining() int64    { return o.remaining.Load() }
func (o *Order) Filled() bool        { return o.remaining.Load() <= 0 }
func (o *Order) Next() *Order        { return o.next.Load() }

// String renders the order as a fixed-width table row.
func (o *Order) String() string {
	return fmt.Sprintf("%-6s | %-6d | %-8d | %-6d", o.side, o.instrumentID, o.Remaining(), o.price)
}

// crosses reports whether resting c can trade against o.
func (o *Order) crosses(c *Order) bool {
	if c.instrumentID != o.instrumentID || c.side != o.side.Opposite() {
		return false
	}
	switch o.side {
	case enum.SideBuy:
		return c.price <= o.price
	case enum.SideSell:
		return c.price >= o.price
	default:
		return false
	}
}

// better reports whether c strictly improves on best for o.
func (o *Order) better(c, best *Order) bool {
	if best == nil {
		return true
	}
	if o.side == enum.SideBuy {
		return c.price < best.price
	}
	return c.price > best.price
}
