package book

import "time"

// findBestMatch scans the whole list once for the best resting order
// that crosses incoming. The lowest ask wins for a buy and the highest
// bid for a sell. Ties keep the first node seen, which is the most
// recently inserted one. pred is nil when the candidate is head.
func (b *OrderBook) findBestMatch(incoming *Order) (best, pred *Order) {
	var prev *Order
	for cur := b.head.Load(); cur != nil; prev, cur = cur, cur.next.Load() {
		if cur.Filled() || !incoming.crosses(cur) {
			continue
		}
		if incoming.better(cur, best) {
			best, pred = cur, prev
		}
	}
	return best, pred
}

// executeTrade fills min(remaining) of both orders at the candidate's
// price and unlinks whichever side is exhausted. It returns 0 when
// either order was drained before the locks were taken.
func (b *OrderBook) executeTrade(workerID int, incoming, candidate, pred *Order) int64 {
	if incoming == candidate {
		return 0
	}

	// Lock in seq order: two workers may hold the same pair swapped.
	first, second := incoming, candidate
	if second.seq < first.seq {
		first, second = second, first
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	traded := min(incoming.remaining.Load(), candidate.remaining.Load())
	if traded <= 0 {
		return 0
	}

	resting := candidate.String()
	incoming.remaining.Add(-traded)
	candidate.remaining.Add(-traded)
	b.metrics.ObserveTrade(traded)

	t := Trade{
		WorkerID:     workerID,
		InstrumentID: candidate.instrumentID,
		Quantity:     traded,
		Price:        candidate.price,
		RestingSide:  candidate.side,
		RestingSeq:   candidate.seq,
		IncomingSeq:  incoming.seq,
		Resting:      resting,
		ExecutedAt:   time.Now(),
	}
	for _, l := range b.listeners {
		l.TradeExecuted(t)
	}

	if candidate.Filled() && b.unlink(candidate, pred) {
		b.metrics.IncUnlink()
	}
	if incoming.Filled() && b.unlink(incoming, nil) {
		b.metrics.IncUnlink()
	}
	return traded
}

// MatchOrder trades incoming once against its best resting match.
func (b *OrderBook) MatchOrder(workerID int, incoming *Order) bool {
	candidate, pred := b.findBestMatch(incoming)
	if candidate == nil {
		return false
	}
	return b.executeTrade(workerID, incoming, candidate, pred) > 0
}

// ProcessOrders sweeps the book from head, matching every live order
// it passes. After each trade the sweep restarts at head because the
// list may have changed shape. It returns once a full pass produces no
// trade, and reports how many trades it executed.
func (b *OrderBook) ProcessOrders(workerID int) int {
	start := time.Now()
	trades := 0
	for cur := b.head.Load(); cur != nil; {
		if !cur.Filled() && b.MatchOrder(workerID, cur) {
			trades++
			cur = b.head.Load()
			continue
		}
		cur = cur.next.Load()
	}
	b.metrics.ObserveSweep(time.Since(start))
	return trades
}
