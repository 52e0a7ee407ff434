package obs

import (
	"sync/atomic"
	"time"
)

// Metrics collects lightweight counters and latency stats for a book.
type Metrics struct {
	inserts      uint64
	casRetries   uint64
	trades       uint64
	tradedVolume uint64
	unlinks      uint64
	sweeps       uint64

	sweepLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	Inserts      uint64
	CASRetries   uint64
	Trades       uint64
	TradedVolume uint64
	Unlinks      uint64
	Sweeps       uint64
	SweepLatency LatencySnapshot
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncInsert records a successful head insertion.
func (m *Metrics) IncInsert() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.inserts, 1)
}

// IncCASRetry records a lost head compare-and-swap.
func (m *Metrics) IncCASRetry() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.casRetries, 1)
}

// ObserveTrade counts one executed trade and its quantity.
func (m *Metrics) ObserveTrade(qty int64) {
	if m == nil || qty <= 0 {
		return
	}
	atomic.AddUint64(&m.trades, 1)
	atomic.AddUint64(&m.tradedVolume, uint64(qty))
}

// IncUnlink records a filled order removed from the list.
func (m *Metrics) IncUnlink() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.unlinks, 1)
}

// ObserveSweep measures one full matching sweep.
func (m *Metrics) ObserveSweep(d time.Duration) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.sweeps, 1)
	m.sweepLatency.Observe(d)
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		Inserts:      atomic.LoadUint64(&m.inserts),
		CASRetries:   atomic.LoadUint64(&m.casRetries),
		Trades:       atomic.LoadUint64(&m.trades),
		TradedVolume: atomic.LoadUint64(&m.tradedVolume),
		Unlinks:      atomic.LoadUint64(&m.unlinks),
		Sweeps:       atomic.LoadUint64(&m.sweeps),
		SweepLatency: m.sweepLatency.Snapshot(),
	}
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	for {
		min := atomic.LoadUint64(&l.min)
		if min != 0 && nanos >= min {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, min, nanos) {
			break
		}
	}

	for {
		max := atomic.LoadUint64(&l.max)
		if nanos <= max {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, max, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	sum := atomic.LoadUint64(&l.sum)
	min := atomic.LoadUint64(&l.min)
	max := atomic.LoadUint64(&l.max)
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(min),
		Max:   time.Duration(max),
		Avg:   time.Duration(sum / count),
	}
}
