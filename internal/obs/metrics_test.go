package obs

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsNilReceiver(t *testing.T) {
	var m *Metrics
	m.IncInsert()
	m.IncCASRetry()
	m.ObserveTrade(5)
	m.IncUnlink()
	m.ObserveSweep(time.Millisecond)
	if got := m.Snapshot(); got != (Snapshot{}) {
		t.Fatalf("nil metrics snapshot = %+v, want zero", got)
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.IncInsert()
				m.ObserveTrade(2)
			}
		}()
	}
	wg.Wait()
	m.ObserveTrade(0)

	snap := m.Snapshot()
	if snap.Inserts != 800 {
		t.Fatalf("inserts = %d, want 800", snap.Inserts)
	}
	if snap.Trades != 800 || snap.TradedVolume != 1600 {
		t.Fatalf("trades = %d volume = %d, want 800/1600", snap.Trades, snap.TradedVolume)
	}
}

func TestLatencyStats(t *testing.T) {
	var l LatencyStats
	l.Observe(3 * time.Millisecond)
	l.Observe(time.Millisecond)
	l.Observe(2 * time.Millisecond)
	l.Observe(-time.Second)

	snap := l.Snapshot()
	if snap.Count != 3 {
		t.Fatalf("count = %d, want 3", snap.Count)
	}
	if snap.Min != time.Millisecond || snap.Max != 3*time.Millisecond {
		t.Fatalf("min/max = %v/%v", snap.Min, snap.Max)
	}
	if snap.Avg != 2*time.Millisecond {
		t.Fatalf("avg = %v, want 2ms", snap.Avg)
	}
}
