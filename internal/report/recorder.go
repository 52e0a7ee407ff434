package report

import (
	"context"
	"sync"
	"time"

	"stockengine/internal/book"
	"stockengine/pkg/exception"

	"github.com/google/uuid"
	"github.com/yanun0323/decimal"
	"github.com/yanun0323/errors"
)

var _ book.Listener = (*Recorder)(nil)

// Store persists run reports.
type Store interface {
	Migrate(ctx context.Context) error
	SaveTrades(ctx context.Context, trades []TradeRecord) error
	SaveSummary(ctx context.Context, summary RunSummary) error
}

// Recorder captures the trades of one run for later export.
type Recorder struct {
	runID     string
	startedAt time.Time

	mu       sync.Mutex
	trades   []TradeRecord
	volume   int64
	notional decimal.Decimal
}

// NewRecorder starts a run with a fresh id.
func NewRecorder() *Recorder {
	return &Recorder{
		runID:     uuid.NewString(),
		startedAt: time.Now().UTC(),
		notional:  decimal.Zero,
	}
}

// RunID identifies this run in the store.
func (r *Recorder) RunID() string {
	return r.runID
}

func (r *Recorder) OrderAdded(*book.Order) {}

func (r *Recorder) TradeExecuted(t book.Trade) {
	notional := decimal.NewFromInt(t.Price).Mul(decimal.NewFromInt(t.Quantity))

	r.mu.Lock()
	defer r.mu.Unlock()
	r.trades = append(r.trades, TradeRecord{
		RunID:        r.runID,
		WorkerID:     t.WorkerID,
		InstrumentID: t.InstrumentID,
		RestingSide:  t.RestingSide.String(),
		RestingSeq:   t.RestingSeq,
		IncomingSeq:  t.IncomingSeq,
		Quantity:     t.Quantity,
		Price:        t.Price,
		Notional:     notional,
		ExecutedAt:   t.ExecutedAt.UTC(),
	})
	r.volume += t.Quantity
	r.notional = r.notional.Add(notional)
}

// Trades returns a copy of the captured trades.
func (r *Recorder) Trades() []TradeRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]TradeRecord(nil), r.trades...)
}

// Summary aggregates the captured trades.
func (r *Recorder) Summary(mode string, workers, resting int) RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RunSummary{
		RunID:         r.runID,
		Mode:          mode,
		Workers:       workers,
		Trades:        len(r.trades),
		Volume:        r.volume,
		Notional:      r.notional,
		RestingOrders: resting,
		StartedAt:     r.startedAt,
		FinishedAt:    time.Now().UTC(),
	}
}

// Flush writes the trades and the summary to store.
func (r *Recorder) Flush(ctx context.Context, store Store, summary RunSummary) error {
	if store == nil {
		return exception.ErrReportNilStore
	}
	if err := store.Migrate(ctx); err != nil {
		return errors.Wrap(err, "migrate report tables")
	}
	if trades := r.Trades(); len(trades) != 0 {
		if err := store.SaveTrades(ctx, trades); err != nil {
			return errors.Wrapf(err, "save %d trades", len(trades))
		}
	}
	if err := store.SaveSummary(ctx, summary); err != nil {
		return errors.Wrap(err, "save run summary")
	}
	return nil
}
