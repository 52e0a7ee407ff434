package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"stockengine/internal/book"
	"stockengine/internal/model/enum"
	"stockengine/pkg/exception"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	migrated  bool
	trades    []TradeRecord
	summaries []RunSummary
	failSave  error
}

func (s *memoryStore) Migrate(context.Context) error {
	s.migrated = true
	return nil
}

func (s *memoryStore) SaveTrades(_ context.Context, trades []TradeRecord) error {
	if s.failSave != nil {
		return s.failSave
	}
	s.trades = append(s.trades, trades...)
	return nil
}

func (s *memoryStore) SaveSummary(_ context.Context, summary RunSummary) error {
	s.summaries = append(s.summaries, summary)
	return nil
}

func TestRecorderCapturesBookTrades(t *testing.T) {
	rec := NewRecorder()
	_, err := uuid.Parse(rec.RunID())
	require.NoError(t, err)

	b := book.New(book.Config{Listeners: []book.Listener{rec}})
	b.Insert(book.NewOrder(enum.SideSell, 1, 50, 100))
	b.Insert(book.NewOrder(enum.SideBuy, 1, 30, 105))
	require.Equal(t, 1, b.ProcessOrders(3))

	trades := rec.Trades()
	require.Len(t, trades, 1)
	assert.Equal(t, rec.RunID(), trades[0].RunID)
	assert.Equal(t, 3, trades[0].WorkerID)
	assert.Equal(t, "SELL", trades[0].RestingSide)
	assert.Equal(t, "3000", trades[0].Notional.String())
}

func TestRecorderSummary(t *testing.T) {
	rec := NewRecorder()
	now := time.Now()
	rec.TradeExecuted(book.Trade{Quantity: 30, Price: 100, RestingSide: enum.SideSell, ExecutedAt: now})
	rec.TradeExecuted(book.Trade{Quantity: 5, Price: 101, RestingSide: enum.SideBuy, ExecutedAt: now})

	sum := rec.Summary("dataset", 4, 7)
	assert.Equal(t, rec.RunID(), sum.RunID)
	assert.Equal(t, "dataset", sum.Mode)
	assert.Equal(t, 2, sum.Trades)
	assert.EqualValues(t, 35, sum.Volume)
	assert.Equal(t, "3505", sum.Notional.String())
	assert.Equal(t, 7, sum.RestingOrders)
	assert.False(t, sum.FinishedAt.Before(sum.StartedAt))
}

func TestRecorderFlush(t *testing.T) {
	rec := NewRecorder()
	rec.TradeExecuted(book.Trade{Quantity: 1, Price: 2})
	store := &memoryStore{}

	require.NoError(t, rec.Flush(t.Context(), store, rec.Summary("simulation", 1, 0)))
	assert.True(t, store.migrated)
	assert.Len(t, store.trades, 1)
	require.Len(t, store.summaries, 1)
	assert.Equal(t, "simulation", store.summaries[0].Mode)
}

func TestRecorderFlushErrors(t *testing.T) {
	rec := NewRecorder()
	require.ErrorIs(t, rec.Flush(t.Context(), nil, RunSummary{}), exception.ErrReportNilStore)

	boom := errors.New("boom")
	rec.TradeExecuted(book.Trade{Quantity: 1, Price: 1})
	store := &memoryStore{failSave: boom}
	require.ErrorIs(t, rec.Flush(t.Context(), store, RunSummary{}), boom)
	assert.Empty(t, store.summaries)
}

func TestRecorderFlushWithoutTrades(t *testing.T) {
	rec := NewRecorder()
	store := &memoryStore{failSave: errors.New("must not be called")}
	require.NoError(t, rec.Flush(t.Context(), store, rec.Summary("dataset", 1, 0)))
	assert.Len(t, store.summaries, 1)
}
