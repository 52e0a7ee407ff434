package book

import (
	"time"

	"stockengine/internal/model/enum"

	"github.com/yanun0323/logs"
)

// Trade describes one execution between an incoming and a resting order.
type Trade struct {
	WorkerID     int
	InstrumentID int64
	Quantity     int64
	Price        int64
	RestingSide  enum.Side
	RestingSeq   uint64
	IncomingSeq  uint64
	Resting      string
	ExecutedAt   time.Time
}

// Listener observes book changes. Callbacks run on the worker goroutine
// that made the change and must not call back into the book.
type Listener interface {
	OrderAdded(o *Order)
	TradeExecuted(t Trade)
}

// LogListener writes the human-readable event log.
type LogListener struct{}

func (LogListener) OrderAdded(o *Order) {
	logs.Infof("order added:            %s", o)
}

func (LogListener) TradeExecuted(t Trade) {
	logs.Infof("[worker %d] match found: %s -> traded %d shares @ %d", t.WorkerID, t.Resting, t.Quantity, t.Price)
}
