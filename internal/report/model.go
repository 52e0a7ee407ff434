package report

import (
	"time"

	"github.com/yanun0323/decimal"
)

// TradeRecord is one executed trade as stored in postgres.
type TradeRecord struct {
	ID           uint            `gorm:"primaryKey"`
	RunID        string          `gorm:"size:36;index"`
	WorkerID     int             `gorm:"not null"`
	InstrumentID int64           `gorm:"index;not null"`
	RestingSide  string          `gorm:"size:4;not null"`
	RestingSeq   uint64          `gorm:"not null"`
	IncomingSeq  uint64          `gorm:"not null"`
	Quantity     int64           `gorm:"not null"`
	Price        int64           `gorm:"not null"`
	Notional     decimal.Decimal `gorm:"type:numeric;not null"`
	ExecutedAt   time.Time       `gorm:"not null"`
}

// RunSummary is the aggregate of one engine run.
type RunSummary struct {
	RunID         string          `gorm:"primaryKey;size:36"`
	Mode          string          `gorm:"size:16;not null"`
	Workers       int
	Trades        int
	Volume        int64
	Notional      decimal.Decimal `gorm:"type:numeric"`
	RestingOrders int
	StartedAt     time.Time
	FinishedAt    time.Time
}
