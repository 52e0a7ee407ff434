package model

import "stockengine/internal/model/enum"

// OrderSpec is an order request that has not been placed into a book yet.
type OrderSpec struct {
	Side         enum.Side
	InstrumentID int64
	Quantity     int64
	Price        int64
}
