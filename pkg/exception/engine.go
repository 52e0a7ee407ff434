package exception

import "errors"

var (
	ErrQueueFull      = errors.New("engine: work queue full")
	ErrQueueClosed    = errors.New("engine: work queue closed")
	ErrInvalidWorkers = errors.New("engine: worker count must be >= 1")
)
