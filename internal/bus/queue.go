package bus

import (
	"context"
	"sync/atomic"

	"stockengine/internal/model"
	"stockengine/pkg/exception"
)

// Queue is a bounded queue of pending order specs shared by workers.
type Queue struct {
	ch     chan model.OrderSpec
	closed uint32
}

// NewQueue allocates a queue with the given capacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{ch: make(chan model.OrderSpec, capacity)}
}

// TryPublish enqueues a spec without blocking.
func (q *Queue) TryPublish(spec model.OrderSpec) error {
	if atomic.LoadUint32(&q.closed) != 0 {
		return exception.ErrQueueClosed
	}
	select {
	case q.ch <- spec:
		return nil
	default:
		return exception.ErrQueueFull
	}
}

// Close stops the queue from accepting new specs. Pending specs can
// still be drained.
func (q *Queue) Close() {
	if atomic.CompareAndSwapUint32(&q.closed, 0, 1) {
		close(q.ch)
	}
}

// Len reports how many specs are waiting.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Next returns the next pending spec. ok is false once the queue is
// closed and drained, or the context is done.
func (q *Queue) Next(ctx context.Context) (spec model.OrderSpec, ok bool) {
	select {
	case <-ctx.Done():
		return model.OrderSpec{}, false
	case spec, ok = <-q.ch:
		return spec, ok
	}
}
