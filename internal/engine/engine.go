package engine

import (
	"context"
	"time"

	"stockengine/internal/book"
	"stockengine/internal/bus"
	"stockengine/internal/model"
	"stockengine/internal/sim"
	"stockengine/pkg/exception"

	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"golang.org/x/sync/errgroup"
)

// DefaultPause is the rest between two orders of one worker.
const DefaultPause = 10 * time.Millisecond

// Config tunes worker behavior.
type Config struct {
	// Pause is slept after every order; zero or negative disables it.
	Pause time.Duration
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{Pause: DefaultPause}
}

// SimulationConfig describes a synthetic trading run.
type SimulationConfig struct {
	Workers    int
	Iterations int
	Generator  sim.Config
}

// Engine drives worker goroutines that place orders into one shared book.
type Engine struct {
	book *book.OrderBook
	cfg  Config
}

// New creates an engine around b. The book is owned by the caller.
func New(b *book.OrderBook, cfg Config) *Engine {
	return &Engine{book: b, cfg: cfg}
}

// Book returns the shared order book.
func (e *Engine) Book() *book.OrderBook {
	return e.book
}

// RunDataset places every spec using workers goroutines that drain a
// shared queue. It returns when the queue is empty or ctx is done.
func (e *Engine) RunDataset(ctx context.Context, specs []model.OrderSpec, workers int) error {
	if workers < 1 {
		return errors.Wrapf(exception.ErrInvalidWorkers, "dataset workers: %d", workers)
	}

	q := bus.NewQueue(len(specs))
	for _, spec := range specs {
		if err := q.TryPublish(spec); err != nil {
			return errors.Wrap(err, "enqueue dataset order")
		}
	}
	q.Close()

	eg, ctx := errgroup.WithContext(ctx)
	for id := 0; id < workers; id++ {
		eg.Go(func() error {
			return e.datasetWorker(ctx, id, q)
		})
	}
	return eg.Wait()
}

func (e *Engine) datasetWorker(ctx context.Context, id int, q *bus.Queue) error {
	placed := 0
	for {
		spec, ok := q.Next(ctx)
		if !ok {
			break
		}
		e.place(id, spec)
		placed++
		if err := e.pause(ctx); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	logs.Infof("dataset worker %d done, orders: %d", id, placed)
	return nil
}

// RunSimulation runs cfg.Workers goroutines that each place
// cfg.Iterations random orders.
func (e *Engine) RunSimulation(ctx context.Context, cfg SimulationConfig) error {
	if cfg.Workers < 1 {
		return errors.Wrapf(exception.ErrInvalidWorkers, "simulation workers: %d", cfg.Workers)
	}
	if cfg.Iterations < 0 {
		return errors.Wrapf(exception.ErrInvalidArgument, "iterations: %d", cfg.Iterations)
	}
	gen, err := sim.NewGenerator(cfg.Generator)
	if err != nil {
		return errors.Wrap(err, "new generator")
	}

	eg, ctx := errgroup.WithContext(ctx)
	for id := 0; id < cfg.Workers; id++ {
		g := gen.ForWorker(id)
		eg.Go(func() error {
			return e.simulationWorker(ctx, id, cfg.Iterations, g)
		})
	}
	return eg.Wait()
}

func (e *Engine) simulationWorker(ctx context.Context, id, iterations int, gen *sim.Generator) error {
	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.place(id, gen.Next())
		if err := e.pause(ctx); err != nil {
			return err
		}
	}
	logs.Infof("random trading worker %d done, orders: %d", id, iterations)
	return nil
}

func (e *Engine) place(workerID int, spec model.OrderSpec) {
	o := book.NewOrder(spec.Side, spec.InstrumentID, spec.Quantity, spec.Price)
	e.book.Insert(o)
	e.book.ProcessOrders(workerID)
}

func (e *Engine) pause(ctx context.Context) error {
	if e.cfg.Pause <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(e.cfg.Pause)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
