package sim

import (
	"fmt"
	"math/rand"
	"time"

	"stockengine/internal/model"
	"stockengine/internal/model/enum"
)

const (
	DefaultInstrumentRange = 10
	DefaultMaxQuantity     = 100
	DefaultMaxPrice        = 500
)

// Config controls synthetic order generation.
type Config struct {
	Seed            int64
	InstrumentRange int64 // inclusive upper bound for instrument ids
	MaxQuantity     int64
	MaxPrice        int64
}

// Generator produces random orders. It is not safe for concurrent use;
// give each worker its own via ForWorker.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator creates a generator with validation. Zero quantity and
// price bounds take the defaults; a zero seed is replaced by the current
// time. An InstrumentRange of 0 is kept and yields instrument 0 only.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.MaxQuantity == 0 {
		cfg.MaxQuantity = DefaultMaxQuantity
	}
	if cfg.MaxPrice == 0 {
		cfg.MaxPrice = DefaultMaxPrice
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UTC().UnixNano()
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// Validate ensures the config is within supported ranges.
func (c Config) Validate() error {
	if c.InstrumentRange < 0 {
		return fmt.Errorf("instrumentRange must be >= 0")
	}
	if c.MaxQuantity < 1 {
		return fmt.Errorf("maxQuantity must be >= 1")
	}
	if c.MaxPrice < 1 {
		return fmt.Errorf("maxPrice must be >= 1")
	}
	return nil
}

// Config returns the resolved configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// ForWorker derives an independent generator for worker id.
func (g *Generator) ForWorker(id int) *Generator {
	cfg := g.cfg
	cfg.Seed += int64(id) + 1
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Next draws one order spec: uniform side, instrument in
// [0, InstrumentRange], quantity in [1, MaxQuantity], price in [1, MaxPrice].
func (g *Generator) Next() model.OrderSpec {
	side := enum.SideBuy
	if g.rng.Intn(2) == 1 {
		side = enum.SideSell
	}
	return model.OrderSpec{
		Side:         side,
		InstrumentID: g.rng.Int63n(g.cfg.InstrumentRange + 1),
		Quantity:     g.rng.Int63n(g.cfg.MaxQuantity) + 1,
		Price:        g.rng.Int63n(g.cfg.MaxPrice) + 1,
	}
}
