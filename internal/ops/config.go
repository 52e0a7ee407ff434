package ops

import (
	"os"
	"time"

	"stockengine/internal/engine"
	"stockengine/internal/sim"
	"stockengine/pkg/conn"
	"stockengine/pkg/exception"

	"github.com/bytedance/sonic"
	"github.com/yanun0323/errors"
)

const (
	defaultDatasetWorkers    = 4
	defaultSimulationWorkers = 4
	defaultIterations        = 100
	defaultPauseMillis       = 10
	defaultProfilingAddress  = "http://localhost:4040"
	defaultProfilingApp      = "stockengine"
)

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	Dataset     DatasetConfig    `json:"dataset"`
	Simulation  SimulationConfig `json:"simulation"`
	PauseMillis *int             `json:"pauseMillis"`
	Postgres    conn.Option      `json:"postgres"`
	Profiling   ProfilingConfig  `json:"profiling"`
}

// DatasetConfig describes the CSV replay phase.
type DatasetConfig struct {
	Path    string `json:"path"`
	Workers int    `json:"workers"`
	Strict  bool   `json:"strict"`
}

// SimulationConfig describes the random trading phase.
type SimulationConfig struct {
	Workers         int    `json:"workers"`
	Iterations      int    `json:"iterations"`
	InstrumentRange *int64 `json:"instrumentRange"`
	Seed            int64  `json:"seed"`
	MaxQuantity     int64  `json:"maxQuantity"`
	MaxPrice        int64  `json:"maxPrice"`
}

// ProfilingConfig toggles the pyroscope agent.
type ProfilingConfig struct {
	Enabled         bool   `json:"enabled"`
	ServerAddress   string `json:"serverAddress"`
	ApplicationName string `json:"applicationName"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	Dataset    DatasetConfig
	Simulation engine.SimulationConfig
	Engine     engine.Config
	Postgres   conn.Option
	Profiling  ProfilingConfig
}

// Default returns the configuration used when no file is given.
func Default() Loaded {
	return Loaded{
		Dataset: DatasetConfig{Workers: defaultDatasetWorkers},
		Simulation: engine.SimulationConfig{
			Workers:    defaultSimulationWorkers,
			Iterations: defaultIterations,
			Generator: sim.Config{
				InstrumentRange: sim.DefaultInstrumentRange,
				MaxQuantity:     sim.DefaultMaxQuantity,
				MaxPrice:        sim.DefaultMaxPrice,
			},
		},
		Engine: engine.DefaultConfig(),
		Profiling: ProfilingConfig{
			ServerAddress:   defaultProfilingAddress,
			ApplicationName: defaultProfilingApp,
		},
	}
}

// Load reads a JSON config file and resolves it against the defaults.
// An empty path yields the defaults.
func Load(path string) (Loaded, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, errors.Wrapf(err, "read config %s", path)
	}
	return Parse(data)
}

// Parse decodes a JSON config document.
func Parse(data []byte) (Loaded, error) {
	var cfg FileConfig
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, errors.Wrap(err, "decode config")
	}
	loaded := resolve(cfg)
	if err := loaded.Validate(); err != nil {
		return Loaded{}, err
	}
	return loaded, nil
}

func resolve(cfg FileConfig) Loaded {
	out := Default()

	out.Dataset.Path = cfg.Dataset.Path
	out.Dataset.Strict = cfg.Dataset.Strict
	if cfg.Dataset.Workers != 0 {
		out.Dataset.Workers = cfg.Dataset.Workers
	}

	sc := cfg.Simulation
	if sc.Workers != 0 {
		out.Simulation.Workers = sc.Workers
	}
	if sc.Iterations != 0 {
		out.Simulation.Iterations = sc.Iterations
	}
	if sc.InstrumentRange != nil {
		out.Simulation.Generator.InstrumentRange = *sc.InstrumentRange
	}
	if sc.MaxQuantity != 0 {
		out.Simulation.Generator.MaxQuantity = sc.MaxQuantity
	}
	if sc.MaxPrice != 0 {
		out.Simulation.Generator.MaxPrice = sc.MaxPrice
	}
	out.Simulation.Generator.Seed = sc.Seed

	if cfg.PauseMillis != nil {
		out.Engine.Pause = time.Duration(*cfg.PauseMillis) * time.Millisecond
	}

	out.Postgres = cfg.Postgres

	out.Profiling.Enabled = cfg.Profiling.Enabled
	if cfg.Profiling.ServerAddress != "" {
		out.Profiling.ServerAddress = cfg.Profiling.ServerAddress
	}
	if cfg.Profiling.ApplicationName != "" {
		out.Profiling.ApplicationName = cfg.Profiling.ApplicationName
	}
	return out
}

// Validate checks the resolved values.
func (l Loaded) Validate() error {
	if l.Dataset.Workers < 1 {
		return errors.Wrapf(exception.ErrInvalidWorkers, "dataset workers: %d", l.Dataset.Workers)
	}
	if l.Simulation.Workers < 1 {
		return errors.Wrapf(exception.ErrInvalidWorkers, "simulation workers: %d", l.Simulation.Workers)
	}
	if l.Simulation.Iterations < 0 {
		return errors.Wrapf(exception.ErrInvalidArgument, "iterations: %d", l.Simulation.Iterations)
	}
	if l.Engine.Pause < 0 {
		return errors.Wrapf(exception.ErrInvalidArgument, "pause: %s", l.Engine.Pause)
	}
	if err := l.Simulation.Generator.Validate(); err != nil {
		return errors.Wrap(exception.ErrInvalidArgument, err.Error())
	}
	return nil
}
