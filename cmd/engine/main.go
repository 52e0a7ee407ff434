package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"stockengine/internal/book"
	"stockengine/internal/display"
	"stockengine/internal/engine"
	"stockengine/internal/loader"
	"stockengine/internal/obs"
	"stockengine/internal/ops"
	"stockengine/internal/report"
	"stockengine/pkg/conn"

	pyroscope "github.com/grafana/pyroscope-go"
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"
	"github.com/yanun0323/pkg/sys"
)

func main() {
	if err := run(); err != nil {
		log.Printf("engine: %v", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to JSON config")
	datasetPath := flag.String("dataset", "", "CSV file of orders to replay before the simulation")
	datasetWorkers := flag.Int("dataset-workers", 0, "Workers draining the dataset queue")
	strict := flag.Bool("strict", false, "Fail on the first malformed CSV row instead of skipping it")
	simWorkers := flag.Int("sim-workers", 0, "Random trading workers")
	iterations := flag.Int("iterations", 0, "Orders per random trading worker")
	instrumentRange := flag.Int64("instrument-range", 0, "Largest instrument id for random orders")
	seed := flag.Int64("seed", 0, "Random seed (0=time based)")
	interactive := flag.Bool("interactive", false, "Prompt for the simulation parameters")
	quiet := flag.Bool("quiet", false, "Do not log every insertion and trade")
	flag.Parse()

	loaded, err := ops.Load(*configPath)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dataset":
			loaded.Dataset.Path = *datasetPath
		case "dataset-workers":
			loaded.Dataset.Workers = *datasetWorkers
		case "strict":
			loaded.Dataset.Strict = *strict
		case "sim-workers":
			loaded.Simulation.Workers = *simWorkers
		case "iterations":
			loaded.Simulation.Iterations = *iterations
		case "instrument-range":
			loaded.Simulation.Generator.InstrumentRange = *instrumentRange
		case "seed":
			loaded.Simulation.Generator.Seed = *seed
		}
	})
	if err := loaded.Validate(); err != nil {
		return err
	}

	if loaded.Profiling.Enabled {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: loaded.Profiling.ApplicationName,
			ServerAddress:   loaded.Profiling.ServerAddress,
			Logger:          profilerLogger{},
			ProfileTypes: []pyroscope.ProfileType{
				pyroscope.ProfileCPU,
				pyroscope.ProfileAllocObjects,
				pyroscope.ProfileAllocSpace,
				pyroscope.ProfileInuseObjects,
				pyroscope.ProfileInuseSpace,
			},
		})
		if err != nil {
			return errors.Wrap(err, "start profiler")
		}
		defer func() {
			_ = profiler.Stop()
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-sys.Shutdown():
			logs.Info("shutdown signal received, stopping workers")
			cancel()
		case <-ctx.Done():
		}
	}()

	metrics := obs.NewMetrics()
	recorder := report.NewRecorder()
	listeners := []book.Listener{recorder}
	if !*quiet {
		listeners = append(listeners, book.LogListener{})
	}
	orderBook := book.New(book.Config{Metrics: metrics, Listeners: listeners})
	eng := engine.New(orderBook, loaded.Engine)
	printer := display.NewPrinter(os.Stdout)

	var ask func(*engine.SimulationConfig) error
	if *interactive {
		stdin := bufio.NewReader(os.Stdin)
		ask = func(cfg *engine.SimulationConfig) error {
			return promptSimulation(stdin, os.Stdout, cfg)
		}
	}
	phases, workers, err := runPhases(ctx, &loaded, eng, printer, ask)
	if err != nil {
		return err
	}

	logMetrics(metrics.Snapshot())

	if !loaded.Postgres.Enabled() {
		return nil
	}
	summary := recorder.Summary(strings.Join(phases, "+"), workers, orderBook.Len())
	return flushReport(ctx, loaded.Postgres, recorder, summary)
}

// runPhases replays the dataset, when one is configured, and then runs the
// random trading phase. ask, when set, edits the simulation parameters
// after the dataset book has been printed and reset.
func runPhases(ctx context.Context, loaded *ops.Loaded, eng *engine.Engine, printer *display.Printer, ask func(*engine.SimulationConfig) error) ([]string, int, error) {
	orderBook := eng.Book()
	var phases []string
	workers := 0

	if loaded.Dataset.Path != "" {
		logs.Infof("loading dataset %s", loaded.Dataset.Path)
		res, err := loader.Load(loaded.Dataset.Path, loader.Options{Strict: loaded.Dataset.Strict})
		if err != nil {
			return nil, 0, err
		}
		logs.Infof("dataset loaded, orders: %d, skipped: %d", len(res.Orders), len(res.Skipped))

		printer.PrintTradingHeader()
		if err := eng.RunDataset(ctx, res.Orders, loaded.Dataset.Workers); err != nil {
			return nil, 0, errors.Wrap(err, "run dataset")
		}
		logs.Info("dataset processing completed")
		printer.PrintBook("Final Order Book after Dataset Orders", orderBook.Snapshot())
		orderBook.Reset()

		phases = append(phases, "dataset")
		workers += loaded.Dataset.Workers
	}

	if ask != nil {
		if err := ask(&loaded.Simulation); err != nil {
			return nil, 0, errors.Wrap(err, "read simulation parameters")
		}
		if err := loaded.Validate(); err != nil {
			return nil, 0, err
		}
	}

	logs.Infof("simulating random trading, workers: %d, iterations: %d, instrument range: %d",
		loaded.Simulation.Workers, loaded.Simulation.Iterations, loaded.Simulation.Generator.InstrumentRange)
	printer.PrintTradingHeader()
	if err := eng.RunSimulation(ctx, loaded.Simulation); err != nil {
		return nil, 0, errors.Wrap(err, "run simulation")
	}
	logs.Info("all trading processing completed")
	printer.PrintBook("Final Order Book after Random Trading", orderBook.Snapshot())
	phases = append(phases, "simulation")
	workers += loaded.Simulation.Workers
	return phases, workers, nil
}

func flushReport(ctx context.Context, opt conn.Option, recorder *report.Recorder, summary report.RunSummary) error {
	client, err := conn.New(ctx, opt)
	if err != nil {
		return errors.Wrap(err, "connect report store")
	}
	defer client.Close()

	if err := recorder.Flush(ctx, report.NewGormStore(client.DB()), summary); err != nil {
		return errors.Wrap(err, "flush report")
	}
	logs.Infof("report stored, run: %s, trades: %d", summary.RunID, summary.Trades)
	return nil
}

func logMetrics(s obs.Snapshot) {
	logs.Infof("inserts: %d, cas retries: %d, trades: %d, volume: %d, unlinks: %d",
		s.Inserts, s.CASRetries, s.Trades, s.TradedVolume, s.Unlinks)
	logs.Infof("sweeps: %d, sweep latency min %s avg %s max %s",
		s.Sweeps, s.SweepLatency.Min, s.SweepLatency.Avg, s.SweepLatency.Max)
}

type profilerLogger struct{}

func (profilerLogger) Infof(format string, args ...interface{})  { logs.Infof(format, args...) }
func (profilerLogger) Debugf(_ string, _ ...interface{})         {}
func (profilerLogger) Errorf(format string, args ...interface{}) { logs.Errorf(format, args...) }
