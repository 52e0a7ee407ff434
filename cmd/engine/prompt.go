package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"stockengine/internal/engine"

	"github.com/yanun0323/errors"
)

// promptSimulation asks for the random trading parameters. An empty
// answer keeps the current value.
func promptSimulation(r *bufio.Reader, w io.Writer, cfg *engine.SimulationConfig) error {
	workers, err := promptInt(r, w, "Enter number of random trading threads", int64(cfg.Workers))
	if err != nil {
		return err
	}
	iterations, err := promptInt(r, w, "Enter number of iterations per thread", int64(cfg.Iterations))
	if err != nil {
		return err
	}
	instrumentRange, err := promptInt(r, w, "Enter ticker range for random orders", cfg.Generator.InstrumentRange)
	if err != nil {
		return err
	}
	cfg.Workers = int(workers)
	cfg.Iterations = int(iterations)
	cfg.Generator.InstrumentRange = instrumentRange
	return nil
}

func promptInt(r *bufio.Reader, w io.Writer, label string, current int64) (int64, error) {
	fmt.Fprintf(w, "%s [%d]: ", label, current)
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return current, nil
	}
	v, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%s: %q is not an integer", label, line)
	}
	return v, nil
}
