package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stockengine/internal/book"
	"stockengine/internal/display"
	"stockengine/internal/engine"
	"stockengine/internal/ops"
	"stockengine/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	datasetTitle = "Final Order Book after Dataset Orders"
	randomTitle  = "Final Order Book after Random Trading"
)

func newPhaseFixture(t *testing.T) (*ops.Loaded, *engine.Engine, *display.Printer, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orders.csv")
	csv := "order_type,ticker,quantity,price\nSELL,1,10,100\nBUY,2,5,50\nSELL,3,7,80\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o600))

	loaded := ops.Default()
	loaded.Dataset.Path = path
	loaded.Dataset.Workers = 2
	loaded.Simulation.Workers = 1
	loaded.Simulation.Iterations = 2
	loaded.Engine = engine.Config{}

	var out bytes.Buffer
	eng := engine.New(book.New(book.Config{}), loaded.Engine)
	return &loaded, eng, display.NewPrinter(&out), &out
}

func TestRunPhasesAsksAfterDatasetReset(t *testing.T) {
	loaded, eng, printer, out := newPhaseFixture(t)

	asked := 0
	ask := func(cfg *engine.SimulationConfig) error {
		asked++
		assert.Contains(t, out.String(), datasetTitle)
		assert.NotContains(t, out.String(), randomTitle)
		assert.Zero(t, eng.Book().Len())
		cfg.Workers = 3
		cfg.Iterations = 4
		cfg.Generator.InstrumentRange = 0
		return nil
	}

	phases, workers, err := runPhases(t.Context(), loaded, eng, printer, ask)
	require.NoError(t, err)
	assert.Equal(t, 1, asked)
	assert.Equal(t, []string{"dataset", "simulation"}, phases)
	assert.Equal(t, 2+3, workers)

	text := out.String()
	assert.Less(t, strings.Index(text, datasetTitle), strings.Index(text, randomTitle))
	for _, o := range eng.Book().Orders() {
		assert.Zero(t, o.InstrumentID())
	}
}

func TestRunPhasesValidatesAnswers(t *testing.T) {
	loaded, eng, printer, out := newPhaseFixture(t)

	ask := func(cfg *engine.SimulationConfig) error {
		cfg.Workers = 0
		return nil
	}
	_, _, err := runPhases(t.Context(), loaded, eng, printer, ask)
	require.ErrorIs(t, err, exception.ErrInvalidWorkers)
	assert.Contains(t, out.String(), datasetTitle)
	assert.NotContains(t, out.String(), randomTitle)
}

func TestRunPhasesWithoutDataset(t *testing.T) {
	loaded, eng, printer, out := newPhaseFixture(t)
	loaded.Dataset.Path = ""

	phases, workers, err := runPhases(t.Context(), loaded, eng, printer, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"simulation"}, phases)
	assert.Equal(t, 1, workers)
	assert.NotContains(t, out.String(), datasetTitle)
	assert.Contains(t, out.String(), randomTitle)
}
