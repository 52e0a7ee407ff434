package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"stockengine/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptSimulation(t *testing.T) {
	cfg := engine.SimulationConfig{Workers: 4, Iterations: 100}
	cfg.Generator.InstrumentRange = 10

	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader("8\n\n3\n"))
	require.NoError(t, promptSimulation(in, &out, &cfg))

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 100, cfg.Iterations)
	assert.EqualValues(t, 3, cfg.Generator.InstrumentRange)
	assert.Contains(t, out.String(), "Enter number of random trading threads [4]: ")
}

func TestPromptSimulationRejectsText(t *testing.T) {
	cfg := engine.SimulationConfig{Workers: 4}
	in := bufio.NewReader(strings.NewReader("lots\n"))
	require.Error(t, promptSimulation(in, &bytes.Buffer{}, &cfg))
	assert.Equal(t, 4, cfg.Workers)
}

func TestPromptIntEOFKeepsCurrent(t *testing.T) {
	v, err := promptInt(bufio.NewReader(strings.NewReader("")), &bytes.Buffer{}, "n", 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, v)
}

func TestPromptSimulationZeroRange(t *testing.T) {
	cfg := engine.SimulationConfig{Workers: 4, Iterations: 100}
	cfg.Generator.InstrumentRange = 10

	in := bufio.NewReader(strings.NewReader("\n\n0\n"))
	require.NoError(t, promptSimulation(in, &bytes.Buffer{}, &cfg))
	assert.Zero(t, cfg.Generator.InstrumentRange)
}
