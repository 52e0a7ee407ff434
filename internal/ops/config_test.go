package ops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"stockengine/internal/engine"
	"stockengine/internal/sim"
	"stockengine/pkg/exception"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
	assert.Equal(t, engine.DefaultPause, loaded.Engine.Pause)
	assert.EqualValues(t, sim.DefaultInstrumentRange, loaded.Simulation.Generator.InstrumentRange)
	assert.False(t, loaded.Postgres.Enabled())
	assert.NoError(t, loaded.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	doc := `{
  "dataset": {"path": "orders.csv", "workers": 2, "strict": true},
  "simulation": {"workers": 3, "iterations": 25, "instrumentRange": 4, "seed": 11},
  "pauseMillis": 0,
  "postgres": {"host": "db", "database": "trades"},
  "profiling": {"enabled": true}
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DatasetConfig{Path: "orders.csv", Workers: 2, Strict: true}, loaded.Dataset)
	assert.Equal(t, 3, loaded.Simulation.Workers)
	assert.Equal(t, 25, loaded.Simulation.Iterations)
	assert.EqualValues(t, 4, loaded.Simulation.Generator.InstrumentRange)
	assert.EqualValues(t, 11, loaded.Simulation.Generator.Seed)
	assert.EqualValues(t, sim.DefaultMaxPrice, loaded.Simulation.Generator.MaxPrice)
	assert.Equal(t, time.Duration(0), loaded.Engine.Pause)
	assert.True(t, loaded.Postgres.Enabled())
	assert.True(t, loaded.Profiling.Enabled)
	assert.Equal(t, defaultProfilingAddress, loaded.Profiling.ServerAddress)
}

func TestParseInstrumentRangeZero(t *testing.T) {
	loaded, err := Parse([]byte(`{"simulation": {"instrumentRange": 0}}`))
	require.NoError(t, err)
	assert.Zero(t, loaded.Simulation.Generator.InstrumentRange)

	loaded, err = Parse([]byte(`{"simulation": {"workers": 2}}`))
	require.NoError(t, err)
	assert.EqualValues(t, sim.DefaultInstrumentRange, loaded.Simulation.Generator.InstrumentRange)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"dataset": {"workers": -1}}`))
	require.ErrorIs(t, err, exception.ErrInvalidWorkers)

	_, err = Parse([]byte(`{"simulation": {"iterations": -5}}`))
	require.ErrorIs(t, err, exception.ErrInvalidArgument)

	_, err = Parse([]byte(`{"pauseMillis": -1}`))
	require.ErrorIs(t, err, exception.ErrInvalidArgument)

	_, err = Parse([]byte(`{"simulation": {"maxPrice": -1}}`))
	require.ErrorIs(t, err, exception.ErrInvalidArgument)

	_, err = Parse([]byte(`{not json`))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
