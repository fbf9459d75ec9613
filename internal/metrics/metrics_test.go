package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gaopt/internal/ga"
)

func TestCollectorTracksRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	obs := c.For("integer")
	obs.ObserveGeneration(ga.GenerationReport{Generation: 0, Fitness: []float64{8, 12}, BestFitness: 8, BestValue: 2})
	obs.ObserveGeneration(ga.GenerationReport{Generation: 1, Fitness: []float64{5, 7}, BestFitness: 5, BestValue: 1, Final: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.generations.WithLabelValues("integer")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.evaluations.WithLabelValues("integer")))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.bestFitness.WithLabelValues("integer")))
	assert.Equal(t, 6.0, testutil.ToFloat64(c.meanFitness.WithLabelValues("integer")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.bestValue.WithLabelValues("integer")))
}

func TestEngineDrivesCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	sel, err := ga.NewTournamentSelection[ga.RealGene](2)
	require.NoError(t, err)
	cx, err := ga.NewBlendCrossover(0.5)
	require.NoError(t, err)
	mut, err := ga.NewGaussianMutator(0.65, 0.1)
	require.NoError(t, err)
	e, err := ga.NewEngine[ga.RealGene](6, sel, cx, mut, ga.WithObserver(c.For("real")))
	require.NoError(t, err)

	gen, err := ga.NewRealGenerator(ga.Domain{Min: -1, Max: 1})
	require.NoError(t, err)
	rng := ga.NewRand(1)
	require.NoError(t, e.Init(gen, rng))
	_, err = e.Run(4, func(x float64) float64 { return x * x }, rng)
	require.NoError(t, err)

	assert.Equal(t, 4.0, testutil.ToFloat64(c.generations.WithLabelValues("real")))
	assert.Equal(t, 30.0, testutil.ToFloat64(c.evaluations.WithLabelValues("real")))
}

func TestDuplicateRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)
	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)
	c.For("real").ObserveGeneration(ga.GenerationReport{Fitness: []float64{1}, BestFitness: 1})

	path := filepath.Join(t.TempDir(), "gaopt.prom")
	require.NoError(t, WriteTextfile(path, reg))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `gaopt_best_fitness{run="real"} 1`)
}
