package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squarePlusFour(x float64) float64 { return x*x + 4 }

func realPopulation(t *testing.T, values ...float64) *Population[RealGene] {
	t.Helper()
	pop, err := NewPopulation[RealGene](len(values))
	require.NoError(t, err)
	for i, v := range values {
		pop.Set(i, NewIndividual(NewRealGene(v)))
	}
	return pop
}

func TestIndividualFitnessIsStaleUntilRecomputed(t *testing.T) {
	ind := NewIndividual(NewRealGene(3))
	assert.Equal(t, 0.0, ind.Fitness())

	ind.CalculateFitness(squarePlusFour)
	assert.Equal(t, 13.0, ind.Fitness())
	assert.Equal(t, 3.0, ind.Value())

	ind.GeneRef().SetValue(1)
	assert.Equal(t, 13.0, ind.Fitness())
	assert.Equal(t, 1.0, ind.Gene().Value())

	ind.CalculateFitness(squarePlusFour)
	assert.Equal(t, 5.0, ind.Fitness())
}

func TestIndividualCopiesGeneByValue(t *testing.T) {
	a := NewIndividual(NewRealGene(1))
	b := a
	b.GeneRef().SetValue(2)
	assert.Equal(t, 1.0, a.Value())
	assert.Equal(t, 2.0, b.Value())
}

func TestNewPopulationRejectsBadSizes(t *testing.T) {
	for _, n := range []int{0, -2, 3, 21} {
		_, err := NewPopulation[RealGene](n)
		assert.ErrorIs(t, err, ErrInvalidConfig, "size %d", n)
	}
	pop, err := NewPopulation[RealGene](4)
	require.NoError(t, err)
	assert.Equal(t, 4, pop.Size())
}

func TestPopulationInitCallsGeneratorPerSlot(t *testing.T) {
	pop, err := NewPopulation[RealGene](6)
	require.NoError(t, err)

	calls := 0
	pop.Init(func(rng Rand) Individual[RealGene] {
		calls++
		return NewIndividual(NewRealGene(float64(calls)))
	}, NewRand(1))

	assert.Equal(t, 6, calls)
	for i := 0; i < pop.Size(); i++ {
		assert.Equal(t, float64(i+1), pop.At(i).Value())
	}
}

func TestPopulationCalculateFitness(t *testing.T) {
	pop := realPopulation(t, -2, 0, 1, 5)
	pop.CalculateFitness(squarePlusFour)
	assert.Equal(t, []float64{8, 4, 5, 29}, pop.Fitness())
}

func TestPopulationBestBreaksTiesByIndex(t *testing.T) {
	pop := realPopulation(t, 3, -1, 1, -3)
	pop.CalculateFitness(squarePlusFour)

	best, err := pop.Best()
	require.NoError(t, err)
	assert.Equal(t, -1.0, best.Value())
	assert.Equal(t, 5.0, best.Fitness())

	// Best must not reorder the population
	assert.Equal(t, 3.0, pop.At(0).Value())
}

func TestPopulationTopK(t *testing.T) {
	pop := realPopulation(t, 4, 0, -2, 1)
	pop.CalculateFitness(squarePlusFour)

	top := pop.TopK(3)
	require.Len(t, top, 3)
	assert.Equal(t, []float64{0, 1, -2}, []float64{top[0].Value(), top[1].Value(), top[2].Value()})
	assert.Len(t, pop.TopK(10), 4)
	assert.Empty(t, pop.TopK(-1))
	assert.Equal(t, 4.0, pop.At(0).Value())
}

func TestPopulationMutateVisitsEveryIndividual(t *testing.T) {
	pop := realPopulation(t, 1, 2, 3, 4)
	m, err := NewGaussianMutator(0, 1)
	require.NoError(t, err)

	rng := &scriptedRand{
		floats: []float64{0.5, 0.5, 0.5, 0.5},
		norms:  []float64{1, -1, 2, 0},
	}
	pop.Mutate(m, rng)

	assert.Equal(t, []float64{2, 1, 5, 4}, []float64{pop.At(0).Value(), pop.At(1).Value(), pop.At(2).Value(), pop.At(3).Value()})
	assert.Equal(t, 4, pop.Size())
}

func TestIndividualsReturnsCopy(t *testing.T) {
	pop := realPopulation(t, 1, 2)
	inds := pop.Individuals()
	inds[0] = NewIndividual(NewRealGene(99))
	assert.Equal(t, 1.0, pop.At(0).Value())
}
