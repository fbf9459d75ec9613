package ga

import (
	"cmp"
	"fmt"
	"slices"
)

// Generator produces one individual per call
type Generator[G Gene] func(rng Rand) Individual[G]

// Population is a fixed-size, ordered collection of individuals
type Population[G Gene] struct {
	individuals []Individual[G]
}

// NewPopulation creates a population of size zero-valued slots.
// The size must be positive and even so crossover can pair every slot.
func NewPopulation[G Gene](size int) (*Population[G], error) {
	if size <= 0 || size%2 != 0 {
		return nil, fmt.Errorf("%w: population size %d must be positive and even", ErrInvalidConfig, size)
	}
	return &Population[G]{individuals: make([]Individual[G], size)}, nil
}

// Init replaces every slot with a freshly generated individual
func (p *Population[G]) Init(generator Generator[G], rng Rand) {
	for i := range p.individuals {
		p.individuals[i] = generator(rng)
	}
}

// Size returns the population size
func (p *Population[G]) Size() int {
	return len(p.individuals)
}

// At returns a copy of the individual at index i
func (p *Population[G]) At(i int) Individual[G] {
	return p.individuals[i]
}

// Set replaces the individual at index i
func (p *Population[G]) Set(i int, ind Individual[G]) {
	p.individuals[i] = ind
}

// Individuals returns a copy of all individuals in index order
func (p *Population[G]) Individuals() []Individual[G] {
	return slices.Clone(p.individuals)
}

// Fitness returns the fitness of every individual in index order
func (p *Population[G]) Fitness() []float64 {
	out := make([]float64, len(p.individuals))
	for i := range p.individuals {
		out[i] = p.individuals[i].fitness
	}
	return out
}

// CalculateFitness evaluates every individual
func (p *Population[G]) CalculateFitness(fn FitnessFunc) {
	for i := range p.individuals {
		p.individuals[i].CalculateFitness(fn)
	}
}

// Mutate applies the mutator to every individual in index order
func (p *Population[G]) Mutate(m Mutator[G], rng Rand) {
	for i := range p.individuals {
		m.Mutate(&p.individuals[i], rng)
	}
}

// Best returns the individual with the lowest fitness.
// Ties go to the lowest index, matching a stable ascending sort.
func (p *Population[G]) Best() (Individual[G], error) {
	if len(p.individuals) == 0 {
		return Individual[G]{}, ErrEmptyPopulation
	}
	best := p.individuals[0]
	for _, ind := range p.individuals[1:] {
		if ind.fitness < best.fitness {
			best = ind
		}
	}
	return best, nil
}

// TopK returns copies of the k fittest individuals, best first.
// The population order is left untouched.
func (p *Population[G]) TopK(k int) []Individual[G] {
	sorted := slices.Clone(p.individuals)
	slices.SortStableFunc(sorted, func(a, b Individual[G]) int {
		return cmp.Compare(a.fitness, b.fitness)
	})
	if k > len(sorted) {
		k = len(sorted)
	}
	if k < 0 {
		k = 0
	}
	return sorted[:k]
}
