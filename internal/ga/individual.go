package ga

// FitnessFunc maps a decoded gene value to a fitness score. Lower is better.
type FitnessFunc func(float64) float64

// Individual is one candidate solution: a gene held by value plus its fitness
type Individual[G Gene] struct {
	gene    G
	fitness float64
}

// NewIndividual wraps gene in an individual with zero fitness
func NewIndividual[G Gene](gene G) Individual[G] {
	return Individual[G]{gene: gene}
}

// CalculateFitness stores fn applied to the decoded gene value
func (ind *Individual[G]) CalculateFitness(fn FitnessFunc) {
	ind.fitness = fn(ind.gene.Value())
}

// Fitness returns the last computed fitness
func (ind Individual[G]) Fitness() float64 {
	return ind.fitness
}

// Gene returns a copy of the gene
func (ind Individual[G]) Gene() G {
	return ind.gene
}

// GeneRef returns the gene for in-place modification
func (ind *Individual[G]) GeneRef() *G {
	return &ind.gene
}

// Value returns the decoded gene value
func (ind Individual[G]) Value() float64 {
	return ind.gene.Value()
}
