package ga

import (
	"fmt"
	"log/slog"
)

// Selector picks one individual from a population
type Selector[G Gene] interface {
	Select(pop *Population[G], rng Rand) (Individual[G], error)
}

// TournamentSelection draws k individuals with replacement and keeps the fittest
type TournamentSelection[G Gene] struct {
	k      int
	logger *slog.Logger
}

// NewTournamentSelection creates a tournament selector of size k (k >= 1).
// k may exceed the population size; draws are with replacement.
func NewTournamentSelection[G Gene](k int) (*TournamentSelection[G], error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: tournament size %d must be at least 1", ErrInvalidConfig, k)
	}
	return &TournamentSelection[G]{k: k, logger: discardLogger}, nil
}

// WithLogger sets the logger used for debug traces
func (s *TournamentSelection[G]) WithLogger(l *slog.Logger) *TournamentSelection[G] {
	if l != nil {
		s.logger = l
	}
	return s
}

// Size returns the tournament size
func (s *TournamentSelection[G]) Size() int {
	return s.k
}

// Select runs one tournament. The population is not modified.
func (s *TournamentSelection[G]) Select(pop *Population[G], rng Rand) (Individual[G], error) {
	n := pop.Size()
	if n == 0 {
		return Individual[G]{}, ErrEmptyPopulation
	}

	best := pop.individuals[rng.IntN(n)]
	s.logger.Debug("tournament draw", "value", best.Value(), "fitness", best.fitness)
	for i := 1; i < s.k; i++ {
		candidate := pop.individuals[rng.IntN(n)]
		s.logger.Debug("tournament draw", "value", candidate.Value(), "fitness", candidate.fitness)
		if candidate.fitness < best.fitness {
			best = candidate
		}
	}
	return best, nil
}
