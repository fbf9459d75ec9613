package ga

import (
	"fmt"
	"log/slog"
	"math"
)

// Mutator perturbs one individual in place. Fitness is not recomputed.
type Mutator[G Gene] interface {
	Mutate(ind *Individual[G], rng Rand)
}

func validateRate(rate float64) error {
	if math.IsNaN(rate) || rate < 0 || rate > 1 {
		return fmt.Errorf("%w: mutation rate %g must be in [0, 1]", ErrInvalidConfig, rate)
	}
	return nil
}

// gateOpen draws r in [0, 1) and opens when r > rate, so a higher rate
// means fewer mutations.
func gateOpen(rate float64, rng Rand) bool {
	return rng.Float64() > rate
}

// BitInvertMutator flips one random bit of an integer gene
type BitInvertMutator[U Unsigned] struct {
	rate   float64
	logger *slog.Logger
}

// NewBitInvertMutator creates a bit-invert mutator with the given rate
func NewBitInvertMutator[U Unsigned](rate float64) (*BitInvertMutator[U], error) {
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	return &BitInvertMutator[U]{rate: rate, logger: discardLogger}, nil
}

// WithLogger sets the logger used for debug traces
func (m *BitInvertMutator[U]) WithLogger(l *slog.Logger) *BitInvertMutator[U] {
	if l != nil {
		m.logger = l
	}
	return m
}

// Mutate flips at most one bit
func (m *BitInvertMutator[U]) Mutate(ind *Individual[IntegerGene[U]], rng Rand) {
	if !gateOpen(m.rate, rng) {
		return
	}
	bit := rng.IntN(BitWidth[U]())
	before := ind.gene.String()
	// bit is always inside the gene width
	_ = ind.gene.InvertBit(bit)
	m.logger.Debug("bit invert mutation", "bit", bit, "before", before, "after", ind.gene.String())
}

// GaussianMutator resamples a real gene from N(value, stddev)
type GaussianMutator struct {
	rate   float64
	stddev float64
	logger *slog.Logger
}

// NewGaussianMutator creates a Gaussian mutator
func NewGaussianMutator(rate, stddev float64) (*GaussianMutator, error) {
	if err := validateRate(rate); err != nil {
		return nil, err
	}
	if math.IsNaN(stddev) || math.IsInf(stddev, 0) || stddev < 0 {
		return nil, fmt.Errorf("%w: stddev %g must be finite and non-negative", ErrInvalidConfig, stddev)
	}
	return &GaussianMutator{rate: rate, stddev: stddev, logger: discardLogger}, nil
}

// WithLogger sets the logger used for debug traces
func (m *GaussianMutator) WithLogger(l *slog.Logger) *GaussianMutator {
	if l != nil {
		m.logger = l
	}
	return m
}

// Mutate replaces the value with a normal sample centred on it. No clamping.
func (m *GaussianMutator) Mutate(ind *Individual[RealGene], rng Rand) {
	if !gateOpen(m.rate, rng) {
		return
	}
	before := ind.gene.value
	ind.gene.SetValue(before + m.stddev*rng.NormFloat64())
	m.logger.Debug("gaussian mutation", "before", before, "after", ind.gene.value)
}
