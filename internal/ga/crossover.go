package ga

import (
	"context"
	"fmt"
	"log/slog"
	"math"
)

// Crossover combines two parents into two children
type Crossover[G Gene] interface {
	Cross(p1, p2 Individual[G], rng Rand) (Individual[G], Individual[G], error)
}

// OnePointCrossover splices the codes of two integer genes at a random bit.
// It only accepts integer genes.
type OnePointCrossover[U Unsigned] struct {
	logger *slog.Logger
}

// NewOnePointCrossover creates a one-point crossover for U-coded genes
func NewOnePointCrossover[U Unsigned]() *OnePointCrossover[U] {
	return &OnePointCrossover[U]{logger: discardLogger}
}

// WithLogger sets the logger used for debug traces
func (c *OnePointCrossover[U]) WithLogger(l *slog.Logger) *OnePointCrossover[U] {
	if l != nil {
		c.logger = l
	}
	return c
}

// Cross draws a crossing point in [0, BitWidth] and splices the parents there
func (c *OnePointCrossover[U]) Cross(p1, p2 Individual[IntegerGene[U]], rng Rand) (Individual[IntegerGene[U]], Individual[IntegerGene[U]], error) {
	if p1.gene.domain != p2.gene.domain {
		return Individual[IntegerGene[U]]{}, Individual[IntegerGene[U]]{},
			fmt.Errorf("%w: %v vs %v", ErrDomainMismatch, p1.gene.domain, p2.gene.domain)
	}
	point := rng.IntN(BitWidth[U]() + 1)
	return c.CrossAt(p1, p2, point)
}

// CrossAt splices the parents at a fixed point. The high BitWidth-point bits
// of child 1 come from parent 1 and the low point bits from parent 2;
// child 2 is the complement.
func (c *OnePointCrossover[U]) CrossAt(p1, p2 Individual[IntegerGene[U]], point int) (Individual[IntegerGene[U]], Individual[IntegerGene[U]], error) {
	w := BitWidth[U]()
	if point < 0 || point > w {
		return Individual[IntegerGene[U]]{}, Individual[IntegerGene[U]]{},
			fmt.Errorf("%w: crossing point %d not in [0, %d]", ErrBitPosition, point, w)
	}
	if p1.gene.domain != p2.gene.domain {
		return Individual[IntegerGene[U]]{}, Individual[IntegerGene[U]]{},
			fmt.Errorf("%w: %v vs %v", ErrDomainMismatch, p1.gene.domain, p2.gene.domain)
	}

	all := MaxCode[U]()
	// shifting by the full width yields 0 in Go, covering both degenerate points
	maskHigh := all << point
	maskLow := all >> (w - point)

	c1 := (p1.gene.code & maskHigh) | (p2.gene.code & maskLow)
	c2 := (p2.gene.code & maskHigh) | (p1.gene.code & maskLow)

	d := p1.gene.domain
	child1 := NewIndividual(IntegerGene[U]{domain: d, code: c1})
	child2 := NewIndividual(IntegerGene[U]{domain: d, code: c2})

	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		c.logger.Debug("one point crossover",
			"point", point,
			"mask_high", fmt.Sprintf("%0*b", w, uint64(maskHigh)),
			"mask_low", fmt.Sprintf("%0*b", w, uint64(maskLow)),
			"parent1", p1.gene.String(), "parent2", p2.gene.String(),
			"child1", child1.gene.String(), "child2", child2.gene.String())
	}
	return child1, child2, nil
}

// BlendCrossover is BLX-alpha for real genes: children are pushed outward
// from the parents' interval by alpha times the gap. No clamping is applied.
type BlendCrossover struct {
	alpha  float64
	logger *slog.Logger
}

// NewBlendCrossover creates a blend crossover with coefficient alpha (>= 0)
func NewBlendCrossover(alpha float64) (*BlendCrossover, error) {
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha < 0 {
		return nil, fmt.Errorf("%w: blend alpha %g must be finite and non-negative", ErrInvalidConfig, alpha)
	}
	return &BlendCrossover{alpha: alpha, logger: discardLogger}, nil
}

// WithLogger sets the logger used for debug traces
func (c *BlendCrossover) WithLogger(l *slog.Logger) *BlendCrossover {
	if l != nil {
		c.logger = l
	}
	return c
}

// Alpha returns the blend coefficient
func (c *BlendCrossover) Alpha() float64 {
	return c.alpha
}

// Cross blends the parents. No randomness is consumed.
func (c *BlendCrossover) Cross(p1, p2 Individual[RealGene], _ Rand) (Individual[RealGene], Individual[RealGene], error) {
	v1, v2 := p1.gene.value, p2.gene.value
	gap := v2 - v1
	child1 := NewIndividual(NewRealGene(v1 - c.alpha*gap))
	child2 := NewIndividual(NewRealGene(v2 + c.alpha*gap))
	c.logger.Debug("blend crossover",
		"parent1", v1, "parent2", v2,
		"child1", child1.gene.value, "child2", child2.gene.value)
	return child1, child2, nil
}
