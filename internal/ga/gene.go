package ga

import (
	"fmt"
	"math"
	"math/bits"
)

// Gene is implemented by every gene encoding. Value returns the decoded scalar.
type Gene interface {
	Value() float64
}

// Unsigned lists the integer representations an IntegerGene can use
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Domain holds the real-valued bounds a gene encodes
type Domain struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Validate checks that the bounds are finite and Min < Max
func (d Domain) Validate() error {
	if math.IsNaN(d.Min) || math.IsNaN(d.Max) || math.IsInf(d.Min, 0) || math.IsInf(d.Max, 0) {
		return fmt.Errorf("%w: bounds must be finite, got [%g, %g]", ErrInvalidDomain, d.Min, d.Max)
	}
	if d.Min >= d.Max {
		return fmt.Errorf("%w: min %g must be less than max %g", ErrInvalidDomain, d.Min, d.Max)
	}
	return nil
}

// Contains reports whether v lies in [Min, Max]
func (d Domain) Contains(v float64) bool {
	return v >= d.Min && v <= d.Max
}

// Width returns Max - Min
func (d Domain) Width() float64 {
	return d.Max - d.Min
}

// BitWidth returns the number of bits in U
func BitWidth[U Unsigned]() int {
	return bits.OnesCount64(uint64(MaxCode[U]()))
}

// MaxCode returns the largest value representable by U
func MaxCode[U Unsigned]() U {
	return ^U(0)
}

// Encode maps value linearly from the domain onto [0, MaxCode-1].
// The divisor is MaxCode-1 so decode rounding never overflows.
func Encode[U Unsigned](value float64, d Domain) U {
	scale := float64(MaxCode[U]()) - 1
	c := math.Floor((value - d.Min) * scale / d.Width())
	switch {
	case c <= 0:
		return 0
	case c >= scale:
		// float64 cannot represent MaxCode-1 exactly for 64-bit codes
		return MaxCode[U]() - 1
	}
	return U(c)
}

// Decode is the inverse affine map of Encode
func Decode[U Unsigned](code U, d Domain) float64 {
	scale := float64(MaxCode[U]()) - 1
	return float64(code)*d.Width()/scale + d.Min
}

// IntegerGene stores its value as a fixed-width unsigned code
type IntegerGene[U Unsigned] struct {
	domain Domain
	code   U
}

// NewIntegerGene encodes value into a new gene
func NewIntegerGene[U Unsigned](value float64, d Domain) (IntegerGene[U], error) {
	if err := d.Validate(); err != nil {
		return IntegerGene[U]{}, err
	}
	if !d.Contains(value) {
		return IntegerGene[U]{}, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfDomain, value, d.Min, d.Max)
	}
	return IntegerGene[U]{domain: d, code: Encode[U](value, d)}, nil
}

// IntegerGeneFromCode wraps an already encoded code
func IntegerGeneFromCode[U Unsigned](code U, d Domain) (IntegerGene[U], error) {
	if err := d.Validate(); err != nil {
		return IntegerGene[U]{}, err
	}
	return IntegerGene[U]{domain: d, code: code}, nil
}

// Value decodes the gene
func (g IntegerGene[U]) Value() float64 {
	return Decode(g.code, g.domain)
}

// Code returns the raw encoded representation
func (g IntegerGene[U]) Code() U {
	return g.code
}

// Domain returns the bounds fixed at construction
func (g IntegerGene[U]) Domain() Domain {
	return g.domain
}

// InvertBit flips the bit at position in place
func (g *IntegerGene[U]) InvertBit(position int) error {
	if position < 0 || position >= BitWidth[U]() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrBitPosition, position, BitWidth[U]())
	}
	g.code ^= U(1) << position
	return nil
}

// String renders the code as a zero-padded bit pattern
func (g IntegerGene[U]) String() string {
	return fmt.Sprintf("%0*b", BitWidth[U](), uint64(g.code))
}

// RealGene stores its value directly; encoding is the identity
type RealGene struct {
	value float64
}

// NewRealGene returns a gene holding value
func NewRealGene(value float64) RealGene {
	return RealGene{value: value}
}

// Value returns the stored value
func (g RealGene) Value() float64 {
	return g.value
}

// SetValue replaces the stored value
func (g *RealGene) SetValue(v float64) {
	g.value = v
}
