package ga

import "errors"

var (
	// ErrInvalidConfig is returned when an engine or strategy parameter is out of range
	ErrInvalidConfig = errors.New("ga: invalid configuration")
	// ErrInvalidDomain is returned for gene bounds that do not satisfy min < max
	ErrInvalidDomain = errors.New("ga: invalid gene domain")
	// ErrOutOfDomain is returned when a value to encode lies outside the gene domain
	ErrOutOfDomain = errors.New("ga: value outside gene domain")
	// ErrBitPosition is returned when a bit index is not inside the gene width
	ErrBitPosition = errors.New("ga: bit position out of range")
	// ErrDomainMismatch is returned when crossing genes with different domains
	ErrDomainMismatch = errors.New("ga: parents have different gene domains")
	// ErrEmptyPopulation is returned when selecting from an empty population
	ErrEmptyPopulation = errors.New("ga: empty population")
	// ErrNotInitialized is returned by Run before Init, or after a completed run
	ErrNotInitialized = errors.New("ga: engine not initialized")
)
