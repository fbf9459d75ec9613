package fitness

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gaopt/internal/ga"
)

// ErrUnknownFunction is returned by Lookup for unregistered names
var ErrUnknownFunction = errors.New("fitness: unknown function")

var catalogue = map[string]ga.FitnessFunc{
	// global minimum 4 at x = 0
	"square_plus_four": func(x float64) float64 { return x*x + 4 },
	// global minimum 0 at x = 3
	"sphere_shift": func(x float64) float64 { return (x - 3) * (x - 3) },
	"abs":          math.Abs,
}

// Lookup returns the fitness function registered under name
func Lookup(name string) (ga.FitnessFunc, error) {
	fn, ok := catalogue[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownFunction, name, Names())
	}
	return fn, nil
}

// Names lists the registered functions in sorted order
func Names() []string {
	names := make([]string, 0, len(catalogue))
	for n := range catalogue {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
