package ga

// NewIntegerGenerator returns a generator whose genes decode to a value
// drawn uniformly from the domain
func NewIntegerGenerator[U Unsigned](d Domain) (Generator[IntegerGene[U]], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return func(rng Rand) Individual[IntegerGene[U]] {
		v := d.Min + rng.Float64()*d.Width()
		return NewIndividual(IntegerGene[U]{domain: d, code: Encode[U](v, d)})
	}, nil
}

// NewRealGenerator returns a generator of real genes uniform over the domain
func NewRealGenerator(d Domain) (Generator[RealGene], error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return func(rng Rand) Individual[RealGene] {
		return NewIndividual(NewRealGene(d.Min + rng.Float64()*d.Width()))
	}, nil
}
