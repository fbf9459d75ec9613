package ga

// scriptedRand replays fixed draws so operator tests are deterministic.
// It panics when a queue runs dry, which fails the test loudly.
type scriptedRand struct {
	ints   []int
	floats []float64
	norms  []float64

	intCalls   int
	floatCalls int
	normCalls  int
	intBounds  []int
}

func (r *scriptedRand) IntN(n int) int {
	r.intBounds = append(r.intBounds, n)
	v := r.ints[r.intCalls]
	r.intCalls++
	return v
}

func (r *scriptedRand) Float64() float64 {
	v := r.floats[r.floatCalls]
	r.floatCalls++
	return v
}

func (r *scriptedRand) NormFloat64() float64 {
	v := r.norms[r.normCalls]
	r.normCalls++
	return v
}

// recordingRand wraps a real source and logs every draw
type recordingRand struct {
	inner Rand
	trace []float64
}

func (r *recordingRand) IntN(n int) int {
	v := r.inner.IntN(n)
	r.trace = append(r.trace, float64(v))
	return v
}

func (r *recordingRand) Float64() float64 {
	v := r.inner.Float64()
	r.trace = append(r.trace, v)
	return v
}

func (r *recordingRand) NormFloat64() float64 {
	v := r.inner.NormFloat64()
	r.trace = append(r.trace, v)
	return v
}
