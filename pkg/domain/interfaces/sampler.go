package interfaces

// Sampler is the random source of Monte Carlo simulation. Injecting a seeded
// implementation makes a run reproducible.
type Sampler interface {
	// Uniform returns a draw from the uniform distribution over [lo, hi)
	Uniform(lo, hi float64) float64
}
