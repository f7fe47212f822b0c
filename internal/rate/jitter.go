package rate

import "math/rand/v2"

// jitterSpread is the full width of the variation band: +-0.5% around the base rate.
const jitterSpread = 0.01

// RandomFunc returns a uniform value in [0, 1). It must be safe for concurrent use.
type RandomFunc func() float64

// Jitter perturbs offline rates to mimic market movement. Every call draws a new value.
type Jitter struct {
	random RandomFunc
}

func NewJitter(random RandomFunc) Jitter {
	if random == nil {
		random = rand.Float64
	}
	return Jitter{random: random}
}

func (j Jitter) Apply(baseRate float64) float64 {
	variation := (j.random() - 0.5) * jitterSpread
	return baseRate * (1 + variation)
}
