package distribution

import (
	"math"
	"math/rand/v2"
)

// Constant always samples the same fixed value.
type Constant struct {
	Value float64
}

// Sample returns Value unchanged.
func (c *Constant) Sample() float64 { return c.Value }

// Uniform samples uniformly from [Min, Max).
type Uniform struct {
	Min, Max float64
	rng      *rand.Rand
}

func (u *Uniform) Sample() float64 {
	return u.Min + u.rng.Float64()*(u.Max-u.Min)
}

// Triangular samples from a triangular distribution with the given
// lower bound, upper bound, and mode, via inverse transform sampling.
type Triangular struct {
	Min, Max, Mode float64
	rng            *rand.Rand
}

func (t *Triangular) Sample() float64 {
	u := t.rng.Float64()
	width := t.Max - t.Min
	c := (t.Mode - t.Min) / width
	if u < c {
		return t.Min + math.Sqrt(u*width*(t.Mode-t.Min))
	}
	return t.Max - math.Sqrt((1-u)*width*(t.Max-t.Mode))
}

// Normal samples from a Gaussian distribution with the given mean and
// standard deviation.
type Normal struct {
	Mean, Std float64
	rng       *rand.Rand
}

func (n *Normal) Sample() float64 {
	return n.Mean + n.Std*n.rng.NormFloat64()
}

// TruncNormal samples from a Gaussian distribution with the given mean
// and standard deviation, rejecting draws outside [Min, Max] and
// resampling (ports the original's rejection loop in common.rs).
type TruncNormal struct {
	Mean, Std, Min, Max float64
	rng                 *rand.Rand
}

func (t *TruncNormal) Sample() float64 {
	for {
		x := t.Mean + t.Std*t.rng.NormFloat64()
		if x >= t.Min && x <= t.Max {
			return x
		}
	}
}

// Exponential samples from an exponential distribution with the given
// mean (i.e. rate 1/Mean).
type Exponential struct {
	Mean float64
	rng  *rand.Rand
}

func (e *Exponential) Sample() float64 {
	return e.Mean * e.rng.ExpFloat64()
}
