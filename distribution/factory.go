package distribution

import (
	"math"
	"math/rand/v2"
)

// Factory builds Samplers from Configs, seeding each random family's
// generator off an auto-incrementing seed so a whole model's
// distributions are reproducible from one base seed (ports
// DistributionFactory in common.rs).
type Factory struct {
	nextSeed uint64
}

// NewFactory builds a Factory whose first generated Sampler is seeded
// from baseSeed, and every subsequent one from baseSeed+1, +2, ...
func NewFactory(baseSeed uint64) *Factory {
	return &Factory{nextSeed: baseSeed}
}

// Create builds the Sampler described by cfg. Constant never consumes
// a seed. Create returns a *ParametersError if cfg describes an
// invalid distribution (e.g. TruncNormal with Min >= Max).
func (f *Factory) Create(cfg Config) (Sampler, error) {
	switch cfg.Kind {
	case KindConstant:
		return &Constant{Value: cfg.Value}, nil

	case KindUniform:
		s := &Uniform{Min: cfg.Min, Max: cfg.Max, rng: f.newRNG()}
		return s, nil

	case KindTriangular:
		if cfg.Mode < cfg.Min || cfg.Mode > cfg.Max {
			return nil, paramError("triangular mode %v must lie within [%v, %v]", cfg.Mode, cfg.Min, cfg.Max)
		}
		s := &Triangular{Min: cfg.Min, Max: cfg.Max, Mode: cfg.Mode, rng: f.newRNG()}
		return s, nil

	case KindNormal:
		s := &Normal{Mean: cfg.Mean, Std: cfg.Std, rng: f.newRNG()}
		return s, nil

	case KindTruncNormal:
		min, max := cfg.Min, cfg.Max
		if !cfg.HasMin {
			min = -math.MaxFloat64
		}
		if !cfg.HasMax {
			max = math.MaxFloat64
		}
		if min >= max {
			return nil, paramError("trunc_normal minimum value cannot be greater than or equal to maximum value")
		}
		s := &TruncNormal{Mean: cfg.Mean, Std: cfg.Std, Min: min, Max: max, rng: f.newRNG()}
		return s, nil

	case KindExponential:
		if cfg.Mean <= 0 {
			return nil, paramError("exponential mean must be positive, got %v", cfg.Mean)
		}
		s := &Exponential{Mean: cfg.Mean, rng: f.newRNG()}
		return s, nil

	default:
		return nil, paramError("unknown distribution kind %q", cfg.Kind)
	}
}

// newRNG allocates a generator seeded from the factory's
// auto-incrementing seed and advances it, so every call to Create that
// needs randomness gets its own independently seeded stream.
func (f *Factory) newRNG() *rand.Rand {
	rng := rand.New(rand.NewPCG(f.nextSeed, f.nextSeed))
	f.nextSeed++
	return rng
}
