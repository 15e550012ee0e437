package workload

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// DistSpec parameterizes a duration distribution in ticks.
type DistSpec struct {
	Type   string             `yaml:"type"` // constant, uniform, exponential, gaussian
	Params map[string]float64 `yaml:"params,omitempty"`
}

// DurationSampler draws durations in ticks.
type DurationSampler interface {
	Sample(rng *rand.Rand) int64
}

// ConstantSampler always returns the same value.
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int64 {
	return s.value
}

// UniformSampler draws uniformly from [min, max].
type UniformSampler struct {
	min, max int64
}

func (s *UniformSampler) Sample(rng *rand.Rand) int64 {
	return s.min + rng.Int63n(s.max-s.min+1)
}

// ExponentialSampler draws exponentially distributed durations clamped to [min, max].
type ExponentialSampler struct {
	mean     float64
	min, max int64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int64 {
	return clamp(int64(math.Round(rng.ExpFloat64()*s.mean)), s.min, s.max)
}

// GaussianSampler draws normally distributed durations clamped to [min, max].
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return s.min
	}
	return clamp(int64(math.Round(rng.NormFloat64()*s.stdDev+s.mean)), s.min, s.max)
}

func clamp(v, lo, hi int64) int64 {
	return min(max(v, lo), hi)
}

func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("missing required parameter %q", k)
		}
	}
	return nil
}

// NewDurationSampler creates a sampler from a spec. floor is the smallest
// duration the caller accepts (1 for CPU bursts, 0 for I/O); min and max
// parameters below it are rejected.
func NewDurationSampler(spec DistSpec, floor int64) (DurationSampler, error) {
	for name, val := range spec.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil, fmt.Errorf("params.%s must be a finite number, got %f", name, val)
		}
	}
	bounds := func() (int64, int64, error) {
		lo, hi := int64(spec.Params["min"]), int64(spec.Params["max"])
		if lo < floor {
			return 0, 0, fmt.Errorf("params.min must be at least %d, got %d", floor, lo)
		}
		if hi < lo {
			return 0, 0, fmt.Errorf("params.max (%d) must not be below params.min (%d)", hi, lo)
		}
		return lo, hi, nil
	}

	switch spec.Type {
	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		v := int64(spec.Params["value"])
		if v < floor {
			return nil, fmt.Errorf("params.value must be at least %d, got %d", floor, v)
		}
		return &ConstantSampler{value: v}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		lo, hi, err := bounds()
		if err != nil {
			return nil, err
		}
		return &UniformSampler{min: lo, max: hi}, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean", "min", "max"); err != nil {
			return nil, err
		}
		lo, hi, err := bounds()
		if err != nil {
			return nil, err
		}
		if spec.Params["mean"] <= 0 {
			return nil, fmt.Errorf("params.mean must be positive, got %f", spec.Params["mean"])
		}
		return &ExponentialSampler{mean: spec.Params["mean"], min: lo, max: hi}, nil

	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		lo, hi, err := bounds()
		if err != nil {
			return nil, err
		}
		if spec.Params["std_dev"] < 0 {
			return nil, fmt.Errorf("params.std_dev must be non-negative, got %f", spec.Params["std_dev"])
		}
		return &GaussianSampler{mean: spec.Params["mean"], stdDev: spec.Params["std_dev"], min: lo, max: hi}, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q; valid: %v", spec.Type, validDistTypeNames())
	}
}

var validDistTypes = map[string]bool{"constant": true, "uniform": true, "exponential": true, "gaussian": true}

func validDistTypeNames() []string {
	names := make([]string, 0, len(validDistTypes))
	for name := range validDistTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
