package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// ArrivalSpec configures the gaps between consecutive process arrivals.
type ArrivalSpec struct {
	Process string   `yaml:"process"`      // poisson, gamma or constant
	MeanGap float64  `yaml:"mean_gap"`     // mean ticks between arrivals
	CV      *float64 `yaml:"cv,omitempty"` // gamma only; nil = 1
}

var validArrivalProcesses = map[string]bool{"poisson": true, "gamma": true, "constant": true}

// ArrivalSampler generates inter-arrival gaps in ticks.
type ArrivalSampler interface {
	// SampleGap returns the ticks until the next arrival. Zero means a
	// simultaneous arrival.
	SampleGap(rng *rand.Rand) int64
}

// PoissonSampler draws exponentially distributed gaps (CV=1).
type PoissonSampler struct {
	mean float64
}

func (s *PoissonSampler) SampleGap(rng *rand.Rand) int64 {
	return int64(math.Round(rng.ExpFloat64() * s.mean))
}

// GammaSampler draws Gamma distributed gaps. CV > 1 produces bursts of
// near-simultaneous arrivals separated by long idle stretches.
type GammaSampler struct {
	shape float64 // 1/CV²
	scale float64 // mean * CV²
}

func (s *GammaSampler) SampleGap(rng *rand.Rand) int64 {
	return int64(math.Round(gammaRand(rng, s.shape, s.scale)))
}

// ConstantGapSampler spaces arrivals evenly.
type ConstantGapSampler struct {
	gap int64
}

func (s *ConstantGapSampler) SampleGap(_ *rand.Rand) int64 {
	return s.gap
}

// gammaRand samples Gamma(shape, scale) with Marsaglia-Tsang for shape >= 1
// and the boost Gamma(a) = Gamma(a+1) * U^(1/a) below that.
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// Validate checks the arrival process name and parameters.
func (a ArrivalSpec) Validate() error {
	if !validArrivalProcesses[a.Process] {
		return fmt.Errorf("unknown arrival process %q; valid: poisson, gamma, constant", a.Process)
	}
	if math.IsNaN(a.MeanGap) || math.IsInf(a.MeanGap, 0) || a.MeanGap < 0 {
		return fmt.Errorf("arrival mean_gap must be a finite non-negative number, got %f", a.MeanGap)
	}
	if a.CV != nil && (math.IsNaN(*a.CV) || math.IsInf(*a.CV, 0) || *a.CV <= 0) {
		return fmt.Errorf("arrival cv must be a finite positive number, got %f", *a.CV)
	}
	return nil
}

// NewArrivalSampler creates the sampler for a validated spec.
func NewArrivalSampler(spec ArrivalSpec) ArrivalSampler {
	switch spec.Process {
	case "gamma":
		cv := 1.0
		if spec.CV != nil {
			cv = *spec.CV
		}
		shape := 1.0 / (cv * cv)
		if shape < 0.01 {
			logrus.Warnf("Gamma shape %.4f (CV=%.1f) is very small; falling back to Poisson", shape, cv)
			return &PoissonSampler{mean: spec.MeanGap}
		}
		return &GammaSampler{shape: shape, scale: spec.MeanGap * cv * cv}
	case "constant":
		return &ConstantGapSampler{gap: int64(math.Round(spec.MeanGap))}
	default:
		return &PoissonSampler{mean: spec.MeanGap}
	}
}
