package workload

import (
	"math/rand"
	"testing"
)

func TestNewDurationSampler_RespectsBounds(t *testing.T) {
	tests := []struct {
		name     string
		spec     DistSpec
		floor    int64
		min, max int64
	}{
		{"constant", DistSpec{Type: "constant", Params: map[string]float64{"value": 4}}, 1, 4, 4},
		{"uniform", DistSpec{Type: "uniform", Params: map[string]float64{"min": 2, "max": 6}}, 1, 2, 6},
		{"exponential", DistSpec{Type: "exponential", Params: map[string]float64{"mean": 5, "min": 0, "max": 9}}, 0, 0, 9},
		{"gaussian", DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 5, "std_dev": 4, "min": 1, "max": 8}}, 1, 1, 8},
		{"gaussian degenerate", DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 5, "std_dev": 4, "min": 3, "max": 3}}, 1, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewDurationSampler(tt.spec, tt.floor)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			rng := rand.New(rand.NewSource(42))
			for i := 0; i < 1000; i++ {
				if v := s.Sample(rng); v < tt.min || v > tt.max {
					t.Fatalf("sample %d = %d, want in [%d, %d]", i, v, tt.min, tt.max)
				}
			}
		})
	}
}

func TestNewDurationSampler_UniformCoversRange(t *testing.T) {
	s, err := NewDurationSampler(DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 3}}, 1)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	seen := map[int64]bool{}
	for i := 0; i < 200; i++ {
		seen[s.Sample(rng)] = true
	}
	if len(seen) != 3 {
		t.Errorf("uniform [1, 3] produced values %v, want all of 1, 2, 3", seen)
	}
}

func TestNewDurationSampler_Errors(t *testing.T) {
	tests := []struct {
		name  string
		spec  DistSpec
		floor int64
	}{
		{"unknown type", DistSpec{Type: "pareto"}, 0},
		{"constant below floor", DistSpec{Type: "constant", Params: map[string]float64{"value": 0}}, 1},
		{"uniform missing max", DistSpec{Type: "uniform", Params: map[string]float64{"min": 1}}, 1},
		{"uniform inverted", DistSpec{Type: "uniform", Params: map[string]float64{"min": 5, "max": 2}}, 1},
		{"exponential zero mean", DistSpec{Type: "exponential", Params: map[string]float64{"mean": 0, "min": 1, "max": 2}}, 1},
		{"gaussian negative stddev", DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 1, "std_dev": -1, "min": 1, "max": 2}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDurationSampler(tt.spec, tt.floor); err == nil {
				t.Error("expected error")
			}
		})
	}
}
