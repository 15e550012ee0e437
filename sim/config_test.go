package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	got := NewConfig(8, 6, 2)
	want := Config{
		Quantum:         DefaultQuantum,
		Level1Allotment: 8,
		Level2Allotment: 6,
		ContextSwitch:   2,
		Readmit:         ReadmitSameLevel,
		WaitingTime:     WaitCPUOnly,
	}
	assert.Equal(t, want, got)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"allotment equals quantum", func(c *Config) { c.Level1Allotment = 4 }, false},
		{"allotment below quantum", func(c *Config) { c.Level1Allotment = 3 }, true},
		{"zero quantum", func(c *Config) { c.Quantum = 0 }, true},
		{"zero level-2 allotment", func(c *Config) { c.Level2Allotment = 0 }, true},
		{"negative context switch", func(c *Config) { c.ContextSwitch = -1 }, true},
		{"context switch at max", func(c *Config) { c.ContextSwitch = MaxContextSwitch }, false},
		{"context switch above max", func(c *Config) { c.ContextSwitch = MaxContextSwitch + 1 }, true},
		{"negative round cap", func(c *Config) { c.Level1RoundCap = intPtr(-1) }, true},
		{"zero round cap", func(c *Config) { c.Level1RoundCap = intPtr(0) }, false},
		{"unknown readmit", func(c *Config) { c.Readmit = "bottom-level" }, true},
		{"empty readmit", func(c *Config) { c.Readmit = "" }, false},
		{"unknown waiting time", func(c *Config) { c.WaitingTime = "io-only" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig(8, 6, 2)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_RoundCap_DerivedFromAllotment(t *testing.T) {
	tests := []struct {
		allotment int64
		want      int
	}{
		{4, 1},
		{7, 1},
		{8, 2},
		{12, 3},
		{13, 3},
	}
	for _, tt := range tests {
		cfg := NewConfig(tt.allotment, 5, 0)
		assert.Equal(t, tt.want, cfg.RoundCap(), "allotment %d", tt.allotment)
	}
}

func TestConfig_RoundCap_ExplicitOverride(t *testing.T) {
	cfg := NewConfig(12, 5, 0)
	cfg.Level1RoundCap = intPtr(0)
	assert.Equal(t, 0, cfg.RoundCap())
	cfg.Level1RoundCap = intPtr(5)
	assert.Equal(t, 5, cfg.RoundCap())
}

func TestConfig_Allotment(t *testing.T) {
	cfg := NewConfig(8, 6, 0)
	assert.Equal(t, int64(8), cfg.Allotment(1))
	assert.Equal(t, int64(6), cfg.Allotment(2))
	assert.Equal(t, int64(0), cfg.Allotment(3), "lowest level has no allotment")
	assert.Panics(t, func() { cfg.Allotment(4) })
}
