package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/activeflow/internal/forcing"
	"github.com/san-kum/activeflow/internal/stepper"
)

const (
	DefaultPoints        = 128
	DefaultCourant       = 0.4
	DefaultTau           = 1e-4
	DefaultIterations    = 100000
	DefaultWarmup        = 2500
	DefaultTauMax        = 1.0
	DefaultMonitorEvery  = 100
	DefaultSnapshotEvery = 1000
)

type Config struct {
	Scheme        string  `yaml:"time_stepping_scheme"`
	DomainLength  float64 `yaml:"domain_length"`
	Points        int     `yaml:"collocation_points_per_axis"`
	Courant       float64 `yaml:"courant"`
	Tau           float64 `yaml:"tau"`
	Iterations    int     `yaml:"iterations"`
	Warmup        int     `yaml:"warmup_iterations"`
	TauMax        float64 `yaml:"tau_max"`
	MonitorEvery  int     `yaml:"monitor_interval"`
	SnapshotEvery int     `yaml:"snapshot_interval"`
	Seed          int64   `yaml:"seed"`

	Physical PhysicalConfig `yaml:"physical"`
}

// PhysicalConfig holds the PVC forcing parameters.
type PhysicalConfig struct {
	KMin   float64 `yaml:"k_min"`
	KMax   float64 `yaml:"k_max"`
	V0     float64 `yaml:"v_0"`
	VRatio float64 `yaml:"v_ratio"`
}

func DefaultConfig() *Config {
	return &Config{
		Scheme:        stepper.SchemeIMEXRK3,
		DomainLength:  math.Pi,
		Points:        DefaultPoints,
		Courant:       DefaultCourant,
		Tau:           DefaultTau,
		Iterations:    DefaultIterations,
		Warmup:        DefaultWarmup,
		TauMax:        DefaultTauMax,
		MonitorEvery:  DefaultMonitorEvery,
		SnapshotEvery: DefaultSnapshotEvery,
		Physical: PhysicalConfig{
			KMin:   5,
			KMax:   10,
			V0:     1,
			VRatio: 2,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects any configuration the driver could not run. Scheme names
// are checked against the closed set the stepper package accepts.
func (c *Config) Validate() error {
	known := false
	for _, name := range stepper.Names() {
		if c.Scheme == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("config: unknown time stepping scheme %q", c.Scheme)
	}
	if c.DomainLength <= 0 {
		return fmt.Errorf("config: domain length must be positive, got %g", c.DomainLength)
	}
	if c.Points < 4 || c.Points%2 != 0 {
		return fmt.Errorf("config: collocation count must be even and >= 4, got %d", c.Points)
	}
	if c.Courant <= 0 || c.Courant > 1 {
		return fmt.Errorf("config: courant number must be in (0, 1], got %g", c.Courant)
	}
	if c.Tau <= 0 {
		return fmt.Errorf("config: tau must be positive, got %g", c.Tau)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("config: iterations must be positive, got %d", c.Iterations)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("config: warmup_iterations must be non-negative, got %d", c.Warmup)
	}
	if c.TauMax <= 0 {
		return fmt.Errorf("config: tau_max must be positive, got %g", c.TauMax)
	}
	if c.MonitorEvery <= 0 || c.SnapshotEvery <= 0 {
		return fmt.Errorf("config: monitor and snapshot intervals must be positive")
	}
	return forcing.Params{
		KMin:   c.Physical.KMin,
		KMax:   c.Physical.KMax,
		V0:     c.Physical.V0,
		VRatio: c.Physical.VRatio,
	}.Validate()
}
