package sim

import (
	"context"

	"github.com/san-kum/activeflow/internal/cfl"
	"github.com/san-kum/activeflow/internal/config"
	"github.com/san-kum/activeflow/internal/forcing"
	"github.com/san-kum/activeflow/internal/metrics"
	"github.com/san-kum/activeflow/internal/spectral"
	"github.com/san-kum/activeflow/internal/stepper"
)

// Experiment bundles everything a configured run needs: the immutable
// operator set, the driver and the initial condition. It is the explicit
// run context handed between setup, execution and persistence.
type Experiment struct {
	Ops     *spectral.Operators
	Driver  *Driver
	Initial spectral.Field
	RunCfg  Config
}

// NewExperiment validates cfg, builds the per-run operators and wires the
// driver. All configuration errors surface here, before the loop starts.
func NewExperiment(cfg *config.Config) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, err := spectral.NewGrid(cfg.DomainLength, cfg.Points)
	if err != nil {
		return nil, err
	}

	veff := forcing.Viscosity(grid.KNorm, forcing.Params{
		KMin:   cfg.Physical.KMin,
		KMax:   cfg.Physical.KMax,
		V0:     cfg.Physical.V0,
		VRatio: cfg.Physical.VRatio,
	})
	ops := spectral.NewOperators(grid, veff)

	step, err := stepper.New(cfg.Scheme, ops)
	if err != nil {
		return nil, err
	}

	ctl, err := cfl.New(cfg.Courant, grid.Dx, cfg.TauMax, cfg.Warmup)
	if err != nil {
		return nil, err
	}

	energy := metrics.NewShellEnergy(grid.KNorm, grid.Dk, grid.N)

	return &Experiment{
		Ops:     ops,
		Driver:  NewDriver(ops, step, ctl, energy),
		Initial: InitialCondition(cfg.Points, cfg.Seed),
		RunCfg: Config{
			Tau:           cfg.Tau,
			Iterations:    cfg.Iterations,
			MonitorEvery:  cfg.MonitorEvery,
			SnapshotEvery: cfg.SnapshotEvery,
		},
	}, nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	return e.Driver.Run(ctx, e.Initial, e.RunCfg)
}
