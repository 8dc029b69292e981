package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/activeflow/internal/cfl"
	"github.com/san-kum/activeflow/internal/config"
	"github.com/san-kum/activeflow/internal/forcing"
	"github.com/san-kum/activeflow/internal/metrics"
	"github.com/san-kum/activeflow/internal/spectral"
	"github.com/san-kum/activeflow/internal/stepper"
)

// identityStepper leaves the field untouched; it isolates the driver's
// bookkeeping from the numerics.
type identityStepper struct{}

func (identityStepper) Name() string { return "identity" }
func (identityStepper) Step(w spectral.Field, tau float64) spectral.Field {
	return w.Clone()
}

// nanStepper poisons the field on its first call.
type nanStepper struct{}

func (nanStepper) Name() string { return "nan" }
func (nanStepper) Step(w spectral.Field, tau float64) spectral.Field {
	out := w.Clone()
	out[0][0] = complex(math.NaN(), 0)
	return out
}

func testDriver(t *testing.T, step stepper.Stepper) (*Driver, *spectral.Grid) {
	t.Helper()
	grid, err := spectral.NewGrid(math.Pi, 8)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	veff := forcing.Viscosity(grid.KNorm, forcing.Params{KMin: 5, KMax: 10, V0: 1, VRatio: 2})
	ops := spectral.NewOperators(grid, veff)
	ctl, err := cfl.New(0.4, grid.Dx, 1.0, 1<<30)
	if err != nil {
		t.Fatalf("cfl.New failed: %v", err)
	}
	energy := metrics.NewShellEnergy(grid.KNorm, grid.Dk, grid.N)
	return NewDriver(ops, step, ctl, energy), grid
}

func TestRunValidation(t *testing.T) {
	d, g := testDriver(t, identityStepper{})
	base := Config{Tau: 1e-4, Iterations: 10, MonitorEvery: 5, SnapshotEvery: 5}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero tau", func(c *Config) { c.Tau = 0 }},
		{"negative iterations", func(c *Config) { c.Iterations = -1 }},
		{"zero monitor interval", func(c *Config) { c.MonitorEvery = 0 }},
		{"zero snapshot interval", func(c *Config) { c.SnapshotEvery = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			if _, err := d.Run(context.Background(), spectral.NewField(g.N), cfg); err == nil {
				t.Error("expected a validation error, got nil")
			}
		})
	}
}

func TestRunBookkeeping(t *testing.T) {
	d, g := testDriver(t, identityStepper{})
	cfg := Config{Tau: 1e-4, Iterations: 250, MonitorEvery: 100, SnapshotEvery: 200}

	res, err := d.Run(context.Background(), spectral.NewField(g.N), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// iterations 0..250 inclusive
	if res.Steps != 251 {
		t.Errorf("Steps = %d, want 251", res.Steps)
	}
	if len(res.Monitor) != 3 {
		t.Fatalf("monitor rows = %d, want 3 (iterations 0, 100, 200)", len(res.Monitor))
	}
	for i, want := range []int{0, 100, 200} {
		if res.Monitor[i].Iteration != want {
			t.Errorf("monitor[%d].Iteration = %d, want %d", i, res.Monitor[i].Iteration, want)
		}
	}
	if len(res.Snapshots) != 2 {
		t.Fatalf("snapshots = %d, want 2 (iterations 0, 200)", len(res.Snapshots))
	}
	if res.Snapshots[0].Iteration != 0 || res.Snapshots[1].Iteration != 200 {
		t.Errorf("snapshot iterations = %d, %d, want 0, 200",
			res.Snapshots[0].Iteration, res.Snapshots[1].Iteration)
	}
}

func TestRunZeroFieldStaysQuiet(t *testing.T) {
	d, g := testDriver(t, identityStepper{})
	cfg := Config{Tau: 1e-4, Iterations: 20, MonitorEvery: 10, SnapshotEvery: 10}

	res, err := d.Run(context.Background(), spectral.NewField(g.N), cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, rec := range res.Monitor {
		if rec.MaxSpeed != 0 || rec.EnergyK1 != 0 {
			t.Errorf("iteration %d: MaxSpeed = %g, EnergyK1 = %g, want both zero",
				rec.Iteration, rec.MaxSpeed, rec.EnergyK1)
		}
		// warmup holds tau fixed, and a quiet field never triggers a shrink
		if rec.Tau != cfg.Tau {
			t.Errorf("iteration %d: Tau = %g, want %g", rec.Iteration, rec.Tau, cfg.Tau)
		}
	}
	if want := cfg.Tau * 21; math.Abs(res.FinalTime-want) > 1e-15 {
		t.Errorf("FinalTime = %g, want %g", res.FinalTime, want)
	}
}

func TestRunBlowup(t *testing.T) {
	d, g := testDriver(t, nanStepper{})
	cfg := Config{Tau: 1e-4, Iterations: 100, MonitorEvery: 10, SnapshotEvery: 10}

	_, err := d.Run(context.Background(), spectral.NewField(g.N), cfg)
	if err == nil {
		t.Fatal("expected a blow-up error, got nil")
	}
	if !errors.Is(err, ErrNonFinite) {
		t.Errorf("expected the error to wrap ErrNonFinite, got %v", err)
	}
	var blowup *BlowupError
	if !errors.As(err, &blowup) {
		t.Fatalf("expected a *BlowupError, got %T", err)
	}
	if blowup.Scheme != "nan" || blowup.Iteration != 0 {
		t.Errorf("BlowupError = {Scheme: %q, Iteration: %d}, want {nan, 0}", blowup.Scheme, blowup.Iteration)
	}
}

func TestRunCanceledContext(t *testing.T) {
	d, g := testDriver(t, identityStepper{})
	cfg := Config{Tau: 1e-4, Iterations: 100, MonitorEvery: 10, SnapshotEvery: 10}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := d.Run(ctx, spectral.NewField(g.N), cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res == nil {
		t.Fatal("expected a partial result on cancellation")
	}
	if res.Steps != 0 {
		t.Errorf("Steps = %d, want 0 after immediate cancellation", res.Steps)
	}
}

type countingObserver struct{ calls int }

func (o *countingObserver) OnMonitor(rec MonitorRecord, vorticity [][]float64) { o.calls++ }

func TestObserverCadence(t *testing.T) {
	d, g := testDriver(t, identityStepper{})
	obs := &countingObserver{}
	d.AddObserver(obs)

	cfg := Config{Tau: 1e-4, Iterations: 99, MonitorEvery: 25, SnapshotEvery: 1000}
	if _, err := d.Run(context.Background(), spectral.NewField(g.N), cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if obs.calls != 4 {
		t.Errorf("observer calls = %d, want 4 (iterations 0, 25, 50, 75)", obs.calls)
	}
}

func TestInitialCondition(t *testing.T) {
	w1 := InitialCondition(8, 42)
	w2 := InitialCondition(8, 42)
	w3 := InitialCondition(8, 7)

	if !w1.IsFinite() {
		t.Fatal("initial condition should be finite")
	}
	same, differ := true, false
	for i := range w1 {
		for j := range w1[i] {
			if w1[i][j] != w2[i][j] {
				same = false
			}
			if w1[i][j] != w3[i][j] {
				differ = true
			}
		}
	}
	if !same {
		t.Error("equal seeds must reproduce the same field")
	}
	if !differ {
		t.Error("different seeds should give different fields")
	}
}

func TestNewExperiment(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Points = 8
	cfg.Iterations = 10

	exp, err := NewExperiment(cfg)
	if err != nil {
		t.Fatalf("NewExperiment failed: %v", err)
	}
	if exp.Ops == nil || exp.Driver == nil || exp.Initial == nil {
		t.Fatal("experiment not fully wired")
	}
	if exp.RunCfg.Iterations != 10 {
		t.Errorf("RunCfg.Iterations = %d, want 10", exp.RunCfg.Iterations)
	}

	cfg.Scheme = "leapfrog"
	if _, err := NewExperiment(cfg); err == nil {
		t.Error("expected an error for an unknown scheme")
	}
}
