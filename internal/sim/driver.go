// Package sim owns the time-marching loop: it advances the spectral
// vorticity with the selected scheme, adapts the time step, accumulates
// monitoring records and periodic snapshots, and guards against numerical
// blow-up.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/activeflow/internal/cfl"
	"github.com/san-kum/activeflow/internal/metrics"
	"github.com/san-kum/activeflow/internal/spectral"
	"github.com/san-kum/activeflow/internal/stepper"
)

type Driver struct {
	ops       *spectral.Operators
	step      stepper.Stepper
	ctl       *cfl.Controller
	energy    *metrics.ShellEnergy
	observers []Observer
}

func NewDriver(ops *spectral.Operators, step stepper.Stepper, ctl *cfl.Controller, energy *metrics.ShellEnergy) *Driver {
	return &Driver{ops: ops, step: step, ctl: ctl, energy: energy}
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// Run marches the field from w0 for cfg.Iterations steps. The loop is
// strictly sequential: each iteration's field depends on the previous one.
// The returned Result holds the full monitoring table and snapshot list
// even when the run ends early with an error.
func (d *Driver) Run(ctx context.Context, w0 spectral.Field, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	w := w0.Clone()
	tau := cfg.Tau
	simTime := 0.0
	result := &Result{}

	for iteration := 0; iteration <= cfg.Iterations; iteration++ {
		select {
		case <-ctx.Done():
			result.FinalTime = simTime
			return result, ctx.Err()
		default:
		}

		w = d.step.Step(w, tau)
		if !w.IsFinite() {
			result.FinalTime = simTime
			return result, &BlowupError{Scheme: d.step.Name(), Iteration: iteration, Time: simTime}
		}

		u, v, uk, vk := d.ops.Velocity(w)
		maxSpeed := spectral.MaxSpeed(u, v)
		tau = d.ctl.Next(iteration, tau, maxSpeed)

		if iteration%cfg.MonitorEvery == 0 {
			rec := MonitorRecord{
				Iteration: iteration,
				Time:      simTime,
				Tau:       tau,
				MaxSpeed:  maxSpeed,
				EnergyK1:  d.energy.Compute(uk, vk),
			}
			result.Monitor = append(result.Monitor, rec)
			if len(d.observers) > 0 {
				omega := spectral.InverseReal(w)
				for _, o := range d.observers {
					o.OnMonitor(rec, omega)
				}
			}
		}

		if iteration%cfg.SnapshotEvery == 0 {
			result.Snapshots = append(result.Snapshots, Snapshot{Iteration: iteration, Vorticity: w.Clone()})
		}

		simTime += tau
		result.Steps++
	}

	result.FinalTime = simTime
	return result, nil
}

func validate(cfg Config) error {
	if cfg.Tau <= 0 {
		return fmt.Errorf("sim: initial tau must be positive, got %g", cfg.Tau)
	}
	if cfg.Iterations <= 0 {
		return fmt.Errorf("sim: iteration count must be positive, got %d", cfg.Iterations)
	}
	if cfg.MonitorEvery <= 0 {
		return fmt.Errorf("sim: monitor interval must be positive, got %d", cfg.MonitorEvery)
	}
	if cfg.SnapshotEvery <= 0 {
		return fmt.Errorf("sim: snapshot interval must be positive, got %d", cfg.SnapshotEvery)
	}
	return nil
}
