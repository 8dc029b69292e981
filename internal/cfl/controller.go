// Package cfl implements the stability-driven adaptive time step.
package cfl

import "fmt"

// Controller recomputes the advective time step tau = C*dx/max|u| once the
// warm-up transient from the random initial condition has passed. Before
// the warm-up count, tau is held at its current value.
type Controller struct {
	Courant float64
	Dx      float64

	// TauMax bounds tau when the velocity field is (near) quiescent,
	// where the CFL formula would otherwise diverge.
	TauMax float64

	// Warmup is the iteration count below which tau stays fixed.
	Warmup int
}

func New(courant, dx, tauMax float64, warmup int) (*Controller, error) {
	if courant <= 0 || courant > 1 {
		return nil, fmt.Errorf("cfl: courant number must be in (0, 1], got %g", courant)
	}
	if dx <= 0 {
		return nil, fmt.Errorf("cfl: grid spacing must be positive, got %g", dx)
	}
	if tauMax <= 0 {
		return nil, fmt.Errorf("cfl: tau_max must be positive, got %g", tauMax)
	}
	if warmup < 0 {
		return nil, fmt.Errorf("cfl: warm-up count must be non-negative, got %d", warmup)
	}
	return &Controller{Courant: courant, Dx: dx, TauMax: tauMax, Warmup: warmup}, nil
}

// Next returns the step size for the coming iteration.
func (c *Controller) Next(iteration int, tau, maxSpeed float64) float64 {
	if iteration <= c.Warmup {
		return tau
	}
	return c.Tau(maxSpeed)
}

// Tau evaluates the CFL formula, clamped to TauMax for degenerate
// velocities.
func (c *Controller) Tau(maxSpeed float64) float64 {
	if maxSpeed <= 0 {
		return c.TauMax
	}
	tau := c.Courant * c.Dx / maxSpeed
	if tau > c.TauMax {
		return c.TauMax
	}
	return tau
}
