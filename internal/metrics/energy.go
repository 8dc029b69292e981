// Package metrics holds the running diagnostics of a simulation.
package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/activeflow/internal/spectral"
)

// ShellEnergy integrates the velocity power spectrum |u_k|^2 + |v_k|^2 over
// the lowest non-trivial wavenumber shell, the Dk-wide annulus around
// |k| = Dk. The result is a scalar convergence monitor, not part of the
// dynamics.
type ShellEnergy struct {
	shell [][]bool
	norm  float64
}

func NewShellEnergy(kNorm [][]float64, dk float64, n int) *ShellEnergy {
	shell := make([][]bool, len(kNorm))
	kMax := 0.0
	for i := range kNorm {
		shell[i] = make([]bool, len(kNorm[i]))
		for j, k := range kNorm[i] {
			shell[i][j] = k >= dk/2 && k < dk*3/2
		}
		kMax = max(kMax, floats.Max(kNorm[i]))
	}

	// shell-spacing factor: the bin width of N equidistant scale bounds
	// spanning [0, max|k|]
	factor := kMax / float64(n-1)
	n4 := float64(n) * float64(n) * float64(n) * float64(n)

	return &ShellEnergy{shell: shell, norm: factor * n4}
}

// Compute returns the shell-averaged kinetic energy at the lowest shell.
func (e *ShellEnergy) Compute(uk, vk spectral.Field) float64 {
	sum := 0.0
	for i := range e.shell {
		for j := range e.shell[i] {
			if !e.shell[i][j] {
				continue
			}
			ur, ui := real(uk[i][j]), imag(uk[i][j])
			vr, vi := real(vk[i][j]), imag(vk[i][j])
			sum += ur*ur + ui*ui + vr*vr + vi*vi
		}
	}
	return 0.5 * sum / e.norm
}
