package spectral

import (
	"math"
	"sync"
)

// Operators bundles the immutable per-run spectral machinery: the grid, the
// dealiasing mask, the Poisson inverse 1/k^2 and the effective viscosity
// from the forcing model. The bundle is built once before the loop starts;
// steppers only ever read from it.
type Operators struct {
	Grid    *Grid
	Dealias [][]bool

	// KInverse is 1/|k|^2 with the zero mode set to 0: the mean stream
	// function is undetermined under periodic boundaries and pinned to zero.
	KInverse [][]float64

	// Veff is the scale-dependent effective viscosity, negative inside the
	// injection band.
	Veff [][]float64
}

func NewOperators(g *Grid, veff [][]float64) *Operators {
	n := g.N
	kinv := make([][]float64, n)
	for i := 0; i < n; i++ {
		kinv[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			if g.KSquare[i][j] != 0 {
				kinv[i][j] = 1 / g.KSquare[i][j]
			}
		}
	}

	return &Operators{
		Grid:     g,
		Dealias:  NewDealiasMask(g.KSquare, n, g.Dk),
		KInverse: kinv,
		Veff:     veff,
	}
}

// StreamFunction inverts the Poisson relation psi_k = w_k / k^2.
func (op *Operators) StreamFunction(w Field) Field {
	n := op.Grid.N
	psi := NewField(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			psi[i][j] = w[i][j] * complex(op.KInverse[i][j], 0)
		}
	}
	return psi
}

// Velocity reconstructs the physical-space velocity components together
// with their spectral images: u_k = i*ky*psi_k, v_k = -i*kx*psi_k.
func (op *Operators) Velocity(w Field) (u, v [][]float64, uk, vk Field) {
	n := op.Grid.N
	uk = NewField(n)
	vk = NewField(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			psi := w[i][j] * complex(op.KInverse[i][j], 0)
			uk[i][j] = complex(0, op.Grid.Ky[i][j]) * psi
			vk[i][j] = complex(0, -op.Grid.Kx[i][j]) * psi
		}
	}
	u = InverseReal(uk)
	v = InverseReal(vk)
	return u, v, uk, vk
}

// Advection evaluates the quadratic nonlinearity u*dw/dx + v*dw/dy
// pseudo-spectrally: the velocity and vorticity gradients are brought to
// physical space, multiplied pointwise, transformed back and re-masked.
// The four inverse transforms are independent and run concurrently; the
// step-to-step dependency is untouched since all of them read the same
// input field.
func (op *Operators) Advection(w Field) Field {
	n := op.Grid.N

	ukHat := NewField(n)
	vkHat := NewField(n)
	wxHat := NewField(n)
	wyHat := NewField(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			psi := w[i][j] * complex(op.KInverse[i][j], 0)
			ukHat[i][j] = complex(0, op.Grid.Ky[i][j]) * psi
			vkHat[i][j] = complex(0, -op.Grid.Kx[i][j]) * psi
			wxHat[i][j] = complex(0, op.Grid.Kx[i][j]) * w[i][j]
			wyHat[i][j] = complex(0, op.Grid.Ky[i][j]) * w[i][j]
		}
	}

	var u, v, wx, wy [][]float64
	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); u = InverseReal(ukHat) }()
	go func() { defer wg.Done(); v = InverseReal(vkHat) }()
	go func() { defer wg.Done(); wx = InverseReal(wxHat) }()
	go func() { defer wg.Done(); wy = InverseReal(wyHat) }()
	wg.Wait()

	prod := make([][]float64, n)
	for i := 0; i < n; i++ {
		prod[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			prod[i][j] = u[i][j]*wx[i][j] + v[i][j]*wy[i][j]
		}
	}

	return ForwardReal(prod).Masked(op.Dealias)
}

// Linear evaluates the (possibly negative) diffusion/injection term
// veff * k^2 * w, masked.
func (op *Operators) Linear(w Field) Field {
	n := op.Grid.N
	out := NewField(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if op.Dealias[i][j] {
				out[i][j] = w[i][j] * complex(op.Veff[i][j]*op.Grid.KSquare[i][j], 0)
			}
		}
	}
	return out
}

// MaxSpeed returns the maximum pointwise velocity magnitude.
func MaxSpeed(u, v [][]float64) float64 {
	maxSq := 0.0
	for i := range u {
		for j := range u[i] {
			s := u[i][j]*u[i][j] + v[i][j]*v[i][j]
			if s > maxSq {
				maxSq = s
			}
		}
	}
	return math.Sqrt(maxSq)
}
