package stepper

import "github.com/san-kum/activeflow/internal/spectral"

// SemiImplicitEuler treats the nonlinear advection term explicitly and the
// linear term implicitly:
//
//	w_{n+1} = (w_n - tau*C(w_n)) / (1 + tau*veff*k^2)
//
// First-order accurate and the cheapest of the three schemes, but the least
// stable when veff is strongly negative.
type SemiImplicitEuler struct {
	ops *spectral.Operators
}

func NewSemiImplicitEuler(ops *spectral.Operators) *SemiImplicitEuler {
	return &SemiImplicitEuler{ops: ops}
}

func (s *SemiImplicitEuler) Name() string { return SchemeSemiImplicitEuler }

func (s *SemiImplicitEuler) Step(w spectral.Field, tau float64) spectral.Field {
	n := s.ops.Grid.N
	c := s.ops.Advection(w)
	mu := implicitFactor(s.ops, tau, 1)

	out := spectral.NewField(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = (w[i][j] - complex(tau, 0)*c[i][j]) * complex(mu[i][j], 0)
		}
	}
	return out.Masked(s.ops.Dealias)
}
