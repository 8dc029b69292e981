package stepper

import "github.com/san-kum/activeflow/internal/spectral"

// RK3 is the three-stage strong-stability-preserving Runge-Kutta scheme
// treating both the advection and the linear term explicitly as a combined
// right-hand side -C(w) - A(w). Third-order accurate; the step size is
// constrained by the advective CFL limit and, for strongly negative veff,
// by the linear term as well.
type RK3 struct {
	ops *spectral.Operators
}

func NewRK3(ops *spectral.Operators) *RK3 {
	return &RK3{ops: ops}
}

func (s *RK3) Name() string { return SchemeRK3 }

func (s *RK3) rhs(w spectral.Field) spectral.Field {
	n := s.ops.Grid.N
	c := s.ops.Advection(w)
	a := s.ops.Linear(w)
	out := spectral.NewField(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = -c[i][j] - a[i][j]
		}
	}
	return out
}

func (s *RK3) Step(w spectral.Field, tau float64) spectral.Field {
	n := s.ops.Grid.N
	ct := complex(tau, 0)

	r := s.rhs(w)
	w1 := spectral.NewField(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			w1[i][j] = w[i][j] + ct*r[i][j]
		}
	}

	r1 := s.rhs(w1)
	w2 := spectral.NewField(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			w2[i][j] = 0.75*w[i][j] + 0.25*w1[i][j] + 0.25*ct*r1[i][j]
		}
	}

	r2 := s.rhs(w2)
	out := spectral.NewField(n)
	third := complex(1.0/3.0, 0)
	twoThirds := complex(2.0/3.0, 0)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = third*w[i][j] + twoThirds*w2[i][j] + twoThirds*ct*r2[i][j]
		}
	}
	return out.Masked(s.ops.Dealias)
}
