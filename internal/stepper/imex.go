package stepper

import "github.com/san-kum/activeflow/internal/spectral"

// IMEXRK3 is a four-substage implicit-explicit Runge-Kutta scheme: the
// advection term is accumulated explicitly with fixed combination
// coefficients while the linear term is absorbed implicitly at every
// substage through the factor 1/(1 + tau/2*veff*k^2). L-stability of the
// implicit part is what keeps the scheme usable with large negative veff at
// a reasonable step size.
type IMEXRK3 struct {
	ops *spectral.Operators
}

func NewIMEXRK3(ops *spectral.Operators) *IMEXRK3 {
	return &IMEXRK3{ops: ops}
}

func (s *IMEXRK3) Name() string { return SchemeIMEXRK3 }

func (s *IMEXRK3) Step(w spectral.Field, tau float64) spectral.Field {
	n := s.ops.Grid.N
	ct := complex(tau, 0)
	mu := implicitFactor(s.ops, tau, 0.5)

	// substage update: (w + tau*acc) * mu
	substage := func(acc spectral.Field) spectral.Field {
		out := spectral.NewField(n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				out[i][j] = (w[i][j] + ct*acc[i][j]) * complex(mu[i][j], 0)
			}
		}
		return out
	}

	c0 := s.ops.Advection(w)

	acc := spectral.NewField(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			acc[i][j] = complex(-1.0/2.0, 0) * c0[i][j]
		}
	}
	w1 := substage(acc)

	c1 := s.ops.Advection(w1)
	a1 := s.ops.Linear(w1)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			acc[i][j] = complex(-11.0/18.0, 0)*c0[i][j] +
				complex(-1.0/18.0, 0)*c1[i][j] +
				complex(-1.0/6.0, 0)*a1[i][j]
		}
	}
	w2 := substage(acc)

	c2 := s.ops.Advection(w2)
	a2 := s.ops.Linear(w2)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			acc[i][j] = complex(-5.0/6.0, 0)*c0[i][j] +
				complex(5.0/6.0, 0)*c1[i][j] +
				complex(-1.0/2.0, 0)*c2[i][j] +
				complex(1.0/2.0, 0)*a1[i][j] +
				complex(-1.0/2.0, 0)*a2[i][j]
		}
	}
	w3 := substage(acc)

	c3 := s.ops.Advection(w3)
	a3 := s.ops.Linear(w3)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			acc[i][j] = complex(-1.0/4.0, 0)*c0[i][j] +
				complex(-7.0/4.0, 0)*c1[i][j] +
				complex(-3.0/4.0, 0)*c2[i][j] +
				complex(7.0/4.0, 0)*c3[i][j] +
				complex(-3.0/2.0, 0)*a1[i][j] +
				complex(3.0/2.0, 0)*a2[i][j] +
				complex(-1.0/2.0, 0)*a3[i][j]
		}
	}
	return substage(acc).Masked(s.ops.Dealias)
}
