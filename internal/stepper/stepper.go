// Package stepper provides the interchangeable time-integration schemes
// advancing the spectral vorticity field: a semi-implicit Euler step, an
// explicit strong-stability-preserving RK3 and an L-stable IMEX-RK3 that
// treats the stiff linear term implicitly.
package stepper

import (
	"fmt"
	"strings"

	"github.com/san-kum/activeflow/internal/spectral"
)

// Stepper advances the spectral vorticity by one step of size tau.
// Implementations never mutate the input field and always return the result
// re-masked by the dealiasing filter, so no state carries energy above the
// resolved band.
type Stepper interface {
	Name() string
	Step(w spectral.Field, tau float64) spectral.Field
}

// Canonical scheme names accepted by New.
const (
	SchemeSemiImplicitEuler = "semi-implicit-euler"
	SchemeRK3               = "rk3"
	SchemeIMEXRK3           = "imex-rk3"
)

func Names() []string {
	return []string{SchemeSemiImplicitEuler, SchemeRK3, SchemeIMEXRK3}
}

// New constructs the named scheme over the given operator bundle. The
// dispatch is closed: any other name is a configuration error.
func New(name string, ops *spectral.Operators) (Stepper, error) {
	switch name {
	case SchemeSemiImplicitEuler:
		return NewSemiImplicitEuler(ops), nil
	case SchemeRK3:
		return NewRK3(ops), nil
	case SchemeIMEXRK3:
		return NewIMEXRK3(ops), nil
	default:
		return nil, fmt.Errorf("stepper: unknown scheme %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
}

// implicitFactor builds the pointwise factor 1/(1 + tau*a*veff*k^2) used by
// the implicit treatment of the linear term.
func implicitFactor(ops *spectral.Operators, tau, a float64) [][]float64 {
	n := ops.Grid.N
	mu := make([][]float64, n)
	for i := 0; i < n; i++ {
		mu[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			mu[i][j] = 1 / (1 + tau*a*ops.Veff[i][j]*ops.Grid.KSquare[i][j])
		}
	}
	return mu
}
