// Package forcing implements the piecewise effective-viscosity (PVC) model
// that sustains active turbulence: ordinary diffusion at large scales, a
// negative-viscosity injection band at intermediate scales and strong
// damping above the band.
package forcing

import "fmt"

// Params configure the PVC operator. KMin and KMax bound the injection
// band, V0 is the base viscosity and VRatio scales the negative branch.
type Params struct {
	KMin   float64
	KMax   float64
	V0     float64
	VRatio float64
}

func (p Params) Validate() error {
	if p.V0 <= 0 {
		return fmt.Errorf("forcing: base viscosity must be positive, got %g", p.V0)
	}
	if p.VRatio <= 0 {
		return fmt.Errorf("forcing: viscosity ratio must be positive, got %g", p.VRatio)
	}
	if p.KMin <= 0 || p.KMax <= p.KMin {
		return fmt.Errorf("forcing: band edges must satisfy 0 < k_min < k_max, got [%g, %g]", p.KMin, p.KMax)
	}
	return nil
}

// Viscosity maps wavenumber magnitude to the three-branch effective
// viscosity:
//
//	V0           for |k| <  KMin
//	-VRatio*V0   for KMin <= |k| <= KMax
//	10*V0        for |k| >  KMax
//
// Both band edges are inclusive, matching the reference convention: a mode
// at exactly |k| = KMax still sits in the injection band.
func Viscosity(kNorm [][]float64, p Params) [][]float64 {
	veff := make([][]float64, len(kNorm))
	for i := range kNorm {
		veff[i] = make([]float64, len(kNorm[i]))
		for j, k := range kNorm[i] {
			switch {
			case k < p.KMin:
				veff[i][j] = p.V0
			case k <= p.KMax:
				veff[i][j] = -p.VRatio * p.V0
			default:
				veff[i][j] = 10 * p.V0
			}
		}
	}
	return veff
}
