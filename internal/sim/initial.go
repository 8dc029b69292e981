package sim

import (
	"math/rand"
	"time"

	"github.com/san-kum/activeflow/internal/spectral"
)

// InitialCondition builds the spectral image of a unit-variance Gaussian
// random vorticity field. A zero seed derives one from the wall clock, so
// repeated unseeded runs stay independent; tests pass a fixed seed for
// reproducibility.
func InitialCondition(n int, seed int64) spectral.Field {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
		for j := range w[i] {
			w[i][j] = rng.NormFloat64()
		}
	}
	return spectral.ForwardReal(w)
}
