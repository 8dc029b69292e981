package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid holds the collocation grid and the matching wavenumber grid for an
// NxN doubly-periodic square of side L. A Grid is built once per run and
// never mutated afterwards.
type Grid struct {
	N  int
	L  float64
	Dx float64
	Dk float64

	// Physical-space coordinates spanning [0, L).
	X, Y [][]float64

	// Wavenumbers in standard DFT frequency ordering, scaled by 2*pi/L.
	Kx, Ky  [][]float64
	KSquare [][]float64
	KNorm   [][]float64
}

// NewGrid discretizes the domain. The spatial axis excludes the right
// endpoint (periodic identification), so Dx = L/N exactly.
func NewGrid(length float64, n int) (*Grid, error) {
	if length <= 0 {
		return nil, fmt.Errorf("spectral: domain length must be positive, got %g", length)
	}
	if n < 4 || n%2 != 0 {
		return nil, fmt.Errorf("spectral: collocation count must be even and >= 4, got %d", n)
	}

	axis := make([]float64, n)
	floats.Span(axis, 0, length-length/float64(n))

	kAxis := fftFreq(n, length/float64(n))
	for i := range kAxis {
		kAxis[i] *= 2 * math.Pi
	}

	g := &Grid{
		N:  n,
		L:  length,
		Dx: length / float64(n),
		Dk: 2 * math.Pi / length,
	}

	g.X = make([][]float64, n)
	g.Y = make([][]float64, n)
	g.Kx = make([][]float64, n)
	g.Ky = make([][]float64, n)
	g.KSquare = make([][]float64, n)
	g.KNorm = make([][]float64, n)

	for i := 0; i < n; i++ {
		g.X[i] = make([]float64, n)
		g.Y[i] = make([]float64, n)
		g.Kx[i] = make([]float64, n)
		g.Ky[i] = make([]float64, n)
		g.KSquare[i] = make([]float64, n)
		g.KNorm[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			g.X[i][j] = axis[j]
			g.Y[i][j] = axis[i]
			g.Kx[i][j] = kAxis[j]
			g.Ky[i][j] = kAxis[i]
			k2 := kAxis[j]*kAxis[j] + kAxis[i]*kAxis[i]
			g.KSquare[i][j] = k2
			g.KNorm[i][j] = math.Sqrt(k2)
		}
	}

	return g, nil
}

// fftFreq returns sample frequencies in the standard DFT ordering
// [0, 1, ..., n/2-1, -n/2, ..., -1] / (n*d).
func fftFreq(n int, d float64) []float64 {
	f := make([]float64, n)
	for i := 0; i < n/2; i++ {
		f[i] = float64(i) / (float64(n) * d)
	}
	for i := n / 2; i < n; i++ {
		f[i] = float64(i-n) / (float64(n) * d)
	}
	return f
}
