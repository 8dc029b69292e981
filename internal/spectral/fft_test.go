package spectral

import (
	"math"
	"math/rand"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	n := 16
	f := NewField(n)
	for i := range f {
		for j := range f[i] {
			f[i][j] = complex(rng.NormFloat64(), rng.NormFloat64())
		}
	}

	back := Forward(Inverse(f))
	for i := range f {
		for j := range f[i] {
			if d := back[i][j] - f[i][j]; math.Hypot(real(d), imag(d)) > 1e-10 {
				t.Fatalf("round trip diverged at [%d][%d]: %v vs %v", i, j, back[i][j], f[i][j])
			}
		}
	}
}

func TestRealRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	n := 8
	r := make([][]float64, n)
	for i := range r {
		r[i] = make([]float64, n)
		for j := range r[i] {
			r[i][j] = rng.NormFloat64()
		}
	}

	back := InverseReal(ForwardReal(r))
	for i := range r {
		for j := range r[i] {
			if math.Abs(back[i][j]-r[i][j]) > 1e-10 {
				t.Fatalf("real round trip diverged at [%d][%d]: %g vs %g", i, j, back[i][j], r[i][j])
			}
		}
	}
}

func TestIsFinite(t *testing.T) {
	f := NewField(4)
	if !f.IsFinite() {
		t.Error("zero field should be finite")
	}
	f[2][3] = complex(math.NaN(), 0)
	if f.IsFinite() {
		t.Error("NaN coefficient not detected")
	}
	f[2][3] = complex(0, math.Inf(1))
	if f.IsFinite() {
		t.Error("Inf coefficient not detected")
	}
}
