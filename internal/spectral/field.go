package spectral

import "math"

// Field is a square array of spectral coefficients. Fields have value
// semantics: operations allocate their result instead of writing through the
// receiver, so no state is shared between consecutive time steps.
type Field [][]complex128

func NewField(n int) Field {
	f := make(Field, n)
	for i := range f {
		f[i] = make([]complex128, n)
	}
	return f
}

func (f Field) N() int { return len(f) }

func (f Field) Clone() Field {
	c := make(Field, len(f))
	for i := range f {
		c[i] = make([]complex128, len(f[i]))
		copy(c[i], f[i])
	}
	return c
}

// Masked returns a copy with every coefficient outside the mask zeroed.
func (f Field) Masked(mask [][]bool) Field {
	out := make(Field, len(f))
	for i := range f {
		out[i] = make([]complex128, len(f[i]))
		for j := range f[i] {
			if mask[i][j] {
				out[i][j] = f[i][j]
			}
		}
	}
	return out
}

// IsFinite reports whether every coefficient is free of NaN and Inf.
func (f Field) IsFinite() bool {
	for i := range f {
		for j := range f[i] {
			re, im := real(f[i][j]), imag(f[i][j])
			if math.IsNaN(re) || math.IsInf(re, 0) || math.IsNaN(im) || math.IsInf(im, 0) {
				return false
			}
		}
	}
	return true
}
