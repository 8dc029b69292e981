package spectral

import "github.com/mjibson/go-dsp/fft"

// Forward transforms a spectral field's physical-space representation to
// Fourier coefficients.
func Forward(f Field) Field {
	return Field(fft.FFT2([][]complex128(f)))
}

// Inverse transforms Fourier coefficients back to physical space. The
// inverse carries the 1/N^2 normalization, so Inverse(Forward(f)) == f up
// to rounding.
func Inverse(f Field) Field {
	return Field(fft.IFFT2([][]complex128(f)))
}

// InverseReal inverse-transforms and keeps only the real part, discarding
// the rounding-level imaginary residue of a Hermitian-symmetric field.
func InverseReal(f Field) [][]float64 {
	c := fft.IFFT2([][]complex128(f))
	out := make([][]float64, len(c))
	for i := range c {
		out[i] = make([]float64, len(c[i]))
		for j := range c[i] {
			out[i][j] = real(c[i][j])
		}
	}
	return out
}

// ForwardReal transforms a real-valued physical field to Fourier
// coefficients.
func ForwardReal(r [][]float64) Field {
	c := make([][]complex128, len(r))
	for i := range r {
		c[i] = make([]complex128, len(r[i]))
		for j := range r[i] {
			c[i][j] = complex(r[i][j], 0)
		}
	}
	return Field(fft.FFT2(c))
}
