package spectral

// NewDealiasMask marks the wavenumbers resolved under the classical 2/3
// rule: true where |k| < (2/3)(N/2)Dk. Products of two masked fields cannot
// alias back into the resolved band, so every step re-applies this mask as
// its final operation.
func NewDealiasMask(kSquare [][]float64, n int, dk float64) [][]bool {
	cutoff := 2.0 / 3.0 * float64(n) / 2.0 * dk
	cutoff2 := cutoff * cutoff

	mask := make([][]bool, len(kSquare))
	for i := range kSquare {
		mask[i] = make([]bool, len(kSquare[i]))
		for j := range kSquare[i] {
			mask[i][j] = kSquare[i][j] < cutoff2
		}
	}
	return mask
}
