package smooth

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// SavGol applies the Savitzky-Golay filter to the evenly spaced series.
// Every point is replaced with the value of the least squares polynomial of degree `order`
// fitted to the `window` points around it. Near the edges, the polynomial fitted to the
// first (last) `window` points is evaluated instead of padding the series.
func SavGol(ys []float64, window, order int) ([]float64, error) {
	n := len(ys)
	if window%2 == 0 || window < 1 {
		return nil, errors.Errorf("window length must be a positive odd number, got %d", window)
	}
	if order < 0 || order >= window {
		return nil, errors.Errorf("polynomial order %d must be less than window length %d",
			order, window)
	}
	if window > n {
		return nil, errors.Errorf("window length %d exceeds the series length %d", window, n)
	}
	half := window / 2
	// x are centered on the window to keep the Vandermonde matrix well conditioned
	vandermonde := mat.NewDense(window, order+1, nil)
	for i := 0; i < window; i++ {
		x := float64(i - half)
		v := 1.0
		for j := 0; j <= order; j++ {
			vandermonde.Set(i, j, v)
			v *= x
		}
	}
	result := make([]float64, n)
	lastFrom := -1
	var coeffs mat.VecDense
	for i := range ys {
		from := i - half
		if from < 0 {
			from = 0
		}
		if from > n-window {
			from = n - window
		}
		if from != lastFrom {
			if err := coeffs.SolveVec(vandermonde, mat.NewVecDense(window, ys[from:from+window])); err != nil {
				return nil, errors.Wrapf(err, "least squares fit at %d", from)
			}
			lastFrom = from
		}
		result[i] = polyval(coeffs.RawVector().Data, float64(i-from-half))
	}
	return result, nil
}

// polyval evaluates the polynomial with coefficients in ascending order of power.
func polyval(coeffs []float64, x float64) float64 {
	value := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		value = value*x + coeffs[i]
	}
	return value
}
