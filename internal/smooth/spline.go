package smooth

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

type fitPredictor interface {
	Fit(xs, ys []float64) error
	Predict(x float64) float64
}

// Linspace returns n evenly spaced numbers over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Curve interpolates (xs, ys) and samples the interpolant at n evenly spaced points
// between the first and the last x. xs must be strictly increasing.
// Four and more knots are joined with the not-a-knot cubic spline, two or three knots
// fall back to straight segments.
func Curve(xs, ys []float64, n int) ([]float64, []float64, error) {
	if len(xs) != len(ys) {
		return nil, nil, errors.Errorf("knot lengths differ: %d != %d", len(xs), len(ys))
	}
	if n < 2 {
		return nil, nil, errors.Errorf("at least 2 samples are required, got %d", n)
	}
	var predictor fitPredictor
	switch {
	case len(xs) >= 4:
		predictor = &interp.NotAKnotCubic{}
	case len(xs) >= 2:
		predictor = &interp.PiecewiseLinear{}
	default:
		return nil, nil, errors.Errorf("at least 2 knots are required, got %d", len(xs))
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, nil, errors.Errorf("knots are not strictly increasing at %d", i)
		}
	}
	if err := predictor.Fit(xs, ys); err != nil {
		return nil, nil, errors.Wrap(err, "spline fit")
	}
	sx := Linspace(xs[0], xs[len(xs)-1], n)
	sy := make([]float64, n)
	for i, x := range sx {
		sy[i] = predictor.Predict(x)
	}
	return sx, sy, nil
}
