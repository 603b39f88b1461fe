package smooth

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// KDE is the one dimensional Gaussian kernel density estimate.
type KDE struct {
	samples []float64
	kernel  distuv.Normal
}

// NewKDE creates the estimate with the kernel width equal to `factor` times the sample
// standard deviation. It returns nil if the samples have zero spread, the density
// of a constant is a point mass which cannot be expressed with a Gaussian kernel.
func NewKDE(samples []float64, factor float64) *KDE {
	if len(samples) < 2 {
		return nil
	}
	bandwidth := factor * stat.StdDev(samples, nil)
	if bandwidth <= 0 || math.IsNaN(bandwidth) {
		return nil
	}
	return &KDE{
		samples: samples,
		kernel:  distuv.Normal{Mu: 0, Sigma: bandwidth},
	}
}

// Bandwidth returns the standard deviation of the kernel.
func (kde *KDE) Bandwidth() float64 {
	return kde.kernel.Sigma
}

// Density evaluates the estimate at x.
func (kde *KDE) Density(x float64) float64 {
	sum := 0.0
	for _, s := range kde.samples {
		sum += kde.kernel.Prob(x - s)
	}
	return sum / float64(len(kde.samples))
}

// Evaluate calculates the density at every point.
func (kde *KDE) Evaluate(xs []float64) []float64 {
	result := make([]float64, len(xs))
	for i, x := range xs {
		result[i] = kde.Density(x)
	}
	return result
}
