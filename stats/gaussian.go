package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/JimSow/Foundry/pkg/errors"
)

// Gaussian is an immutable univariate normal density.
type Gaussian struct {
	Mean     float64
	Variance float64
}

// LogDensity returns the log of the normal density at x.
//
// A non-positive variance is treated as a point mass at the mean: +Inf
// at the mean itself and -Inf everywhere else. Single-observation fits
// produce such densities and argmax-style consumers handle the infinities
// naturally.
func (g Gaussian) LogDensity(x float64) float64 {
	if g.Variance <= 0 {
		if x == g.Mean {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}
	n := distuv.Normal{Mu: g.Mean, Sigma: math.Sqrt(g.Variance)}
	return n.LogProb(x)
}

// String returns the string representation of the density.
func (g Gaussian) String() string {
	return fmt.Sprintf("Gaussian(mean=%g, variance=%g)", g.Mean, g.Variance)
}

// GaussianEstimator fits a Gaussian to a batch of observations by
// maximum likelihood.
//
// The fit uses single-pass sums: mean = sum/n and
// variance = (sumSq - sum*mean) / max(n-1, 1). The max(n-1, 1)
// denominator makes a single observation yield variance 0 instead of a
// division by zero. The incremental form in StreamingGaussian uses the
// exact same sums, so batch fitting and replaying the observations one
// at a time produce identical parameters.
type GaussianEstimator struct {
	// VarSmoothing is added to every fitted variance. Zero disables it;
	// sklearn-style facades use a small positive value to keep
	// constant features from producing degenerate densities.
	VarSmoothing float64
}

// Estimate fits a Gaussian to values.
func (e GaussianEstimator) Estimate(values []float64) (Density, error) {
	if len(values) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "GaussianEstimator.Estimate")
	}

	var sum, sumSq float64
	for _, v := range values {
		sum += v
		sumSq += v * v
	}

	n := float64(len(values))
	mean := sum / n
	denom := n - 1
	if denom < 1 {
		denom = 1
	}
	variance := (sumSq-sum*mean)/denom + e.VarSmoothing

	return Gaussian{Mean: mean, Variance: variance}, nil
}

// StreamingGaussian is a univariate normal density that learns from one
// observation at a time. It keeps the running count, sum, and sum of
// squares; mean and variance are derived on demand with the same
// formulas as GaussianEstimator, so replaying a batch through Add
// reproduces the batch fit exactly.
//
// With no observations yet it evaluates as the standard normal
// (mean 0, variance 1), giving online learners a proper density from
// the first moment a category appears.
type StreamingGaussian struct {
	// VarSmoothing mirrors GaussianEstimator.VarSmoothing.
	VarSmoothing float64

	n     int
	sum   float64
	sumSq float64
}

// Add folds one observation into the running sums.
func (s *StreamingGaussian) Add(x float64) {
	s.n++
	s.sum += x
	s.sumSq += x * x
}

// Count returns the number of observations folded in so far.
func (s *StreamingGaussian) Count() int {
	return s.n
}

// Mean returns the current mean estimate. Zero observations give the
// standard-normal mean 0.
func (s *StreamingGaussian) Mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.sum / float64(s.n)
}

// Variance returns the current variance estimate. Zero observations
// give the standard-normal variance 1.
func (s *StreamingGaussian) Variance() float64 {
	if s.n == 0 {
		return 1
	}
	n := float64(s.n)
	mean := s.sum / n
	denom := n - 1
	if denom < 1 {
		denom = 1
	}
	return (s.sumSq-s.sum*mean)/denom + s.VarSmoothing
}

// LogDensity returns the log density at x under the current estimate.
func (s *StreamingGaussian) LogDensity(x float64) float64 {
	return Gaussian{Mean: s.Mean(), Variance: s.Variance()}.LogDensity(x)
}

// String returns the string representation of the density.
func (s *StreamingGaussian) String() string {
	return fmt.Sprintf("StreamingGaussian(n=%d, mean=%g, variance=%g)", s.n, s.Mean(), s.Variance())
}

// IncrementalGaussianEstimator creates and updates StreamingGaussian
// densities. It satisfies IncrementalDistributionEstimator for online
// categorizer learners.
type IncrementalGaussianEstimator struct {
	// VarSmoothing is handed to every density this estimator creates.
	VarSmoothing float64
}

// NewDensity returns a fresh StreamingGaussian with no observations.
func (e IncrementalGaussianEstimator) NewDensity() Density {
	return &StreamingGaussian{VarSmoothing: e.VarSmoothing}
}

// Update folds x into d. d must be a *StreamingGaussian created by
// NewDensity; anything else is a programming error and panics.
func (e IncrementalGaussianEstimator) Update(d Density, x float64) {
	d.(*StreamingGaussian).Add(x)
}
