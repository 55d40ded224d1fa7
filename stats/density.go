// Package stats provides the univariate density types that categorizers
// plug together: an evaluation interface, batch and incremental Gaussian
// estimators, and an insertion-ordered category counter for priors.
package stats

// Density is a univariate probability density evaluated in log space.
// Log space keeps products of many per-dimension likelihoods from
// underflowing to zero.
type Density interface {
	// LogDensity returns the natural log of the density at x.
	LogDensity(x float64) float64
}

// DistributionEstimator fits a Density to a batch of scalar observations.
type DistributionEstimator interface {
	// Estimate fits a density to values. It must not retain the slice;
	// callers reuse the backing array between calls.
	Estimate(values []float64) (Density, error)
}

// IncrementalDistributionEstimator creates and updates densities one
// observation at a time, for online learning.
type IncrementalDistributionEstimator interface {
	// NewDensity returns a fresh density in its initial pre-data state.
	NewDensity() Density

	// Update folds a single observation into d, mutating it in place.
	// d must have been created by this estimator's NewDensity.
	Update(d Density, x float64)
}
