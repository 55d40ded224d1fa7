package bayes

import (
	"gonum.org/v1/gonum/mat"

	"github.com/JimSow/Foundry/core/parallel"
	"github.com/JimSow/Foundry/dataset"
	"github.com/JimSow/Foundry/stats"
)

// GaussianLearner is the specialized batch learner: it always produces
// Gaussian densities and computes them directly from single-pass
// sufficient statistics, bypassing the estimator plug-in.
//
// Per category it accumulates the elementwise sum and sum of squares of
// the vectors, then per dimension derives
//
//	mean     = sum[i] / n
//	variance = (sumSq[i] - sum[i]*mean) / max(n-1, 1)
//
// The max(n-1, 1) denominator makes single-example categories yield
// variance 0 instead of dividing by zero. The formula matches
// stats.GaussianEstimator term for term, so this learner and the
// generic one configured with a Gaussian estimator produce identical
// parameters.
type GaussianLearner[C comparable] struct{}

// NewGaussianLearner creates a Gaussian batch learner.
func NewGaussianLearner[C comparable]() *GaussianLearner[C] {
	return &GaussianLearner[C]{}
}

// Learn builds a complete model from the examples. An empty collection
// yields an empty model and a nil error.
//
// Category fits are independent of one another, so for large inputs
// they run in parallel. Each fit writes only its own slot of an
// intermediate slice; the final writes into the model happen on the
// calling goroutine.
func (l *GaussianLearner[C]) Learn(examples []dataset.Example[C]) (*Categorizer[C], error) {
	m := NewCategorizer[C]()
	if len(examples) == 0 {
		return m, nil
	}

	dim := dataset.Dimensionality(examples)
	groups, order := dataset.SplitByLabel(examples)

	fitted := make([][]stats.Density, len(order))
	fit := func(start, end int) {
		for c := start; c < end; c++ {
			fitted[c] = fitGaussians(groups[order[c]], dim)
		}
	}

	// The threshold counts samples, not categories: per-category work
	// scales with sample count, and small datasets are not worth the
	// goroutines.
	const parallelThreshold = 1000
	if len(examples) > parallelThreshold {
		parallel.Parallelize(len(order), fit)
	} else {
		fit(0, len(order))
	}

	for c, category := range order {
		m.setConditionals(category, fitted[c])
		m.priors.Increment(category, float64(len(groups[category])))
	}
	return m, nil
}

// fitGaussians computes one Gaussian per dimension from a category's
// vectors. The accumulators are owned by this call and have no lifetime
// beyond it.
func fitGaussians(vectors []mat.Vector, dim int) []stats.Density {
	sum := mat.NewVecDense(dim, nil)
	sumSq := mat.NewVecDense(dim, nil)
	squared := mat.NewVecDense(dim, nil)
	for _, v := range vectors {
		sum.AddVec(sum, v)
		squared.MulElemVec(v, v)
		sumSq.AddVec(sumSq, squared)
	}

	n := float64(len(vectors))
	denom := n - 1
	if denom < 1 {
		denom = 1
	}

	densities := make([]stats.Density, dim)
	for i := 0; i < dim; i++ {
		mean := sum.AtVec(i) / n
		variance := (sumSq.AtVec(i) - sum.AtVec(i)*mean) / denom
		densities[i] = stats.Gaussian{Mean: mean, Variance: variance}
	}
	return densities
}
