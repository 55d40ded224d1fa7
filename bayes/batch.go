package bayes

import (
	"github.com/JimSow/Foundry/dataset"
	"github.com/JimSow/Foundry/pkg/errors"
	"github.com/JimSow/Foundry/stats"
)

// Learner is the generic batch learner: it fits one density per
// (category, dimension) pair using a pluggable distribution estimator
// and sets each category's prior to its example count.
//
// The learner runs sequentially. The estimator plug-in is called once
// per (category, dimension) and nothing about its concurrency safety is
// assumed.
type Learner[C comparable] struct {
	estimator stats.DistributionEstimator
}

// NewLearner creates a batch learner around the given estimator.
func NewLearner[C comparable](est stats.DistributionEstimator) *Learner[C] {
	return &Learner[C]{estimator: est}
}

// Learn builds a complete model from the examples.
//
// An empty example collection yields an empty model and a nil error;
// classification on such a model then reports its own no-categories
// error. An estimator failure aborts the learn and propagates, wrapped
// with the failing category and dimension; the partially built model is
// discarded.
func (l *Learner[C]) Learn(examples []dataset.Example[C]) (*Categorizer[C], error) {
	m := NewCategorizer[C]()
	if len(examples) == 0 {
		return m, nil
	}

	dim := dataset.Dimensionality(examples)
	groups, order := dataset.SplitByLabel(examples)

	// One scalar buffer reused across every (category, dimension) fit.
	// Estimate must not retain it.
	values := make([]float64, 0, len(examples))

	for _, category := range order {
		vectors := groups[category]
		densities := make([]stats.Density, 0, dim)
		for i := 0; i < dim; i++ {
			values = values[:0]
			for _, v := range vectors {
				values = append(values, v.AtVec(i))
			}
			d, err := l.estimator.Estimate(values)
			if err != nil {
				return nil, errors.Wrapf(err, "Learner.Learn: category %v, dimension %d", category, i)
			}
			densities = append(densities, d)
		}
		m.setConditionals(category, densities)
		m.priors.Increment(category, float64(len(vectors)))
	}
	return m, nil
}
