package bayes

import (
	"gonum.org/v1/gonum/mat"

	"github.com/JimSow/Foundry/dataset"
	"github.com/JimSow/Foundry/stats"
)

// OnlineLearner updates a model one example at a time through a
// pluggable incremental density estimator. It is the single-step update
// for streaming drivers and also supports bulk initialization by
// replaying a batch.
//
// The learner holds no lock. Updates to one model must be serialized by
// the caller: Update mixes a presence check with a mutation, which is
// not atomic. Different models may be updated concurrently, as may
// different categories of one model when the caller shards by category.
type OnlineLearner[C comparable] struct {
	estimator stats.IncrementalDistributionEstimator
}

// NewOnlineLearner creates an online learner around the given
// incremental estimator.
func NewOnlineLearner[C comparable](est stats.IncrementalDistributionEstimator) *OnlineLearner[C] {
	return &OnlineLearner[C]{estimator: est}
}

// Update folds one labeled example into the model: the category's prior
// count grows by 1, its density list is created on first sighting (one
// initial density per dimension of x), and each dimension's density is
// updated in place with the matching element of x.
//
// Dimensionality consistency across the examples of a category is the
// caller's precondition, not enforced here.
func (l *OnlineLearner[C]) Update(m *Categorizer[C], x mat.Vector, category C) {
	m.priors.Increment(category, 1)

	list, ok := m.conditionals[category]
	if !ok {
		list = make([]stats.Density, x.Len())
		for i := range list {
			list[i] = l.estimator.NewDensity()
		}
		m.setConditionals(category, list)
	}

	for i, d := range list {
		l.estimator.Update(d, x.AtVec(i))
	}
}

// Learn builds a fresh model by replaying every example through Update.
// For estimators whose accumulators are order-independent, such as the
// Gaussian one, the result matches the batch learners' parameters.
func (l *OnlineLearner[C]) Learn(examples []dataset.Example[C]) (*Categorizer[C], error) {
	m := NewCategorizer[C]()
	for _, ex := range examples {
		l.Update(m, ex.X, ex.Label)
	}
	return m, nil
}
