// Package bayes implements a naive Bayes categorizer over
// fixed-dimensionality numeric feature vectors, together with the three
// learners that build one: a generic batch learner parameterized by a
// pluggable density estimator, a closed-form Gaussian batch learner,
// and an online learner fed one example at a time.
//
// All probability arithmetic happens in log space. Per-dimension
// log-densities are summed under the conditional-independence
// assumption, and normalization across categories uses log-sum-exp, so
// posteriors far below the smallest representable float64 still compare
// and normalize correctly.
package bayes

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/JimSow/Foundry/pkg/errors"
	"github.com/JimSow/Foundry/stats"
)

// Categorizer is a naive Bayes probability model: a prior count per
// category and, per category, one density per feature dimension.
//
// Input dimensionality is derived, never stored: it is the density-list
// length of any one category (0 while the model is empty). The learners
// in this package guarantee the list length is identical across
// categories.
//
// Classification does not mutate the model and may run concurrently.
// Mutation (learning) requires external serialization per model; see
// OnlineLearner.
type Categorizer[C comparable] struct {
	priors       *stats.CategoryCounts[C]
	conditionals map[C][]stats.Density
	order        []C
}

// NewCategorizer creates an empty model with no categories.
func NewCategorizer[C comparable]() *Categorizer[C] {
	return &Categorizer[C]{
		priors:       stats.NewCategoryCounts[C](),
		conditionals: make(map[C][]stats.Density),
	}
}

// setConditionals installs the density list for a category, recording
// first-insertion order. Learners call this; the order drives
// deterministic tie-breaking in Classify.
func (m *Categorizer[C]) setConditionals(category C, densities []stats.Density) {
	if _, ok := m.conditionals[category]; !ok {
		m.order = append(m.order, category)
	}
	m.conditionals[category] = densities
}

// Categories returns the model's category universe in first-insertion
// order. The universe is the key set of the conditional densities, not
// of the priors: a category is known once it has densities to evaluate.
func (m *Categorizer[C]) Categories() []C {
	out := make([]C, len(m.order))
	copy(out, m.order)
	return out
}

// InputDimensionality returns the feature-vector length this model
// evaluates, or 0 if the model has no categories yet.
func (m *Categorizer[C]) InputDimensionality() int {
	if len(m.order) == 0 {
		return 0
	}
	return len(m.conditionals[m.order[0]])
}

// Priors returns the live prior table. Callers must treat it as
// read-only; learners in this package mutate it.
func (m *Categorizer[C]) Priors() *stats.CategoryCounts[C] {
	return m.priors
}

// Conditionals returns a copy of the category's density list and
// whether the category is known.
func (m *Categorizer[C]) Conditionals(category C) ([]stats.Density, bool) {
	list, ok := m.conditionals[category]
	if !ok {
		return nil, false
	}
	out := make([]stats.Density, len(list))
	copy(out, list)
	return out, true
}

// LogPosterior returns log(prior fraction) plus the summed per-dimension
// log-densities of x under the category's conditionals.
//
// The value is proportional to, not equal to, the true posterior: the
// shared evidence term P(x) is omitted. Querying a category the model
// does not know is a contract violation and returns a typed error, as
// does a vector whose length disagrees with the model's dimensionality.
func (m *Categorizer[C]) LogPosterior(x mat.Vector, category C) (float64, error) {
	list, ok := m.conditionals[category]
	if !ok {
		return 0, errors.NewUnknownCategoryError("Categorizer.LogPosterior", category)
	}
	if x.Len() != len(list) {
		return 0, errors.NewDimensionError("Categorizer.LogPosterior", len(list), x.Len(), 0)
	}

	logPosterior := math.Log(m.priors.Fraction(category))
	for i, d := range list {
		logPosterior += d.LogDensity(x.AtVec(i))
	}
	return logPosterior, nil
}

// Posterior returns exp(LogPosterior(x, category)): the unnormalized
// prior-times-likelihood product. It lies in [0, 1] only after the
// caller normalizes across categories; use ClassifyWithDiscriminant for
// a normalized score.
func (m *Categorizer[C]) Posterior(x mat.Vector, category C) (float64, error) {
	logPosterior, err := m.LogPosterior(x, category)
	if err != nil {
		return 0, err
	}
	return math.Exp(logPosterior), nil
}

// Classify returns the category with the strictly maximal log-posterior
// for x. Ties resolve to the category inserted first, which makes the
// result deterministic. A model with no categories cannot predict and
// returns a typed error rather than a default category.
func (m *Categorizer[C]) Classify(x mat.Vector) (C, error) {
	var best C
	if len(m.order) == 0 {
		return best, errors.Wrap(errors.ErrNoCategories, "Categorizer.Classify")
	}

	bestScore := math.Inf(-1)
	for i, category := range m.order {
		score, err := m.LogPosterior(x, category)
		if err != nil {
			var zero C
			return zero, err
		}
		if i == 0 || score > bestScore {
			best = category
			bestScore = score
		}
	}
	return best, nil
}

// ClassifyWithDiscriminant classifies x and also returns a normalized
// log-likelihood score for the winning category:
// maxLogPosterior - logSumExp(all log-posteriors). exp of the score
// lies in (0, 1]; a single-category model scores exactly 0 (probability
// 1). The denominator is accumulated with LogAdd seeded at -Inf, so the
// normalization stays exact even when every posterior underflows linear
// space.
//
// Point-mass densities can drive individual log-posteriors to +Inf, in
// which case the score degenerates to NaN while the classification
// itself remains well defined.
func (m *Categorizer[C]) ClassifyWithDiscriminant(x mat.Vector) (C, float64, error) {
	var best C
	if len(m.order) == 0 {
		return best, 0, errors.Wrap(errors.ErrNoCategories, "Categorizer.ClassifyWithDiscriminant")
	}

	bestScore := math.Inf(-1)
	logDenominator := math.Inf(-1)
	for i, category := range m.order {
		score, err := m.LogPosterior(x, category)
		if err != nil {
			var zero C
			return zero, 0, err
		}
		if i == 0 || score > bestScore {
			best = category
			bestScore = score
		}
		logDenominator = errors.LogAdd(logDenominator, score)
	}
	return best, bestScore - logDenominator, nil
}
