// Package dataset defines the labeled-example type consumed by
// categorizer learners and small utilities for slicing collections of
// examples.
package dataset

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/JimSow/Foundry/pkg/errors"
)

// Example is a single labeled observation: a numeric feature vector
// and its category label.
type Example[C comparable] struct {
	X     mat.Vector
	Label C
}

// Dimensionality returns the feature-vector length of the collection,
// taken from the first example. Empty input yields 0. Examples after
// the first are not inspected; uniform dimensionality is the caller's
// contract.
func Dimensionality[C comparable](examples []Example[C]) int {
	if len(examples) == 0 {
		return 0
	}
	return examples[0].X.Len()
}

// SplitByLabel groups the feature vectors by label. The returned order
// slice lists the labels by first appearance in examples, which is what
// makes downstream model construction deterministic.
func SplitByLabel[C comparable](examples []Example[C]) (map[C][]mat.Vector, []C) {
	groups := make(map[C][]mat.Vector)
	var order []C
	for _, ex := range examples {
		if _, ok := groups[ex.Label]; !ok {
			order = append(order, ex.Label)
		}
		groups[ex.Label] = append(groups[ex.Label], ex.X)
	}
	return groups, order
}

// TrainTestSplit shuffles the examples with the given seed and splits
// them into a training and a test set. testFraction is the share of
// examples placed in the test set and must lie in [0, 1).
func TrainTestSplit[C comparable](examples []Example[C], testFraction float64, seed int64) (train, test []Example[C], err error) {
	if testFraction < 0 || testFraction >= 1 {
		return nil, nil, errors.NewValidationError("testFraction", "must be in [0, 1)", testFraction)
	}

	r := rand.New(rand.NewSource(seed))
	perm := r.Perm(len(examples))

	nTest := int(float64(len(examples)) * testFraction)
	test = make([]Example[C], 0, nTest)
	train = make([]Example[C], 0, len(examples)-nTest)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, examples[idx])
		} else {
			train = append(train, examples[idx])
		}
	}
	return train, test, nil
}
