// Package foundry provides a naive Bayes classification library for Go,
// designed for backend services and real-time inference applications.
//
// Foundry models categories over fixed-length numeric feature vectors.
// The core API is generic over the category type, and a
// scikit-learn-like facade makes the library feel familiar to engineers
// coming from Python's ecosystem.
//
// # Features
//
// - Generic categories: classify into string, int, or any comparable label type
// - Pluggable densities: Gaussian out of the box, custom estimators via a small interface
// - Online learning: incremental updates that converge to the batch result
// - scikit-learn-like API: GaussianNB with Fit/Predict/PredictProba/PartialFit
// - Robust Error Handling: typed errors with stack traces
// - Numerically careful: all scoring happens in log space
//
// # Installation
//
// Install Foundry using go get:
//
//	go get github.com/JimSow/Foundry
//
// # Quick Start
//
// Here's a simple example of Gaussian naive Bayes classification:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//	    "github.com/JimSow/Foundry/bayes"
//	    "github.com/JimSow/Foundry/dataset"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    // Create training data
//	    examples := []dataset.Example[string]{
//	        {X: mat.NewVecDense(2, []float64{1.0, 2.0}), Label: "spam"},
//	        {X: mat.NewVecDense(2, []float64{1.2, 2.1}), Label: "spam"},
//	        {X: mat.NewVecDense(2, []float64{6.0, 7.0}), Label: "ham"},
//	        {X: mat.NewVecDense(2, []float64{6.2, 7.1}), Label: "ham"},
//	    }
//
//	    // Train a model
//	    learner := bayes.NewGaussianLearner[string]()
//	    model, err := learner.Learn(examples)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    // Classify a new vector
//	    category, err := model.Classify(mat.NewVecDense(2, []float64{1.1, 2.2}))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Println("Predicted:", category)
//	}
//
// # Packages
//
// The library is organized into several packages:
//
//   - bayes: the core model and learners (batch, Gaussian, online)
//   - stats: densities, estimators, and category counting
//   - dataset: labeled examples and split helpers
//   - metrics: evaluation metrics (accuracy, log loss, AUC)
//   - sklearn/naive_bayes: scikit-learn compatible GaussianNB
//   - sklearn/drift: concept drift detectors (DDM, ADWIN)
//   - core/model: shared estimator interfaces and state management
//   - core/parallel: parallel processing utilities
//
// # scikit-learn Compatibility
//
// The facade mirrors sklearn.naive_bayes.GaussianNB, including
// incremental and streaming use:
//
//	model := naive_bayes.NewGaussianNB(
//	    naive_bayes.WithVarSmoothing(1e-9),
//	    naive_bayes.WithClasses([]int{0, 1, 2}),
//	)
//	if err := model.PartialFit(X, y, nil); err != nil {
//	    log.Fatal(err)
//	}
//
// # Performance
//
// Scoring parallelizes across rows for batches with >1000 rows, and the
// specialized Gaussian batch learner fits categories concurrently on
// large inputs. Models are safe for concurrent readers; online updates
// take a write lock.
//
// # License
//
// Foundry is released under the MIT License.
package foundry
