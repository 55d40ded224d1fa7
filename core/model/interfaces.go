package model

import "gonum.org/v1/gonum/mat"

// Fitter は学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる
	Fit(X, y mat.Matrix) error
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力データに対する予測を行う
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// Estimator is the basic contract every supervised model satisfies.
type Estimator interface {
	Fitter
	Predictor

	// IsFitted returns whether the model has been fitted.
	IsFitted() bool
}

// Scorer is the interface for models that can compute a score.
type Scorer interface {
	// Score returns a quality measure of the prediction on (X, y).
	// Classifiers report mean accuracy.
	Score(X mat.Matrix, y mat.Matrix) (float64, error)
}

// IncrementalLearner is the interface for models that support incremental learning.
type IncrementalLearner interface {
	// PartialFit updates the model with one mini-batch of samples.
	// classes fixes the full label universe and is honored on the first call only.
	PartialFit(X mat.Matrix, y mat.Matrix, classes []int) error
}

// Classifier combines interfaces for classification models.
type Classifier interface {
	Estimator
	Scorer

	// PredictProba returns probability estimates for each class.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// PredictLogProba returns log-probability estimates for each class.
	PredictLogProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the unique classes seen during fitting.
	Classes() []int
}

// ClassifierWithPartialFit combines interfaces for online classification models.
type ClassifierWithPartialFit interface {
	Classifier
	IncrementalLearner
}
