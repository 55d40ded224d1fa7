package model

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Batch represents a data batch for streaming learning
type Batch struct {
	X mat.Matrix // Feature matrix
	Y mat.Matrix // Target matrix
}

// StreamingEstimator provides channel-based streaming learning interface
type StreamingEstimator interface {
	Estimator
	IncrementalLearner

	// FitStream trains the model from a data stream
	// Continues learning until the context is canceled or the channel is closed
	FitStream(ctx context.Context, dataChan <-chan *Batch) error

	// PredictStream performs real-time predictions on input stream
	// Output channel is closed when input channel is closed
	PredictStream(ctx context.Context, inputChan <-chan mat.Matrix) <-chan mat.Matrix

	// FitPredictStream performs learning and prediction simultaneously
	// Returns predictions while training on new data (test-then-train approach)
	FitPredictStream(ctx context.Context, dataChan <-chan *Batch) <-chan mat.Matrix
}
