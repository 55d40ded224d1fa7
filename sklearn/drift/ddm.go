// Package drift provides concept drift detectors for streaming classification.
//
// A drift detector watches a statistic of an online model, usually its error
// stream, and signals when the distribution generating the stream appears to
// have changed. On a drift signal the caller typically discards the model and
// retrains from fresh data.
package drift

import (
	"math"
	"sync"
)

// DDM implements the Drift Detection Method of Gama et al. (2004),
// "Learning with Drift Detection".
//
// The detector tracks the running error rate p of a classifier and its
// binomial standard deviation s. While the concept is stable p+s keeps
// falling, and the minimum reached so far serves as the reference. A later
// rise of p+s above the reference by warningLevel (driftLevel) standard
// deviations raises the warning (drift) signal.
type DDM struct {
	minObservations int
	warningLevel    float64
	driftLevel      float64

	n      int
	errors int

	pMin float64
	sMin float64

	mu sync.Mutex
}

// Signal is the outcome of feeding one observation to DDM.
type Signal struct {
	Warning   bool
	Drift     bool
	ErrorRate float64

	// Severity is the current p+s relative to the reference minimum.
	// Values near 1 mean a stable stream; the warning and drift
	// thresholds sit above it. Zero until the warmup period is over.
	Severity float64
}

// DDMOption is a DDM configuration option.
type DDMOption func(*DDM)

// WithMinObservations sets how many observations must arrive before the
// detector starts signaling.
func WithMinObservations(n int) DDMOption {
	return func(d *DDM) {
		d.minObservations = n
	}
}

// WithWarningLevel sets the warning threshold in standard deviations.
func WithWarningLevel(level float64) DDMOption {
	return func(d *DDM) {
		d.warningLevel = level
	}
}

// WithDriftLevel sets the drift threshold in standard deviations.
func WithDriftLevel(level float64) DDMOption {
	return func(d *DDM) {
		d.driftLevel = level
	}
}

// NewDDM creates a detector with the conventional thresholds: warning at
// 2 standard deviations above the reference, drift at 3.
func NewDDM(opts ...DDMOption) *DDM {
	d := &DDM{
		minObservations: 30,
		warningLevel:    2.0,
		driftLevel:      3.0,
		pMin:            math.Inf(1),
		sMin:            math.Inf(1),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Record feeds one prediction outcome and returns the detector's signal.
// correct reports whether the classifier predicted the true label. After a
// drift signal the detector resets itself, so monitoring can restart
// against a retrained model.
func (d *DDM) Record(correct bool) Signal {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.n++
	if !correct {
		d.errors++
	}

	p := float64(d.errors) / float64(d.n)
	sig := Signal{ErrorRate: p}
	if d.n < d.minObservations {
		return sig
	}

	s := math.Sqrt(p * (1 - p) / float64(d.n))
	if p+s < d.pMin+d.sMin {
		d.pMin = p
		d.sMin = s
	}
	if d.pMin+d.sMin > 0 {
		sig.Severity = (p + s) / (d.pMin + d.sMin)
	} else {
		sig.Severity = 1
	}

	switch {
	case p+s > d.pMin+d.driftLevel*d.sMin:
		sig.Drift = true
		d.reset()
	case p+s > d.pMin+d.warningLevel*d.sMin:
		sig.Warning = true
	}
	return sig
}

// DDMStats is a snapshot of the detector state.
type DDMStats struct {
	Observations int
	Errors       int
	ErrorRate    float64
	MinErrorRate float64
	MinStdDev    float64
}

// Stats returns a snapshot of the detector state.
func (d *DDM) Stats() DDMStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	stats := DDMStats{
		Observations: d.n,
		Errors:       d.errors,
		MinErrorRate: d.pMin,
		MinStdDev:    d.sMin,
	}
	if d.n > 0 {
		stats.ErrorRate = float64(d.errors) / float64(d.n)
	}
	return stats
}

// Reset returns the detector to its initial state.
func (d *DDM) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *DDM) reset() {
	d.n = 0
	d.errors = 0
	d.pMin = math.Inf(1)
	d.sMin = math.Inf(1)
}
