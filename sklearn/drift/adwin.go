package drift

import (
	"math"
	"sync"
)

// ADWIN implements the adaptive windowing detector of Bifet and Gavalda
// (2007), "Learning from time-changing data with adaptive windowing".
//
// The detector keeps a window over a numeric stream and drops the oldest
// part whenever some prefix and the remaining suffix disagree about the
// mean by more than the Hoeffding bound, so the window always covers data
// from a single concept. Unlike DDM it watches raw values rather than
// prediction outcomes, which makes it useful for spotting input drift
// before labels are available.
type ADWIN struct {
	delta      float64
	maxBuckets int

	buckets []bucket
	sum     float64
	count   int

	mu sync.Mutex
}

// bucket aggregates up to two consecutive stream values.
type bucket struct {
	sum   float64
	count int
}

// ADWINOption is an ADWIN configuration option.
type ADWINOption func(*ADWIN)

// WithDelta sets the confidence parameter; smaller is more sensitive.
func WithDelta(delta float64) ADWINOption {
	return func(a *ADWIN) {
		a.delta = delta
	}
}

// WithMaxBuckets caps the bucket list; the oldest bucket is evicted once
// the cap is exceeded, bounding memory on endless streams.
func WithMaxBuckets(n int) ADWINOption {
	return func(a *ADWIN) {
		a.maxBuckets = n
	}
}

// NewADWIN creates a detector with confidence parameter 0.002.
func NewADWIN(opts ...ADWINOption) *ADWIN {
	a := &ADWIN{
		delta:      0.002,
		maxBuckets: 1000,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Record feeds one value and reports whether the window shrank.
func (a *ADWIN) Record(value float64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.add(value)
	return a.shrink()
}

func (a *ADWIN) add(value float64) {
	if n := len(a.buckets); n > 0 && a.buckets[n-1].count == 1 {
		a.buckets[n-1].sum += value
		a.buckets[n-1].count++
	} else {
		a.buckets = append(a.buckets, bucket{sum: value, count: 1})
	}
	a.sum += value
	a.count++

	if len(a.buckets) > a.maxBuckets {
		oldest := a.buckets[0]
		a.sum -= oldest.sum
		a.count -= oldest.count
		a.buckets = a.buckets[1:]
	}
}

// shrink drops the oldest buckets while any prefix/suffix split disagrees
// about the mean, and reports whether anything was dropped.
func (a *ADWIN) shrink() bool {
	shrunk := false
	for a.count >= 5 && len(a.buckets) >= 2 {
		cut := a.findCut()
		if cut == 0 {
			break
		}
		for i := 0; i < cut; i++ {
			a.sum -= a.buckets[i].sum
			a.count -= a.buckets[i].count
		}
		a.buckets = a.buckets[cut:]
		shrunk = true
	}
	return shrunk
}

// findCut returns the first bucket boundary whose subwindow means differ
// by more than the Hoeffding bound, or 0 when none does.
func (a *ADWIN) findCut() int {
	sum0, count0 := 0.0, 0
	for i := 1; i < len(a.buckets); i++ {
		sum0 += a.buckets[i-1].sum
		count0 += a.buckets[i-1].count
		count1 := a.count - count0
		if count1 <= 0 {
			break
		}
		mean0 := sum0 / float64(count0)
		mean1 := (a.sum - sum0) / float64(count1)
		if math.Abs(mean0-mean1) > a.bound(count0, count1) {
			return i
		}
	}
	return 0
}

// bound is the Hoeffding bound for subwindows of count0 and count1 values.
func (a *ADWIN) bound(count0, count1 int) float64 {
	m := 1.0/float64(count0) + 1.0/float64(count1)
	return math.Sqrt(0.5 * m * math.Log(2.0/a.delta))
}

// Mean returns the mean of the current window.
func (a *ADWIN) Mean() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// Width returns the number of values in the current window.
func (a *ADWIN) Width() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

// Reset empties the window.
func (a *ADWIN) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.buckets = nil
	a.sum = 0
	a.count = 0
}
