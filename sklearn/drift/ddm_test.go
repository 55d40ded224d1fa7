package drift

import (
	"math"
	"testing"
)

// TestDDMStableStream verifies no drift is signaled while the error rate
// stays steady
func TestDDMStableStream(t *testing.T) {
	d := NewDDM()

	for i := 1; i <= 200; i++ {
		sig := d.Record(i%20 != 0) // steady 5% error rate
		if sig.Drift {
			t.Fatalf("unexpected drift at observation %d", i)
		}
	}

	stats := d.Stats()
	if stats.Observations != 200 || stats.Errors != 10 {
		t.Errorf("expected 200 observations with 10 errors, got %d with %d",
			stats.Observations, stats.Errors)
	}
	if math.Abs(stats.ErrorRate-0.05) > 1e-12 {
		t.Errorf("expected error rate 0.05, got %f", stats.ErrorRate)
	}
}

// TestDDMDetectsDrift verifies a warning precedes drift when errors surge
func TestDDMDetectsDrift(t *testing.T) {
	d := NewDDM()

	for i := 1; i <= 200; i++ {
		d.Record(i%20 != 0)
	}

	warningAt, driftAt := 0, 0
	for i := 1; i <= 100; i++ {
		sig := d.Record(i%2 == 0) // error rate jumps to 50%
		if sig.Warning && warningAt == 0 {
			warningAt = i
		}
		if sig.Drift {
			driftAt = i
			break
		}
	}

	if driftAt == 0 {
		t.Fatal("expected drift after the error surge")
	}
	if warningAt == 0 || warningAt >= driftAt {
		t.Errorf("expected a warning before drift, warning at %d, drift at %d",
			warningAt, driftAt)
	}

	// The detector resets itself after signaling drift
	if n := d.Stats().Observations; n != 0 {
		t.Errorf("expected a reset after drift, still %d observations", n)
	}
}

// TestDDMWarmup verifies the detector stays quiet below the observation
// minimum
func TestDDMWarmup(t *testing.T) {
	d := NewDDM(WithMinObservations(50))

	for i := 1; i < 50; i++ {
		sig := d.Record(false)
		if sig.Warning || sig.Drift {
			t.Fatalf("no signal expected during warmup, got one at observation %d", i)
		}
		if sig.Severity != 0 {
			t.Fatalf("severity should be 0 during warmup, got %f", sig.Severity)
		}
	}
}

// TestDDMReset verifies Reset clears all accumulated state
func TestDDMReset(t *testing.T) {
	d := NewDDM()
	for i := 0; i < 40; i++ {
		d.Record(i%4 != 0)
	}

	d.Reset()

	stats := d.Stats()
	if stats.Observations != 0 || stats.Errors != 0 {
		t.Errorf("expected empty state after Reset, got %d observations with %d errors",
			stats.Observations, stats.Errors)
	}
	if !math.IsInf(stats.MinErrorRate, 1) {
		t.Errorf("reference minimum should be +Inf after Reset, got %f", stats.MinErrorRate)
	}
}
