package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestParallelizeCoversAllItems(t *testing.T) {
	for _, items := range []int{0, 1, 7, 100, 1000} {
		seen := make([]int32, items)
		Parallelize(items, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, n := range seen {
			if n != 1 {
				t.Errorf("items=%d: index %d visited %d times, want 1", items, i, n)
			}
		}
	}
}

func TestParallelizeRangesAreDisjoint(t *testing.T) {
	const items = 97
	var mu sync.Mutex
	var ranges [][2]int
	Parallelize(items, func(start, end int) {
		mu.Lock()
		ranges = append(ranges, [2]int{start, end})
		mu.Unlock()
	})

	total := 0
	for _, r := range ranges {
		if r[0] >= r[1] {
			t.Errorf("empty or inverted range [%d, %d)", r[0], r[1])
		}
		total += r[1] - r[0]
	}
	if total != items {
		t.Errorf("ranges cover %d items, want %d", total, items)
	}
}

func TestParallelizeWithThreshold(t *testing.T) {
	// Below the threshold the whole range arrives in a single call.
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("sequential call got range [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("sequential path made %d calls, want 1", calls)
	}

	// Above the threshold every item is still visited exactly once.
	const items = 500
	seen := make([]int32, items)
	ParallelizeWithThreshold(items, 100, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})
	for i, n := range seen {
		if n != 1 {
			t.Errorf("index %d visited %d times, want 1", i, n)
		}
	}
}
