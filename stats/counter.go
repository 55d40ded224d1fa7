package stats

// CategoryCounts is a weighted counter over category labels that
// remembers first-insertion order. Categorizers use it as the prior
// table: Count is the accumulated weight of a category and Fraction its
// share of the total.
//
// Iteration-order stability matters: classification scans categories in
// insertion order and breaks argmax ties toward the earlier one, so the
// counter never exposes Go's randomized map order.
type CategoryCounts[C comparable] struct {
	counts map[C]float64
	order  []C
	total  float64
}

// NewCategoryCounts creates an empty counter.
func NewCategoryCounts[C comparable]() *CategoryCounts[C] {
	return &CategoryCounts[C]{
		counts: make(map[C]float64),
	}
}

// Increment adds amount to the category's count, creating the category
// at the end of the insertion order if it is new.
func (c *CategoryCounts[C]) Increment(category C, amount float64) {
	if _, ok := c.counts[category]; !ok {
		c.order = append(c.order, category)
	}
	c.counts[category] += amount
	c.total += amount
}

// Count returns the accumulated count for the category, 0 if unseen.
func (c *CategoryCounts[C]) Count(category C) float64 {
	return c.counts[category]
}

// Fraction returns the category's share of the total count.
// An empty counter returns 0 rather than dividing by zero.
func (c *CategoryCounts[C]) Fraction(category C) float64 {
	if c.total == 0 {
		return 0
	}
	return c.counts[category] / c.total
}

// Total returns the sum of all counts.
func (c *CategoryCounts[C]) Total() float64 {
	return c.total
}

// Categories returns the categories in first-insertion order.
// The returned slice is a copy.
func (c *CategoryCounts[C]) Categories() []C {
	out := make([]C, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of distinct categories.
func (c *CategoryCounts[C]) Len() int {
	return len(c.order)
}
