package bayes

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/JimSow/Foundry/dataset"
	"github.com/JimSow/Foundry/pkg/errors"
)

func vec(values ...float64) mat.Vector {
	return mat.NewVecDense(len(values), values)
}

// twoCategoryModel builds a 2-dimensional model with categories "low"
// (centered near 0) and "high" (centered near 10), "low" inserted first.
func twoCategoryModel(t *testing.T) *Categorizer[string] {
	t.Helper()
	examples := []dataset.Example[string]{
		{X: vec(0, 1), Label: "low"},
		{X: vec(1, 0), Label: "low"},
		{X: vec(-1, -1), Label: "low"},
		{X: vec(10, 11), Label: "high"},
		{X: vec(11, 10), Label: "high"},
		{X: vec(9, 9), Label: "high"},
	}
	m, err := NewGaussianLearner[string]().Learn(examples)
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}
	return m
}

func TestLogPosteriorDecomposition(t *testing.T) {
	m := twoCategoryModel(t)
	x := vec(0.5, 0.5)

	for _, category := range m.Categories() {
		got, err := m.LogPosterior(x, category)
		if err != nil {
			t.Fatalf("LogPosterior(%q) failed: %v", category, err)
		}

		// Recompute from the exposed parts: log prior fraction plus the
		// per-dimension log-density sum.
		want := math.Log(m.Priors().Fraction(category))
		densities, ok := m.Conditionals(category)
		if !ok {
			t.Fatalf("Conditionals(%q) missing", category)
		}
		for i, d := range densities {
			want += d.LogDensity(x.AtVec(i))
		}

		if math.Abs(got-want) > 1e-12 {
			t.Errorf("LogPosterior(%q) = %v, want %v", category, got, want)
		}
	}
}

func TestLogPosteriorUnknownCategory(t *testing.T) {
	m := twoCategoryModel(t)
	_, err := m.LogPosterior(vec(0, 0), "never-seen")
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	var unknownErr *errors.UnknownCategoryError
	if !errors.As(err, &unknownErr) {
		t.Errorf("error = %v, want UnknownCategoryError", err)
	}
}

func TestLogPosteriorDimensionMismatch(t *testing.T) {
	m := twoCategoryModel(t)
	_, err := m.LogPosterior(vec(1, 2, 3), "low")
	if err == nil {
		t.Fatal("expected error for mismatched vector length")
	}
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("error = %v, want DimensionError", err)
	}
	if dimErr.Expected != 2 || dimErr.Got != 3 {
		t.Errorf("DimensionError = expected %d got %d, want expected 2 got 3", dimErr.Expected, dimErr.Got)
	}
}

func TestPosteriorIsExpOfLogPosterior(t *testing.T) {
	m := twoCategoryModel(t)
	x := vec(1, 1)

	logP, err := m.LogPosterior(x, "low")
	if err != nil {
		t.Fatalf("LogPosterior failed: %v", err)
	}
	p, err := m.Posterior(x, "low")
	if err != nil {
		t.Fatalf("Posterior failed: %v", err)
	}
	if p != math.Exp(logP) {
		t.Errorf("Posterior = %v, want exp(%v) = %v", p, logP, math.Exp(logP))
	}
}

func TestClassify(t *testing.T) {
	m := twoCategoryModel(t)

	tests := []struct {
		x    mat.Vector
		want string
	}{
		{vec(0, 0), "low"},
		{vec(10, 10), "high"},
		{vec(-2, 1), "low"},
		{vec(12, 8), "high"},
	}
	for _, tt := range tests {
		got, err := m.Classify(tt.x)
		if err != nil {
			t.Fatalf("Classify(%v) failed: %v", mat.Formatted(tt.x.T()), err)
		}
		if got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", mat.Formatted(tt.x.T()), got, tt.want)
		}
	}
}

func TestClassifyEmptyModel(t *testing.T) {
	m := NewCategorizer[string]()
	_, err := m.Classify(vec(1))
	if err == nil {
		t.Fatal("expected error on a model with no categories")
	}
	if !errors.Is(err, errors.ErrNoCategories) {
		t.Errorf("error = %v, want ErrNoCategories", err)
	}

	_, _, err = m.ClassifyWithDiscriminant(vec(1))
	if !errors.Is(err, errors.ErrNoCategories) {
		t.Errorf("ClassifyWithDiscriminant error = %v, want ErrNoCategories", err)
	}
}

func TestClassifyTieBreaksByInsertionOrder(t *testing.T) {
	// Two categories with identical training data tie on every input.
	// The winner must be the first-inserted category, in either order.
	build := func(first, second string) *Categorizer[string] {
		examples := []dataset.Example[string]{
			{X: vec(1, 2), Label: first},
			{X: vec(3, 4), Label: first},
			{X: vec(1, 2), Label: second},
			{X: vec(3, 4), Label: second},
		}
		m, err := NewGaussianLearner[string]().Learn(examples)
		if err != nil {
			t.Fatalf("Learn failed: %v", err)
		}
		return m
	}

	x := vec(2, 3)
	if got, err := build("alpha", "beta").Classify(x); err != nil || got != "alpha" {
		t.Errorf("alpha-first model: Classify = %q, %v; want alpha", got, err)
	}
	if got, err := build("beta", "alpha").Classify(x); err != nil || got != "beta" {
		t.Errorf("beta-first model: Classify = %q, %v; want beta", got, err)
	}
}

func TestClassifyDoesNotMutate(t *testing.T) {
	m := twoCategoryModel(t)
	x := vec(3, 4)

	before := m.Priors().Total()
	first, err := m.Classify(x)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	_, firstScore, err := m.ClassifyWithDiscriminant(x)
	if err != nil {
		t.Fatalf("ClassifyWithDiscriminant failed: %v", err)
	}

	for i := 0; i < 10; i++ {
		got, err := m.Classify(x)
		if err != nil {
			t.Fatalf("Classify failed: %v", err)
		}
		if got != first {
			t.Fatalf("repeated Classify changed: %q then %q", first, got)
		}
		_, score, err := m.ClassifyWithDiscriminant(x)
		if err != nil {
			t.Fatalf("ClassifyWithDiscriminant failed: %v", err)
		}
		if score != firstScore {
			t.Fatalf("repeated discriminant changed: %v then %v", firstScore, score)
		}
	}
	if m.Priors().Total() != before {
		t.Error("classification mutated the prior table")
	}
}

func TestClassifyWithDiscriminant(t *testing.T) {
	m := twoCategoryModel(t)
	x := vec(2, 2)

	category, score, err := m.ClassifyWithDiscriminant(x)
	if err != nil {
		t.Fatalf("ClassifyWithDiscriminant failed: %v", err)
	}
	if category != "low" {
		t.Errorf("category = %q, want low", category)
	}

	p := math.Exp(score)
	if !(p > 0 && p <= 1) {
		t.Errorf("exp(score) = %v, want in (0, 1]", p)
	}

	// The score must equal maxLogPosterior - logSumExp over all
	// categories, recomputed independently here.
	var logPosteriors []float64
	maxLP := math.Inf(-1)
	for _, c := range m.Categories() {
		lp, err := m.LogPosterior(x, c)
		if err != nil {
			t.Fatalf("LogPosterior failed: %v", err)
		}
		logPosteriors = append(logPosteriors, lp)
		if lp > maxLP {
			maxLP = lp
		}
	}
	want := maxLP - errors.LogSumExp(logPosteriors)
	if math.Abs(score-want) > 1e-12 {
		t.Errorf("score = %v, want %v", score, want)
	}
}

func TestClassifyWithDiscriminantExtremeMagnitudes(t *testing.T) {
	// Both categories sit hundreds of standard deviations from the
	// query: every posterior underflows linear space, yet the
	// normalized score must stay meaningful.
	examples := []dataset.Example[string]{
		{X: vec(1000), Label: "far"},
		{X: vec(1001), Label: "far"},
		{X: vec(1002), Label: "far"},
		{X: vec(1100), Label: "farther"},
		{X: vec(1101), Label: "farther"},
		{X: vec(1102), Label: "farther"},
	}
	m, err := NewGaussianLearner[string]().Learn(examples)
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}

	x := vec(0)
	lpFar, err := m.LogPosterior(x, "far")
	if err != nil {
		t.Fatalf("LogPosterior failed: %v", err)
	}
	if math.Exp(lpFar) != 0 {
		t.Fatalf("test premise broken: posterior %v did not underflow", math.Exp(lpFar))
	}

	category, score, err := m.ClassifyWithDiscriminant(x)
	if err != nil {
		t.Fatalf("ClassifyWithDiscriminant failed: %v", err)
	}
	if category != "far" {
		t.Errorf("category = %q, want far (the nearer cluster)", category)
	}
	p := math.Exp(score)
	if math.IsNaN(p) || !(p > 0 && p <= 1) {
		t.Errorf("exp(score) = %v, want in (0, 1] despite underflowed posteriors", p)
	}
	// The nearer cluster should win essentially outright.
	if p < 0.999 {
		t.Errorf("exp(score) = %v, want ~1 for a clear-cut winner", p)
	}
}

func TestClassifyWithDiscriminantSingleCategory(t *testing.T) {
	examples := []dataset.Example[string]{
		{X: vec(1, 2), Label: "only"},
		{X: vec(2, 3), Label: "only"},
	}
	m, err := NewGaussianLearner[string]().Learn(examples)
	if err != nil {
		t.Fatalf("Learn failed: %v", err)
	}

	for _, x := range []mat.Vector{vec(0, 0), vec(100, -100), vec(1.5, 2.5)} {
		category, score, err := m.ClassifyWithDiscriminant(x)
		if err != nil {
			t.Fatalf("ClassifyWithDiscriminant failed: %v", err)
		}
		if category != "only" {
			t.Errorf("category = %q, want only", category)
		}
		// Single category: the denominator equals the lone numerator,
		// so the score is exactly 0 and its exp exactly 1.
		if score != 0 {
			t.Errorf("score = %v, want exactly 0", score)
		}
		if math.Exp(score) != 1 {
			t.Errorf("exp(score) = %v, want exactly 1", math.Exp(score))
		}
	}
}

func TestCategoriesAndDimensionality(t *testing.T) {
	m := NewCategorizer[string]()
	if got := m.InputDimensionality(); got != 0 {
		t.Errorf("empty model InputDimensionality = %d, want 0", got)
	}
	if got := m.Categories(); len(got) != 0 {
		t.Errorf("empty model Categories = %v, want none", got)
	}

	m = twoCategoryModel(t)
	got := m.Categories()
	if len(got) != 2 || got[0] != "low" || got[1] != "high" {
		t.Errorf("Categories = %v, want [low high] in insertion order", got)
	}
	if d := m.InputDimensionality(); d != 2 {
		t.Errorf("InputDimensionality = %d, want 2", d)
	}
}
