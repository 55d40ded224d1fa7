package dataset

import (
	"reflect"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/JimSow/Foundry/pkg/errors"
)

func vec(values ...float64) mat.Vector {
	return mat.NewVecDense(len(values), values)
}

func TestDimensionality(t *testing.T) {
	examples := []Example[string]{
		{X: vec(1, 2, 3), Label: "a"},
		{X: vec(4, 5, 6), Label: "b"},
	}
	if got := Dimensionality(examples); got != 3 {
		t.Errorf("Dimensionality = %d, want 3", got)
	}
	if got := Dimensionality[string](nil); got != 0 {
		t.Errorf("Dimensionality of empty input = %d, want 0", got)
	}
}

func TestSplitByLabel(t *testing.T) {
	examples := []Example[string]{
		{X: vec(1), Label: "b"},
		{X: vec(2), Label: "a"},
		{X: vec(3), Label: "b"},
		{X: vec(4), Label: "c"},
		{X: vec(5), Label: "a"},
	}

	groups, order := SplitByLabel(examples)

	wantOrder := []string{"b", "a", "c"}
	if !reflect.DeepEqual(order, wantOrder) {
		t.Errorf("order = %v, want first-appearance order %v", order, wantOrder)
	}

	wantSizes := map[string]int{"b": 2, "a": 2, "c": 1}
	for label, n := range wantSizes {
		if len(groups[label]) != n {
			t.Errorf("group %q has %d vectors, want %d", label, len(groups[label]), n)
		}
	}

	// Grouping preserves within-label order of appearance.
	if got := groups["b"][0].AtVec(0); got != 1 {
		t.Errorf("first vector of group b starts with %v, want 1", got)
	}
	if got := groups["b"][1].AtVec(0); got != 3 {
		t.Errorf("second vector of group b starts with %v, want 3", got)
	}
}

func TestTrainTestSplit(t *testing.T) {
	examples := make([]Example[int], 10)
	for i := range examples {
		examples[i] = Example[int]{X: vec(float64(i)), Label: i % 2}
	}

	train, test, err := TrainTestSplit(examples, 0.3, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}
	if len(test) != 3 || len(train) != 7 {
		t.Errorf("split sizes = (%d train, %d test), want (7, 3)", len(train), len(test))
	}

	// Same seed reproduces the same split.
	train2, test2, err := TrainTestSplit(examples, 0.3, 42)
	if err != nil {
		t.Fatalf("TrainTestSplit failed: %v", err)
	}
	for i := range test {
		if test[i].X.AtVec(0) != test2[i].X.AtVec(0) {
			t.Fatal("same seed produced a different split")
		}
	}
	if len(train2) != len(train) {
		t.Fatal("same seed produced a different split size")
	}

	// Every example lands in exactly one side.
	seen := make(map[float64]bool)
	for _, ex := range append(append([]Example[int]{}, train...), test...) {
		v := ex.X.AtVec(0)
		if seen[v] {
			t.Errorf("example %v appears twice", v)
		}
		seen[v] = true
	}
	if len(seen) != len(examples) {
		t.Errorf("split covers %d examples, want %d", len(seen), len(examples))
	}
}

func TestTrainTestSplitInvalidFraction(t *testing.T) {
	examples := []Example[int]{{X: vec(1), Label: 0}}
	for _, fraction := range []float64{-0.1, 1.0, 1.5} {
		_, _, err := TrainTestSplit(examples, fraction, 1)
		if err == nil {
			t.Errorf("testFraction=%v: expected error", fraction)
			continue
		}
		var valErr *errors.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("testFraction=%v: error = %v, want ValidationError", fraction, err)
		} else if valErr.ParamName != "testFraction" {
			t.Errorf("testFraction=%v: ParamName = %q, want %q", fraction, valErr.ParamName, "testFraction")
		}
	}
}
