package cmp_test

import (
	"testing"

	"github.com/nirslab/nirspipe/pkg/cmp"
)

func TestSliceEq(t *testing.T) {
	theory := func(a, b []int, expected bool) func(*testing.T) {
		return func(t *testing.T) {
			if actual := cmp.SliceEq(a, b); actual != expected {
				t.Errorf("SliceEq(%v, %v) --> %v", a, b, actual)
			}
		}
	}

	t.Run("equal slices", theory([]int{1, 2, 3}, []int{1, 2, 3}, true))
	t.Run("different length", theory([]int{1, 2}, []int{1, 2, 3}, false))
	t.Run("different order", theory([]int{1, 3, 2}, []int{1, 2, 3}, false))
	t.Run("both empty", theory([]int{}, []int{}, true))
	t.Run("nil vs empty", theory(nil, []int{}, true))
}

func TestSliceEqWith(t *testing.T) {
	pred := func(a int, b string) bool { return (a == 1) == (b == "one") }

	if !cmp.SliceEqWith([]int{1, 2}, []string{"one", "two"}, pred) {
		t.Error("expected equal under pred")
	}
	if cmp.SliceEqWith([]int{1}, []string{"one", "two"}, pred) {
		t.Error("length mismatch should not be equal")
	}
}

func TestMapEq(t *testing.T) {
	theory := func(a, b map[string]int, expected bool) func(*testing.T) {
		return func(t *testing.T) {
			if actual := cmp.MapEq(a, b); actual != expected {
				t.Errorf("MapEq(%v, %v) --> %v", a, b, actual)
			}
		}
	}

	t.Run("equal maps", theory(
		map[string]int{"a": 1, "b": 2}, map[string]int{"b": 2, "a": 1}, true,
	))
	t.Run("missing key", theory(
		map[string]int{"a": 1}, map[string]int{"b": 1}, false,
	))
	t.Run("different value", theory(
		map[string]int{"a": 1}, map[string]int{"a": 2}, false,
	))
}

func TestPEqEq(t *testing.T) {
	one, anotherOne, two := 1, 1, 2

	if !cmp.PEqEq(&one, &anotherOne) {
		t.Error("pointers to equal values should be equal")
	}
	if cmp.PEqEq(&one, &two) {
		t.Error("pointers to different values should not be equal")
	}
	if !cmp.PEqEq[int](nil, nil) {
		t.Error("two nils should be equal")
	}
	if cmp.PEqEq(&one, nil) {
		t.Error("nil and non-nil should not be equal")
	}
}
