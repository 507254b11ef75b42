package maps_test

import (
	"testing"

	"github.com/nirslab/nirspipe/pkg/cmp"
	"github.com/nirslab/nirspipe/pkg/utils/maps"
)

func TestOrdered(t *testing.T) {
	t.Run("keys come back in insertion order", func(t *testing.T) {
		testee := maps.NewOrdered[string, int]()
		testee.Set("c", 3).Set("a", 1).Set("b", 2)

		if !cmp.SliceEq(testee.Keys(), []string{"c", "a", "b"}) {
			t.Errorf("unexpected keys: %v", testee.Keys())
		}
	})

	t.Run("re-setting a key keeps its original position", func(t *testing.T) {
		testee := maps.NewOrdered[string, int]()
		testee.Set("c", 3).Set("a", 1).Set("c", 33)

		if !cmp.SliceEq(testee.Keys(), []string{"c", "a"}) {
			t.Errorf("unexpected keys: %v", testee.Keys())
		}
		if v, ok := testee.Get("c"); !ok || v != 33 {
			t.Errorf("unexpected value for c: %v (found=%v)", v, ok)
		}
	})

	t.Run("delete removes key and order entry", func(t *testing.T) {
		testee := maps.NewOrdered[string, int]()
		testee.Set("c", 3).Set("a", 1).Set("b", 2)
		testee.Delete("a")

		if !cmp.SliceEq(testee.Keys(), []string{"c", "b"}) {
			t.Errorf("unexpected keys: %v", testee.Keys())
		}
		if testee.Has("a") {
			t.Error("a should have been deleted")
		}
		if testee.Len() != 2 {
			t.Errorf("unexpected length: %d", testee.Len())
		}
	})

	t.Run("iteration respects order and stop", func(t *testing.T) {
		testee := maps.NewOrdered[string, int]()
		testee.Set("c", 3).Set("a", 1).Set("b", 2)

		got := []string{}
		testee.Iter(func(k string, v int) bool {
			got = append(got, k)
			return len(got) < 2
		})

		if !cmp.SliceEq(got, []string{"c", "a"}) {
			t.Errorf("unexpected iteration: %v", got)
		}
	})
}
