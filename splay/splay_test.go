package splay

import (
	"testing"

	"github.com/Lz-Gustavo/lazyseq/algebra"
	"github.com/Lz-Gustavo/lazyseq/locator"
	"github.com/Lz-Gustavo/lazyseq/numeric"
)

// sizeSum is a minimal (element count, sum) summary, enough to drive
// by-index locators and cross-check that splaying never loses or reorders
// a value.
type sizeSum struct {
	size, sum int
}

func intAlgebra() algebra.Algebra[int, sizeSum, int] {
	return algebra.Algebra[int, sizeSum, int]{
		IdentitySummary: sizeSum{},
		Combine: func(l, r sizeSum) sizeSum {
			return sizeSum{size: l.size + r.size, sum: l.sum + r.sum}
		},
		Singleton: func(v int) sizeSum { return sizeSum{size: 1, sum: v} },

		IdentityAction: 0,
		Compose:        func(a, b int) int { return a + b },
		IsIdentity:     func(a int) bool { return a == 0 },
		ApplyToValue:   func(a int, v *int) { *v += a },
		ApplyToSummary: func(a int, s *sizeSum) { s.sum += a * s.size },
	}
}

func sizeOf(s sizeSum) int { return s.size }

func collect(t *Tree[int, sizeSum, int]) []int {
	return t.Values(locator.All[int, sizeSum], nil)
}

func byIndex(i int) locator.Locator[int, sizeSum] {
	return locator.ByIndex[int, sizeSum](algebra.SizeFunc[sizeSum](sizeOf), func(v int) sizeSum { return sizeSum{size: 1, sum: v} }, i)
}

func byIndexRange(lo, hi int) locator.Locator[int, sizeSum] {
	return locator.ByIndexRange[int, sizeSum](algebra.SizeFunc[sizeSum](sizeOf), func(v int) sizeSum { return sizeSum{size: 1, sum: v} }, lo, hi)
}

func TestFromSliceOrderPreserved(t *testing.T) {
	alg := intAlgebra()
	values := make([]int, 500)
	for i := range values {
		values[i] = i
	}
	tr := FromSlice(alg, values)

	got := collect(tr)
	if len(got) != len(values) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(values))
	}
	for i, v := range got {
		if v != values[i] {
			t.Fatalf("got[%d] = %d, want %d", i, v, values[i])
		}
	}
}

func TestInsertAtEveryPosition(t *testing.T) {
	alg := intAlgebra()
	base := make([]int, 50)
	for i := range base {
		base[i] = i
	}
	for i := 0; i <= len(base); i++ {
		tr := FromSlice(alg, base)
		if err := tr.Insert(locator.LeftEdgeOf[int, sizeSum](byIndex(i)), 13); err != nil {
			t.Fatalf("Insert at %d: %v", i, err)
		}

		want := append(append(append([]int{}, base[:i]...), 13), base[i:]...)
		got := collect(tr)
		if len(got) != len(want) {
			t.Fatalf("i=%d: len(got) = %d, want %d", i, len(got), len(want))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("i=%d: got=%v want=%v", i, got, want)
			}
		}
	}
}

func TestDeleteAtEveryPosition(t *testing.T) {
	alg := intAlgebra()
	base := make([]int, 500)
	for i := range base {
		base[i] = i
	}
	for i := range base {
		tr := FromSlice(alg, base)
		v, ok := tr.Delete(byIndex(i))
		if !ok || v != base[i] {
			t.Fatalf("Delete at %d = (%d, %v), want (%d, true)", i, v, ok, base[i])
		}

		want := append(append([]int{}, base[:i]...), base[i+1:]...)
		got := collect(tr)
		if len(got) != len(want) {
			t.Fatalf("i=%d: len(got) = %d, want %d", i, len(got), len(want))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("i=%d: got=%v want=%v", i, got, want)
			}
		}
	}
}

func TestFindSplaysToRoot(t *testing.T) {
	alg := intAlgebra()
	base := make([]int, 200)
	for i := range base {
		base[i] = i
	}
	tr := FromSlice(alg, base)

	v, ok := tr.Find(byIndex(137))
	if !ok || v != 137 {
		t.Fatalf("Find(137) = (%d, %v), want (137, true)", v, ok)
	}

	w := Search(tr, byIndex(137))
	defer w.Close()
	if w.Depth() != 0 {
		t.Fatalf("after Find, searching for the same value again landed at depth %d, want 0", w.Depth())
	}
}

func TestSegmentSummaryRangeSum(t *testing.T) {
	alg := intAlgebra()
	values := make([]int, 100)
	for i := range values {
		values[i] = i
	}
	tr := FromSlice(alg, values)

	got := tr.SegmentSummary(byIndexRange(10, 20))
	want := 0
	for i := 10; i < 20; i++ {
		want += values[i]
	}
	if got.sum != want {
		t.Fatalf("range sum [10,20) = %d, want %d", got.sum, want)
	}
}

func TestActSegmentAddsToRange(t *testing.T) {
	alg := intAlgebra()
	values := make([]int, 30)
	for i := range values {
		values[i] = i
	}
	tr := FromSlice(alg, values)

	tr.ActSegment(byIndexRange(5, 10), 100)

	got := collect(tr)
	for i, v := range got {
		want := values[i]
		if i >= 5 && i < 10 {
			want += 100
		}
		if v != want {
			t.Fatalf("got[%d] = %d, want %d", i, v, want)
		}
	}
}

// TestActSegmentReversesRangeThenRangeMin exercises exactly what AVL's
// ActSegment refuses: reversing a multi-node range, here via segment
// isolation rather than an in-place lazy swap. The range's min is
// order-independent, so it must read the same before and after; the values
// themselves must come back in reverse order.
func TestActSegmentReversesRangeThenRangeMin(t *testing.T) {
	alg := numeric.Algebra[int]()
	values := make([]int, 10)
	for i := range values {
		values[i] = i
	}
	sized := algebra.SizeFunc[numeric.Summary](func(s numeric.Summary) int { return s.Size })
	loc := locator.ByIndexRange[int, numeric.Summary](sized, alg.Singleton, 2, 7)

	tr := FromSlice(alg, values)
	tr.ActSegment(loc, numeric.Action{Reverse: true, Mul: 1})

	got := tr.Values(locator.All[int, numeric.Summary], nil)
	want := []int{0, 1, 6, 5, 4, 3, 2, 7, 8, 9}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got=%v want=%v", got, want)
		}
	}

	s := tr.SegmentSummary(loc)
	if s.Min != 2 || s.Max != 6 {
		t.Fatalf("range min/max after reversal = %v/%v, want 2/6", s.Min, s.Max)
	}
}

// TestSplitConcatenateRoundTrip builds [17..88), splits at index 7, checks
// the two resulting sequences, then concatenates them back together.
func TestSplitConcatenateRoundTrip(t *testing.T) {
	alg := intAlgebra()
	values := make([]int, 0, 71)
	for i := 17; i < 88; i++ {
		values = append(values, i)
	}
	tr := FromSlice(alg, values)

	right := tr.SplitRight(byIndex(7))
	gotLeft := collect(tr)
	gotRight := collect(right)

	wantLeft, wantRight := values[:7], values[7:]
	if len(gotLeft) != len(wantLeft) || len(gotRight) != len(wantRight) {
		t.Fatalf("split sizes = %d/%d, want %d/%d", len(gotLeft), len(gotRight), len(wantLeft), len(wantRight))
	}
	for i, v := range gotLeft {
		if v != wantLeft[i] {
			t.Fatalf("left[%d] = %d, want %d", i, v, wantLeft[i])
		}
	}
	for i, v := range gotRight {
		if v != wantRight[i] {
			t.Fatalf("right[%d] = %d, want %d", i, v, wantRight[i])
		}
	}

	tr.ConcatenateRight(right)
	got := collect(tr)
	if len(got) != len(values) {
		t.Fatalf("after concat len = %d, want %d", len(got), len(values))
	}
	for i, v := range got {
		if v != values[i] {
			t.Fatalf("after concat got[%d] = %d, want %d", i, v, values[i])
		}
	}
	if !right.IsEmpty() {
		t.Fatalf("right should be drained after ConcatenateRight")
	}
}

func TestIsolateSegmentWholeTree(t *testing.T) {
	alg := intAlgebra()
	values := []int{1, 2, 3, 4, 5}
	tr := FromSlice(alg, values)

	w := tr.IsolateSegment(locator.All[int, sizeSum])
	if w.Depth() != 0 {
		t.Fatalf("isolating the whole tree should land at the root, got depth %d", w.Depth())
	}
	w.Close()
}
