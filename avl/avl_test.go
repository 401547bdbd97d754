package avl

import (
	"testing"

	"github.com/Lz-Gustavo/lazyseq/algebra"
	"github.com/Lz-Gustavo/lazyseq/locator"
)

// sizeSum is a minimal (element count, sum) summary, enough to drive
// by-index locators and to cross-check that rebalancing never loses or
// reorders a value.
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

// assertRanksLocally walks the whole tree checking the AVL rank invariant
// at every node: this node's rank is exactly one more than its taller
// child's, and each child's rank is one or two less than this node's.
func assertRanksLocally[V, S, A any](t *testing.T, n *node[V, S, A]) {
	t.Helper()
	if n == nil {
		return
	}
	lr, rr := int(rank[V, S, A](n.Left)), int(rank[V, S, A](n.Right))
	own := int(n.Aug)
	if own != lr+1 && own != rr+1 {
		t.Fatalf("rank %d is not one more than either child's (%d, %d)", own, lr, rr)
	}
	for _, cr := range []int{lr, rr} {
		if cr != own-1 && cr != own-2 {
			t.Fatalf("child rank %d is not 1 or 2 less than parent rank %d", cr, own)
		}
	}
	assertRanksLocally[V, S, A](t, n.Left)
	assertRanksLocally[V, S, A](t, n.Right)
}

func collect(t *Tree[int, sizeSum, int]) []int {
	return t.Values(locator.All[int, sizeSum], nil)
}

func TestFromSliceOrderAndBalance(t *testing.T) {
	alg := intAlgebra()
	values := make([]int, 500)
	for i := range values {
		values[i] = i
	}
	tr := FromSlice(alg, values)
	assertRanksLocally[int, sizeSum, int](t, tr.root)

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
		w := Search(tr, locator.LeftEdgeOf[int, sizeSum](locator.ByIndex[int, sizeSum](algebra.SizeFunc[sizeSum](sizeOf), alg.Singleton, i)))
		if err := w.Insert(13); err != nil {
			t.Fatalf("Insert at %d: %v", i, err)
		}
		assertRanksLocally[int, sizeSum, int](t, tr.root)

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
	sized := algebra.SizeFunc[sizeSum](sizeOf)
	for i := range base {
		tr := FromSlice(alg, base)
		w := Search(tr, locator.ByIndex[int, sizeSum](sized, alg.Singleton, i))
		v, ok := w.Value()
		if !ok || v != base[i] {
			t.Fatalf("search landed on (%d, %v), want (%d, true)", v, ok, base[i])
		}
		deleted, err := w.Delete()
		if err != nil {
			t.Fatalf("Delete at %d: %v", i, err)
		}
		if deleted != base[i] {
			t.Fatalf("Delete returned %d, want %d", deleted, base[i])
		}
		assertRanksLocally[int, sizeSum, int](t, tr.root)

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

func TestSegmentSummaryRangeSum(t *testing.T) {
	alg := intAlgebra()
	values := make([]int, 100)
	for i := range values {
		values[i] = i
	}
	tr := FromSlice(alg, values)
	sized := algebra.SizeFunc[sizeSum](sizeOf)

	got := tr.SegmentSummary(locator.ByIndexRange[int, sizeSum](sized, alg.Singleton, 10, 20))
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
	sized := algebra.SizeFunc[sizeSum](sizeOf)

	loc := locator.ByIndexRange[int, sizeSum](sized, alg.Singleton, 5, 10)
	if err := tr.ActSegment(loc, 100); err != nil {
		t.Fatalf("ActSegment: %v", err)
	}

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

// TestSegmentSummaryUnion checks that a locator union forms the smallest
// contiguous segment covering both of its operands' regions, even though
// the two ranges don't overlap or touch.
func TestSegmentSummaryUnion(t *testing.T) {
	alg := intAlgebra()
	values := make([]int, 10)
	for i := range values {
		values[i] = i
	}
	tr := FromSlice(alg, values)
	sized := algebra.SizeFunc[sizeSum](sizeOf)

	l1 := locator.ByIndexRange[int, sizeSum](sized, alg.Singleton, 1, 3)
	l2 := locator.ByIndexRange[int, sizeSum](sized, alg.Singleton, 6, 8)
	got := tr.SegmentSummary(locator.Union[int, sizeSum](l1, l2))
	if got.size != 7 {
		t.Fatalf("union([1,3),[6,8)).size = %d, want 7 (the covering range [1,8))", got.size)
	}
}

func TestActSegmentRefusesWideReversal(t *testing.T) {
	alg := intAlgebra()
	alg.Reversed = func(a int) bool { return a < 0 }
	values := []int{1, 2, 3, 4, 5}
	tr := FromSlice(alg, values)
	sized := algebra.SizeFunc[sizeSum](sizeOf)

	loc := locator.ByIndexRange[int, sizeSum](sized, alg.Singleton, 1, 4)
	if err := tr.ActSegment(loc, -1); err != ErrReversalUnsupported {
		t.Fatalf("ActSegment err = %v, want ErrReversalUnsupported", err)
	}
}
