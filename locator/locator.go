// Package locator implements the decision function used to direct a walker
// to a node or a segment during a tree traversal.
package locator

import (
	"cmp"

	"github.com/Lz-Gustavo/lazyseq/algebra"
)

// Result is the three-way answer a Locator gives about a visited node.
type Result int

const (
	// Accept means the visited node belongs to the located segment.
	Accept Result = iota
	// GoLeft means the located segment is entirely to the left of the
	// visited node.
	GoLeft
	// GoRight means the located segment is entirely to the right of the
	// visited node.
	GoRight
)

func (r Result) String() string {
	switch r {
	case Accept:
		return "Accept"
	case GoLeft:
		return "GoLeft"
	case GoRight:
		return "GoRight"
	default:
		return "Result(?)"
	}
}

// Locator is a pure function directing a walk: given the summary of
// everything strictly to the left of the visited node itself (its left
// subtree included), the node's own value, and the summary of everything
// strictly to the right of the node (its right subtree included), it
// decides whether the located region lies to the left, to the right, or
// contains the node itself.
//
// A Locator must be consistent: calling it again with the same arguments
// must yield the same result, since some walks (segment isolation on a
// splay tree) call it on the same node more than once.
type Locator[V, S any] func(left S, value V, right S) Result

// All accepts every node; its region is the entire sequence.
func All[V, S any](_ S, _ V, _ S) Result {
	return Accept
}

// ByKey locates the node whose key equals k, directing the walk left or
// right of nodes with greater or smaller keys respectively. It is a
// splitting locator everywhere except at the matching key.
func ByKey[V, S, K cmp.Ordered](getKey func(V) K, k K) Locator[V, S] {
	return func(_ S, value V, _ S) Result {
		switch {
		case getKey(value) == k:
			return Accept
		case getKey(value) > k:
			return GoLeft
		default:
			return GoRight
		}
	}
}

// ByIndexRange locates the in-order positions [lo, hi). It requires a sized
// summary. A node whose singleton contributes more than one position (a
// "wide" node) is accepted whenever its span intersects [lo, hi).
func ByIndexRange[V, S any](sized algebra.Sized[S], singleton func(V) S, lo, hi int) Locator[V, S] {
	return func(left S, value V, _ S) Result {
		start := sized.Size(left)
		end := start + sized.Size(singleton(value))
		switch {
		case start >= hi:
			return GoLeft
		case end <= lo:
			return GoRight
		default:
			return Accept
		}
	}
}

// ByIndex locates the single in-order position at index.
func ByIndex[V, S any](sized algebra.Sized[S], singleton func(V) S, index int) Locator[V, S] {
	return ByIndexRange[V, S](sized, singleton, index, index+1)
}

// LeftEdgeOf turns l's Accept into GoLeft, producing a splitting locator
// that designates the gap immediately to the left of l's region.
func LeftEdgeOf[V, S any](l Locator[V, S]) Locator[V, S] {
	return func(left S, value V, right S) Result {
		if res := l(left, value, right); res == Accept {
			return GoLeft
		} else {
			return res
		}
	}
}

// RightEdgeOf turns l's Accept into GoRight, producing a splitting locator
// that designates the gap immediately to the right of l's region.
func RightEdgeOf[V, S any](l Locator[V, S]) Locator[V, S] {
	return func(left S, value V, right S) Result {
		if res := l(left, value, right); res == Accept {
			return GoRight
		} else {
			return res
		}
	}
}

// Union accepts whenever l1 and l2 disagree or both accept, yielding the
// smallest contiguous segment containing both of their regions.
func Union[V, S any](l1, l2 Locator[V, S]) Locator[V, S] {
	return func(left S, value V, right S) Result {
		a := l1(left, value, right)
		b := l2(left, value, right)
		if a == b {
			return a
		}
		return Accept
	}
}
