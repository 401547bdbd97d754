// Package avl implements a rank-balanced sequence tree: the strict-invariant
// balancer among the two this module provides, trading the splay tree's
// amortized guarantee for a worst-case O(log n) bound on every operation.
package avl

import (
	"errors"

	"github.com/Lz-Gustavo/lazyseq/algebra"
	"github.com/Lz-Gustavo/lazyseq/locator"
	"github.com/Lz-Gustavo/lazyseq/tree"
)

// ErrReversalUnsupported is returned by ActSegment when the action reverses
// order and the node at which the located segment straddles the tree has
// children. That is always so for a segment of more than one value, and also
// for a single value held by an inner node; only a segment that is exactly
// one leaf accepts a reversing action. Rebalancing
// an AVL tree's shape to carry out a structural reversal, the way the
// splay balancer's segment isolation does, isn't supported here.
var ErrReversalUnsupported = errors.New("avl: act_segment does not support a reversing action wider than one node")

type node[V, S, A any] = tree.Node[V, S, A, uint8]

func rank[V, S, A any](n *node[V, S, A]) uint8 {
	if n == nil {
		return 0
	}
	return n.Aug
}

func rankDiff[V, S, A any](n *node[V, S, A]) int {
	if n == nil {
		return 0
	}
	return int(rank[V, S, A](n.Right)) - int(rank[V, S, A](n.Left))
}

// rebuildRank recomputes n's rank from its children's, reporting whether it
// changed. Used both as the rotation rebuilder and at the tail of the
// rebalance loop to decide whether to keep climbing.
func rebuildRank[V, S, A any](n *node[V, S, A]) bool {
	l, r := rank[V, S, A](n.Left), rank[V, S, A](n.Right)
	newRank := l
	if r > l {
		newRank = r
	}
	newRank++
	changed := n.Aug != newRank
	n.Aug = newRank
	return changed
}

// rebuildRankVoid adapts rebuildRank to the void augRebuild signature the
// tree package's rotation primitives expect.
func rebuildRankVoid[V, S, A any](n *node[V, S, A]) { rebuildRank[V, S, A](n) }

// Tree is a balanced binary search tree keeping every node's rank (the
// longest root-to-empty-leaf path within its subtree) within one of its
// two children's, so the tree's height stays within a constant factor of
// log2(n) no matter the insertion order.
type Tree[V, S, A any] struct {
	alg  algebra.Algebra[V, S, A]
	root *node[V, S, A]
}

// New returns an empty tree over alg.
func New[V, S, A any](alg algebra.Algebra[V, S, A]) *Tree[V, S, A] {
	return &Tree[V, S, A]{alg: alg}
}

// FromSlice builds a tree holding values in order by always inserting at the
// tree's rightward frontier through one walker. Each Insert rebalances all
// the way up to the root, so the next insertion descends the whole right
// spine again: the build takes O(n log n) time, not O(n).
func FromSlice[V, S, A any](alg algebra.Algebra[V, S, A], values []V) *Tree[V, S, A] {
	t := New(alg)
	w := t.Walker()
	for _, v := range values {
		for w.GoRight() == nil {
		}
		w.Insert(v)
	}
	return t
}

// IsEmpty reports whether the tree holds no values.
func (t *Tree[V, S, A]) IsEmpty() bool { return t.root == nil }

// SubtreeSummary returns the summary of the whole tree.
func (t *Tree[V, S, A]) SubtreeSummary() S { return tree.SubtreeSummary(t.alg, t.root) }

// Walker opens a walker positioned at the tree's root.
func (t *Tree[V, S, A]) Walker() *Walker[V, S, A] {
	return &Walker[V, S, A]{w: tree.NewWalker[V, S, A, uint8](t.alg, &t.root)}
}

// SegmentSummary returns the combined summary of every value loc accepts.
func (t *Tree[V, S, A]) SegmentSummary(loc locator.Locator[V, S]) S {
	return tree.SegmentSummary(t.alg, t.root, loc, t.alg.IdentitySummary, t.alg.IdentitySummary)
}

// ActSegment applies action to every value loc accepts. See
// ErrReversalUnsupported for when this refuses.
func (t *Tree[V, S, A]) ActSegment(loc locator.Locator[V, S], action A) error {
	if tree.ActSegment(t.alg, t.root, loc, t.alg.IdentitySummary, t.alg.IdentitySummary, action) == tree.RefusedReversal {
		return ErrReversalUnsupported
	}
	return nil
}

// Values appends every value loc accepts, in order, to dst and returns it.
func (t *Tree[V, S, A]) Values(loc locator.Locator[V, S], dst []V) []V {
	tree.IterSubtree(t.alg, t.root, loc, t.alg.IdentitySummary, t.alg.IdentitySummary, func(v V) {
		dst = append(dst, v)
	})
	return dst
}

// Search walks from the root guided by loc until loc accepts a node or an
// empty position is reached, and returns the resulting walker. Used
// internally by operations that need to find a value or a gap by key or by
// index rather than always inserting at the rightward frontier.
func Search[V, S, A any](t *Tree[V, S, A], loc locator.Locator[V, S]) *Walker[V, S, A] {
	w := t.Walker()
	for {
		res, ok := w.w.Locate(loc)
		if !ok {
			return w
		}
		switch res {
		case locator.Accept:
			return w
		case locator.GoLeft:
			_ = w.GoLeft()
		case locator.GoRight:
			_ = w.GoRight()
		}
	}
}

// Walker is a cursor into an AVL tree. Besides the basic walker surface, it
// keeps the rank augmentation correct across every structural change it
// performs, and provides Insert/Delete, which additionally restore the
// rank-balance invariant.
type Walker[V, S, A any] struct {
	w *tree.Walker[V, S, A, uint8]
}

// IsEmpty reports whether the current position holds no node.
func (w *Walker[V, S, A]) IsEmpty() bool { return w.w.IsEmpty() }

// Depth returns the walker's distance from the root.
func (w *Walker[V, S, A]) Depth() int { return w.w.Depth() }

// Value returns the current node's value.
func (w *Walker[V, S, A]) Value() (V, bool) { return w.w.Value() }

// ValueMut returns a pointer to the current node's value.
func (w *Walker[V, S, A]) ValueMut() *V { return w.w.ValueMut() }

// NodeSummary returns the summary of just the current node's value.
func (w *Walker[V, S, A]) NodeSummary() S { return w.w.NodeSummary() }

// SubtreeSummary returns the summary of the current position's subtree.
func (w *Walker[V, S, A]) SubtreeSummary() S { return w.w.SubtreeSummary() }

// LeftSummary returns the summary of everything left of the current node's
// own value.
func (w *Walker[V, S, A]) LeftSummary() S { return w.w.LeftSummary() }

// RightSummary returns the summary of everything right of the current
// node's own value.
func (w *Walker[V, S, A]) RightSummary() S { return w.w.RightSummary() }

// FarLeftSummary returns the summary of everything left of the current
// subtree.
func (w *Walker[V, S, A]) FarLeftSummary() S { return w.w.FarLeftSummary() }

// FarRightSummary returns the summary of everything right of the current
// subtree.
func (w *Walker[V, S, A]) FarRightSummary() S { return w.w.FarRightSummary() }

// GoLeft descends into the current node's left child.
func (w *Walker[V, S, A]) GoLeft() error { return w.w.GoLeft() }

// GoRight descends into the current node's right child.
func (w *Walker[V, S, A]) GoRight() error { return w.w.GoRight() }

// GoUp ascends to the current position's parent, repairing that parent's
// rank on the way.
func (w *Walker[V, S, A]) GoUp() (wasLeft bool, err error) {
	wasLeft, err = w.w.GoUp()
	if err != nil {
		return wasLeft, err
	}
	rebuildRank[V, S, A](w.w.Node())
	return wasLeft, nil
}

// ActSubtree composes action into the current node's pending.
func (w *Walker[V, S, A]) ActSubtree(action A) { w.w.ActSubtree(action) }

// ActNode applies action directly to the current node's value.
func (w *Walker[V, S, A]) ActNode(action A) { w.w.ActNode(action) }

// ActLeftSubtree applies action to the current node's left child.
func (w *Walker[V, S, A]) ActLeftSubtree(action A) { w.w.ActLeftSubtree(action) }

// ActRightSubtree applies action to the current node's right child.
func (w *Walker[V, S, A]) ActRightSubtree(action A) { w.w.ActRightSubtree(action) }

func (w *Walker[V, S, A]) rotLeft()  { w.w.RotLeft(rebuildRankVoid[V, S, A]) }
func (w *Walker[V, S, A]) rotRight() { w.w.RotRight(rebuildRankVoid[V, S, A]) }

func (w *Walker[V, S, A]) rotUp() (wasLeft bool, err error) {
	return w.w.RotUp(rebuildRankVoid[V, S, A])
}

// rebalance restores the rank invariant along the path from the current
// position up to the root: at each level it rebuilds the node's summary and
// rank, then rotates if the children's ranks differ by two. It always climbs
// all the way to the root, so every ancestor's cached summary is current on
// return and the walker ends at the root.
func (w *Walker[V, S, A]) rebalance() {
	for {
		n := w.w.Node()
		if n != nil {
			w.w.Rebuild()
			rebuildRank[V, S, A](n)
		}
		switch d := rankDiff[V, S, A](n); {
		case d == -2: // left is deeper
			if rankDiff[V, S, A](n.Left) <= 0 {
				w.rotRight()
			} else {
				w.GoLeft()
				w.rotLeft()
				if wasLeft, _ := w.rotUp(); !wasLeft {
					panic("avl: rebalance invariant violated on left-right case")
				}
			}
		case d >= -1 && d <= 1: // already balanced
		case d == 2: // right is deeper
			if rankDiff[V, S, A](n.Right) >= 0 {
				w.rotLeft()
			} else {
				w.GoRight()
				w.rotRight()
				if wasLeft, _ := w.rotUp(); wasLeft {
					panic("avl: rebalance invariant violated on right-left case")
				}
			}
		default:
			panic("avl: illegal rank difference")
		}

		if _, err := w.w.GoUp(); err != nil {
			return
		}
	}
}

// Insert places value at the current empty position and rebalances.
// Returns ErrOccupiedPosition if the position is not empty. On return the
// walker is positioned at some ancestor of the inserted value, not
// necessarily the value itself.
func (w *Walker[V, S, A]) Insert(value V) error {
	if err := w.w.InsertAtEmpty(value, 1); err != nil {
		return err
	}
	_, _ = w.w.GoUp()
	w.rebalance()
	return nil
}

// Delete removes the current node, splicing its in-order successor (or, if
// it has none, its left child) into its place, and rebalances. Returns
// tree.ErrEmptyPosition at an empty position. On return the walker's
// position is unspecified beyond being inside the tree.
func (w *Walker[V, S, A]) Delete() (V, error) {
	var zero V
	n := w.w.TakeSubtree()
	if n == nil {
		return zero, tree.ErrEmptyPosition
	}
	tree.Propagate(w.w.Alg(), n)
	if n.Right == nil {
		w.w.PutSubtree(n.Left)
		w.rebalance()
		return n.Value, nil
	}

	rightRoot := n.Right
	succWalker := tree.NewWalker[V, S, A, uint8](w.w.Alg(), &rightRoot)
	for succWalker.GoLeft() == nil {
	}
	_, _ = succWalker.GoUp()

	successor := succWalker.TakeSubtree()
	succWalker.PutSubtree(successor.Right)
	(&Walker[V, S, A]{w: succWalker}).rebalance()

	successor.Left = n.Left
	successor.Right = rightRoot
	tree.Rebuild(w.w.Alg(), successor)
	rebuildRank[V, S, A](successor)

	w.w.PutSubtree(successor)
	w.rebalance()
	return n.Value, nil
}
