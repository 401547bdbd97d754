// Package splay implements a self-adjusting sequence tree: no per-node
// balance invariant is maintained directly, and every access instead moves
// the visited node up to the root by a sequence of rotations (a "splay"),
// giving an amortized O(log n) bound across a sequence of operations rather
// than AVL's worst-case-per-operation bound.
//
// The reference this package is ported from leans on Rust's Drop to splay a
// walker's final position to the root automatically when it goes out of
// scope. Go has no destructors, so the same discipline is made explicit:
// Walker.Close splays the current position to the root, and every
// Tree-level convenience method (Insert, Delete, Search's callers) calls it
// before returning. Callers using a raw Walker directly (segment isolation)
// must call Close themselves when done, the same way they'd Close a file or
// unlock a mutex.
package splay

import (
	"github.com/Lz-Gustavo/lazyseq/algebra"
	"github.com/Lz-Gustavo/lazyseq/locator"
	"github.com/Lz-Gustavo/lazyseq/tree"
)

type node[V, S, A any] = tree.Node[V, S, A, struct{}]

// Tree is a binary search tree with no persistent balance bookkeeping: its
// shape after any sequence of operations is whatever the most recent splays
// left behind.
type Tree[V, S, A any] struct {
	alg  algebra.Algebra[V, S, A]
	root *node[V, S, A]
}

// New returns an empty tree over alg.
func New[V, S, A any](alg algebra.Algebra[V, S, A]) *Tree[V, S, A] {
	return &Tree[V, S, A]{alg: alg}
}

// FromSlice builds a tree holding values in order, inserting each one at the
// rightward frontier of the previous insertion's position. Unlike AVL's
// FromSlice, this leaves the tree as a single left-leaning path (each new
// value is splayed to the root, with every earlier value in its left
// subtree) until something splays it back into shape; the O(n) bulk build still dominates any later
// rebalancing cost for a freshly built tree used once.
func FromSlice[V, S, A any](alg algebra.Algebra[V, S, A], values []V) *Tree[V, S, A] {
	t := New(alg)
	for _, v := range values {
		w := t.Walker()
		for w.w.GoRight() == nil {
		}
		w.Insert(v)
		w.Close()
	}
	return t
}

// IsEmpty reports whether the tree holds no values.
func (t *Tree[V, S, A]) IsEmpty() bool { return t.root == nil }

// SubtreeSummary returns the summary of the whole tree.
func (t *Tree[V, S, A]) SubtreeSummary() S { return tree.SubtreeSummary(t.alg, t.root) }

// Walker opens a walker positioned at the tree's root. The caller is
// responsible for calling Close when done with it.
func (t *Tree[V, S, A]) Walker() *Walker[V, S, A] {
	return &Walker[V, S, A]{w: tree.NewWalker[V, S, A, struct{}](t.alg, &t.root)}
}

// Values appends every value loc accepts, in order, to dst and returns it.
func (t *Tree[V, S, A]) Values(loc locator.Locator[V, S], dst []V) []V {
	tree.IterSubtree(t.alg, t.root, loc, t.alg.IdentitySummary, t.alg.IdentitySummary, func(v V) {
		dst = append(dst, v)
	})
	return dst
}

// SegmentSummary returns the combined summary of every value loc accepts.
// Computed by the same direct recursion AVL uses; isolating the segment
// first (as ActSegment does, for reversal) isn't needed for a read-only
// summary.
func (t *Tree[V, S, A]) SegmentSummary(loc locator.Locator[V, S]) S {
	return tree.SegmentSummary(t.alg, t.root, loc, t.alg.IdentitySummary, t.alg.IdentitySummary)
}

// ActSegment applies action to every value loc accepts. Unlike AVL, this
// never refuses a reversing action: the segment is first isolated into its
// own subtree by splaying, then the action is applied as a single O(1)
// ActSubtree on that subtree's root, whatever its reverse bit.
func (t *Tree[V, S, A]) ActSegment(loc locator.Locator[V, S], action A) {
	w := t.IsolateSegment(loc)
	w.w.ActSubtree(action)
	w.Close()
}

// Search walks from the root guided by loc until loc accepts a node or an
// empty position is reached, and returns the resulting walker without
// splaying it. The caller must call Close (or continue navigating and
// close later) when done.
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
			_ = w.w.GoLeft()
		case locator.GoRight:
			_ = w.w.GoRight()
		}
	}
}

// Find locates the node loc accepts (if any), splays it to the root, and
// reports its value.
func (t *Tree[V, S, A]) Find(loc locator.Locator[V, S]) (V, bool) {
	w := Search(t, loc)
	defer w.Close()
	return w.w.Value()
}

// Insert places value at the position loc locates an empty gap at, then
// splays the new node to the root. Returns tree.ErrOccupiedPosition if loc
// doesn't lead to an empty position.
func (t *Tree[V, S, A]) Insert(loc locator.Locator[V, S], value V) error {
	w := Search(t, loc)
	defer w.Close()
	return w.insert(value)
}

// Delete removes the node loc accepts (if any) and reports its value.
func (t *Tree[V, S, A]) Delete(loc locator.Locator[V, S]) (V, bool) {
	w := Search(t, loc)
	if w.w.IsEmpty() {
		w.Close()
		var zero V
		return zero, false
	}
	v, _ := w.delete()
	w.Close()
	return v, true
}

// Walker is a cursor into a splay tree. Besides the basic walker surface,
// it provides the splaying operations and Close, the explicit replacement
// for the reference implementation's Drop-triggered auto-splay.
type Walker[V, S, A any] struct {
	w *tree.Walker[V, S, A, struct{}]
}

// IsEmpty reports whether the current position holds no node.
func (w *Walker[V, S, A]) IsEmpty() bool { return w.w.IsEmpty() }

// Depth returns the walker's distance from the root.
func (w *Walker[V, S, A]) Depth() int { return w.w.Depth() }

// Value returns the current node's value.
func (w *Walker[V, S, A]) Value() (V, bool) { return w.w.Value() }

// ValueMut returns a pointer to the current node's value.
func (w *Walker[V, S, A]) ValueMut() *V { return w.w.ValueMut() }

// SubtreeSummary returns the summary of the current position's subtree.
func (w *Walker[V, S, A]) SubtreeSummary() S { return w.w.SubtreeSummary() }

// GoLeft descends into the current node's left child.
func (w *Walker[V, S, A]) GoLeft() error { return w.w.GoLeft() }

// GoRight descends into the current node's right child.
func (w *Walker[V, S, A]) GoRight() error { return w.w.GoRight() }

// ActSubtree composes action into the current node's pending.
func (w *Walker[V, S, A]) ActSubtree(action A) { w.w.ActSubtree(action) }

// Insert places value at the current empty position, leaving the walker at
// the new node; it does not splay. Returns tree.ErrOccupiedPosition if the
// position is occupied. The caller must still call Close afterward, which
// splays the new node to the root.
func (w *Walker[V, S, A]) Insert(value V) error { return w.insert(value) }

// Delete removes the current node, splicing its in-order successor into
// its place. The caller must still call Close afterward.
func (w *Walker[V, S, A]) Delete() (V, error) { return w.delete() }

// Close splays the current position to the root. Every Walker obtained from
// this package must have Close called on it exactly once, the point at
// which the reference implementation's Drop impl would have run.
func (w *Walker[V, S, A]) Close() { w.splay() }

func (w *Walker[V, S, A]) rotSide(bringRightUp bool) {
	if bringRightUp {
		w.w.RotLeft(nil)
	} else {
		w.w.RotRight(nil)
	}
}

// stepToward performs a single splay step aimed at reaching target: one
// zig, or one zig-zig/zig-zag double rotation, moving the current position
// one or two levels closer to target. Landing exactly one level above
// target always takes a single zig rather than a double step, so splaying
// to a nonzero target depth never overshoots it. Mirrors the reference
// implementation's splay_step_depth, including its early return for an
// empty current position, which ascends one level and rebuilds that node's
// summary (this only ever matters for the very first step, taken right after
// a search that landed on a gap or after a subtree was taken out).
func (w *Walker[V, S, A]) stepToward(target int) {
	if w.w.IsEmpty() {
		if _, err := w.w.GoUp(); err == nil {
			w.w.Rebuild()
		}
		return
	}
	b1, err := w.w.GoUp()
	if err != nil {
		return
	}
	if w.w.Depth() == target {
		// One level above target: a single zig lands exactly on it.
		w.rotSide(!b1)
		return
	}
	b2, _ := w.w.IsLeftChild()
	if b1 == b2 {
		// zig-zig: both links the same direction, parent rotates past
		// grandparent first, then the node rotates past its new parent.
		w.w.RotUp(nil)
		w.rotSide(!b1)
	} else {
		// zig-zag: the two links alternate direction.
		w.rotSide(!b1)
		w.w.RotUp(nil)
	}
}

// splayToDepth repeatedly steps until the current position is depth levels
// from the root.
func (w *Walker[V, S, A]) splayToDepth(depth int) {
	for w.w.Depth() != depth {
		w.stepToward(depth)
	}
}

func (w *Walker[V, S, A]) splay() { w.splayToDepth(0) }

// insert places value at the current empty position, leaving the walker
// positioned at the new node. The caller is expected to Close the walker
// afterward, splaying the new value to the root so it's the cheapest thing
// to reach next.
func (w *Walker[V, S, A]) insert(value V) error {
	return w.w.InsertAtEmpty(value, struct{}{})
}

// delete removes the current node, splicing its in-order successor (found
// by descending the detached right subtree's own leftward spine) into its
// place. Balance isn't restored by an explicit rebalance loop the way AVL
// does it: the inner walker used to find the successor is closed (splayed)
// before being spliced back in, so the successor arrives at the join
// already balanced relative to its own former subtree.
func (w *Walker[V, S, A]) delete() (V, error) {
	var zero V
	n := w.w.TakeSubtree()
	if n == nil {
		return zero, tree.ErrEmptyPosition
	}
	tree.Propagate(w.w.Alg(), n)
	if n.Right == nil {
		w.w.PutSubtree(n.Left)
		return n.Value, nil
	}

	rightRoot := n.Right
	succ := &Walker[V, S, A]{w: tree.NewWalker[V, S, A, struct{}](w.w.Alg(), &rightRoot)}
	for succ.w.GoLeft() == nil {
	}
	_, _ = succ.w.GoUp()
	succ.Close()

	successor := succ.w.TakeSubtree()
	successor.Left = n.Left
	tree.Rebuild(w.w.Alg(), successor)
	w.w.PutSubtree(successor)
	return n.Value, nil
}

// previousFilled moves w up to the nearest in-order predecessor of its
// current (possibly empty) position, returning whether one was found. On
// failure w ends up at the root.
func previousFilled[V, S, A any](w *tree.Walker[V, S, A, struct{}]) bool {
	for {
		wasLeft, err := w.GoUp()
		if err != nil {
			return false
		}
		if !wasLeft {
			return true
		}
	}
}

// nextFilled is the mirror of previousFilled.
func nextFilled[V, S, A any](w *tree.Walker[V, S, A, struct{}]) bool {
	for {
		wasLeft, err := w.GoUp()
		if err != nil {
			return false
		}
		if wasLeft {
			return true
		}
	}
}

// IsolateSegment restructures the tree so that every value loc accepts
// becomes exactly one contiguous subtree, and returns a walker positioned
// at that subtree's root (which may be empty, if loc accepts nothing). The
// caller must Close the returned walker when done with it.
//
// The approach: locate the gap immediately left of the region and splay to
// it (bringing the predecessor, if any, to the root); locate the gap
// immediately right of the region and splay to depth 1 if a predecessor
// exists (keeping it at the root, with the successor as its direct child)
// or to the root otherwise; the located region is then exactly the node at
// the current position's remaining outer child.
func (t *Tree[V, S, A]) IsolateSegment(loc locator.Locator[V, S]) *Walker[V, S, A] {
	w1 := Search(t, locator.LeftEdgeOf(loc))
	hasPred := previousFilled(w1.w)
	w1.Close()

	w2 := Search(t, locator.RightEdgeOf(loc))
	hasSucc := nextFilled(w2.w)
	switch {
	case hasSucc:
		depth := 0
		if hasPred {
			depth = 1
		}
		w2.splayToDepth(depth)
		_ = w2.w.GoLeft()
	case hasPred:
		_ = w2.w.GoRight()
	}
	return w2
}

// ConcatenateRight splices other onto the end of t's sequence, emptying
// other. Every value in other must belong after every value in t; this
// isn't checked.
func (t *Tree[V, S, A]) ConcatenateRight(other *Tree[V, S, A]) {
	if other.root == nil {
		return
	}
	if t.root == nil {
		t.root = other.root
		other.root = nil
		return
	}
	w := t.Walker()
	for w.w.GoRight() == nil {
	}
	_, _ = w.w.GoUp()
	w.splay()
	t.root.Right = other.root
	tree.Rebuild(t.alg, t.root)
	other.root = nil
}

// SplitRight removes and returns loc's region together with everything to
// its right, leaving t holding only what's strictly to the left.
func (t *Tree[V, S, A]) SplitRight(loc locator.Locator[V, S]) *Tree[V, S, A] {
	// "region, or anything right of it" is loc widened so that only nodes
	// loc already sends right of the region (strictly left of it) stay
	// outside the isolated half; everything else, including nodes loc
	// would send left (which are themselves right of the region), joins it.
	extended := func(left S, v V, right S) locator.Result {
		if loc(left, v, right) == locator.GoRight {
			return locator.GoRight
		}
		return locator.Accept
	}
	w := t.IsolateSegment(extended)
	cut := w.w.TakeSubtree()
	w.Close()

	right := New(t.alg)
	right.root = cut
	return right
}

// SplitLeft is the mirror of SplitRight: it removes and returns everything
// strictly to the left of loc's region together with the region itself,
// leaving t holding only what's strictly to the right.
func (t *Tree[V, S, A]) SplitLeft(loc locator.Locator[V, S]) *Tree[V, S, A] {
	// Mirror of SplitRight's widening: nodes loc sends left of the region
	// (strictly right of it) stay outside the isolated half.
	extended := func(left S, v V, right S) locator.Result {
		if loc(left, v, right) == locator.GoLeft {
			return locator.GoLeft
		}
		return locator.Accept
	}
	w := t.IsolateSegment(extended)
	cut := w.w.TakeSubtree()
	w.Close()

	leftHalf := New(t.alg)
	leftHalf.root = cut
	return leftHalf
}
