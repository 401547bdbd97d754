package tree

import (
	"github.com/Lz-Gustavo/lazyseq/algebra"
	"github.com/Lz-Gustavo/lazyseq/locator"
	"github.com/Lz-Gustavo/lazyseq/telescope"
)

// Walker is a mutable cursor into a tree: a telescope over the chain of
// links from the root down to the current position, paired with the
// left/right context summaries (everything outside the current subtree, on
// each side) needed to evaluate a locator without re-walking from the root.
//
// The telescope is instantiated over *Node itself, so each frame is a
// **Node: the address of the link slot that holds the position (the root
// variable's address, or a parent's &Left/&Right), not just the node it
// currently points to. That's what lets PutSubtree/TakeSubtree splice a
// subtree in or out in place.
type Walker[V, S, A, X any] struct {
	alg algebra.Algebra[V, S, A]
	tel *telescope.Telescope[*Node[V, S, A, X]]

	// leftCtx[i]/rightCtx[i] are the far left/right summaries for the
	// position at depth i. Only meaningful immediately after a guided
	// descent (GoLeft/GoRight); stale after a rotation, but nothing reads
	// them without first redescending, so that's never observed.
	leftCtx  []S
	rightCtx []S
}

// NewWalker starts a walker at *root.
func NewWalker[V, S, A, X any](alg algebra.Algebra[V, S, A], root **Node[V, S, A, X]) *Walker[V, S, A, X] {
	return &Walker[V, S, A, X]{
		alg:      alg,
		tel:      telescope.New(root),
		leftCtx:  []S{alg.IdentitySummary},
		rightCtx: []S{alg.IdentitySummary},
	}
}

// Depth returns the walker's distance from the root; the root itself is
// depth 0.
func (w *Walker[V, S, A, X]) Depth() int {
	return w.tel.Depth() - 1
}

// Alg returns the algebra the walker was built with, for balancer code that
// needs to call the free tree functions (Rebuild, ActSubtree, ...)
// directly on a node it's holding outside the walker's own cursor.
func (w *Walker[V, S, A, X]) Alg() algebra.Algebra[V, S, A] {
	return w.alg
}

func (w *Walker[V, S, A, X]) top() *Node[V, S, A, X] {
	return *w.tel.Top()
}

// IsEmpty reports whether the current position holds no node.
func (w *Walker[V, S, A, X]) IsEmpty() bool {
	return w.top() == nil
}

// Value returns the current node's value and true, or the zero value and
// false at an empty position.
func (w *Walker[V, S, A, X]) Value() (V, bool) {
	n := w.top()
	if n == nil {
		var zero V
		return zero, false
	}
	return n.Value, true
}

// ValueMut returns a pointer to the current node's value, or nil at an
// empty position. The caller must call Rebuild (or a method that does so)
// after mutating through it so the cached summaries stay consistent.
func (w *Walker[V, S, A, X]) ValueMut() *V {
	n := w.top()
	if n == nil {
		return nil
	}
	return &n.Value
}

// Node returns the raw node at the current position, or nil. Exposed for
// balancer packages that need to read or rewrite the per-node augmentation.
func (w *Walker[V, S, A, X]) Node() *Node[V, S, A, X] {
	return w.top()
}

// Rebuild recomputes the current node's cached summary from its children.
func (w *Walker[V, S, A, X]) Rebuild() {
	Rebuild(w.alg, w.top())
}

// NodeSummary returns the summary of just the current node's value.
func (w *Walker[V, S, A, X]) NodeSummary() S {
	return NodeSummary(w.alg, w.top())
}

// SubtreeSummary returns the summary of the entire subtree at the current
// position.
func (w *Walker[V, S, A, X]) SubtreeSummary() S {
	return SubtreeSummary(w.alg, w.top())
}

// LeftSubtreeSummary returns the summary of the current node's left child's
// subtree, or the identity summary at an empty position or with no left
// child.
func (w *Walker[V, S, A, X]) LeftSubtreeSummary() S {
	n := w.top()
	if n == nil {
		return w.alg.IdentitySummary
	}
	return SubtreeSummary(w.alg, n.Left)
}

// RightSubtreeSummary is the mirror of LeftSubtreeSummary.
func (w *Walker[V, S, A, X]) RightSubtreeSummary() S {
	n := w.top()
	if n == nil {
		return w.alg.IdentitySummary
	}
	return SubtreeSummary(w.alg, n.Right)
}

// FarLeftSummary returns the summary of everything strictly to the left of
// the current subtree.
func (w *Walker[V, S, A, X]) FarLeftSummary() S {
	return w.leftCtx[len(w.leftCtx)-1]
}

// FarRightSummary returns the summary of everything strictly to the right
// of the current subtree.
func (w *Walker[V, S, A, X]) FarRightSummary() S {
	return w.rightCtx[len(w.rightCtx)-1]
}

// LeftSummary returns the summary of everything strictly to the left of the
// current node itself (far left context plus the current node's left
// child, if any).
func (w *Walker[V, S, A, X]) LeftSummary() S {
	far := w.FarLeftSummary()
	return w.alg.Combine(far, w.LeftSubtreeSummary())
}

// RightSummary is the mirror of LeftSummary.
func (w *Walker[V, S, A, X]) RightSummary() S {
	far := w.FarRightSummary()
	return w.alg.Combine(w.RightSubtreeSummary(), far)
}

// GoLeft descends into the current node's left child, propagating the
// current node first. Returns ErrEmptyPosition at an empty position.
func (w *Walker[V, S, A, X]) GoLeft() error {
	n := w.top()
	if n == nil {
		return ErrEmptyPosition
	}
	Propagate(w.alg, n)
	rc := w.alg.Combine(w.alg.Combine(NodeSummary(w.alg, n), SubtreeSummary(w.alg, n.Right)), w.FarRightSummary())
	lc := w.FarLeftSummary()
	w.tel.Extend(func(slot **Node[V, S, A, X]) **Node[V, S, A, X] { return &(*slot).Left })
	w.leftCtx = append(w.leftCtx, lc)
	w.rightCtx = append(w.rightCtx, rc)
	return nil
}

// GoRight is the mirror of GoLeft.
func (w *Walker[V, S, A, X]) GoRight() error {
	n := w.top()
	if n == nil {
		return ErrEmptyPosition
	}
	Propagate(w.alg, n)
	lc := w.alg.Combine(w.FarLeftSummary(), w.alg.Combine(SubtreeSummary(w.alg, n.Left), NodeSummary(w.alg, n)))
	rc := w.FarRightSummary()
	w.tel.Extend(func(slot **Node[V, S, A, X]) **Node[V, S, A, X] { return &(*slot).Right })
	w.leftCtx = append(w.leftCtx, lc)
	w.rightCtx = append(w.rightCtx, rc)
	return nil
}

// GoUp pops the current frame and returns whether it was the left child of
// the resulting (parent) position. Refuses at the root.
func (w *Walker[V, S, A, X]) GoUp() (wasLeft bool, err error) {
	poppedSlot, err := w.tel.Pop()
	if err != nil {
		return false, ErrAtRoot
	}
	w.leftCtx = w.leftCtx[:len(w.leftCtx)-1]
	w.rightCtx = w.rightCtx[:len(w.rightCtx)-1]
	parent := w.top()
	return poppedSlot == &parent.Left, nil
}

// IsLeftChild reports whether the current position is its parent's left
// child, without moving the walker. The second return is false at the root,
// where the question doesn't apply.
func (w *Walker[V, S, A, X]) IsLeftChild() (isLeft, hasParent bool) {
	if w.tel.Depth() < 2 {
		return false, false
	}
	parent := *w.tel.Second()
	return w.tel.Top() == &parent.Left, true
}

// RotLeft performs RotateLeft at the current position.
func (w *Walker[V, S, A, X]) RotLeft(augRebuild func(*Node[V, S, A, X])) {
	RotateLeft(w.alg, w.tel.Top(), augRebuild)
}

// RotRight performs RotateRight at the current position.
func (w *Walker[V, S, A, X]) RotRight(augRebuild func(*Node[V, S, A, X])) {
	RotateRight(w.alg, w.tel.Top(), augRebuild)
}

// RotUp rotates the current position up into its parent's place: a zig
// step. Refuses at the root. Returns whether the current position was the
// left child before the rotation; afterward the walker is left positioned
// at the same frame, which now holds the promoted node.
func (w *Walker[V, S, A, X]) RotUp(augRebuild func(*Node[V, S, A, X])) (wasLeft bool, err error) {
	childSlot, err := w.tel.Pop()
	if err != nil {
		return false, ErrAtRoot
	}
	w.leftCtx = w.leftCtx[:len(w.leftCtx)-1]
	w.rightCtx = w.rightCtx[:len(w.rightCtx)-1]

	parentSlot := w.tel.Top()
	wasLeft = childSlot == &(*parentSlot).Left
	if wasLeft {
		RotateRight(w.alg, parentSlot, augRebuild)
	} else {
		RotateLeft(w.alg, parentSlot, augRebuild)
	}
	return wasLeft, nil
}

// ActSubtree composes action into the current node's pending.
func (w *Walker[V, S, A, X]) ActSubtree(action A) {
	ActSubtree(w.alg, w.top(), action)
}

// ActNode applies action directly to the current node's value.
func (w *Walker[V, S, A, X]) ActNode(action A) {
	ActNode(w.alg, w.top(), action)
}

// ActLeftSubtree applies action (lazily) to the current node's left child.
func (w *Walker[V, S, A, X]) ActLeftSubtree(action A) {
	ActLeftSubtree(w.alg, w.top(), action)
}

// ActRightSubtree applies action (lazily) to the current node's right
// child.
func (w *Walker[V, S, A, X]) ActRightSubtree(action A) {
	ActRightSubtree(w.alg, w.top(), action)
}

// TakeSubtree removes and returns the subtree at the current position,
// leaving it empty.
func (w *Walker[V, S, A, X]) TakeSubtree() *Node[V, S, A, X] {
	slot := w.tel.Top()
	n := *slot
	*slot = nil
	return n
}

// PutSubtree installs n at the current position, overwriting whatever was
// there.
func (w *Walker[V, S, A, X]) PutSubtree(n *Node[V, S, A, X]) {
	*w.tel.Top() = n
}

// InsertAtEmpty installs a fresh leaf holding value at the current
// position. Returns ErrOccupiedPosition if the position already holds a
// node.
func (w *Walker[V, S, A, X]) InsertAtEmpty(value V, aug X) error {
	slot := w.tel.Top()
	if *slot != nil {
		return ErrOccupiedPosition
	}
	*slot = &Node[V, S, A, X]{
		Value:   value,
		Summary: w.alg.Singleton(value),
		Pending: w.alg.IdentityAction,
		Aug:     aug,
	}
	return nil
}

// Locate re-evaluates loc at the current position, using the walker's live
// context summaries. The bool is false at an empty position, where there
// is nothing to locate against.
func (w *Walker[V, S, A, X]) Locate(loc locator.Locator[V, S]) (locator.Result, bool) {
	n := w.top()
	if n == nil {
		return 0, false
	}
	left := w.LeftSummary()
	right := w.RightSummary()
	return loc(left, n.Value, right), true
}
