// Package tree implements the balancer-agnostic engine shared by every
// concrete sequence tree: the augmented node layout, lazy-action
// propagation, summary rebuilding, primitive rotations, and the
// telescope-based walker that balancers build their insert/delete/rebalance
// logic on top of.
//
// A balancer (AVL, splay, ...) parameterizes Node with its own per-node
// augmentation type X (AVL: a rank byte; splay: an empty struct) and builds
// its rebalancing policy on top of the primitives exposed here. Nothing in
// this package decides balance policy.
package tree

import (
	"github.com/Lz-Gustavo/lazyseq/algebra"
	"github.com/Lz-Gustavo/lazyseq/locator"
)

// Node is a single occupied position in a sequence tree. A tree is either
// empty (a nil *Node) or a single owned Node whose Left and Right are
// themselves trees.
type Node[V, S, A, X any] struct {
	Value V
	Left  *Node[V, S, A, X]
	Right *Node[V, S, A, X]

	// Summary caches the summary of the entire subtree rooted here,
	// including this node, as if Pending had already been applied to
	// every descendant (but not yet written into them).
	Summary S
	// Pending is an action logically applied to this node's entire
	// subtree, excluding the node's own Value, but not yet pushed down
	// into Left and Right.
	Pending A

	// Aug is balancer-private per-node bookkeeping: AVL stores a rank
	// here, splay leaves it unused.
	Aug X
}

// SubtreeSummary returns n's cached summary, or the identity summary for an
// empty subtree.
func SubtreeSummary[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X]) S {
	if n == nil {
		return alg.IdentitySummary
	}
	return n.Summary
}

// NodeSummary returns the summary of just n's own value, or the identity
// summary if n is empty. A node's own Value is never itself subject to a
// pending action (pending only ever targets descendants), so this never
// needs to consult Pending.
func NodeSummary[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X]) S {
	if n == nil {
		return alg.IdentitySummary
	}
	return alg.Singleton(n.Value)
}

// Propagate pushes n's pending action one level down into its children,
// composing it into each child's own pending and eagerly applying it to
// each child's cached summary and value, then clears n's pending. A no-op
// when n is empty or n's pending is already the identity.
//
// If the pending action's reverse bit is set, the children are swapped
// first, and the bit is carried into both (now-repositioned) children's
// pending before the rest of propagation runs. Each repositioned child's
// own cached summary also has its asymmetric components symmetrized via
// alg.SwapSummary, since that summary is read by ancestors (Rebuild,
// SubtreeSummary) without forcing the child's own Propagate first.
func Propagate[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X]) {
	if n == nil || alg.IsIdentity(n.Pending) {
		return
	}
	action := n.Pending
	reversed := alg.Reversed != nil && alg.Reversed(action)
	if reversed {
		n.Left, n.Right = n.Right, n.Left
	}
	pushInto(alg, n.Left, action, reversed)
	pushInto(alg, n.Right, action, reversed)
	n.Pending = alg.IdentityAction
}

func pushInto[V, S, A, X any](alg algebra.Algebra[V, S, A], child *Node[V, S, A, X], action A, reversed bool) {
	if child == nil {
		return
	}
	if reversed && alg.SwapSummary != nil {
		child.Summary = alg.SwapSummary(child.Summary)
	}
	child.Pending = alg.Compose(action, child.Pending)
	alg.ApplyToSummary(action, &child.Summary)
	alg.ApplyToValue(action, &child.Value)
}

// Rebuild recomputes n's cached subtree summary from its children's cached
// summaries and its own value. The children must already be propagated (or
// otherwise known to have a pending of identity), since Rebuild does not
// itself propagate anything.
func Rebuild[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X]) {
	if n == nil {
		return
	}
	n.Summary = alg.Combine3(SubtreeSummary(alg, n.Left), n.Value, SubtreeSummary(alg, n.Right))
}

// ActSubtree composes action into n's pending and immediately applies it to
// n's cached subtree summary and to n's own value, deferring the effect on
// n's children. A no-op if n is empty.
//
// n is addressed monolithically here, from outside: if action reverses, the
// symmetrization that Propagate would otherwise apply while pushing the
// action one level down into n as someone else's child is applied eagerly
// here instead, since n's cached summary may be read by an ancestor before
// n itself is ever propagated.
func ActSubtree[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X], action A) {
	if n == nil {
		return
	}
	if alg.Reversed != nil && alg.Reversed(action) && alg.SwapSummary != nil {
		n.Summary = alg.SwapSummary(n.Summary)
	}
	n.Pending = alg.Compose(action, n.Pending)
	alg.ApplyToSummary(action, &n.Summary)
	alg.ApplyToValue(action, &n.Value)
}

// ActNode propagates n (so its children hold a consistent lazy state) and
// then applies action directly to n's own value, rebuilding n's summary
// from the result. A no-op if n is empty.
func ActNode[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X], action A) {
	if n == nil {
		return
	}
	Propagate(alg, n)
	alg.ApplyToValue(action, &n.Value)
	Rebuild(alg, n)
}

// ActLeftSubtree propagates n and then applies action (lazily) to n.Left,
// rebuilding n's summary. A no-op if n is empty.
func ActLeftSubtree[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X], action A) {
	if n == nil {
		return
	}
	Propagate(alg, n)
	ActSubtree(alg, n.Left, action)
	Rebuild(alg, n)
}

// ActRightSubtree propagates n and then applies action (lazily) to n.Right,
// rebuilding n's summary. A no-op if n is empty.
func ActRightSubtree[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X], action A) {
	if n == nil {
		return
	}
	Propagate(alg, n)
	ActSubtree(alg, n.Right, action)
	Rebuild(alg, n)
}

// RotateLeft performs a standard BST left rotation at *slot: n's right
// child rises to take n's place, n becomes that child's new left child, and
// the former right-left grandchild becomes n's new right child.
//
// n and its right child are propagated before the rotation (non-commuting
// pending actions must never be carried across a structural change), and
// both affected nodes are rebuilt afterward in bottom-up order (n first,
// then the new subtree root). augRebuild, if non-nil, is invoked on each of
// the two nodes right after its structural Rebuild, letting a balancer
// recompute its own augmentation (e.g. AVL rank).
func RotateLeft[V, S, A, X any](alg algebra.Algebra[V, S, A], slot **Node[V, S, A, X], augRebuild func(*Node[V, S, A, X])) {
	n := *slot
	Propagate(alg, n)
	son := n.Right
	Propagate(alg, son)

	n.Right = son.Left
	son.Left = n

	Rebuild(alg, n)
	if augRebuild != nil {
		augRebuild(n)
	}
	Rebuild(alg, son)
	if augRebuild != nil {
		augRebuild(son)
	}
	*slot = son
}

// RotateRight is the mirror image of RotateLeft: n's left child rises to
// take n's place.
func RotateRight[V, S, A, X any](alg algebra.Algebra[V, S, A], slot **Node[V, S, A, X], augRebuild func(*Node[V, S, A, X])) {
	n := *slot
	Propagate(alg, n)
	son := n.Left
	Propagate(alg, son)

	n.Left = son.Right
	son.Right = n

	Rebuild(alg, n)
	if augRebuild != nil {
		augRebuild(n)
	}
	Rebuild(alg, son)
	if augRebuild != nil {
		augRebuild(son)
	}
	*slot = son
}

// IterSubtree calls visit on every value within loc's accepted region, in
// in-order. Nodes are propagated as they're visited, since laziness is
// resolved by the traversal rather than by a separate pass. Finite,
// non-restartable.
func IterSubtree[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X], loc locator.Locator[V, S], leftCtx, rightCtx S, visit func(V)) {
	if n == nil {
		return
	}
	Propagate(alg, n)

	leftOfNode := alg.Combine(leftCtx, SubtreeSummary(alg, n.Left))
	rightOfNode := alg.Combine(SubtreeSummary(alg, n.Right), rightCtx)
	res := loc(leftOfNode, n.Value, rightOfNode)

	if res != locator.GoRight {
		leftChildRight := alg.Combine(alg.Combine(NodeSummary(alg, n), SubtreeSummary(alg, n.Right)), rightCtx)
		IterSubtree(alg, n.Left, loc, leftCtx, leftChildRight, visit)
	}
	if res == locator.Accept {
		visit(n.Value)
	}
	if res != locator.GoLeft {
		rightChildLeft := alg.Combine(leftCtx, alg.Combine(SubtreeSummary(alg, n.Left), NodeSummary(alg, n)))
		IterSubtree(alg, n.Right, loc, rightChildLeft, rightCtx, visit)
	}
}

// collectRightOfGap combines the summary of every value in n's subtree that
// lies strictly after the gap designated by gap, a splitting locator built
// from locator.LeftEdgeOf (never Accept). At each node it either finds the
// gap still somewhere inside the left child (in which case the node itself
// and its entire right child already lie after the gap, and are folded in
// at O(1) via SubtreeSummary while the search continues into the left
// child) or finds the gap at or past the right child (in which case the
// node and its left child lie before the gap and are skipped entirely).
// Visits only the O(log n) nodes on the path to the gap.
func collectRightOfGap[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X], gap locator.Locator[V, S], leftCtx, rightCtx S) S {
	if n == nil {
		return alg.IdentitySummary
	}
	Propagate(alg, n)

	left := alg.Combine(leftCtx, SubtreeSummary(alg, n.Left))
	right := alg.Combine(SubtreeSummary(alg, n.Right), rightCtx)
	if gap(left, n.Value, right) == locator.GoRight {
		rightChildLeft := alg.Combine(leftCtx, alg.Combine(SubtreeSummary(alg, n.Left), NodeSummary(alg, n)))
		return collectRightOfGap(alg, n.Right, gap, rightChildLeft, rightCtx)
	}
	leftChildRight := alg.Combine(alg.Combine(NodeSummary(alg, n), SubtreeSummary(alg, n.Right)), rightCtx)
	rest := collectRightOfGap(alg, n.Left, gap, leftCtx, leftChildRight)
	return alg.Combine3(rest, n.Value, SubtreeSummary(alg, n.Right))
}

// collectLeftOfGap is collectRightOfGap's mirror: it combines everything in
// n's subtree strictly before the gap designated by gap, a splitting
// locator built from locator.RightEdgeOf.
func collectLeftOfGap[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X], gap locator.Locator[V, S], leftCtx, rightCtx S) S {
	if n == nil {
		return alg.IdentitySummary
	}
	Propagate(alg, n)

	left := alg.Combine(leftCtx, SubtreeSummary(alg, n.Left))
	right := alg.Combine(SubtreeSummary(alg, n.Right), rightCtx)
	if gap(left, n.Value, right) == locator.GoLeft {
		leftChildRight := alg.Combine(alg.Combine(NodeSummary(alg, n), SubtreeSummary(alg, n.Right)), rightCtx)
		return collectLeftOfGap(alg, n.Left, gap, leftCtx, leftChildRight)
	}
	rightChildLeft := alg.Combine(leftCtx, alg.Combine(SubtreeSummary(alg, n.Left), NodeSummary(alg, n)))
	rest := collectLeftOfGap(alg, n.Right, gap, rightChildLeft, rightCtx)
	return alg.Combine3(SubtreeSummary(alg, n.Left), n.Value, rest)
}

// SegmentSummary computes the combined summary of every value loc accepts
// within n's subtree, via direct recursion: descend only where loc
// disagrees about direction, until loc accepts a node. That node is where
// the segment straddles the tree, not necessarily where it's contained
// entirely: the node's own value always belongs to the segment, but its two
// children may each only partially. The two sides are resolved by walking
// down toward the segment's near boundary in each child, folding in
// whichever off-path subtrees are found to lie entirely within the segment
// along the way. Matches the segment's summary regardless of tree shape, in
// time proportional to the tree's height plus the number of boundary nodes
// visited.
func SegmentSummary[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X], loc locator.Locator[V, S], leftCtx, rightCtx S) S {
	if n == nil {
		return alg.IdentitySummary
	}
	Propagate(alg, n)

	left := alg.Combine(leftCtx, SubtreeSummary(alg, n.Left))
	right := alg.Combine(SubtreeSummary(alg, n.Right), rightCtx)
	leftChildRight := alg.Combine(alg.Combine(NodeSummary(alg, n), SubtreeSummary(alg, n.Right)), rightCtx)
	rightChildLeft := alg.Combine(leftCtx, alg.Combine(SubtreeSummary(alg, n.Left), NodeSummary(alg, n)))
	switch loc(left, n.Value, right) {
	case locator.GoLeft:
		return SegmentSummary(alg, n.Left, loc, leftCtx, leftChildRight)
	case locator.GoRight:
		return SegmentSummary(alg, n.Right, loc, rightChildLeft, rightCtx)
	default: // Accept: the segment straddles n.
		leftPart := collectRightOfGap(alg, n.Left, locator.LeftEdgeOf(loc), leftCtx, leftChildRight)
		rightPart := collectLeftOfGap(alg, n.Right, locator.RightEdgeOf(loc), rightChildLeft, rightCtx)
		return alg.Combine3(leftPart, n.Value, rightPart)
	}
}

// ActSegmentResult reports whether ActSegment could apply its action; it
// refuses when the action reverses order and the node where the segment
// straddles the tree isn't a leaf, since a segment sharing that node's
// subtree with anything else would need the tree restructured to reorder
// it, rather than a localized lazy update.
type ActSegmentResult int

const (
	// Applied means the action was composed into the tree successfully.
	Applied ActSegmentResult = iota
	// RefusedReversal means the action has its reverse bit set and the
	// located region's straddle point has children.
	RefusedReversal
)

// actRightOfGap is collectRightOfGap's mutating twin: it composes action
// into every value in n's subtree lying strictly after the gap designated
// by gap, applying it to whole off-path subtrees in O(1) via ActSubtree
// (deferring their own descendants and value) and recursing only along the
// path toward the gap, rebuilding each visited node's summary afterward.
func actRightOfGap[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X], gap locator.Locator[V, S], leftCtx, rightCtx S, action A) {
	if n == nil {
		return
	}
	Propagate(alg, n)

	left := alg.Combine(leftCtx, SubtreeSummary(alg, n.Left))
	right := alg.Combine(SubtreeSummary(alg, n.Right), rightCtx)
	if gap(left, n.Value, right) == locator.GoRight {
		rightChildLeft := alg.Combine(leftCtx, alg.Combine(SubtreeSummary(alg, n.Left), NodeSummary(alg, n)))
		actRightOfGap(alg, n.Right, gap, rightChildLeft, rightCtx, action)
		Rebuild(alg, n)
		return
	}
	leftChildRight := alg.Combine(alg.Combine(NodeSummary(alg, n), SubtreeSummary(alg, n.Right)), rightCtx)
	actRightOfGap(alg, n.Left, gap, leftCtx, leftChildRight, action)
	alg.ApplyToValue(action, &n.Value)
	ActSubtree(alg, n.Right, action)
	Rebuild(alg, n)
}

// actLeftOfGap is collectLeftOfGap's mutating twin: it composes action into
// every value in n's subtree lying strictly before the gap designated by
// gap.
func actLeftOfGap[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X], gap locator.Locator[V, S], leftCtx, rightCtx S, action A) {
	if n == nil {
		return
	}
	Propagate(alg, n)

	left := alg.Combine(leftCtx, SubtreeSummary(alg, n.Left))
	right := alg.Combine(SubtreeSummary(alg, n.Right), rightCtx)
	if gap(left, n.Value, right) == locator.GoLeft {
		leftChildRight := alg.Combine(alg.Combine(NodeSummary(alg, n), SubtreeSummary(alg, n.Right)), rightCtx)
		actLeftOfGap(alg, n.Left, gap, leftCtx, leftChildRight, action)
		Rebuild(alg, n)
		return
	}
	rightChildLeft := alg.Combine(leftCtx, alg.Combine(SubtreeSummary(alg, n.Left), NodeSummary(alg, n)))
	ActSubtree(alg, n.Left, action)
	alg.ApplyToValue(action, &n.Value)
	actLeftOfGap(alg, n.Right, gap, rightChildLeft, rightCtx, action)
	Rebuild(alg, n)
}

// ActSegment applies action to every value loc accepts within n's subtree,
// via the same direct recursion as SegmentSummary: descend until loc
// accepts a node, then resolve each child's partial membership by walking
// down toward the segment's near boundary, applying action to whichever
// off-path subtrees lie entirely within the segment in one O(1) ActSubtree
// step apiece.
//
// A reversing action can only be applied this way when the accepted node
// is a true leaf, making the segment exactly that one value: reordering a
// segment spanning more than one node needs a balancer that can restructure
// the tree to isolate the segment first (see the splay package's
// IsolateSegment), not a purely lazy composition.
func ActSegment[V, S, A, X any](alg algebra.Algebra[V, S, A], n *Node[V, S, A, X], loc locator.Locator[V, S], leftCtx, rightCtx S, action A) ActSegmentResult {
	if n == nil {
		return Applied
	}
	Propagate(alg, n)

	left := alg.Combine(leftCtx, SubtreeSummary(alg, n.Left))
	right := alg.Combine(SubtreeSummary(alg, n.Right), rightCtx)
	leftChildRight := alg.Combine(alg.Combine(NodeSummary(alg, n), SubtreeSummary(alg, n.Right)), rightCtx)
	rightChildLeft := alg.Combine(leftCtx, alg.Combine(SubtreeSummary(alg, n.Left), NodeSummary(alg, n)))
	switch loc(left, n.Value, right) {
	case locator.GoLeft:
		res := ActSegment(alg, n.Left, loc, leftCtx, leftChildRight, action)
		Rebuild(alg, n)
		return res
	case locator.GoRight:
		res := ActSegment(alg, n.Right, loc, rightChildLeft, rightCtx, action)
		Rebuild(alg, n)
		return res
	default: // Accept: the segment straddles n.
		if alg.Reversed != nil && alg.Reversed(action) {
			if n.Left != nil || n.Right != nil {
				return RefusedReversal
			}
			ActNode(alg, n, action)
			return Applied
		}
		actRightOfGap(alg, n.Left, locator.LeftEdgeOf(loc), leftCtx, leftChildRight, action)
		alg.ApplyToValue(action, &n.Value)
		actLeftOfGap(alg, n.Right, locator.RightEdgeOf(loc), rightChildLeft, rightCtx, action)
		Rebuild(alg, n)
		return Applied
	}
}
