package algebra

// Size is a bare element-count summary, for callers that only need
// positional indexing and no other aggregate (sum, min/max, ...).
type Size struct {
	N int
}

// PlainSized returns the algebra for a tree that carries values of type V
// with no summary beyond size and no action at all. The action type is
// struct{}, so ActSegment is only ever called with the zero value — this
// instance exists for by-index insert/delete/find workloads that never
// need a lazy update.
func PlainSized[V any]() Algebra[V, Size, struct{}] {
	return Algebra[V, Size, struct{}]{
		IdentitySummary: Size{},
		Combine:         func(l, r Size) Size { return Size{N: l.N + r.N} },
		Singleton:       func(V) Size { return Size{N: 1} },

		IdentityAction: struct{}{},
		Compose:        func(struct{}, struct{}) struct{} { return struct{}{} },
		IsIdentity:     func(struct{}) bool { return true },
		ApplyToValue:   func(struct{}, *V) {},
		ApplyToSummary: func(struct{}, *Size) {},
	}
}

// Reversible returns the algebra for a tree whose only action is "reverse
// this segment or don't" (a bool composed by XOR), carrying nothing beyond
// size in its summary. Size is symmetric under reversal, so SwapSummary is
// the identity.
func Reversible[V any]() Algebra[V, Size, bool] {
	return Algebra[V, Size, bool]{
		IdentitySummary: Size{},
		Combine:         func(l, r Size) Size { return Size{N: l.N + r.N} },
		Singleton:       func(V) Size { return Size{N: 1} },

		IdentityAction: false,
		Compose:        func(a, b bool) bool { return a != b },
		IsIdentity:     func(a bool) bool { return !a },
		ApplyToValue:   func(bool, *V) {},
		ApplyToSummary: func(bool, *Size) {},

		Reversed:    func(a bool) bool { return a },
		SwapSummary: func(s Size) Size { return s },
	}
}
