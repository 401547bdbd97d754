// Package numeric provides a ready-made (Value, Summary, Action) algebra
// over ordered numbers: a running (count, sum, min, max) summary and an
// affine "multiply then add, optionally reversing order" action, directly
// grounded in the reference implementation's own example algebra. It's a
// convenience for tests and demos, not part of the tree engine itself.
package numeric

import (
	"math"

	"github.com/Lz-Gustavo/lazyseq/algebra"
)

// Number is any type the package can summarize and act on affinely.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Summary aggregates a contiguous run of numbers.
type Summary struct {
	Size     int
	Sum      float64
	Min, Max float64
}

// Action is an affine transform, optionally also reversing the order of
// the segment it's applied to. Composition is right-to-left function
// composition: Compose(a, b) means "apply b's affine map, then a's", with
// the reverse bits XORed (two reversals cancel out).
type Action struct {
	Reverse  bool
	Mul, Add float64
}

// Identity is the action that changes nothing.
var Identity = Action{Mul: 1}

// Algebra builds the numeric algebra for element type T. Summary.Min/Max
// start at +Inf/-Inf for the identity summary, so combining with an empty
// side is a no-op.
func Algebra[T Number]() algebra.Algebra[T, Summary, Action] {
	return algebra.Algebra[T, Summary, Action]{
		IdentitySummary: Summary{Min: posInf, Max: negInf},
		Combine:         combineSummary,
		Singleton: func(v T) Summary {
			f := float64(v)
			return Summary{Size: 1, Sum: f, Min: f, Max: f}
		},

		IdentityAction: Identity,
		Compose:        compose,
		IsIdentity:     func(a Action) bool { return !a.Reverse && a.Mul == 1 && a.Add == 0 },
		ApplyToValue: func(a Action, v *T) {
			*v = T(a.Mul*float64(*v) + a.Add)
		},
		ApplyToSummary: func(a Action, s *Summary) {
			*s = applyToSummary(a, *s)
		},

		Reversed: func(a Action) bool { return a.Reverse },
	}
}

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

func combineSummary(l, r Summary) Summary {
	return Summary{
		Size: l.Size + r.Size,
		Sum:  l.Sum + r.Sum,
		Min:  min(l.Min, r.Min),
		Max:  max(l.Max, r.Max),
	}
}

// compose returns the action equivalent to applying b first, then a: the
// standard affine composition a.Mul*(b.Mul*x+b.Add)+a.Add, with reverse
// bits combined by XOR.
func compose(a, b Action) Action {
	return Action{
		Reverse: a.Reverse != b.Reverse,
		Mul:     a.Mul * b.Mul,
		Add:     a.Mul*b.Add + a.Add,
	}
}

// applyToSummary applies an affine map to an aggregate summary. A negative
// multiplier flips which bound is the min and which is the max, mirroring
// what it does to every individual element.
func applyToSummary(a Action, s Summary) Summary {
	if s.Size == 0 {
		return s
	}
	newMin := a.Mul*s.Min + a.Add
	newMax := a.Mul*s.Max + a.Add
	if a.Mul < 0 {
		newMin, newMax = newMax, newMin
	}
	return Summary{
		Size: s.Size,
		Sum:  a.Mul*s.Sum + a.Add*float64(s.Size),
		Min:  newMin,
		Max:  newMax,
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
