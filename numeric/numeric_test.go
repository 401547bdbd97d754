package numeric

import "testing"

func TestSingletonAndCombine(t *testing.T) {
	alg := Algebra[int]()
	s := alg.Combine(alg.Singleton(3), alg.Singleton(5))
	if s != (Summary{Size: 2, Sum: 8, Min: 3, Max: 5}) {
		t.Fatalf("combine(3,5) = %+v", s)
	}
}

func TestComposeAppliesRightFirst(t *testing.T) {
	double := Action{Mul: 2, Add: 0}
	addOne := Action{Mul: 1, Add: 1}
	// compose(double, addOne) means "apply addOne, then double": 2*(x+1).
	composed := compose(double, addOne)
	var v float64 = 5
	got := composed.Mul*v + composed.Add
	if got != 12 {
		t.Fatalf("2*(5+1) = %v, want 12", got)
	}
}

func TestApplyToSummaryNegativeMulSwapsBounds(t *testing.T) {
	alg := Algebra[int]()
	s := alg.Combine(alg.Singleton(1), alg.Combine(alg.Singleton(2), alg.Singleton(3)))
	neg := Action{Mul: -1, Add: 0}
	alg.ApplyToSummary(neg, &s)
	if s.Min != -3 || s.Max != -1 {
		t.Fatalf("after negation: min=%v max=%v, want -3 -1", s.Min, s.Max)
	}
	if s.Sum != -6 {
		t.Fatalf("sum after negation = %v, want -6", s.Sum)
	}
}

func TestIdentityAction(t *testing.T) {
	alg := Algebra[int]()
	if !alg.IsIdentity(alg.IdentityAction) {
		t.Fatalf("IdentityAction should be identity")
	}
	if alg.IsIdentity(Action{Mul: 2, Add: 0}) {
		t.Fatalf("Mul:2 should not be identity")
	}
}
