package main

import "testing"

func TestRunBenchCaseAVL(t *testing.T) {
	bc := &BenchCase{Name: "t", Bal: BalancerAVL, Size: 50, PercentWrites: 30, Iterations: 5}
	if _, err := runBenchCase(bc); err != nil {
		t.Fatalf("runBenchCase: %v", err)
	}
}

func TestRunBenchCaseSplay(t *testing.T) {
	bc := &BenchCase{Name: "t", Bal: BalancerSplay, Size: 50, PercentWrites: 30, Iterations: 5}
	if _, err := runBenchCase(bc); err != nil {
		t.Fatalf("runBenchCase: %v", err)
	}
}

func TestRunBenchCaseUnknownBalancer(t *testing.T) {
	bc := &BenchCase{Name: "t", Bal: "bogus", Size: 10, Iterations: 1}
	if _, err := runBenchCase(bc); err != errUnknownBalancer {
		t.Fatalf("runBenchCase err = %v, want errUnknownBalancer", err)
	}
}
