package main

import "github.com/BurntSushi/toml"

// Balancer names a concrete tree implementation a BenchCase can drive.
type Balancer string

const (
	BalancerAVL   Balancer = "avl"
	BalancerSplay Balancer = "splay"
)

// BenchCase reflects one .toml input file: how big a tree to build, which
// balancer backs it, and how many insert/delete/act-segment iterations to
// run against it.
type BenchCase struct {
	Name string

	Bal  Balancer
	Size int

	// PercentWrites controls the insert/delete vs. read-only (segment
	// summary, act-segment) mix of the simulated workload.
	PercentWrites int
	Iterations    int
}

func loadBenchCase(path string) (*BenchCase, error) {
	bc := &BenchCase{}
	if _, err := toml.DecodeFile(path, bc); err != nil {
		return nil, err
	}
	if err := validateBenchCase(bc); err != nil {
		return nil, err
	}
	return bc, nil
}

func validateBenchCase(bc *BenchCase) error {
	if bc.Size < 0 || bc.Iterations < 0 {
		return errNegativeConfigNumber
	}
	if bc.PercentWrites < 0 || bc.PercentWrites > 100 {
		return errInvalidWritePercentage
	}
	if bc.Bal != BalancerAVL && bc.Bal != BalancerSplay {
		return errUnknownBalancer
	}
	return nil
}
