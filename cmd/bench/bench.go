package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/Lz-Gustavo/lazyseq/algebra"
	"github.com/Lz-Gustavo/lazyseq/avl"
	"github.com/Lz-Gustavo/lazyseq/locator"
	"github.com/Lz-Gustavo/lazyseq/numeric"
	"github.com/Lz-Gustavo/lazyseq/splay"
)

var sized = algebra.SizeFunc[numeric.Summary](func(s numeric.Summary) int { return s.Size })

// runBenchCase builds bc.Size elements into a tree of the configured
// balancer, then runs bc.Iterations rounds of a randomized workload mixing
// inserts/deletes (PercentWrites of the time) with segment-summary and
// act-segment reads over a random sub-range (the remainder), reporting the
// total wall time.
func runBenchCase(bc *BenchCase) (time.Duration, error) {
	srand := rand.NewSource(time.Now().UnixNano())
	r := rand.New(srand)

	alg := numeric.Algebra[int]()
	values := make([]int, bc.Size)
	for i := range values {
		values[i] = i
	}

	start := time.Now()
	for iter := 0; iter < bc.Iterations; iter++ {
		switch bc.Bal {
		case BalancerAVL:
			if err := runAVLRound(alg, values, bc.PercentWrites, r); err != nil {
				return 0, err
			}
		case BalancerSplay:
			runSplayRound(alg, values, bc.PercentWrites, r)
		default:
			return 0, errUnknownBalancer
		}
	}
	return time.Since(start), nil
}

func runAVLRound(alg algebra.Algebra[int, numeric.Summary, numeric.Action], values []int, writePct int, r *rand.Rand) error {
	tr := avl.FromSlice(alg, values)
	n := len(values)

	if cn := r.Intn(100); cn < writePct {
		i := r.Intn(n + 1)
		w := avl.Search(tr, locator.LeftEdgeOf[int, numeric.Summary](byIndex(i)))
		if err := w.Insert(r.Int()); err != nil {
			return err
		}

		dw := avl.Search(tr, byIndex(i))
		if _, err := dw.Delete(); err != nil {
			return err
		}
		return nil
	}

	lo, hi := randRange(r, n)
	loc := locator.ByIndexRange[int, numeric.Summary](sized, alg.Singleton, lo, hi)
	if err := tr.ActSegment(loc, numeric.Action{Mul: 1, Add: 1}); err != nil {
		return err
	}
	_ = tr.SegmentSummary(loc)
	return nil
}

func runSplayRound(alg algebra.Algebra[int, numeric.Summary, numeric.Action], values []int, writePct int, r *rand.Rand) {
	tr := splay.FromSlice(alg, values)
	n := len(values)

	if cn := r.Intn(100); cn < writePct {
		i := r.Intn(n + 1)
		_ = tr.Insert(locator.LeftEdgeOf[int, numeric.Summary](byIndex(i)), r.Int())
		tr.Delete(byIndex(i))
		return
	}

	lo, hi := randRange(r, n)
	loc := locator.ByIndexRange[int, numeric.Summary](sized, alg.Singleton, lo, hi)
	tr.ActSegment(loc, numeric.Action{Mul: 1, Add: 1})
	_ = tr.SegmentSummary(loc)
}

func byIndex(i int) locator.Locator[int, numeric.Summary] {
	return locator.ByIndex[int, numeric.Summary](sized, func(v int) numeric.Summary {
		f := float64(v)
		return numeric.Summary{Size: 1, Sum: f, Min: f, Max: f}
	}, i)
}

// randRange picks a random non-empty [lo, hi) within [0, n), or [0, n) itself
// when n is too small to split.
func randRange(r *rand.Rand, n int) (lo, hi int) {
	if n < 2 {
		return 0, n
	}
	lo = r.Intn(n - 1)
	hi = lo + 1 + r.Intn(n-lo-1+1)
	return lo, hi
}

func reportResult(bc *BenchCase, dur time.Duration) string {
	return fmt.Sprintf(
		"==== %s ====\nbalancer: %s\nsize: %d\niterations: %d\nwrite%%: %d\nduration: %s\n",
		bc.Name, bc.Bal, bc.Size, bc.Iterations, bc.PercentWrites, dur,
	)
}
