package knapsack

import (
	"github.com/iwvelando/gig-planner/pkg/failure"
	"github.com/iwvelando/gig-planner/pkg/mathutil"
)

// solveDP fills best[i][c], the best (pay, units) achievable from items i..n-1
// within c budget units, then walks forward from item 0 taking every item
// that still reaches the optimum. Taking the earliest such item at each step
// yields the lexicographically smallest optimal index set.
func solveDP(items []item, budget float64, opts Options) ([]int, error) {
	capacity, ok := mathutil.FloorUnits(budget, opts.Resolution)
	if !ok {
		return nil, failure.Newf(failure.KindProblemTooLarge,
			"budget of %g hours at resolution %d overflows the dynamic-programming table", budget, opts.Resolution)
	}

	n := len(items)
	width := capacity + 1
	if width > opts.MaxCells/int64(n+1) {
		return nil, failure.Newf(failure.KindProblemTooLarge,
			"dynamic-programming table for %s needs %d columns per row, over the %d cell limit",
			describe(items, budget), width, opts.MaxCells)
	}

	weights := make([]int64, n)
	for i, it := range items {
		units, ok := mathutil.ScaleToUnits(it.hours, opts.Resolution)
		if !ok {
			return nil, failure.Newf(failure.KindSolver, "hours %g are not aligned to resolution %d", it.hours, opts.Resolution)
		}
		weights[i] = units
	}

	cells := int64(n+1) * width
	pay := make([]int64, cells)
	used := make([]int64, cells)

	for i := n - 1; i >= 0; i-- {
		row := int64(i) * width
		next := int64(i+1) * width
		w := weights[i]
		for c := int64(0); c < width; c++ {
			bestPay, bestUsed := pay[next+c], used[next+c]
			if w <= c {
				takePay := pay[next+c-w] + items[i].cents
				takeUsed := used[next+c-w] + w
				if takePay > bestPay || (takePay == bestPay && takeUsed < bestUsed) {
					bestPay, bestUsed = takePay, takeUsed
				}
			}
			pay[row+c], used[row+c] = bestPay, bestUsed
		}
	}

	var chosen []int
	c := capacity
	var gotPay, gotUsed int64
	for i := 0; i < n; i++ {
		row := int64(i) * width
		next := int64(i+1) * width
		w := weights[i]
		if w <= c && pay[next+c-w]+items[i].cents == pay[row+c] && used[next+c-w]+w == used[row+c] {
			chosen = append(chosen, items[i].index)
			gotPay += items[i].cents
			gotUsed += w
			c -= w
		}
	}

	if gotPay != pay[capacity] || gotUsed != used[capacity] {
		return nil, failure.Newf(failure.KindSolver,
			"dynamic-programming reconstruction for %s diverged from the table optimum", describe(items, budget))
	}
	return chosen, nil
}
