package knapsack

import (
	"context"
	"math"
	"sort"

	"github.com/iwvelando/gig-planner/pkg/failure"
	"github.com/iwvelando/gig-planner/pkg/mathutil"
)

// cancelCheckInterval is how many search nodes pass between context checks.
const cancelCheckInterval = 4096

type bbSearch struct {
	ctx    context.Context
	order  []item
	budget float64
	tol    float64

	taken     []bool
	nodes     int
	bestPay   int64
	bestHours float64
	bestSet   []int
	err       error
}

// solveBranchAndBound runs a depth-first include-first search over items
// ordered by pay density, pruning with the fractional relaxation. Nodes whose
// bound only ties the incumbent are still explored so the tie-break sees
// every optimal subset.
func solveBranchAndBound(ctx context.Context, items []item, budget float64) ([]int, error) {
	tol := mathutil.HourTolerance(budget)

	order := make([]item, 0, len(items))
	for _, it := range items {
		// Zero-pay projects only add hours, and projects longer than the
		// whole budget can never fit.
		if it.cents <= 0 || it.hours > budget+tol {
			continue
		}
		order = append(order, it)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return float64(order[i].cents)*order[j].hours > float64(order[j].cents)*order[i].hours
	})

	s := &bbSearch{
		ctx:     ctx,
		order:   order,
		budget:  budget,
		tol:     tol,
		taken:   make([]bool, len(items)),
		bestSet: []int{},
	}
	s.visit(0, 0, 0)
	if s.err != nil {
		return nil, failure.Wrap(failure.KindSolver, "branch-and-bound search interrupted", s.err)
	}
	return s.bestSet, nil
}

func (s *bbSearch) visit(k int, pay int64, hours float64) {
	if s.err != nil {
		return
	}
	s.nodes++
	if s.nodes%cancelCheckInterval == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return
		}
	}
	if k == len(s.order) {
		return
	}

	bound := s.bound(k, pay, hours)
	if bound < s.bestPay {
		return
	}
	if bound == s.bestPay && hours > s.bestHours+s.tol {
		return
	}

	it := s.order[k]
	if hours+it.hours <= s.budget+s.tol {
		s.taken[it.index] = true
		s.consider(pay+it.cents, hours+it.hours)
		s.visit(k+1, pay+it.cents, hours+it.hours)
		s.taken[it.index] = false
	}
	s.visit(k+1, pay, hours)
}

// bound returns the largest whole-cent pay reachable from node k under the
// fractional relaxation.
func (s *bbSearch) bound(k int, pay int64, hours float64) int64 {
	remaining := s.budget + s.tol - hours
	relaxed := float64(pay)
	for _, it := range s.order[k:] {
		if remaining <= 0 {
			break
		}
		if it.hours <= remaining {
			relaxed += float64(it.cents)
			remaining -= it.hours
			continue
		}
		relaxed += float64(it.cents) * remaining / it.hours
		break
	}
	return int64(math.Floor(relaxed + 1e-6))
}

func (s *bbSearch) consider(pay int64, hours float64) {
	if pay < s.bestPay {
		return
	}
	if pay == s.bestPay {
		if hours > s.bestHours+s.tol {
			return
		}
		if hours >= s.bestHours-s.tol {
			set := s.currentSet()
			if !lexLess(set, s.bestSet) {
				return
			}
			s.bestHours = hours
			s.bestSet = set
			return
		}
	}
	s.bestPay = pay
	s.bestHours = hours
	s.bestSet = s.currentSet()
}

func (s *bbSearch) currentSet() []int {
	set := make([]int, 0, len(s.taken))
	for idx, taken := range s.taken {
		if taken {
			set = append(set, idx)
		}
	}
	return set
}
