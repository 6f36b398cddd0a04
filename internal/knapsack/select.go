// Package knapsack picks the subset of eligible projects that maximises total
// pay without exceeding an hour budget. Every solve is exact: a
// dynamic-programming table when hours align to a fixed resolution, otherwise
// a branch-and-bound search over real-valued hours.
//
// Ties on pay go to the subset using fewer hours, then to the subset whose
// members appear earliest in the input, so identical inputs always produce
// identical selections.
package knapsack

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/iwvelando/gig-planner/pkg/constants"
	"github.com/iwvelando/gig-planner/pkg/failure"
	"github.com/iwvelando/gig-planner/pkg/gig"
	"github.com/iwvelando/gig-planner/pkg/mathutil"
	"github.com/iwvelando/gig-planner/pkg/validation"
)

// Options tunes how a selection is solved. The zero value is usable.
type Options struct {
	// Method is one of constants.SolverMethodAuto, SolverMethodDP or
	// SolverMethodBranchAndBound. Empty means auto.
	Method string
	// Resolution is the number of budget units per hour in the DP table.
	Resolution int
	// MaxCells caps the DP table at (items+1)*(capacity+1) entries.
	MaxCells int64
}

// Normalize fills in defaults and canonicalises the method name.
func (o *Options) Normalize() {
	o.Method = CanonicalMethod(o.Method)
	if o.Resolution <= 0 {
		o.Resolution = constants.DefaultResolution
	}
	if o.MaxCells <= 0 {
		o.MaxCells = constants.DefaultMaxCells
	}
}

// CanonicalMethod maps accepted spellings of a solver method onto its constant.
func CanonicalMethod(method string) string {
	switch strings.ToLower(strings.TrimSpace(method)) {
	case "", "auto":
		return constants.SolverMethodAuto
	case "dp", "dynamic", "dynamic-programming":
		return constants.SolverMethodDP
	case "branch-and-bound", "branch_and_bound", "branchandbound", "bnb", "bb":
		return constants.SolverMethodBranchAndBound
	default:
		return strings.ToLower(strings.TrimSpace(method))
	}
}

// item is a candidate reduced to what the solvers need.
type item struct {
	index int
	cents int64
	hours float64
}

// Select solves the 0/1 knapsack over eligible with the given hour budget.
func Select(eligible []gig.Candidate, budget float64, opts Options) (gig.Selection, error) {
	return SelectContext(context.Background(), eligible, budget, opts)
}

// SelectContext is Select with a context checked periodically by the
// branch-and-bound search. Cancellation is reported as a SolverError.
func SelectContext(ctx context.Context, eligible []gig.Candidate, budget float64, opts Options) (gig.Selection, error) {
	if len(eligible) == 0 {
		return gig.Selection{}, failure.New(failure.KindNoEligibleItems, "no projects meet the minimum skill match requirement")
	}
	if err := validation.ValidateRequest(eligible, budget, constants.MinSkillMatch); err != nil {
		return gig.Selection{}, err
	}

	opts.Normalize()

	items := make([]item, len(eligible))
	for i, c := range eligible {
		items[i] = item{index: i, cents: mathutil.ToCents(c.TotalPay), hours: c.HoursRequired}
	}

	method := opts.Method
	var (
		chosen []int
		err    error
	)
	switch method {
	case constants.SolverMethodAuto:
		if aligned(items, opts.Resolution) {
			method = constants.SolverMethodDP
			chosen, err = solveDP(items, budget, opts)
		} else {
			method = constants.SolverMethodBranchAndBound
			chosen, err = solveBranchAndBound(ctx, items, budget)
		}
	case constants.SolverMethodDP:
		if !aligned(items, opts.Resolution) {
			return gig.Selection{}, failure.Newf(failure.KindConfiguration,
				"dynamic programming needs hours in multiples of 1/%d hour", opts.Resolution)
		}
		chosen, err = solveDP(items, budget, opts)
	case constants.SolverMethodBranchAndBound:
		chosen, err = solveBranchAndBound(ctx, items, budget)
	default:
		return gig.Selection{}, failure.Newf(failure.KindConfiguration, "solver method %q is not supported", opts.Method)
	}
	if err != nil {
		return gig.Selection{}, err
	}

	return buildSelection(eligible, chosen, budget, method)
}

func aligned(items []item, resolution int) bool {
	for _, it := range items {
		if _, ok := mathutil.ScaleToUnits(it.hours, resolution); !ok {
			return false
		}
	}
	return true
}

func buildSelection(eligible []gig.Candidate, chosen []int, budget float64, method string) (gig.Selection, error) {
	sel := gig.Selection{
		Selected:       make([]gig.Candidate, 0, len(chosen)),
		Indices:        make([]int, 0, len(chosen)),
		AvailableHours: budget,
		EligibleCount:  len(eligible),
		CandidateCount: len(eligible),
		Method:         method,
	}

	chosen = append([]int(nil), chosen...)
	sort.Ints(chosen)

	var cents int64
	for _, idx := range chosen {
		c := eligible[idx]
		sel.Selected = append(sel.Selected, c)
		sel.Indices = append(sel.Indices, idx)
		cents += mathutil.ToCents(c.TotalPay)
		sel.TotalHours += c.HoursRequired
	}

	if sel.TotalHours > budget+mathutil.HourTolerance(budget) {
		return gig.Selection{}, failure.Newf(failure.KindSolver,
			"%s produced an infeasible selection using %g of %g hours", method, sel.TotalHours, budget)
	}

	sel.TotalPay = mathutil.FromCents(cents)
	sel.SelectedCount = len(sel.Selected)
	sel.HoursRemaining = budget - sel.TotalHours
	if sel.HoursRemaining < 0 {
		sel.HoursRemaining = 0
	}
	sel.Utilization = mathutil.Fraction(sel.TotalHours, budget)
	sel.EffectiveRate = mathutil.Fraction(sel.TotalPay, sel.TotalHours)
	return sel, nil
}

// lexLess reports whether the sorted index set a comes before b.
func lexLess(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func describe(items []item, budget float64) string {
	return fmt.Sprintf("%d projects, %g hours", len(items), budget)
}
