// Package planner runs a full project selection: it validates the request,
// applies the skill threshold, solves the knapsack and reports the outcome.
package planner

import (
	"context"
	"errors"
	"time"

	"github.com/iwvelando/gig-planner/internal/eligibility"
	"github.com/iwvelando/gig-planner/internal/knapsack"
	"github.com/iwvelando/gig-planner/pkg/constants"
	"github.com/iwvelando/gig-planner/pkg/failure"
	"github.com/iwvelando/gig-planner/pkg/gig"
	"github.com/iwvelando/gig-planner/pkg/validation"
	"go.uber.org/zap"
)

// Options controls how a Runner solves requests.
type Options struct {
	Solver knapsack.Options
	// FallbackToBranchAndBound retries a ProblemTooLarge DP solve with
	// branch-and-bound.
	FallbackToBranchAndBound bool
	// Timeout bounds each Run. Zero means no limit.
	Timeout time.Duration
}

// Request is one optimization call.
type Request struct {
	Candidates     []gig.Candidate
	AvailableHours float64
	MinSkillMatch  float64
}

// Runner executes optimization requests. It holds no per-request state and
// may be shared between goroutines.
type Runner struct {
	logger *zap.Logger
	opts   Options
}

// NewRunner constructs a Runner with the provided options.
func NewRunner(logger *zap.Logger, opts Options) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.Solver.Normalize()
	return &Runner{logger: logger, opts: opts}
}

// Run selects the best set of projects for req.
func (r *Runner) Run(ctx context.Context, req Request) (gig.Selection, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	sel, err := r.run(ctx, req)
	if err != nil {
		r.logger.Warn("project optimization failed",
			zap.String("op", "planner.Run"),
			zap.Int("candidates", len(req.Candidates)),
			zap.Float64("availableHours", req.AvailableHours),
			zap.Float64("minSkillMatch", req.MinSkillMatch),
			zap.String("kind", string(failure.KindOf(err))),
			zap.Error(err),
		)
		return gig.Selection{}, err
	}

	r.logger.Info("project optimization complete",
		zap.String("op", "planner.Run"),
		zap.String("method", sel.Method),
		zap.Int("candidates", sel.CandidateCount),
		zap.Int("eligible", sel.EligibleCount),
		zap.Int("selected", sel.SelectedCount),
		zap.Float64("totalPay", sel.TotalPay),
		zap.Float64("totalHours", sel.TotalHours),
		zap.Float64("availableHours", sel.AvailableHours),
		zap.Float64("utilization", sel.Utilization),
		zap.Duration("duration", time.Since(start)),
	)
	return sel, nil
}

func (r *Runner) run(ctx context.Context, req Request) (gig.Selection, error) {
	if err := validation.ValidateRequest(req.Candidates, req.AvailableHours, req.MinSkillMatch); err != nil {
		return gig.Selection{}, err
	}

	pool, err := eligibility.Filter(req.Candidates, req.MinSkillMatch)
	if err != nil {
		return gig.Selection{}, err
	}
	switch pool.Status {
	case eligibility.StatusNoCandidates:
		return gig.Selection{}, failure.New(failure.KindNoEligibleItems, "no projects to optimize").
			WithDetails("add at least one project")
	case eligibility.StatusNoneEligible:
		return gig.Selection{}, failure.New(failure.KindNoEligibleItems, "no projects meet the minimum skill match requirement").
			WithDetails("lower the minimum skill match or add projects")
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	sel, err := r.solve(ctx, pool.Eligible, req.AvailableHours, r.opts.Solver)
	if err != nil && errors.Is(err, failure.ErrProblemTooLarge) && r.opts.FallbackToBranchAndBound {
		r.logger.Warn("dynamic-programming table too large, retrying with branch-and-bound",
			zap.String("op", "planner.Run"),
			zap.Int("eligible", len(pool.Eligible)),
			zap.Float64("availableHours", req.AvailableHours),
			zap.Error(err),
		)
		fallback := r.opts.Solver
		fallback.Method = constants.SolverMethodBranchAndBound
		sel, err = r.solve(ctx, pool.Eligible, req.AvailableHours, fallback)
	}
	if err != nil {
		return gig.Selection{}, err
	}

	for i, idx := range sel.Indices {
		sel.Indices[i] = pool.Positions[idx]
	}
	sel.CandidateCount = pool.Considered
	return sel, nil
}

// solve runs the selector and turns an expired deadline into a SolverError
// even when the selector itself never observed the context.
func (r *Runner) solve(ctx context.Context, eligible []gig.Candidate, budget float64, opts knapsack.Options) (gig.Selection, error) {
	sel, err := knapsack.SelectContext(ctx, eligible, budget, opts)
	if err != nil {
		return gig.Selection{}, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return gig.Selection{}, failure.Wrap(failure.KindSolver, "optimization exceeded its time limit", ctxErr)
	}
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return gig.Selection{}, failure.Wrap(failure.KindSolver, "optimization exceeded its time limit", context.DeadlineExceeded)
	}
	return sel, nil
}
