// Package eligibility reduces a candidate list to the projects whose skill
// match clears a minimum threshold.
package eligibility

import (
	"github.com/iwvelando/gig-planner/pkg/gig"
	"github.com/iwvelando/gig-planner/pkg/validation"
)

// Status describes how a pool came to be the size it is.
type Status int

const (
	// StatusEligible means at least one candidate met the threshold.
	StatusEligible Status = iota
	// StatusNoCandidates means the input list itself was empty.
	StatusNoCandidates
	// StatusNoneEligible means candidates existed but none met the threshold.
	StatusNoneEligible
)

func (s Status) String() string {
	switch s {
	case StatusEligible:
		return "eligible"
	case StatusNoCandidates:
		return "no-candidates"
	case StatusNoneEligible:
		return "none-eligible"
	default:
		return "unknown"
	}
}

// Pool is the reduced candidate set the selector operates on.
type Pool struct {
	Eligible []gig.Candidate
	// Positions maps each Eligible entry back to its index in the input.
	Positions  []int
	Considered int
	Threshold  float64
	Status     Status
}

// Empty reports whether the pool has no eligible candidates.
func (p Pool) Empty() bool {
	return len(p.Eligible) == 0
}

// Filter returns the candidates whose skill match is at least threshold, in
// their original order. Equality qualifies. The result never aliases the
// input slice.
func Filter(candidates []gig.Candidate, threshold float64) (Pool, error) {
	if err := validation.ValidateThreshold(threshold); err != nil {
		return Pool{}, err
	}

	pool := Pool{
		Eligible:   make([]gig.Candidate, 0, len(candidates)),
		Positions:  make([]int, 0, len(candidates)),
		Considered: len(candidates),
		Threshold:  threshold,
	}
	for i, c := range candidates {
		if c.SkillMatch >= threshold {
			pool.Eligible = append(pool.Eligible, c)
			pool.Positions = append(pool.Positions, i)
		}
	}

	switch {
	case len(candidates) == 0:
		pool.Status = StatusNoCandidates
	case len(pool.Eligible) == 0:
		pool.Status = StatusNoneEligible
	default:
		pool.Status = StatusEligible
	}
	return pool, nil
}
