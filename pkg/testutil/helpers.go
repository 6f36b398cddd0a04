// Package testutil provides common utility functions for testing.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/iwvelando/gig-planner/pkg/gig"
	"github.com/iwvelando/gig-planner/pkg/mathutil"
)

// FindCandidate finds a candidate by name in the slice.
// Returns a pointer to the candidate if found, nil otherwise.
func FindCandidate(candidates []gig.Candidate, name string) *gig.Candidate {
	for i := range candidates {
		if candidates[i].Name == name {
			return &candidates[i]
		}
	}
	return nil
}

// BruteForceResult is the optimum found by exhaustive enumeration.
type BruteForceResult struct {
	PayCents int64
	Hours    float64
	Indices  []int
}

// BruteForce enumerates every subset of candidates and returns the best one
// under budget: most pay, then fewest hours, then earliest indices. Only
// tractable for about 20 candidates.
func BruteForce(candidates []gig.Candidate, budget float64) BruteForceResult {
	n := len(candidates)
	tol := mathutil.HourTolerance(budget)
	best := BruteForceResult{Indices: []int{}}

	for mask := 0; mask < 1<<n; mask++ {
		var pay int64
		var hours float64
		indices := make([]int, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				pay += mathutil.ToCents(candidates[i].TotalPay)
				hours += candidates[i].HoursRequired
				indices = append(indices, i)
			}
		}
		if hours > budget+tol {
			continue
		}
		switch {
		case pay > best.PayCents:
		case pay < best.PayCents:
			continue
		case hours < best.Hours-tol:
		case hours > best.Hours+tol:
			continue
		case !indicesBefore(indices, best.Indices):
			continue
		}
		best = BruteForceResult{PayCents: pay, Hours: hours, Indices: indices}
	}
	return best
}

func indicesBefore(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// RandomCandidates returns n reproducible candidates. When wholeHours is set
// every project takes a whole number of hours; otherwise hours are arbitrary
// reals.
func RandomCandidates(seed int64, n int, wholeHours bool) []gig.Candidate {
	rng := rand.New(rand.NewSource(seed))
	candidates := make([]gig.Candidate, n)
	for i := range candidates {
		hours := float64(1 + rng.Intn(40))
		if !wholeHours {
			hours = 0.5 + rng.Float64()*40
		}
		candidates[i] = gig.Candidate{
			Name:          fmt.Sprintf("project-%02d", i),
			Client:        fmt.Sprintf("client-%d", rng.Intn(5)),
			TotalPay:      float64(100 * (1 + rng.Intn(40))),
			HoursRequired: hours,
			SkillMatch:    float64(rng.Intn(101)),
		}
	}
	return candidates
}
