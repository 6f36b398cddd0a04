package validation

import (
	"fmt"
	"math"

	"github.com/iwvelando/gig-planner/pkg/constants"
	"github.com/iwvelando/gig-planner/pkg/failure"
	"github.com/iwvelando/gig-planner/pkg/gig"
)

// ValidateThreshold checks that a skill-match threshold is finite and within [0,100].
func ValidateThreshold(threshold float64) error {
	if problem := thresholdProblem(threshold); problem != "" {
		return failure.New(failure.KindConfiguration, problem)
	}
	return nil
}

// ValidateBudget checks that an hour budget is finite and non-negative.
func ValidateBudget(budget float64) error {
	if problem := budgetProblem(budget); problem != "" {
		return failure.New(failure.KindConfiguration, problem)
	}
	return nil
}

// ValidateCandidate returns every problem found with a single candidate.
func ValidateCandidate(c gig.Candidate) []string {
	var problems []string

	label := c.Name
	if label == "" {
		label = "unnamed project"
	}

	switch {
	case math.IsNaN(c.TotalPay) || math.IsInf(c.TotalPay, 0):
		problems = append(problems, fmt.Sprintf("%s: total pay must be finite", label))
	case c.TotalPay < 0:
		problems = append(problems, fmt.Sprintf("%s: total pay %.2f must not be negative", label, c.TotalPay))
	}

	switch {
	case math.IsNaN(c.HoursRequired) || math.IsInf(c.HoursRequired, 0):
		problems = append(problems, fmt.Sprintf("%s: hours required must be finite", label))
	case c.HoursRequired <= 0:
		problems = append(problems, fmt.Sprintf("%s: hours required %g must be positive", label, c.HoursRequired))
	}

	if math.IsNaN(c.SkillMatch) || c.SkillMatch < constants.MinSkillMatch || c.SkillMatch > constants.MaxSkillMatch {
		problems = append(problems, fmt.Sprintf("%s: skill match %g must be between %.0f and %.0f",
			label, c.SkillMatch, constants.MinSkillMatch, constants.MaxSkillMatch))
	}

	return problems
}

// ValidateRequest checks candidates, budget and threshold together and
// reports all problems in a single ConfigurationError.
func ValidateRequest(candidates []gig.Candidate, budget, threshold float64) error {
	var problems []string
	if problem := budgetProblem(budget); problem != "" {
		problems = append(problems, problem)
	}
	if problem := thresholdProblem(threshold); problem != "" {
		problems = append(problems, problem)
	}
	for _, c := range candidates {
		problems = append(problems, ValidateCandidate(c)...)
	}
	if len(problems) == 0 {
		return nil
	}
	return failure.New(failure.KindConfiguration, "invalid optimization input").WithDetails(problems...)
}

func thresholdProblem(threshold float64) string {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return "minimum skill match must be finite"
	}
	if threshold < constants.MinSkillMatch || threshold > constants.MaxSkillMatch {
		return fmt.Sprintf("minimum skill match %g must be between %.0f and %.0f",
			threshold, constants.MinSkillMatch, constants.MaxSkillMatch)
	}
	return ""
}

func budgetProblem(budget float64) string {
	if math.IsNaN(budget) || math.IsInf(budget, 0) {
		return "available hours must be finite"
	}
	if budget < 0 {
		return fmt.Sprintf("available hours %g must not be negative", budget)
	}
	return ""
}
