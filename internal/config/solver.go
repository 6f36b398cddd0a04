package config

import (
	"fmt"
	"time"

	"github.com/iwvelando/gig-planner/internal/knapsack"
	"github.com/iwvelando/gig-planner/internal/planner"
	"github.com/iwvelando/gig-planner/pkg/constants"
)

// SolverConfig selects and bounds the knapsack solver.
type SolverConfig struct {
	Method     string        `yaml:"method,omitempty" mapstructure:"method"`
	Resolution int           `yaml:"resolution,omitempty" mapstructure:"resolution"`
	MaxCells   int64         `yaml:"maxCells,omitempty" mapstructure:"maxCells"`
	Fallback   *bool         `yaml:"fallback,omitempty" mapstructure:"fallback"`
	Timeout    time.Duration `yaml:"timeout,omitempty" mapstructure:"timeout"`
}

// Normalize ensures defaults and canonical values are applied before validation.
func (s *SolverConfig) Normalize() {
	if s == nil {
		return
	}
	s.Method = knapsack.CanonicalMethod(s.Method)
	if s.Resolution == 0 {
		s.Resolution = constants.DefaultResolution
	}
	if s.MaxCells == 0 {
		s.MaxCells = constants.DefaultMaxCells
	}
	if s.Fallback == nil {
		enabled := true
		s.Fallback = &enabled
	}
}

// Validate returns an error when the solver configuration is unsupported.
func (s *SolverConfig) Validate() error {
	if s == nil {
		return fmt.Errorf("solver configuration cannot be nil")
	}

	s.Normalize()

	switch s.Method {
	case constants.SolverMethodAuto, constants.SolverMethodDP, constants.SolverMethodBranchAndBound:
	default:
		return fmt.Errorf("solver method %q is not supported", s.Method)
	}
	if s.Resolution < 1 {
		return fmt.Errorf("solver resolution must be at least 1, got %d", s.Resolution)
	}
	if s.MaxCells < 1 {
		return fmt.Errorf("solver maxCells must be at least 1, got %d", s.MaxCells)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("solver timeout cannot be negative, got %s", s.Timeout)
	}
	return nil
}

// ToPlannerOptions converts the configuration into runner options.
func (s SolverConfig) ToPlannerOptions() planner.Options {
	s.Normalize()
	return planner.Options{
		Solver: knapsack.Options{
			Method:     s.Method,
			Resolution: s.Resolution,
			MaxCells:   s.MaxCells,
		},
		FallbackToBranchAndBound: *s.Fallback,
		Timeout:                  s.Timeout,
	}
}
