// Package constants provides shared constants for the gig-planner application.
package constants

import "time"

// Currency constants
const (
	// CurrencyPlaces is the number of decimal places kept for pay amounts
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Skill match bounds
const (
	MinSkillMatch = 0.0
	MaxSkillMatch = 100.0
)

// Solver constants
const (
	// SolverMethodAuto picks dynamic programming when every project's hours
	// align with the configured resolution, branch-and-bound otherwise.
	SolverMethodAuto = "auto"

	// SolverMethodDP forces the discretised dynamic-programming solve.
	SolverMethodDP = "dp"

	// SolverMethodBranchAndBound forces the real-valued branch-and-bound solve.
	SolverMethodBranchAndBound = "branch-and-bound"

	// DefaultResolution is the number of budget subdivisions per hour used by
	// the dynamic-programming table.
	DefaultResolution = 1

	// DefaultMaxCells caps the dynamic-programming table size.
	DefaultMaxCells = 4_000_000

	// RelativeEpsilon scales the hour tolerance used at the budget boundary.
	RelativeEpsilon = 1e-9
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultServerReadTimeout bounds reading a request including its body
	DefaultServerReadTimeout = 15 * time.Second

	// DefaultServerWriteTimeout bounds writing a response
	DefaultServerWriteTimeout = 60 * time.Second

	// DefaultServerShutdownTimeout is how long in-flight requests get on shutdown
	DefaultServerShutdownTimeout = 10 * time.Second
)
