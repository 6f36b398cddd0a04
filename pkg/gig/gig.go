// Package gig provides the shared data structures exchanged between the
// project selection engine and its callers.
package gig

// Candidate is a prospective project. The selection engine never mutates one.
type Candidate struct {
	Name          string  `json:"name" yaml:"name" mapstructure:"name"`
	Client        string  `json:"client,omitempty" yaml:"client,omitempty" mapstructure:"client"`
	TotalPay      float64 `json:"totalPay" yaml:"totalPay" mapstructure:"totalPay"`
	HoursRequired float64 `json:"hoursRequired" yaml:"hoursRequired" mapstructure:"hoursRequired"`
	SkillMatch    float64 `json:"skillMatch" yaml:"skillMatch" mapstructure:"skillMatch"`
	// DeadlineDays is informational only; selection ignores it.
	DeadlineDays int `json:"deadlineDays,omitempty" yaml:"deadlineDays,omitempty" mapstructure:"deadlineDays"`
}

// HourlyRate returns the pay per hour, or 0 for a project without hours.
func (c Candidate) HourlyRate() float64 {
	if c.HoursRequired <= 0 {
		return 0
	}
	return c.TotalPay / c.HoursRequired
}

// Selection is the chosen subset of eligible projects and its derived metrics.
type Selection struct {
	Selected []Candidate `json:"selected"`
	// Indices holds the position of each Selected entry in the list the
	// caller passed in, ascending and parallel to Selected.
	Indices        []int   `json:"indices"`
	TotalPay       float64 `json:"totalPay"`
	TotalHours     float64 `json:"totalHours"`
	AvailableHours float64 `json:"availableHours"`
	HoursRemaining float64 `json:"hoursRemaining"`
	// Utilization is the fraction of AvailableHours consumed, 0 when the budget is 0.
	Utilization    float64 `json:"utilization"`
	EffectiveRate  float64 `json:"effectiveRate"`
	SelectedCount  int     `json:"selectedCount"`
	EligibleCount  int     `json:"eligibleCount"`
	CandidateCount int     `json:"candidateCount"`
	Method         string  `json:"method"`
}

// Empty reports whether no project was selected.
func (s Selection) Empty() bool {
	return len(s.Selected) == 0
}

// Names returns the names of the selected projects in selection order.
func (s Selection) Names() []string {
	names := make([]string, 0, len(s.Selected))
	for _, c := range s.Selected {
		names = append(names, c.Name)
	}
	return names
}
