// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import (
	"fmt"
	"math"
	"strings"
)

// ProjectInfo represents project configuration information
type ProjectInfo struct {
	Name          string
	HoursRequired float64
	SkillMatch    float64
}

// Processor handles configuration processing and validation
type Processor struct{}

// NewProcessor creates a new configuration processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateConfiguration inspects a planning configuration and returns
// warnings for settings that are legal but probably not what the user meant.
func (p *Processor) ValidateConfiguration(availableHours, minSkillMatch float64, projects []ProjectInfo) []string {
	var warnings []string

	if len(projects) == 0 {
		return nil
	}

	if availableHours == 0 {
		warnings = append(warnings, "Available hours is 0; no project can be selected")
	}

	seen := make(map[string]int, len(projects))
	eligible := 0
	for i, project := range projects {
		key := strings.ToLower(strings.TrimSpace(project.Name))
		if first, ok := seen[key]; ok {
			warnings = append(warnings, fmt.Sprintf("Project '%s' (entry %d) duplicates the name of entry %d", project.Name, i+1, first+1))
		} else {
			seen[key] = i
		}

		if project.SkillMatch >= minSkillMatch {
			eligible++
			if availableHours > 0 && project.HoursRequired > availableHours && !math.IsInf(project.HoursRequired, 0) {
				warnings = append(warnings, fmt.Sprintf("Project '%s' needs %g hours, more than the %g available", project.Name, project.HoursRequired, availableHours))
			}
		}
	}

	if eligible == 0 {
		warnings = append(warnings, fmt.Sprintf("Minimum skill match %g excludes every project", minSkillMatch))
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
