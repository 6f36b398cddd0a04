package configprocessor

import (
	"strings"
	"testing"
)

func TestNewProcessor(t *testing.T) {
	processor := NewProcessor()
	if processor == nil {
		t.Error("NewProcessor() returned nil")
	}
}

func TestProcessor_ValidateConfiguration(t *testing.T) {
	processor := NewProcessor()

	tests := []struct {
		name             string
		availableHours   float64
		minSkillMatch    float64
		projects         []ProjectInfo
		expectedWarnings int
		contains         string
	}{
		{
			name:           "Valid configuration",
			availableHours: 80,
			projects: []ProjectInfo{
				{Name: "E-commerce Website Redesign", HoursRequired: 40, SkillMatch: 95},
				{Name: "API Integration Project", HoursRequired: 20, SkillMatch: 75},
			},
			expectedWarnings: 0,
		},
		{
			name:             "No projects",
			availableHours:   80,
			expectedWarnings: 0,
		},
		{
			name:           "Zero budget",
			availableHours: 0,
			projects: []ProjectInfo{
				{Name: "Brand Identity Package", HoursRequired: 12, SkillMatch: 60},
			},
			expectedWarnings: 1,
			contains:         "Available hours is 0",
		},
		{
			name:           "Duplicate names ignore case",
			availableHours: 80,
			projects: []ProjectInfo{
				{Name: "SEO Optimization Campaign", HoursRequired: 18, SkillMatch: 85},
				{Name: "seo optimization campaign ", HoursRequired: 10, SkillMatch: 85},
			},
			expectedWarnings: 1,
			contains:         "duplicates the name of entry 1",
		},
		{
			name:           "Project longer than budget",
			availableHours: 30,
			projects: []ProjectInfo{
				{Name: "Data Dashboard Development", HoursRequired: 50, SkillMatch: 90},
				{Name: "WordPress Plugin Development", HoursRequired: 30, SkillMatch: 88},
			},
			expectedWarnings: 1,
			contains:         "needs 50 hours",
		},
		{
			name:           "Ineligible long project is not reported",
			availableHours: 30,
			minSkillMatch:  95,
			projects: []ProjectInfo{
				{Name: "Data Dashboard Development", HoursRequired: 50, SkillMatch: 90},
				{Name: "E-commerce Website Redesign", HoursRequired: 20, SkillMatch: 95},
			},
			expectedWarnings: 0,
		},
		{
			name:           "Threshold excludes everything",
			availableHours: 80,
			minSkillMatch:  99,
			projects: []ProjectInfo{
				{Name: "Mobile App UI/UX Design", HoursRequired: 25, SkillMatch: 80},
			},
			expectedWarnings: 1,
			contains:         "excludes every project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := processor.ValidateConfiguration(tt.availableHours, tt.minSkillMatch, tt.projects)
			if len(warnings) != tt.expectedWarnings {
				t.Fatalf("expected %d warnings, got %d: %v", tt.expectedWarnings, len(warnings), warnings)
			}
			if tt.contains != "" && !strings.Contains(strings.Join(warnings, "\n"), tt.contains) {
				t.Fatalf("expected a warning containing %q, got %v", tt.contains, warnings)
			}
		})
	}
}

func TestProcessor_ValidateConfigurationNilWhenClean(t *testing.T) {
	warnings := NewProcessor().ValidateConfiguration(10, 0, []ProjectInfo{{Name: "a", HoursRequired: 5, SkillMatch: 50}})
	if warnings != nil {
		t.Fatalf("expected nil warnings, got %v", warnings)
	}
}
