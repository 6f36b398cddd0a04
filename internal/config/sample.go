package config

import "github.com/iwvelando/gig-planner/pkg/gig"

// SampleAvailableHours is the budget the demonstration projects are planned against.
const SampleAvailableHours = 80

// SampleProjects returns the demonstration project list. Each call returns a
// fresh slice the caller may modify.
func SampleProjects() []gig.Candidate {
	return []gig.Candidate{
		{Name: "E-commerce Website Redesign", Client: "TechStart Inc", TotalPay: 2500, HoursRequired: 40, DeadlineDays: 14, SkillMatch: 95},
		{Name: "Mobile App UI/UX Design", Client: "HealthApp Co", TotalPay: 1800, HoursRequired: 25, DeadlineDays: 10, SkillMatch: 80},
		{Name: "Data Dashboard Development", Client: "FinanceMetrics", TotalPay: 3200, HoursRequired: 50, DeadlineDays: 21, SkillMatch: 90},
		{Name: "API Integration Project", Client: "RetailHub", TotalPay: 1500, HoursRequired: 20, DeadlineDays: 7, SkillMatch: 75},
		{Name: "Brand Identity Package", Client: "GreenLeaf Studio", TotalPay: 800, HoursRequired: 12, DeadlineDays: 5, SkillMatch: 60},
		{Name: "SEO Optimization Campaign", Client: "LocalBiz Group", TotalPay: 1200, HoursRequired: 18, DeadlineDays: 14, SkillMatch: 85},
		{Name: "Social Media Content Strategy", Client: "FashionBrand", TotalPay: 600, HoursRequired: 10, DeadlineDays: 7, SkillMatch: 70},
		{Name: "WordPress Plugin Development", Client: "BloggerPro", TotalPay: 2000, HoursRequired: 30, DeadlineDays: 14, SkillMatch: 88},
	}
}

// SampleConfiguration returns a configuration that plans the demonstration
// projects with default solver settings.
func SampleConfiguration() *Configuration {
	c := &Configuration{
		AvailableHours: SampleAvailableHours,
		Projects:       SampleProjects(),
	}
	c.Solver.Normalize()
	return c
}
