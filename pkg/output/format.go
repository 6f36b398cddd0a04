// Package output provides utilities for formatting and displaying selection results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/iwvelando/gig-planner/pkg/format"
	"github.com/iwvelando/gig-planner/pkg/gig"
	"github.com/iwvelando/gig-planner/pkg/mathutil"
)

// PrettyFormat writes a human-readable report of sel. all is the full project
// list the selection was drawn from; it drives the portfolio summary, the skip
// list and the comparison against taking every project.
func PrettyFormat(w io.Writer, all []gig.Candidate, sel gig.Selection) error {
	ew := &errWriter{w: w}
	portfolio := summarize(all)

	ew.printf("--- Portfolio ---\n")
	ew.printf("Projects       | %d\n", portfolio.count)
	ew.printf("Potential pay  | %s\n", format.WholeCurrency(portfolio.pay))
	ew.printf("Hours needed   | %s\n", format.Hours(portfolio.hours))
	ew.printf("Average rate   | %s/hr\n", format.Currency(portfolio.rate))

	ew.printf("\n--- Optimal project selection (%s) ---\n", sel.Method)
	if sel.Empty() {
		ew.printf("No eligible project fits within %s.\n", format.Hours(sel.AvailableHours))
	} else {
		ew.printf("Take %d projects to earn %s in %s\n",
			sel.SelectedCount, format.WholeCurrency(sel.TotalPay), format.Hours(sel.TotalHours))
	}
	ew.printf("Hours used     | %s / %s\n", format.Hours(sel.TotalHours), format.Hours(sel.AvailableHours))
	ew.printf("Hours left     | %s\n", format.Hours(sel.HoursRemaining))
	ew.printf("Utilization    | %s\n", format.Percent(sel.Utilization))
	ew.printf("Effective rate | %s/hr\n", format.Currency(sel.EffectiveRate))
	ew.printf("Eligible       | %d of %d projects\n", sel.EligibleCount, sel.CandidateCount)

	if len(sel.Selected) > 0 {
		ew.printf("\nTake:\n")
		ew.printf("Project | Client | Pay | Hours | Skill | Rate\n")
		ew.printf("_______ | ______ | ___ | _____ | _____ | ____\n")
		for _, c := range sel.Selected {
			ew.printf("%s | %s | %s | %s | %.0f%% | %s/hr\n",
				c.Name, c.Client, format.Currency(c.TotalPay), format.Hours(c.HoursRequired), c.SkillMatch,
				format.Currency(c.HourlyRate()))
		}
	}

	skipped := Skipped(all, sel)
	if len(skipped) > 0 {
		ew.printf("\nSkip:\n")
		for _, c := range skipped {
			ew.printf("%s | %s | %s | %s\n", c.Name, c.Client, format.Currency(c.TotalPay), format.Hours(c.HoursRequired))
		}
	}

	if portfolio.hours > sel.AvailableHours {
		ew.printf("\nKey insight: taking all %d projects would earn %s but require %s; "+
			"only %s are available, so the %d projects above maximize earnings within that limit.\n",
			portfolio.count, format.WholeCurrency(portfolio.pay), format.Hours(portfolio.hours),
			format.Hours(sel.AvailableHours), sel.SelectedCount)
	}
	return ew.err
}

type portfolioSummary struct {
	count int
	pay   float64
	hours float64
	rate  float64
}

func summarize(all []gig.Candidate) portfolioSummary {
	pays := make([]float64, 0, len(all))
	summary := portfolioSummary{count: len(all)}
	for _, c := range all {
		pays = append(pays, c.TotalPay)
		summary.hours += c.HoursRequired
	}
	summary.pay = mathutil.SumCurrency(pays...)
	summary.rate = mathutil.Fraction(summary.pay, summary.hours)
	return summary
}

// Skipped returns the projects in all that sel did not choose, in input
// order. When sel carries indices into all they decide membership; otherwise
// projects are matched by name, each selected entry consuming one.
func Skipped(all []gig.Candidate, sel gig.Selection) []gig.Candidate {
	if len(sel.Indices) == len(sel.Selected) && len(sel.Indices) > 0 {
		taken := make(map[int]bool, len(sel.Indices))
		for _, idx := range sel.Indices {
			taken[idx] = true
		}
		var skipped []gig.Candidate
		for i, c := range all {
			if !taken[i] {
				skipped = append(skipped, c)
			}
		}
		return skipped
	}

	taken := make(map[string]int, len(sel.Selected))
	for _, c := range sel.Selected {
		taken[c.Name]++
	}
	var skipped []gig.Candidate
	for _, c := range all {
		if taken[c.Name] > 0 {
			taken[c.Name]--
			continue
		}
		skipped = append(skipped, c)
	}
	return skipped
}

var csvHeader = []string{"name", "client", "total pay", "hours required", "skill match", "deadline days", "hourly rate"}

// CsvFormat writes one row per selected project followed by a totals row.
func CsvFormat(w io.Writer, sel gig.Selection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range sel.Selected {
		row := []string{
			c.Name,
			c.Client,
			strconv.FormatFloat(c.TotalPay, 'f', 2, 64),
			strconv.FormatFloat(c.HoursRequired, 'f', -1, 64),
			strconv.FormatFloat(c.SkillMatch, 'f', -1, 64),
			strconv.Itoa(c.DeadlineDays),
			strconv.FormatFloat(c.HourlyRate(), 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	total := []string{
		"TOTAL",
		"",
		strconv.FormatFloat(sel.TotalPay, 'f', 2, 64),
		strconv.FormatFloat(sel.TotalHours, 'f', -1, 64),
		"",
		"",
		strconv.FormatFloat(sel.EffectiveRate, 'f', 2, 64),
	}
	if err := cw.Write(total); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// CsvString renders sel as CSV in memory.
func CsvString(sel gig.Selection) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, sel); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONFormat writes sel as indented JSON.
func JSONFormat(w io.Writer, sel gig.Selection) error {
	if sel.Selected == nil {
		sel.Selected = []gig.Candidate{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sel)
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(formatStr string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, formatStr, args...)
}
