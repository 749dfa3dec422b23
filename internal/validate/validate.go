// Package validate cross-checks an extracted note breakup against the
// statement it should reconcile with. Failed checks are findings for a
// human, never extraction errors: genuine disagreements between a note
// and its statement do occur in published reports.
package validate

import (
	"fmt"
	"math"
	"strings"

	"github.com/statementlens/pnlextract/internal/notes"
	"github.com/statementlens/pnlextract/internal/tables"
)

// Check is one reconciliation comparison.
type Check struct {
	Name     string  `json:"name"`
	Actual   float64 `json:"actual"`
	Expected float64 `json:"expected"`
	OK       bool    `json:"ok"`
}

// Tolerance returns the allowed difference when comparing against a
// statement value: 0.1% of the value, floored at 1.0. The floor
// absorbs rounding differences between note and statement on small
// amounts; the relative part scales with reporting units.
func Tolerance(statementValue float64) float64 {
	return math.Max(1.0, math.Abs(statementValue)*0.001)
}

// CrossCheck reconciles the note breakup against the statement's
// "Other expenses" line. It always returns the full set of checks so
// a report can show what was compared, not just what failed.
func CrossCheck(st *tables.Statement, breakup notes.Breakup, noteNumber string) []Check {
	oe := st.Item("Other expenses")
	tolerance := Tolerance(oe.Current)

	if noteNumber == "" {
		noteNumber = "?"
	}

	var totalCurr, totalPrev float64
	if breakup.Total != nil {
		totalCurr = breakup.Total.Current
		totalPrev = breakup.Total.Previous
	}

	checks := []Check{
		{
			Name:     fmt.Sprintf("Note %s total (CY) vs statement Other expenses (CY)", noteNumber),
			Actual:   totalCurr,
			Expected: oe.Current,
			OK:       math.Abs(totalCurr-oe.Current) < tolerance,
		},
		{
			Name:     fmt.Sprintf("Note %s total (PY) vs statement Other expenses (PY)", noteNumber),
			Actual:   totalPrev,
			Expected: oe.Previous,
			OK:       math.Abs(totalPrev-oe.Previous) < tolerance,
		},
	}

	// Internal consistency: the line items should add up to the note's
	// own total. Only meaningful when both sides exist.
	nonTotal := nonTotalItems(breakup.Items)
	if len(nonTotal) > 0 && totalCurr != 0 {
		var sum float64
		for _, item := range nonTotal {
			sum += item.Current
		}
		checks = append(checks, Check{
			Name:     "Sum of note line items (CY) vs note total (CY)",
			Actual:   sum,
			Expected: totalCurr,
			OK:       math.Abs(sum-totalCurr) < tolerance,
		})
	}

	checks = append(checks, Check{
		Name:     "Note line items extracted (count)",
		Actual:   float64(len(breakup.Items)),
		Expected: float64(len(breakup.Items)),
		OK:       len(breakup.Items) > 0,
	})

	return checks
}

// nonTotalItems filters out total rows so they are not double-counted
// when summing.
func nonTotalItems(items []tables.LineItem) []tables.LineItem {
	var out []tables.LineItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), "total") {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Failures returns the subset of checks that did not reconcile.
func Failures(checks []Check) []Check {
	var out []Check
	for _, c := range checks {
		if !c.OK {
			out = append(out, c)
		}
	}
	return out
}
