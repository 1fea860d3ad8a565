package xlgrid

import (
	"fmt"
	"math"
)

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // Gestures will fail
	SeverityWarning                 // Values are clamped or ignored
)

// ValidationIssue is a single inconsistency found in the providers.
type ValidationIssue struct {
	Severity Severity
	Subject  string // "grid", "section 2", "column C", "grouping 1"
	Message  string
}

// String formats the issue as "[ERROR] grid: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.Subject, v.Message)
}

// Validate checks the providers behind g for values the engine rejects or
// clamps. It reads the providers directly, bypassing the metadata cache.
func (g *Grid) Validate() []ValidationIssue {
	var issues []ValidationIssue
	add := func(sev Severity, subject, format string, args ...any) {
		issues = append(issues, ValidationIssue{Severity: sev, Subject: subject, Message: fmt.Sprintf(format, args...)})
	}

	sections := g.data.SectionCount()
	cols := g.data.ColumnCount()
	if sections < 0 {
		add(SeverityError, "grid", "section count %d is negative", sections)
	}
	if cols <= 0 {
		add(SeverityError, "grid", "column count %d must be positive", cols)
		return issues
	}

	frozen, hasFrozen := g.ctl.frozenColumns()
	if hasFrozen && (frozen < 0 || frozen > cols) {
		add(SeverityWarning, "grid", "frozen column count %d outside 0..%d", frozen, cols)
	}

	frozenRows, hasFrozenRows := g.data.(FrozenRowProvider)
	for s := 0; s < sections; s++ {
		subject := fmt.Sprintf("section %d", s)
		rows := g.data.RowCount(s)
		if rows < 0 {
			add(SeverityWarning, subject, "row count %d treated as 0", rows)
		}
		if hasFrozenRows {
			if n := frozenRows.FrozenRowCount(s); n < 0 || n > max(rows, 0) {
				add(SeverityWarning, subject, "frozen row count %d outside 0..%d", n, max(rows, 0))
			}
		}
	}

	if gp, ok := g.data.(ColumnGroupingProvider); ok {
		if err := validateGroupings(gp.ColumnGroupings(), cols); err != nil {
			add(SeverityError, "groupings", "%v", err)
		}
	}

	if g.opts.geometry == nil {
		add(SeverityWarning, "grid", "no geometry provider, widths are unavailable")
		return issues
	}
	for c := 0; c < cols; c++ {
		if w := g.opts.geometry.ColumnWidth(c); w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			add(SeverityWarning, "column "+ColToName(c), "width %v is not a finite non-negative number", w)
		}
	}
	return issues
}
