package pipeline

import (
	"time"

	"github.com/statementlens/pnlextract/internal/identify"
	"github.com/statementlens/pnlextract/internal/notes"
	"github.com/statementlens/pnlextract/internal/pdfdoc"
	"github.com/statementlens/pnlextract/internal/tables"
	"github.com/statementlens/pnlextract/internal/validate"
)

// Result is the full outcome of one document run. Warnings collect
// every advisory condition hit along the way; they never abort a run.
type Result struct {
	Source   string
	PDFType  pdfdoc.PDFType
	Duration time.Duration

	Identification identify.Result
	Statement      *tables.Statement

	NoteNumber string
	NotePage   int
	Breakup    notes.Breakup
	Checks     []validate.Check

	MetricsCurrent  validate.Metrics
	MetricsPrevious validate.Metrics

	Warnings []string
}

// warn appends a warning to the run.
func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// ChecksPassed reports whether every reconciliation check succeeded.
func (r *Result) ChecksPassed() bool {
	return len(validate.Failures(r.Checks)) == 0
}
