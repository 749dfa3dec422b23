// Package identify locates the standalone financial statement pages of
// an annual report, falling back through progressively cruder methods:
// a language model reading page summaries, title matching, and finally
// keyword scoring.
package identify

// Method names which identification strategy produced the result.
type Method string

const (
	MethodModel   Method = "model"
	MethodTitle   Method = "title"
	MethodScoring Method = "scoring"
	MethodNone    Method = "none"
)

// PageNone marks a statement page that was not found.
const PageNone = -1

// Pages holds the located statement pages, zero-based. PageNone means
// the statement was not found.
type Pages struct {
	ProfitAndLoss int
	BalanceSheet  int
	CashFlow      int
	NotesStart    int
}

// NewPages returns a Pages with every field unset.
func NewPages() Pages {
	return Pages{
		ProfitAndLoss: PageNone,
		BalanceSheet:  PageNone,
		CashFlow:      PageNone,
		NotesStart:    PageNone,
	}
}

// Result is the outcome of page identification for one document.
type Result struct {
	Pages      Pages
	Method     Method
	Candidates []int

	// Attempted lists the methods that actually ran, in order. The
	// model method is absent when no model client is configured.
	Attempted []Method

	// Confidence is 0-100; below ConfidenceThreshold the caller should
	// ask a human to confirm the page instead of proceeding silently.
	Confidence        float64
	NeedsConfirmation bool

	CompanyName        string
	Currency           string
	FiscalYearCurrent  string
	FiscalYearPrevious string

	Warnings []string
}

// ConfidenceThreshold is the score below which identification is
// considered ambiguous.
const ConfidenceThreshold = 70.0
