package tables

import (
	"strings"

	"github.com/statementlens/pnlextract/internal/pdfdoc"
)

// canonicalItem pairs a canonical line item name with the label
// variants that identify it across report formats.
type canonicalItem struct {
	Name     string
	Patterns []string
}

// canonicalItems is ordered the way rows appear in a statement of
// profit and loss. Matching is first-pattern-wins per item.
var canonicalItems = []canonicalItem{
	{"Revenue from operations", []string{"revenue from operations", "revenue from operation", "income from operations"}},
	{"Other income", []string{"other income"}},
	{"Total income", []string{"total income", "total revenue"}},
	{"Cost of materials consumed", []string{"cost of materials consumed", "cost of materials"}},
	{"Employee benefits expense", []string{"employee benefits expense", "employee benefit expense", "employee cost"}},
	{"Cost of professionals", []string{"cost of professionals", "subcontracting expense", "cost of services"}},
	{"Finance costs", []string{"finance costs", "finance cost", "interest expense"}},
	{"Depreciation and amortisation", []string{"depreciation and amortisation", "depreciation and amortization", "depreciation & amortisation", "depreciation & amortization"}},
	{"Other expenses", []string{"other expenses", "other expense"}},
	{"Total expenses", []string{"total expenses", "total expense"}},
	{"Profit before tax", []string{"profit before exceptional", "profit before tax", "profit / (loss) before tax", "profit/(loss) before tax"}},
	{"Current tax", []string{"current tax"}},
	{"Deferred tax", []string{"deferred tax"}},
	{"Total tax expense", []string{"total tax expense", "tax expense"}},
	{"Profit for the year", []string{"profit for the year", "profit for the period", "profit / (loss) for the year", "profit/(loss) for the year", "net profit for the year"}},
	{"Total comprehensive income", []string{"total comprehensive income", "total comprehensive income / (loss)"}},
	{"Basic EPS", []string{"basic"}},
	{"Diluted EPS", []string{"diluted"}},
}

// ItemOrder returns the canonical line item names in statement order.
func ItemOrder() []string {
	names := make([]string, len(canonicalItems))
	for i, item := range canonicalItems {
		names[i] = item.Name
	}
	return names
}

// matchItem checks whether a row label denotes the given canonical
// item. EPS rows only prefix-match, since "basic" and "diluted" are too
// generic to match anywhere in a label.
func matchItem(label string, item canonicalItem) bool {
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" {
		return false
	}
	switch item.Name {
	case "Basic EPS":
		return strings.HasPrefix(lower, "basic")
	case "Diluted EPS":
		return strings.HasPrefix(lower, "diluted")
	}
	for _, p := range item.Patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// extractItems pulls canonical line items and note references out of a
// statement table. A note reference is any note-shaped cell between
// the label and current-year columns.
func extractItems(t Table) (map[string]LineItem, map[string]string) {
	labelCol, currCol, prevCol := IdentifyColumns(t)

	items := make(map[string]LineItem)
	noteRefs := make(map[string]string)

	for _, item := range canonicalItems {
		for row := range t.Rows {
			label := t.Cell(row, labelCol)
			if !matchItem(label, item) {
				continue
			}

			currVal, currOK := parseCell(t.Cell(row, currCol), currCol)
			if !currOK {
				continue
			}
			prevVal, prevOK := parseCell(t.Cell(row, prevCol), prevCol)
			if !prevOK {
				prevVal = 0
			}

			items[item.Name] = LineItem{Label: label, Current: currVal, Previous: prevVal}

			for col := labelCol + 1; col < currCol; col++ {
				if cell := t.Cell(row, col); pdfdoc.IsNoteRef(cell) {
					noteRefs[item.Name] = cell
					break
				}
			}
			break
		}
	}
	return items, noteRefs
}

func parseCell(cell string, col int) (float64, bool) {
	if col < 0 {
		return 0, false
	}
	return pdfdoc.ParseNumber(cell)
}
