package notes

import (
	"regexp"
	"strings"

	"github.com/statementlens/pnlextract/internal/pdfdoc"
	"github.com/statementlens/pnlextract/internal/tables"
)

// Breakup is an extracted note table: its line items and the total
// row, when one could be identified.
type Breakup struct {
	Items []tables.LineItem
	Total *tables.LineItem
}

// headerSkipKeywords mark the unit and period rows between a note
// heading and its first line item.
var headerSkipKeywords = []string{
	"for the year", "march 31", "march 31,", "particulars",
	"₹", "in rs", "in inr", "in million", "in lakhs",
	"in crore", "in thousands", "(audited)", "(unaudited)",
}

var (
	nextNotePattern = regexp.MustCompile(`^\s*(\d{1,2})\s*[.\-–—:)]\s+[A-Za-z]`)
	multiSpaceSplit = regexp.MustCompile(`\s{2,}`)
)

// ParseFromText extracts note line items from raw page text, reading
// up to three pages from the note page. It locates the heading, skips
// unit rows, then pairs labels with values until the next note heading
// or a footnote block.
func ParseFromText(texts []string, notePage int, noteNumber string) Breakup {
	var lines []string
	for offset := 0; offset < 3 && notePage+offset < len(texts); offset++ {
		lines = append(lines, strings.Split(texts[notePage+offset], "\n")...)
	}

	noteEsc := regexp.QuoteMeta(noteNumber)
	headingPattern := regexp.MustCompile(`(?i)^\s*` + noteEsc + `\s*[.\-–—:)]\s`)

	start := -1
	for i, line := range lines {
		if headingPattern.MatchString(strings.TrimSpace(line)) {
			start = i
			break
		}
	}
	if start < 0 {
		return Breakup{}
	}

	i := start + 1
	for i < len(lines) {
		stripped := strings.ToLower(strings.TrimSpace(lines[i]))
		if stripped == "" || containsAny(stripped, headerSkipKeywords) {
			i++
		} else {
			break
		}
	}

	subHeading := regexp.MustCompile(`(?i)^\s*` + noteEsc + `\s*[.\-–—:)]`)
	var items []tables.LineItem
	currentLabel := ""

	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if m := nextNotePattern.FindStringSubmatch(line); m != nil && m[1] != noteNumber {
			break
		}
		if strings.HasPrefix(line, "*") && len(line) > 5 && hasAlpha(line) {
			break
		}

		// Full row on one line: "Travelling and conveyance 123.45 98.76".
		if parts := multiSpaceSplit.Split(line, -1); len(parts) >= 3 && hasAlpha(parts[0]) {
			var vals []float64
			for _, p := range parts[1:] {
				if v, ok := pdfdoc.ParseNumber(p); ok {
					vals = append(vals, v)
				}
			}
			if len(vals) >= 2 {
				items = append(items, tables.LineItem{Label: strings.TrimSpace(parts[0]), Current: vals[0], Previous: vals[1]})
				currentLabel = ""
				continue
			}
		}

		// Pure numeric line attaches to the pending label: first value
		// is the current year, the second completes the pair.
		if v, ok := pdfdoc.ParseNumber(line); ok && !hasAlpha(line) {
			if currentLabel == "" {
				continue
			}
			if idx := findItem(items, currentLabel); idx >= 0 {
				items[idx].Previous = v
				currentLabel = ""
			} else {
				items = append(items, tables.LineItem{Label: currentLabel, Current: v})
			}
			continue
		}

		if hasAlpha(line) {
			if subHeading.MatchString(line) {
				continue
			}
			currentLabel = line
		}
	}

	return Breakup{Items: items, Total: findTotal(items)}
}

// ParseFromTable extracts note line items from an engine-produced
// table, skipping heading, unit, and keyword-header rows.
func ParseFromTable(t tables.Table, noteNumber string) Breakup {
	labelCol, currCol, prevCol := tables.IdentifyColumns(t)

	headingRow := regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(noteNumber) + `\s*[.\-–—:)]`)

	var items []tables.LineItem
	for row := range t.Rows {
		label := t.Cell(row, labelCol)
		if label == "" {
			continue
		}
		lower := strings.ToLower(label)
		if containsAny(lower, headerSkipKeywords) {
			continue
		}
		if headingRow.MatchString(label) {
			continue
		}
		if lower == "other expenses" || lower == "other expense" {
			continue
		}

		curr, ok := cellNumber(t, row, currCol)
		if !ok {
			continue
		}
		prev, _ := cellNumber(t, row, prevCol)
		items = append(items, tables.LineItem{Label: label, Current: curr, Previous: prev})
	}

	return Breakup{Items: items, Total: findTotal(items)}
}

func cellNumber(t tables.Table, row, col int) (float64, bool) {
	if col < 0 {
		return 0, false
	}
	return pdfdoc.ParseNumber(t.Cell(row, col))
}

// findTotal picks the last row labelled "total", or the final row when
// no explicit total exists.
func findTotal(items []tables.LineItem) *tables.LineItem {
	for i := len(items) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToLower(items[i].Label), "total") {
			return &items[i]
		}
	}
	if len(items) > 0 {
		return &items[len(items)-1]
	}
	return nil
}

func findItem(items []tables.LineItem, label string) int {
	for i := range items {
		if items[i].Label == label {
			return i
		}
	}
	return -1
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func hasAlpha(s string) bool {
	for _, c := range s {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}
