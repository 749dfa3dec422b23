// Package tables turns the identified statement pages into structured
// profit and loss line items, using an external table-structure service
// first and a layout-text fallback second.
package tables

import "strings"

// Table is a rectangular-ish grid of cell text. Rows may be ragged;
// column helpers treat missing cells as empty.
type Table struct {
	Rows [][]string
}

// Cell returns the trimmed cell at (row, col), or "" when out of range.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// ColCount returns the widest row's length.
func (t Table) ColCount() int {
	widest := 0
	for _, r := range t.Rows {
		if len(r) > widest {
			widest = len(r)
		}
	}
	return widest
}

// flattenLower joins every cell into one lowercase string for keyword
// scoring.
func (t Table) flattenLower() string {
	var sb strings.Builder
	for _, row := range t.Rows {
		for _, cell := range row {
			sb.WriteString(strings.ToLower(cell))
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

// LineItem is one extracted statement row with current and previous
// year values.
type LineItem struct {
	Label    string
	Current  float64
	Previous float64
}

// Statement is the structured extraction result for one document.
type Statement struct {
	Company  string
	Currency string
	// Items maps canonical line item names to their values.
	Items map[string]LineItem
	// NoteRefs maps canonical item names to the note number printed
	// beside them, e.g. "Other expenses" -> "27".
	NoteRefs map[string]string
	// Engine names the extraction path that produced the items.
	Engine string
}

// Item returns the named line item, zero-valued when absent.
func (s *Statement) Item(name string) LineItem {
	if s == nil || s.Items == nil {
		return LineItem{}
	}
	return s.Items[name]
}
