package tables

import (
	"regexp"

	"github.com/statementlens/pnlextract/internal/pdfdoc"
)

// ordinalPattern matches serial-number cells: roman numerals, short
// letter sequences, or bare digits, with optional trailing punctuation.
var ordinalPattern = regexp.MustCompile(`^(?i:[ivxlcdm]{1,5}|[a-z]|\d{1,3})[.)]?$`)

// isOrdinalColumn reports whether a column is a serial-number column.
// Every non-empty cell must look like an ordinal, and at least two
// must be present; statements often prefix rows with I, II, III or
// 1., 2., 3. markers that would otherwise be mistaken for values.
func isOrdinalColumn(t Table, col int) bool {
	nonEmpty := 0
	for row := range t.Rows {
		cell := t.Cell(row, col)
		if cell == "" {
			continue
		}
		nonEmpty++
		if !ordinalPattern.MatchString(cell) {
			return false
		}
	}
	return nonEmpty >= 2
}

// IdentifyColumns maps a statement table to (label, current year,
// previous year) column indices. A column qualifies as a value column
// when at least 15% of rows hold numeric cells that are not note
// references, and it is neither the label column nor an ordinal
// column. Reports print the current year left of the previous year, so
// of the last two qualifying columns the final one is the previous
// year. Missing columns come back as -1.
func IdentifyColumns(t Table) (labelCol, currCol, prevCol int) {
	ncols := t.ColCount()
	if ncols < 2 {
		return 0, -1, -1
	}

	numericCounts := make([]int, ncols)
	for row := range t.Rows {
		for col := 0; col < ncols; col++ {
			cell := t.Cell(row, col)
			if cell == "" || pdfdoc.IsNoteRef(cell) {
				continue
			}
			if _, ok := pdfdoc.ParseNumber(cell); ok {
				numericCounts[col]++
			}
		}
	}

	// ceiling of 15% of rows, floored at one
	minCount := (len(t.Rows)*15 + 99) / 100
	if minCount < 1 {
		minCount = 1
	}

	var candidates []int
	for col := 1; col < ncols; col++ {
		if numericCounts[col] < minCount {
			continue
		}
		if isOrdinalColumn(t, col) {
			continue
		}
		candidates = append(candidates, col)
	}

	switch {
	case len(candidates) >= 2:
		currCol = candidates[len(candidates)-2]
		prevCol = candidates[len(candidates)-1]
	case len(candidates) == 1:
		currCol = candidates[0]
		prevCol = -1
	case ncols >= 3:
		currCol = ncols - 2
		prevCol = ncols - 1
	default:
		currCol = ncols - 1
		prevCol = -1
	}
	return 0, currCol, prevCol
}
