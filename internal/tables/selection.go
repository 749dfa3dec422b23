package tables

import (
	"regexp"
	"strings"
)

// statementKeywords identify a profit and loss table among the grids an
// engine returns; header banners and column-year tables match few of
// them.
var statementKeywords = []string{
	"revenue from operations", "profit before tax", "profit for the year",
	"total income", "other expenses", "employee benefits", "total expenses",
	"depreciation", "finance cost",
}

// minStatementKeywords is the score a table must reach to be accepted
// as the statement.
const minStatementKeywords = 3

// BestStatementTable picks the table that looks most like a statement
// of profit and loss, or (-1) when none scores enough. Tiny tables are
// skipped outright.
func BestStatementTable(candidates []Table) int {
	bestIdx, bestScore := -1, 0
	for i, t := range candidates {
		if len(t.Rows) < 3 {
			continue
		}
		text := t.flattenLower()
		score := 0
		for _, kw := range statementKeywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestScore >= minStatementKeywords {
		return bestIdx
	}
	return -1
}

// LargestTable returns the index of the table with the most rows, used
// when keyword selection finds nothing.
func LargestTable(candidates []Table) int {
	bestIdx, bestRows := -1, 0
	for i, t := range candidates {
		if len(t.Rows) > bestRows {
			bestRows = len(t.Rows)
			bestIdx = i
		}
	}
	return bestIdx
}

// noteExpenseKeywords are line items commonly found inside an "Other
// expenses" note breakup.
var noteExpenseKeywords = []string{
	"travelling", "conveyance", "communication", "rent", "lease",
	"insurance", "professional", "legal", "repairs", "maintenance",
	"power", "fuel", "electricity", "printing", "stationery",
	"advertisement", "publicity", "corporate social", "csr",
	"miscellaneous", "rates and taxes", "outsourced", "manpower",
	"recruitment", "training", "subscription", "membership",
	"bank charges", "office", "software", "license", "audit",
	"donation", "bad debts", "provision", "loss on",
}

// BestNoteTable scores tables for being the breakup of the given note
// number and returns the winner, or -1 when nothing scores at least 3.
// Signals: the note heading, the "other expenses" phrase, expense
// keyword density (capped), a plausible row count, and a total row.
func BestNoteTable(candidates []Table, noteNumber string) int {
	headingPattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(noteNumber) + `\s*[.\-–—:)]`)

	bestIdx, bestScore := -1, -1
	for i, t := range candidates {
		if len(t.Rows) < 2 {
			continue
		}
		text := t.flattenLower()
		score := 0

		if headingPattern.MatchString(text) {
			score += 4
		}
		if strings.Contains(text, "other expenses") {
			score += 4
		}
		hits := 0
		for _, kw := range noteExpenseKeywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits > 6 {
			hits = 6
		}
		score += hits
		if n := len(t.Rows); n >= 5 && n <= 40 {
			score++
		}
		if strings.Contains(text, "total") {
			score++
		}

		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestScore >= 3 {
		return bestIdx
	}
	return -1
}
